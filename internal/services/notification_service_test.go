package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/realtime"
	"github.com/soykat/vibely/backend/internal/repositories"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *fakePusher, *gorm.DB) {
	db := newTestDB(t)
	pusher := &fakePusher{online: true}
	svc := NewNotificationService(
		repositories.NewPostgresNotificationRepository(db),
		repositories.NewPostgresUserRepository(db),
		pusher,
	)
	return svc, pusher, db
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	svc, pusher, db := newNotificationFixture(t)

	require.NoError(t, svc.Notify(2, 1, models.NotificationComment, "p1"))

	var stored models.Notification
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, uint(2), stored.RecipientID)
	assert.Equal(t, uint(1), stored.SenderID)
	assert.Equal(t, models.NotificationComment, stored.Type)
	assert.Equal(t, "p1", stored.PostID)
	assert.False(t, stored.IsRead)

	require.Len(t, pusher.pushes, 1)
	assert.Equal(t, uint(2), pusher.pushes[0].userID)
	assert.Equal(t, realtime.EventGetNotification, pusher.pushes[0].event)
}

func TestNotifySkipsSelf(t *testing.T) {
	svc, pusher, db := newNotificationFixture(t)

	require.NoError(t, svc.Notify(1, 1, models.NotificationFollow, ""))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, pusher.pushes)
}

func TestNotifyOfflineRecipientStillStored(t *testing.T) {
	svc, pusher, db := newNotificationFixture(t)
	pusher.online = false

	require.NoError(t, svc.Notify(2, 1, models.NotificationFollow, ""))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNotifyWithoutPusher(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(
		repositories.NewPostgresNotificationRepository(db),
		repositories.NewPostgresUserRepository(db),
		nil,
	)
	assert.NoError(t, svc.Notify(2, 1, models.NotificationComment, "p1"))
}

func TestListNewestFirstWithSenderProfiles(t *testing.T) {
	svc, _, db := newNotificationFixture(t)
	sender := createTestUser(t, db, "mallory")

	base := time.Now().Add(-time.Hour)
	for i, postID := range []string{"old", "new"} {
		require.NoError(t, db.Create(&models.Notification{
			RecipientID: 2,
			SenderID:    sender.ID,
			Type:        models.NotificationComment,
			PostID:      postID,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	views, err := svc.List(2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "new", views[0].PostID)
	assert.Equal(t, "old", views[1].PostID)
	assert.Equal(t, "mallory", views[0].Sender.Username)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	svc, _, _ := newNotificationFixture(t)

	require.NoError(t, svc.Notify(2, 1, models.NotificationFollow, ""))
	require.NoError(t, svc.Notify(2, 3, models.NotificationComment, "p1"))
	require.NoError(t, svc.Notify(9, 1, models.NotificationFollow, ""))

	count, err := svc.UnreadCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAllRead(2))

	count, err = svc.UnreadCount(2)
	require.NoError(t, err)
	assert.Zero(t, count)

	// other recipients untouched
	count, err = svc.UnreadCount(9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
