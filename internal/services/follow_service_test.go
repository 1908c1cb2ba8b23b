package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
)

func newFollowFixture(t *testing.T) (*FollowService, *fakePusher, *gorm.DB) {
	db := newTestDB(t)
	users := repositories.NewPostgresUserRepository(db)
	pusher := &fakePusher{online: true}
	notifications := NewNotificationService(repositories.NewPostgresNotificationRepository(db), users, pusher)
	svc := NewFollowService(repositories.NewPostgresFollowRepository(db), users, notifications)
	return svc, pusher, db
}

func TestFollowCreatesRelationshipAndNotifies(t *testing.T) {
	svc, pusher, db := newFollowFixture(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))

	var follow models.Follow
	require.NoError(t, db.First(&follow).Error)
	assert.Equal(t, alice.ID, follow.FollowerID)
	assert.Equal(t, bob.ID, follow.FollowingID)

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, bob.ID, notification.RecipientID)
	assert.Equal(t, models.NotificationFollow, notification.Type)
	assert.Empty(t, notification.PostID)
	assert.Len(t, pusher.pushes, 1)
}

func TestFollowSelf(t *testing.T) {
	svc, _, db := newFollowFixture(t)
	alice := createTestUser(t, db, "alice")

	assert.ErrorIs(t, svc.Follow(alice.ID, alice.ID), ErrSelfFollow)
}

func TestFollowUnknownTarget(t *testing.T) {
	svc, _, db := newFollowFixture(t)
	alice := createTestUser(t, db, "alice")

	assert.ErrorIs(t, svc.Follow(alice.ID, 404), ErrNotFound)
}

func TestFollowTwice(t *testing.T) {
	svc, _, db := newFollowFixture(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))
	assert.ErrorIs(t, svc.Follow(alice.ID, bob.ID), ErrAlreadyFollowing)
}

func TestFollowersAndFollowing(t *testing.T) {
	svc, _, db := newFollowFixture(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, svc.Follow(alice.ID, carol.ID))
	require.NoError(t, svc.Follow(bob.ID, carol.ID))
	require.NoError(t, svc.Follow(carol.ID, alice.ID))

	followers, err := svc.Followers(carol.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.ElementsMatch(t, []string{"alice", "bob"}, []string{followers[0].Username, followers[1].Username})

	following, err := svc.Following(carol.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "alice", following[0].Username)
}

func TestUnfollow(t *testing.T) {
	svc, _, db := newFollowFixture(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)

	// unfollowing again has nothing to delete
	assert.ErrorIs(t, svc.Unfollow(alice.ID, bob.ID), ErrNotFound)
}
