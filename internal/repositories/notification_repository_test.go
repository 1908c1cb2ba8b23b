package repositories

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soykat/vibely/backend/internal/models"
)

// newMockDB opens GORM over a sqlmock connection so the tests can assert
// the exact SQL the repository issues against PostgreSQL.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGetUnreadCountQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNotificationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notifications" WHERE recipient_id = $1 AND is_read = false`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.GetUnreadCount(7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllAsReadQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "is_read"=$1 WHERE recipient_id = $2 AND is_read = false`)).
		WithArgs(true, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.MarkAllAsRead(7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByRecipientIDQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresNotificationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "recipient_id", "sender_id", "type", "post_id", "is_read", "created_at"}).
		AddRow(2, 7, 3, string(models.NotificationComment), "p9", false, now).
		AddRow(1, 7, 4, string(models.NotificationFollow), "", true, now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notifications" WHERE recipient_id = $1 ORDER BY created_at DESC`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	notifications, err := repo.GetByRecipientID(7)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationComment, notifications[0].Type)
	assert.Equal(t, "p9", notifications[0].PostID)
	assert.True(t, notifications[1].IsRead)
	assert.NoError(t, mock.ExpectationsWereMet())
}
