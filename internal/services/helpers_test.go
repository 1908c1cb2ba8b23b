package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.ChatMessage{},
		&models.Follow{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Username: name, Email: name + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// fakeContentStore is a registered content kind backed by a map, with
// denormalized counters the tests can inspect.
type fakeContentStore struct {
	owners   map[string]uint
	likes    map[string]int
	comments map[string]int
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{
		owners:   make(map[string]uint),
		likes:    make(map[string]int),
		comments: make(map[string]int),
	}
}

func (s *fakeContentStore) add(id string, ownerID uint) {
	s.owners[id] = ownerID
}

func (s *fakeContentStore) GetOwner(_ context.Context, id string) (uint, error) {
	owner, ok := s.owners[id]
	if !ok {
		return 0, repositories.ErrContentNotFound
	}
	return owner, nil
}

func (s *fakeContentStore) IncrementLikes(_ context.Context, id string, delta int) error {
	s.likes[id] += delta
	return nil
}

func (s *fakeContentStore) IncrementComments(_ context.Context, id string, delta int) error {
	s.comments[id] += delta
	return nil
}

// fakePusher records pushed events; online controls the reported delivery.
type fakePusher struct {
	online bool
	pushes []pushedEvent
}

type pushedEvent struct {
	userID uint
	event  string
	data   interface{}
}

func (p *fakePusher) Push(userID uint, event string, data interface{}) bool {
	p.pushes = append(p.pushes, pushedEvent{userID: userID, event: event, data: data})
	return p.online
}
