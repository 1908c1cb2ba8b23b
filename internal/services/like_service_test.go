package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
)

func newLikeFixture(t *testing.T) (*LikeService, *fakeContentStore) {
	db := newTestDB(t)
	store := newFakeContentStore()
	registry := repositories.NewContentRegistry()
	registry.Register(models.TargetPost, store)
	svc := NewLikeService(
		repositories.NewPostgresLikeRepository(db),
		registry,
		repositories.NewPostgresUserRepository(db),
	)
	return svc, store
}

func TestToggleLikeCreatesThenRemoves(t *testing.T) {
	svc, store := newLikeFixture(t)
	store.add("p1", 2)
	ctx := context.Background()

	liked, count, err := svc.ToggleLike(ctx, 1, "p1", models.TargetPost)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, store.likes["p1"])

	liked, count, err = svc.ToggleLike(ctx, 1, "p1", models.TargetPost)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 0, store.likes["p1"])
}

func TestToggleLikeIndependentPerUser(t *testing.T) {
	svc, store := newLikeFixture(t)
	store.add("p1", 9)
	ctx := context.Background()

	_, _, err := svc.ToggleLike(ctx, 1, "p1", models.TargetPost)
	require.NoError(t, err)
	_, count, err := svc.ToggleLike(ctx, 2, "p1", models.TargetPost)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// user 1 withdrawing leaves user 2's like intact
	liked, count, err := svc.ToggleLike(ctx, 1, "p1", models.TargetPost)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(1), count)
}

func TestToggleLikeMissingTarget(t *testing.T) {
	svc, _ := newLikeFixture(t)

	_, _, err := svc.ToggleLike(context.Background(), 1, "nope", models.TargetPost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeUnregisteredType(t *testing.T) {
	svc, _ := newLikeFixture(t)

	_, _, err := svc.ToggleLike(context.Background(), 1, "r1", models.TargetReel)
	assert.ErrorIs(t, err, repositories.ErrUnregisteredType)
}

func TestListLikers(t *testing.T) {
	db := newTestDB(t)
	store := newFakeContentStore()
	store.add("p1", 9)
	registry := repositories.NewContentRegistry()
	registry.Register(models.TargetPost, store)
	svc := NewLikeService(
		repositories.NewPostgresLikeRepository(db),
		registry,
		repositories.NewPostgresUserRepository(db),
	)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()
	for _, u := range []*models.User{alice, bob} {
		_, _, err := svc.ToggleLike(ctx, u.ID, "p1", models.TargetPost)
		require.NoError(t, err)
	}

	likers, count, err := svc.ListLikers(ctx, "p1", models.TargetPost)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, likers, 2)
	names := []string{likers[0].Username, likers[1].Username}
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}
