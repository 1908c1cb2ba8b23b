package repositories

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soykat/vibely/backend/internal/models"
)

func seedComment(t *testing.T, repo CommentRepository, content string, parentID *uint, at time.Time) *models.Comment {
	t.Helper()
	c := &models.Comment{
		AuthorID:        1,
		CommentableID:   "p1",
		CommentableType: models.TargetPost,
		Content:         content,
		ParentCommentID: parentID,
		CreatedAt:       at,
	}
	require.NoError(t, repo.CreateComment(c))
	return c
}

func TestTopLevelNewestFirstRepliesOldestFirst(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	base := time.Now().Add(-time.Hour)

	first := seedComment(t, repo, "first", nil, base)
	second := seedComment(t, repo, "second", nil, base.Add(time.Minute))
	seedComment(t, repo, "late reply", &first.ID, base.Add(30*time.Minute))
	seedComment(t, repo, "early reply", &first.ID, base.Add(10*time.Minute))

	topLevel, err := repo.GetTopLevelByTarget("p1", models.TargetPost)
	require.NoError(t, err)
	require.Len(t, topLevel, 2)
	assert.Equal(t, second.ID, topLevel[0].ID)
	assert.Equal(t, first.ID, topLevel[1].ID)

	replies, err := repo.GetRepliesByParentIDs([]uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "early reply", replies[0].Content)
	assert.Equal(t, "late reply", replies[1].Content)
}

func TestGetRepliesByParentIDsEmpty(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))

	replies, err := repo.GetRepliesByParentIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

func TestDeleteByIDsBatch(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	now := time.Now()

	a := seedComment(t, repo, "a", nil, now)
	b := seedComment(t, repo, "b", nil, now)
	c := seedComment(t, repo, "c", nil, now)

	require.NoError(t, repo.DeleteByIDs([]uint{a.ID, c.ID}))
	require.NoError(t, repo.DeleteByIDs(nil))

	count, err := repo.CountByTarget("p1", models.TargetPost)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	survivor, err := repo.GetCommentByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", survivor.Content)
}

func TestIncrementLikesCount(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	c := seedComment(t, repo, "liked", nil, time.Now())
	id := strconv.FormatUint(uint64(c.ID), 10)

	require.NoError(t, repo.IncrementLikesCount(id, 1))
	require.NoError(t, repo.IncrementLikesCount(id, 1))
	require.NoError(t, repo.IncrementLikesCount(id, -1))

	refreshed, err := repo.GetCommentByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed.LikesCount)

	assert.ErrorIs(t, repo.IncrementLikesCount("404", 1), gorm.ErrRecordNotFound)
}

func TestCountByTargetIncludesAllLevels(t *testing.T) {
	repo := NewPostgresCommentRepository(newTestDB(t))
	now := time.Now()

	root := seedComment(t, repo, "root", nil, now)
	reply := seedComment(t, repo, "reply", &root.ID, now)
	seedComment(t, repo, "nested", &reply.ID, now)

	count, err := repo.CountByTarget("p1", models.TargetPost)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	all, err := repo.GetCommentsByTarget("p1", models.TargetPost)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
