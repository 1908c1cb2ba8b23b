package repositories

import (
	"github.com/soykat/vibely/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByTarget(targetID string, targetType models.TargetType) ([]models.Comment, error)
	GetTopLevelByTarget(targetID string, targetType models.TargetType) ([]models.Comment, error)
	GetRepliesByParentIDs(parentIDs []uint) ([]models.Comment, error)
	DeleteByIDs(ids []uint) error
	CountByTarget(targetID string, targetType models.TargetType) (int64, error)
	IncrementLikesCount(id string, delta int) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByTarget retrieves every comment attached to a target, all
// nesting levels included. Cascade deletion builds its parent→children
// index from this single query instead of one round-trip per node.
func (r *PostgresCommentRepository) GetCommentsByTarget(targetID string, targetType models.TargetType) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("commentable_id = ? AND commentable_type = ?", targetID, targetType).Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetTopLevelByTarget retrieves top-level comments for a target, newest first
func (r *PostgresCommentRepository) GetTopLevelByTarget(targetID string, targetType models.TargetType) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("commentable_id = ? AND commentable_type = ? AND parent_comment_id IS NULL", targetID, targetType).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetRepliesByParentIDs retrieves the direct replies of the given comments,
// oldest first
func (r *PostgresCommentRepository) GetRepliesByParentIDs(parentIDs []uint) ([]models.Comment, error) {
	var replies []models.Comment
	if len(parentIDs) == 0 {
		return replies, nil
	}
	err := r.db.Where("parent_comment_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// DeleteByIDs removes a batch of comments in a single statement, so a
// cascade either lands fully or not at all.
func (r *PostgresCommentRepository) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Delete(&models.Comment{}, ids).Error
}

// CountByTarget retrieves the total number of comments (top-level and
// replies) attached to a target
func (r *PostgresCommentRepository) CountByTarget(targetID string, targetType models.TargetType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("commentable_id = ? AND commentable_type = ?", targetID, targetType).Count(&count).Error
	return count, err
}

// IncrementLikesCount adjusts the denormalized likes counter of a comment
func (r *PostgresCommentRepository) IncrementLikesCount(id string, delta int) error {
	res := r.db.Model(&models.Comment{}).Where("id = ?", id).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
