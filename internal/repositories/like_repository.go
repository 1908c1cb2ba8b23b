package repositories

import (
	"github.com/soykat/vibely/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(id uint) error
	GetLike(authorID uint, targetID string, targetType models.TargetType) (*models.Like, error)
	GetLikesByTarget(targetID string, targetType models.TargetType) ([]models.Like, error)
	CountByTarget(targetID string, targetType models.TargetType) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike creates a new like in PostgreSQL. The unique index on
// (author, target) rejects a concurrent duplicate.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike deletes a like by ID from PostgreSQL
func (r *PostgresLikeRepository) DeleteLike(id uint) error {
	res := r.db.Delete(&models.Like{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLike retrieves the like a user holds on a target, if any
func (r *PostgresLikeRepository) GetLike(authorID uint, targetID string, targetType models.TargetType) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("author_id = ? AND target_id = ? AND target_type = ?", authorID, targetID, targetType).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// GetLikesByTarget retrieves all likes attached to a target
func (r *PostgresLikeRepository) GetLikesByTarget(targetID string, targetType models.TargetType) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Where("target_id = ? AND target_type = ?", targetID, targetType).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// CountByTarget retrieves the number of likes attached to a target
func (r *PostgresLikeRepository) CountByTarget(targetID string, targetType models.TargetType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("target_id = ? AND target_type = ?", targetID, targetType).Count(&count).Error
	return count, err
}
