package services

import (
	"context"
	"errors"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
	"gorm.io/gorm"
)

// LikeService toggles and lists likes against any registered content target.
type LikeService struct {
	likes    repositories.LikeRepository
	registry *repositories.ContentRegistry
	users    repositories.UserRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(likes repositories.LikeRepository, registry *repositories.ContentRegistry, users repositories.UserRepository) *LikeService {
	return &LikeService{likes: likes, registry: registry, users: users}
}

// ToggleLike flips the actor's like on the target: absent → created,
// present → removed. The caller cannot request a state that contradicts the
// current one; the engine decides. Returns the resulting liked state and the
// target's like count.
func (s *LikeService) ToggleLike(ctx context.Context, actorID uint, targetID string, targetType models.TargetType) (bool, int64, error) {
	store, err := s.registry.Resolve(targetType)
	if err != nil {
		return false, 0, err
	}
	if _, err := store.GetOwner(ctx, targetID); err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			return false, 0, ErrNotFound
		}
		return false, 0, err
	}

	existing, err := s.likes.GetLike(actorID, targetID, targetType)
	switch {
	case err == nil:
		if err := s.likes.DeleteLike(existing.ID); err != nil {
			return false, 0, err
		}
		if err := store.IncrementLikes(ctx, targetID, -1); err != nil {
			return false, 0, err
		}
		count, err := s.likes.CountByTarget(targetID, targetType)
		return false, count, err
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &models.Like{
			AuthorID:   actorID,
			TargetID:   targetID,
			TargetType: targetType,
		}
		// Under a toggle race the unique index on (author, target) rejects
		// the second insert; the application never writes a duplicate.
		if err := s.likes.CreateLike(like); err != nil {
			return false, 0, err
		}
		if err := store.IncrementLikes(ctx, targetID, 1); err != nil {
			return false, 0, err
		}
		count, err := s.likes.CountByTarget(targetID, targetType)
		return true, count, err
	default:
		return false, 0, err
	}
}

// ListLikers returns the users who like the target, with the persisted total.
func (s *LikeService) ListLikers(ctx context.Context, targetID string, targetType models.TargetType) ([]models.UserCompact, int64, error) {
	store, err := s.registry.Resolve(targetType)
	if err != nil {
		return nil, 0, err
	}
	if _, err := store.GetOwner(ctx, targetID); err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	likes, err := s.likes.GetLikesByTarget(targetID, targetType)
	if err != nil {
		return nil, 0, err
	}

	authorIDs := make([]uint, 0, len(likes))
	for _, l := range likes {
		authorIDs = append(authorIDs, l.AuthorID)
	}
	users, err := s.users.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		byID[u.ID] = u.ToCompact()
	}

	likers := make([]models.UserCompact, 0, len(likes))
	for _, l := range likes {
		if compact, ok := byID[l.AuthorID]; ok {
			likers = append(likers, compact)
		}
	}

	count, err := s.likes.CountByTarget(targetID, targetType)
	if err != nil {
		return nil, 0, err
	}
	return likers, count, nil
}
