package services

import (
	"errors"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowService manages follow relationships and the follow notification.
type FollowService struct {
	follows       repositories.FollowRepository
	users         repositories.UserRepository
	notifications *NotificationService
}

// NewFollowService creates a new FollowService
func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository, notifications *NotificationService) *FollowService {
	return &FollowService{follows: follows, users: users, notifications: notifications}
}

// Follow makes actor follow target and notifies the target. Self-follows are
// rejected, which also keeps the no-self-notification invariant structural.
func (s *FollowService) Follow(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	following, err := s.follows.IsFollowing(actorID, targetID)
	if err != nil {
		return err
	}
	if following {
		return ErrAlreadyFollowing
	}

	if err := s.follows.CreateFollow(&models.Follow{FollowerID: actorID, FollowingID: targetID}); err != nil {
		return err
	}
	return s.notifications.Notify(targetID, actorID, models.NotificationFollow, "")
}

// Followers returns the compact profiles of the users following userID.
func (s *FollowService) Followers(userID uint) ([]models.UserCompact, error) {
	ids, err := s.follows.GetFollowerIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.compactProfiles(ids)
}

// Following returns the compact profiles of the users userID follows.
func (s *FollowService) Following(userID uint) ([]models.UserCompact, error) {
	ids, err := s.follows.GetFollowingIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.compactProfiles(ids)
}

func (s *FollowService) compactProfiles(ids []uint) ([]models.UserCompact, error) {
	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	compacts := make([]models.UserCompact, len(users))
	for i, u := range users {
		compacts[i] = u.ToCompact()
	}
	return compacts, nil
}

// Unfollow removes the relationship; no notification on unfollow.
func (s *FollowService) Unfollow(actorID, targetID uint) error {
	if err := s.follows.DeleteFollow(actorID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
