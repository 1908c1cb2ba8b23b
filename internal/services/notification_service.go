package services

import (
	"log"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/realtime"
	"github.com/soykat/vibely/backend/internal/repositories"
)

// Pusher delivers an event to a user's active connection if one exists.
// The realtime hub implements it; fan-out only reads presence through this
// interface and never mutates it.
type Pusher interface {
	Push(userID uint, event string, data interface{}) bool
}

// NotificationView is a notification with its sender profile populated.
type NotificationView struct {
	models.Notification
	Sender models.UserCompact `json:"senderProfile"`
}

// NotificationService persists notifications and pushes them to recipients
// who are currently online. Delivery is best-effort: a failed push leaves the
// record unread for the next poll, there is no retry.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	pusher        Pusher
}

// NewNotificationService creates a new NotificationService. pusher may be nil
// when no realtime layer is attached.
func NewNotificationService(notifications repositories.NotificationRepository, users repositories.UserRepository, pusher Pusher) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, pusher: pusher}
}

// Notify records a notification and pushes it if the recipient is present.
// Self-notifications are silently skipped.
func (s *NotificationService) Notify(recipientID, senderID uint, ntype models.NotificationType, postID string) error {
	if recipientID == senderID {
		return nil
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        ntype,
		PostID:      postID,
	}
	if err := s.notifications.CreateNotification(notification); err != nil {
		return err
	}

	if s.pusher != nil {
		if !s.pusher.Push(recipientID, realtime.EventGetNotification, notification) {
			log.Printf("notification %d: recipient %d offline, stored for later retrieval", notification.ID, recipientID)
		}
	}
	return nil
}

// List returns the user's notifications newest-first with sender profiles.
func (s *NotificationService) List(userID uint) ([]NotificationView, error) {
	notifications, err := s.notifications.GetByRecipientID(userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint, 0, len(notifications))
	seen := make(map[uint]bool)
	for _, n := range notifications {
		if !seen[n.SenderID] {
			seen[n.SenderID] = true
			senderIDs = append(senderIDs, n.SenderID)
		}
	}
	users, err := s.users.GetUsersByIDs(senderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		byID[u.ID] = u.ToCompact()
	}

	views := make([]NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = NotificationView{Notification: n, Sender: byID[n.SenderID]}
	}
	return views, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.notifications.GetUnreadCount(userID)
}

// MarkAllRead flips every unread notification of the user in one batch.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notifications.MarkAllAsRead(userID)
}
