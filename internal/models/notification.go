package models

import "time"

// Notification represents a persisted social notification (PostgreSQL).
// Records accumulate; the only mutation is flipping IsRead.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient" gorm:"index"`
	SenderID    uint             `json:"sender" gorm:"index"`
	Type        NotificationType `json:"type" gorm:"size:20;index"`
	PostID      string           `json:"postId,omitempty"`
	IsRead      bool             `json:"isRead" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"createdAt" gorm:"index"`
}
