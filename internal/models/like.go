package models

import "time"

// Like attaches a user's like to any registered content target. The unique
// index on (author, target) is the source of truth for the one-like-per-user
// invariant; the toggle logic's read-then-write alone cannot guarantee it
// under concurrent requests.
type Like struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	AuthorID   uint       `json:"author" gorm:"index;uniqueIndex:idx_author_target"`
	TargetID   string     `json:"targetId" gorm:"uniqueIndex:idx_author_target"`
	TargetType TargetType `json:"targetType" gorm:"size:20;uniqueIndex:idx_author_target"`
	CreatedAt  time.Time  `json:"createdAt"`
}
