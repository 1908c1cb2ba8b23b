package models

import "time"

// Comment attaches to any registered commentable target. A nil ParentCommentID
// marks a top-level comment; replies inherit their parent's commentable pair,
// forming a tree of unbounded depth.
type Comment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	AuthorID        uint       `json:"author" gorm:"index"`
	CommentableID   string     `json:"commentableId" gorm:"index:idx_commentable"`
	CommentableType TargetType `json:"commentableType" gorm:"size:20;index:idx_commentable"`
	Content         string     `json:"content"`
	ParentCommentID *uint      `json:"parentComment" gorm:"index"`
	LikesCount      int        `json:"likesCount"` // comments are themselves likeable
	CreatedAt       time.Time  `json:"createdAt"`
}

// CreateCommentRequest defines the request body for creating a comment or reply
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
