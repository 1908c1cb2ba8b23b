package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story represents a user's story stored in MongoDB
type Story struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        uint               `json:"user_id" bson:"user_id"`
	Items         []StoryItem        `json:"items" bson:"items"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	ExpiresAt     time.Time          `json:"expires_at" bson:"expires_at"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// StoryItem represents a single item in a story
type StoryItem struct {
	ID        string    `json:"id" bson:"id"`
	Type      string    `json:"type" bson:"type"` // "image" or "video"
	URL       string    `json:"url" bson:"url"`
	Duration  int       `json:"duration" bson:"duration"` // seconds
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
	Type     string `json:"type" validate:"required,oneof=image video"`
	Duration int    `json:"duration" validate:"omitempty,min=1,max=60"`
}
