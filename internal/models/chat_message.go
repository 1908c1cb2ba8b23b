package models

import "time"

// ChatMessage is a direct message relayed through the realtime channel and
// persisted for retrieval. RoomID is an opaque broadcast-group identifier,
// conventionally the two participant ids sorted and joined with an underscore.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SenderID  uint      `json:"senderId" gorm:"index"`
	RoomID    string    `json:"roomId" gorm:"index"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
}
