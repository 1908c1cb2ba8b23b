package repositories

import (
	"github.com/soykat/vibely/backend/internal/models"
	"gorm.io/gorm"
)

// ChatMessageRepository defines the interface for direct-message persistence
type ChatMessageRepository interface {
	CreateMessage(message *models.ChatMessage) error
	GetByRoomID(roomID string) ([]models.ChatMessage, error)
	MarkRoomAsRead(roomID string, readerID uint) error
}

type postgresChatMessageRepository struct {
	db *gorm.DB
}

func NewPostgresChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &postgresChatMessageRepository{db: db}
}

func (r *postgresChatMessageRepository) CreateMessage(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// GetByRoomID returns a room's messages in send order
func (r *postgresChatMessageRepository) GetByRoomID(roomID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRoomAsRead flips is_read for the room's unread messages that were not
// sent by the reader, in one batch.
func (r *postgresChatMessageRepository) MarkRoomAsRead(roomID string, readerID uint) error {
	return r.db.Model(&models.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = false", roomID, readerID).
		Update("is_read", true).Error
}
