package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soykat/vibely/backend/internal/models"
)

func TestGetByRoomIDSendOrder(t *testing.T) {
	repo := NewPostgresChatMessageRepository(newTestDB(t))
	base := time.Now().Add(-time.Hour)

	require.NoError(t, repo.CreateMessage(&models.ChatMessage{SenderID: 2, RoomID: "1_2", Message: "later", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.CreateMessage(&models.ChatMessage{SenderID: 1, RoomID: "1_2", Message: "earlier", CreatedAt: base}))
	require.NoError(t, repo.CreateMessage(&models.ChatMessage{SenderID: 3, RoomID: "3_4", Message: "elsewhere", CreatedAt: base}))

	messages, err := repo.GetByRoomID("1_2")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "earlier", messages[0].Message)
	assert.Equal(t, "later", messages[1].Message)
}

func TestMarkRoomAsReadSkipsOwnMessages(t *testing.T) {
	repo := NewPostgresChatMessageRepository(newTestDB(t))

	require.NoError(t, repo.CreateMessage(&models.ChatMessage{SenderID: 1, RoomID: "1_2", Message: "from me"}))
	require.NoError(t, repo.CreateMessage(&models.ChatMessage{SenderID: 2, RoomID: "1_2", Message: "from them"}))
	require.NoError(t, repo.CreateMessage(&models.ChatMessage{SenderID: 2, RoomID: "2_3", Message: "other room"}))

	require.NoError(t, repo.MarkRoomAsRead("1_2", 1))

	messages, err := repo.GetByRoomID("1_2")
	require.NoError(t, err)
	for _, m := range messages {
		if m.SenderID == 1 {
			assert.False(t, m.IsRead, "reader's own message must stay unread for the peer")
		} else {
			assert.True(t, m.IsRead)
		}
	}

	other, err := repo.GetByRoomID("2_3")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.False(t, other[0].IsRead)
}
