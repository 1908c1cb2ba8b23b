package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soykat/vibely/backend/internal/realtime"
	"github.com/soykat/vibely/backend/internal/repositories"
)

// ChatHandler serves the read side of direct messages. The write side goes
// through the websocket channel.
type ChatHandler struct {
	messageRepository repositories.ChatMessageRepository
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(messageRepo repositories.ChatMessageRepository) *ChatHandler {
	return &ChatHandler{messageRepository: messageRepo}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/messages/:room_id", h.GetMessages)
	g.PUT("/messages/:room_id/read", h.MarkRoomAsRead)
}

// roomAccess verifies the caller is one of the room's two participants.
func roomAccess(c echo.Context, roomID string) *echo.HTTPError {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	a, b, err := realtime.RoomParticipants(roomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if currentUserID != a && currentUserID != b {
		return echo.NewHTTPError(http.StatusForbidden, "Not a participant of this room")
	}
	return nil
}

// GetMessages returns a room's messages in send order
func (h *ChatHandler) GetMessages(c echo.Context) error {
	roomID := c.Param("room_id")
	if httpErr := roomAccess(c, roomID); httpErr != nil {
		return httpErr
	}

	messages, err := h.messageRepository.GetByRoomID(roomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// MarkRoomAsRead flips is_read for the room's unread messages that the
// caller did not send
func (h *ChatHandler) MarkRoomAsRead(c echo.Context) error {
	roomID := c.Param("room_id")
	if httpErr := roomAccess(c, roomID); httpErr != nil {
		return httpErr
	}

	if err := h.messageRepository.MarkRoomAsRead(roomID, getUserIDFromContext(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
