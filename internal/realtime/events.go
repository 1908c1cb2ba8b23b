package realtime

import "encoding/json"

// Wire event names. Client→server: joinRoom, chatMessage. Server→client:
// getOnlineUsers, chatMessage, getNotification, userJoined. These names are
// part of the client contract and must not change.
const (
	EventJoinRoom        = "joinRoom"
	EventChatMessage     = "chatMessage"
	EventGetOnlineUsers  = "getOnlineUsers"
	EventGetNotification = "getNotification"
	EventUserJoined      = "userJoined"
)

// Envelope is the outgoing frame: an event name plus its payload.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// inbound defers payload decoding until the event name is known.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// JoinRoomPayload is the client payload for joinRoom.
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

// ChatPayload is the client payload for chatMessage.
type ChatPayload struct {
	RoomID   string `json:"roomId"`
	SenderID uint   `json:"senderId"`
	Message  string `json:"message"`
}

// UserJoinedPayload announces a new room member to the room.
type UserJoinedPayload struct {
	UserID uint `json:"userId"`
}
