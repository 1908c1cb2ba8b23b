// Package realtime implements the websocket layer: presence tracking,
// room-based chat relay and notification push. Presence lives only in this
// process; a restart forgets every connection. Fan-out code outside this
// package reads presence through Push and never mutates it.
package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients are served from a different origin in development.
		return true
	},
}

// Hub owns the presence map and the room broadcast groups. At most one
// connection per user id: a later connect from the same user replaces the
// former entry.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]*Client
	rooms   map[string]map[*Client]struct{}

	messages repositories.ChatMessageRepository
}

// NewHub creates a hub persisting chat messages through messages.
func NewHub(messages repositories.ChatMessageRepository) *Hub {
	return &Hub{
		clients:  make(map[uint]*Client),
		rooms:    make(map[string]map[*Client]struct{}),
		messages: messages,
	}
}

// Register marks the client's user online and broadcasts the updated online
// list. An existing connection for the same user is evicted.
func (h *Hub) Register(c *Client) {
	if c.userID == 0 {
		return
	}
	h.mu.Lock()
	if old, ok := h.clients[c.userID]; ok && old != c {
		h.removeFromRoomsLocked(old)
		h.closeClientLocked(old)
	}
	h.clients[c.userID] = c
	h.mu.Unlock()

	h.broadcastOnline()
}

// Unregister removes the client from presence and every room, then
// broadcasts the updated online list. Safe to call for clients that were
// already evicted by a newer connection.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if current, ok := h.clients[c.userID]; ok && current == c {
		delete(h.clients, c.userID)
	}
	h.removeFromRoomsLocked(c)
	h.closeClientLocked(c)
	h.mu.Unlock()

	h.broadcastOnline()
}

func (h *Hub) removeFromRoomsLocked(c *Client) {
	for roomID, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) closeClientLocked(c *Client) {
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// IsOnline reports whether the user currently has a registered connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// OnlineUserIDs returns the ids of all registered users, ascending.
func (h *Hub) OnlineUserIDs() []uint {
	h.mu.RLock()
	ids := make([]uint, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Push delivers an event to the user's connection if one is registered.
// Returns false when the user is offline or the send buffer is full; the
// caller decides whether that matters.
func (h *Hub) Push(userID uint, event string, data interface{}) bool {
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("realtime: marshal %s: %v", event, err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[userID]
	if !ok || c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// RoomParticipants splits a room id of the form "<a>_<b>" (the two
// participant ids sorted and joined) into its user ids.
func RoomParticipants(roomID string) (uint, uint, error) {
	parts := strings.SplitN(roomID, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed room id %q", roomID)
	}
	a, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed room id %q", roomID)
	}
	b, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed room id %q", roomID)
	}
	return uint(a), uint(b), nil
}

// JoinRoom admits the client to a room's broadcast group. Only an identified
// participant of the room may join.
func (h *Hub) JoinRoom(c *Client, roomID string) error {
	a, b, err := RoomParticipants(roomID)
	if err != nil {
		return err
	}
	if c.userID == 0 || (c.userID != a && c.userID != b) {
		return fmt.Errorf("user %d is not a participant of room %s", c.userID, roomID)
	}

	h.mu.Lock()
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[roomID] = members
	}
	members[c] = struct{}{}
	h.mu.Unlock()

	h.broadcastToRoom(roomID, EventUserJoined, UserJoinedPayload{UserID: c.userID})
	return nil
}

// handleChat validates, persists and relays one chat message. Invalid
// payloads and persistence failures are logged and dropped; the sender gets
// no error event back.
func (h *Hub) handleChat(payload ChatPayload) {
	if payload.RoomID == "" || payload.SenderID == 0 || payload.Message == "" {
		log.Printf("realtime: dropping chat message with missing fields (room=%q sender=%d)", payload.RoomID, payload.SenderID)
		return
	}

	message := &models.ChatMessage{
		SenderID: payload.SenderID,
		RoomID:   payload.RoomID,
		Message:  payload.Message,
	}
	if err := h.messages.CreateMessage(message); err != nil {
		log.Printf("realtime: persisting chat message for room %s failed: %v", payload.RoomID, err)
		return
	}

	h.broadcastToRoom(payload.RoomID, EventChatMessage, message)
}

// broadcastToRoom sends the event to every connection in the room, the
// sender's included. Slow consumers are skipped rather than awaited.
func (h *Hub) broadcastToRoom(roomID, event string, data interface{}) {
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("realtime: marshal %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		if c.closed {
			continue
		}
		select {
		case c.send <- frame:
		default:
		}
	}
}

// broadcastOnline pushes the full online user list to every connection.
func (h *Hub) broadcastOnline() {
	frame, err := json.Marshal(Envelope{Event: EventGetOnlineUsers, Data: h.OnlineUserIDs()})
	if err != nil {
		log.Printf("realtime: marshal %s: %v", EventGetOnlineUsers, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.closed {
			continue
		}
		select {
		case c.send <- frame:
		default:
		}
	}
}

// ServeWS upgrades the request to a websocket connection. The optional
// userId query parameter identifies the connecting user; without it the
// connection is served but never marked online.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	var userID uint
	if raw := r.URL.Query().Get("userId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			userID = uint(id)
		} else {
			log.Printf("realtime: ignoring malformed userId %q", raw)
		}
	}

	c := newClient(userID, conn)
	h.Register(c)
	log.Printf("realtime: connection opened (user=%d)", userID)

	go c.writePump()
	h.readPump(c)
}

func (h *Hub) readPump(c *Client) {
	defer func() {
		h.Unregister(c)
		log.Printf("realtime: connection closed (user=%d)", c.userID)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("realtime: discarding malformed frame from user %d: %v", c.userID, err)
			continue
		}

		switch msg.Event {
		case EventJoinRoom:
			var payload JoinRoomPayload
			if err := json.Unmarshal(msg.Data, &payload); err != nil {
				log.Printf("realtime: bad joinRoom payload from user %d: %v", c.userID, err)
				continue
			}
			if err := h.JoinRoom(c, payload.RoomID); err != nil {
				log.Printf("realtime: joinRoom rejected: %v", err)
			}
		case EventChatMessage:
			var payload ChatPayload
			if err := json.Unmarshal(msg.Data, &payload); err != nil {
				log.Printf("realtime: bad chatMessage payload from user %d: %v", c.userID, err)
				continue
			}
			h.handleChat(payload)
		default:
			log.Printf("realtime: unknown event %q from user %d", msg.Event, c.userID)
		}
	}
}
