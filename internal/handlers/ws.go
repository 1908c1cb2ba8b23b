package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/soykat/vibely/backend/internal/realtime"
)

// WSHandler bridges Echo routing to the realtime hub.
type WSHandler struct {
	hub *realtime.Hub
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// RegisterWSRoutes registers the websocket endpoint
func (h *WSHandler) RegisterWSRoutes(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// Serve upgrades the request and hands it to the hub
func (h *WSHandler) Serve(c echo.Context) error {
	h.hub.ServeWS(c.Response(), c.Request())
	return nil
}
