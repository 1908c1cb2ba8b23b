package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soykat/vibely/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/targets/:target_type/:target_id/like", h.ToggleLike)
	g.GET("/targets/:target_type/:target_id/likes", h.GetLikers)
}

// ToggleLike likes the target if the caller has not liked it, unlikes it
// otherwise. There are no separate like/unlike endpoints.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetType, targetID, httpErr := parseTargetParams(c)
	if httpErr != nil {
		return httpErr
	}

	liked, count, err := h.likeService.ToggleLike(c.Request().Context(), currentUserID, targetID, targetType)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"targetId":   targetID,
		"targetType": targetType,
		"liked":      liked,
		"likesCount": count,
	})
}

// GetLikers returns the users who like the target, with the total count
func (h *LikeHandler) GetLikers(c echo.Context) error {
	targetType, targetID, httpErr := parseTargetParams(c)
	if httpErr != nil {
		return httpErr
	}

	likers, count, err := h.likeService.ListLikers(c.Request().Context(), targetID, targetType)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"targetId":   targetID,
		"targetType": targetType,
		"likers":     likers,
		"likesCount": count,
	})
}
