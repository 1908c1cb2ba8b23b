package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/targets/:target_type/:target_id/comments", h.CreateComment)
	g.GET("/targets/:target_type/:target_id/comments", h.GetComments)
	g.POST("/comments/:id/replies", h.CreateReply)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a top-level comment on a target
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetType, targetID, httpErr := parseTargetParams(c)
	if httpErr != nil {
		return httpErr
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, count, err := h.commentService.AddComment(c.Request().Context(), currentUserID, targetID, targetType, req.Content)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"comment":       comment,
		"commentsCount": count,
	})
}

// CreateReply creates a reply under an existing comment
func (h *CommentHandler) CreateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	parentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, count, err := h.commentService.AddReply(c.Request().Context(), currentUserID, uint(parentID), req.Content)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"comment":       reply,
		"commentsCount": count,
	})
}

// DeleteComment deletes a comment and its full reply subtree
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	count, err := h.commentService.DeleteComment(c.Request().Context(), currentUserID, uint(commentID))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"commentsCount": count})
}

// GetComments returns the target's top-level comments with their direct
// replies, plus the total count across all nesting levels
func (h *CommentHandler) GetComments(c echo.Context) error {
	targetType, targetID, httpErr := parseTargetParams(c)
	if httpErr != nil {
		return httpErr
	}

	threads, count, err := h.commentService.ListComments(c.Request().Context(), targetID, targetType)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments":      threads,
		"commentsCount": count,
	})
}
