package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository repositories.StoryRepository
	userRepository  repositories.UserRepository
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, userRepo repositories.UserRepository) *StoryHandler {
	return &StoryHandler{storyRepository: storyRepo, userRepository: userRepo}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories", h.CreateStory)
}

// StoryResponse is the enriched story response
type StoryResponse struct {
	models.Story
	Author models.UserCompact `json:"author"`
}

// GetStories returns active stories, newest first
func (h *StoryHandler) GetStories(c echo.Context) error {
	stories, err := h.storyRepository.GetActiveStories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	authorIDs := make([]uint, 0, len(stories))
	seen := make(map[uint]bool)
	for _, s := range stories {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			authorIDs = append(authorIDs, s.UserID)
		}
	}
	users, err := h.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	byID := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		byID[u.ID] = u.ToCompact()
	}

	responses := make([]StoryResponse, len(stories))
	for i, s := range stories {
		responses[i] = StoryResponse{Story: s, Author: byID[s.UserID]}
	}

	return c.JSON(http.StatusOK, responses)
}

// GetStory retrieves a single story by ID
func (h *StoryHandler) GetStory(c echo.Context) error {
	story, err := h.storyRepository.GetStoryByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	author, err := h.userRepository.GetUserByID(story.UserID)
	if err != nil {
		return c.JSON(http.StatusOK, StoryResponse{Story: *story})
	}
	return c.JSON(http.StatusOK, StoryResponse{Story: *story, Author: author.ToCompact()})
}

// CreateStory creates a story with a single item; it expires after 24 hours
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	duration := req.Duration
	if duration == 0 {
		duration = 5
	}
	story := &models.Story{
		UserID: currentUserID,
		Items: []models.StoryItem{{
			ID:        uuid.NewString(),
			Type:      req.Type,
			URL:       req.MediaURL,
			Duration:  duration,
			CreatedAt: time.Now(),
		}},
	}
	if err := h.storyRepository.CreateStory(c.Request().Context(), story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, story)
}
