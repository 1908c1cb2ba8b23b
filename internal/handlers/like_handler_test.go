package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
	"github.com/soykat/vibely/backend/internal/services"
)

// staticContentStore serves a fixed set of targets; counters are discarded.
type staticContentStore struct {
	owners map[string]uint
}

func (s *staticContentStore) GetOwner(_ context.Context, id string) (uint, error) {
	owner, ok := s.owners[id]
	if !ok {
		return 0, repositories.ErrContentNotFound
	}
	return owner, nil
}

func (s *staticContentStore) IncrementLikes(context.Context, string, int) error { return nil }

func (s *staticContentStore) IncrementComments(context.Context, string, int) error { return nil }

func newLikeHandlerFixture(t *testing.T) *LikeHandler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Like{}))

	registry := repositories.NewContentRegistry()
	registry.Register(models.TargetPost, &staticContentStore{owners: map[string]uint{"p1": 2}})
	svc := services.NewLikeService(
		repositories.NewPostgresLikeRepository(db),
		registry,
		repositories.NewPostgresUserRepository(db),
	)
	return NewLikeHandler(svc)
}

func invokeToggle(t *testing.T, h *LikeHandler, userID uint, targetType, targetID string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("target_type", "target_id")
	c.SetParamValues(targetType, targetID)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return rec, h.ToggleLike(c)
}

func TestToggleLikeEndpoint(t *testing.T) {
	h := newLikeHandlerFixture(t)

	rec, err := invokeToggle(t, h, 1, "Post", "p1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likesCount"])
	assert.Equal(t, "p1", body["targetId"])

	// second press releases the like
	rec, err = invokeToggle(t, h, 1, "Post", "p1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likesCount"])
}

func TestToggleLikeEndpointErrors(t *testing.T) {
	h := newLikeHandlerFixture(t)

	_, err := invokeToggle(t, h, 0, "Post", "p1")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	_, err = invokeToggle(t, h, 1, "Post", "ghost")
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	_, err = invokeToggle(t, h, 1, "Reel", "r1")
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
