package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
	"github.com/soykat/vibely/backend/internal/services"
)

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrEmptyContent, http.StatusBadRequest},
		{services.ErrSelfFollow, http.StatusBadRequest},
		{services.ErrAlreadyFollowing, http.StatusConflict},
		{repositories.ErrUnregisteredType, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, serviceError(tc.err).Code, "error %v", tc.err)
	}
}

func TestParseTargetParams(t *testing.T) {
	e := echo.New()

	newCtx := func(targetType, targetID string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("target_type", "target_id")
		c.SetParamValues(targetType, targetID)
		return c
	}

	parsedType, parsedID, httpErr := parseTargetParams(newCtx("Post", "abc123"))
	require.Nil(t, httpErr)
	assert.Equal(t, models.TargetPost, parsedType)
	assert.Equal(t, "abc123", parsedID)

	_, _, httpErr = parseTargetParams(newCtx("Photo", "abc123"))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	_, _, httpErr = parseTargetParams(newCtx("Post", ""))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetUserIDFromContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Zero(t, getUserIDFromContext(c))

	c.Set("user", &models.JwtCustomClaims{UserID: 42})
	assert.Equal(t, uint(42), getUserIDFromContext(c))
}
