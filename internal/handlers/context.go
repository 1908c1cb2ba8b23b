package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soykat/vibely/backend/internal/models"
	"github.com/soykat/vibely/backend/internal/repositories"
	"github.com/soykat/vibely/backend/internal/services"
)

// getUserIDFromContext extracts the authenticated user id set by the JWT
// middleware. Returns 0 when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// serviceError maps service-layer sentinel errors onto HTTP errors.
func serviceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrSelfFollow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrAlreadyFollowing):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, repositories.ErrUnregisteredType):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// parseTargetParams reads the (target_type, target_id) pair from the route.
func parseTargetParams(c echo.Context) (models.TargetType, string, *echo.HTTPError) {
	targetType, err := models.ParseTargetType(c.Param("target_type"))
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	targetID := c.Param("target_id")
	if targetID == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "Target ID is required")
	}
	return targetType, targetID, nil
}
