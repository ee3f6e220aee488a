package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusops/api/internal/core/domain"
	"github.com/campusops/api/internal/core/schema"
	"github.com/campusops/api/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Field-level problems from the entity schemas.
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	// Input problems raised by the AI services.
	if service.IsValidationError(err) {
		return http.StatusBadRequest, err.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrClubNotFound):
		return http.StatusNotFound, "club not found"
	case errors.Is(err, domain.ErrClubExists):
		return http.StatusConflict, "club already exists"
	case errors.Is(err, domain.ErrUnknownTab):
		return http.StatusBadRequest, "unknown tab"
	case errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "member with this email already exists"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "document not found"
	case errors.Is(err, domain.ErrNoFeedback):
		return http.StatusBadRequest, "no feedback data found in CSV"
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		return http.StatusServiceUnavailable, "AI service is not available"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
