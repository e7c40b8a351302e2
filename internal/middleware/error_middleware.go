package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/pkg/apperrors"
	"github.com/hackmap/hackmap/internal/pkg/logger"
)

// HandleAPIError translates an application error into an HTTP status and a
// {"message": ...} body. Unrecognized errors become a 500 with a generic
// message; the detail is logged, never returned.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Server error"

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrNotificationResponded):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrTeamFull):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		status = http.StatusConflict
	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled error")
	}

	c.JSON(status, gin.H{"message": message})
}
