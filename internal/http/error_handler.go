package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "timekeep/pkg/errors"
)

// customHTTPErrorHandler is the last line of defense: handlers normally
// write their own responses, so this only sees errors that escaped (echo
// routing errors, panics surfaced by Recover, stray sentinel errors).
func customHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)

	var he *echo.HTTPError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &he):
		status = he.Code
		if msg, ok := he.Message.(string); ok && msg != "" {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	case errors.As(err, &appErr):
		status = statusForSentinel(err)
		message = appErr.Message
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		status = statusForSentinel(err)
		message = http.StatusText(status)
	default:
		c.Logger().Errorf("unhandled error: %v", err)
	}

	if writeErr := c.JSON(status, map[string]string{"error": message}); writeErr != nil {
		c.Logger().Errorf("failed to write error response: %v", writeErr)
	}
}

func statusForSentinel(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
