package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "timekeep/pkg/errors"
)

// respondAppError maps domain errors onto HTTP responses. AppError messages
// are written for clients; anything unrecognized collapses to a generic 500
// so internal details never leak.
func respondAppError(c echo.Context, err error, fallback string) error {
	var appErr *apperrors.AppError
	message := fallback
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return respondError(c, http.StatusNotFound, message)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return respondError(c, http.StatusUnauthorized, message)
	case errors.Is(err, apperrors.ErrUnauthorized):
		return respondError(c, http.StatusUnauthorized, message)
	case errors.Is(err, apperrors.ErrForbidden):
		return respondError(c, http.StatusForbidden, message)
	case errors.Is(err, apperrors.ErrConflict):
		return respondError(c, http.StatusConflict, message)
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		return respondError(c, http.StatusBadRequest, message)
	default:
		c.Logger().Errorf("unhandled error: %v", err)
		return respondError(c, http.StatusInternalServerError, fallback)
	}
}
