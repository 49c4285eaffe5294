package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondError writes the uniform {"error": ...} envelope every failure
// path in this package uses.
func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}

// handleHTTPError flattens an *echo.HTTPError (as produced by
// bindStrictJSON) into the error envelope; anything else is masked as a
// generic 500.
func handleHTTPError(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		return respondError(c, he.Code, msg)
	}

	return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
