package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Parser bound kept aligned with the server-level body limit.
const maxStrictBodyBytes int64 = 1 << 20

// bindStrictJSON decodes a JSON request body into dst, rejecting wrong
// content types, unknown fields, and trailing values. Every mutating
// endpoint binds through here so a typoed field fails loudly instead of
// silently dropping data.
func bindStrictJSON(c echo.Context, dst any) error {
	contentType := strings.ToLower(c.Request().Header.Get(echo.HeaderContentType))
	if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	decoder := json.NewDecoder(io.LimitReader(c.Request().Body, maxStrictBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	// A body must hold exactly one JSON value.
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}
