package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
)

// Query results are paged; the cap keeps an unbounded request from
// dragging the whole table over the wire.
const maxAuditPageSize = 500

type AuditHandler struct {
	events AuditQuerier
}

func NewAuditHandler(events AuditQuerier) *AuditHandler {
	return &AuditHandler{events: events}
}

// ListEvents returns the audit trail, newest first, filtered by the query
// params. Admin-only.
func (h *AuditHandler) ListEvents(c echo.Context) error {
	var filter audit.QueryFilter

	if raw := c.QueryParam(queryParamActorID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidUserID)
		}
		filter.ActorID = &parsed
	}
	if raw := c.QueryParam(queryParamResourceType); raw != "" {
		rt := audit.ResourceType(raw)
		filter.ResourceType = &rt
	}
	if raw := c.QueryParam(queryParamAction); raw != "" {
		action := audit.Action(raw)
		filter.Action = &action
	}
	if raw := c.QueryParam(queryParamStatus); raw != "" {
		status := audit.Status(raw)
		filter.Status = &status
	}
	if raw := c.QueryParam(queryParamSince); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidTimestamp)
		}
		filter.StartTime = &since
	}
	if raw := c.QueryParam(queryParamLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return respondError(c, http.StatusBadRequest, msgInvalidLimit)
		}
		if limit > maxAuditPageSize {
			limit = maxAuditPageSize
		}
		filter.Limit = limit
	}
	if raw := c.QueryParam(queryParamOffset); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return respondError(c, http.StatusBadRequest, msgInvalidOffset)
		}
		filter.Offset = offset
	}

	events, err := h.events.Query(c.Request().Context(), filter)
	if err != nil {
		return respondAppError(c, err, msgListAuditFail)
	}

	return c.JSON(http.StatusOK, events)
}
