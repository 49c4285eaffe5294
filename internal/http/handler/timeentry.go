package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/auth"
	"timekeep/internal/domain/timeentry"
	"timekeep/internal/timesheet"
	"timekeep/pkg/validator"
)

type TimeEntryHandler struct {
	entryRepo   TimeEntryRepository
	clientRepo  ClientGetter
	projectRepo ProjectGetter
	userRepo    UserGetter
	auditLogger AuditLogger
}

func NewTimeEntryHandler(
	entryRepo TimeEntryRepository,
	clientRepo ClientGetter,
	projectRepo ProjectGetter,
	userRepo UserGetter,
	auditLogger AuditLogger,
) *TimeEntryHandler {
	return &TimeEntryHandler{
		entryRepo:   entryRepo,
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		auditLogger: auditLogger,
	}
}

type CreateTimeEntryRequest struct {
	UserID     *uuid.UUID `json:"user_id"`
	ClientID   uuid.UUID  `json:"client_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
	EntryDate  string     `json:"entry_date"`
	StartTime  *string    `json:"start_time"`
	StopTime   *string    `json:"stop_time"`
	SalesCount *int       `json:"sales_count"`
	Notes      string     `json:"notes"`
}

// normalizeTime trims a wall-clock field and collapses empty to nil, so
// "" and absent both mean "not set".
func normalizeTime(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil, nil
	}
	if err := validator.TimeOfDay(trimmed); err != nil {
		return nil, err
	}
	return &trimmed, nil
}

// checkReferences validates the client/project pair: client active, project
// belonging to that client. Returns an error response if written.
func (h *TimeEntryHandler) checkReferences(c echo.Context, clientID uuid.UUID, projectID *uuid.UUID) error {
	if clientID == uuid.Nil {
		return respondError(c, http.StatusBadRequest, msgInvalidClientID)
	}

	cl, err := h.clientRepo.GetByID(c.Request().Context(), clientID)
	if err != nil {
		return respondAppError(c, err, msgCreateEntryFail)
	}
	if !cl.Active {
		return respondError(c, http.StatusBadRequest, msgClientInactive)
	}

	if projectID != nil {
		proj, err := h.projectRepo.GetByID(c.Request().Context(), *projectID)
		if err != nil {
			return respondAppError(c, err, msgCreateEntryFail)
		}
		if proj.ClientID != clientID {
			return respondError(c, http.StatusBadRequest, msgProjectClientMismatch)
		}
	}

	return nil
}

func (h *TimeEntryHandler) CreateEntry(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgCreateEntryFail)
	}

	var req CreateTimeEntryRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	targetUserID, err := auth.ResolveTargetUser(identity, req.UserID)
	if err != nil {
		return respondAppError(c, err, msgCreateEntryFail)
	}

	// Admins logging time on behalf of someone else may only target active
	// accounts.
	if targetUserID != identity.UserID {
		target, err := h.userRepo.GetByID(c.Request().Context(), targetUserID)
		if err != nil {
			return respondAppError(c, err, msgCreateEntryFail)
		}
		if !target.Active {
			return respondError(c, http.StatusBadRequest, msgTargetUserInactive)
		}
	}

	if err := validator.Date(req.EntryDate); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	start, err := normalizeTime(req.StartTime)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	stop, err := normalizeTime(req.StopTime)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.checkReferences(c, req.ClientID, req.ProjectID); err != nil {
		return err
	}

	duration, err := timesheet.ComputeDuration(start, stop)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.entryRepo.Create(c.Request().Context(), timeentry.CreateTimeEntryInput{
		UserID:        targetUserID,
		ClientID:      req.ClientID,
		ProjectID:     req.ProjectID,
		EntryDate:     req.EntryDate,
		StartTime:     start,
		StopTime:      stop,
		SalesCount:    req.SalesCount,
		DurationHours: duration,
		Notes:         strings.TrimSpace(req.Notes),
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeTimeEntry, nil, audit.ActionCreate, err)
		return respondAppError(c, err, msgCreateEntryFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeTimeEntry, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, created)
}

// scopedUserID picks whose entries a read-only query covers. Admins may
// select any user via ?user_id; everyone else is silently scoped to
// themselves, the param ignored.
func scopedUserID(c echo.Context, identity auth.Identity) (uuid.UUID, error) {
	if !identity.IsAdmin {
		return identity.UserID, nil
	}

	raw := c.QueryParam(queryParamUserID)
	if raw == "" {
		return identity.UserID, nil
	}

	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, msgInvalidUserID)
	}
	return parsed, nil
}

// ListEntries is the day-view query: the caller's (or, for admins, any
// user's) entries, optionally narrowed to one date.
func (h *TimeEntryHandler) ListEntries(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgListEntriesFail)
	}

	targetUserID, err := scopedUserID(c, identity)
	if err != nil {
		return handleHTTPError(c, err)
	}

	var date *string
	if raw := c.QueryParam(queryParamDate); raw != "" {
		if err := validator.Date(raw); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		date = &raw
	}

	entries, err := h.entryRepo.ListForDay(c.Request().Context(), targetUserID, date)
	if err != nil {
		return respondAppError(c, err, msgListEntriesFail)
	}

	if entries == nil {
		entries = []timeentry.TimeEntry{}
	}

	return c.JSON(http.StatusOK, entries)
}

// History returns the rolling 30-day per-date totals for the sidebar.
func (h *TimeEntryHandler) History(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgHistoryFail)
	}

	targetUserID, err := scopedUserID(c, identity)
	if err != nil {
		return handleHTTPError(c, err)
	}

	totals, err := h.entryRepo.History(c.Request().Context(), targetUserID)
	if err != nil {
		return respondAppError(c, err, msgHistoryFail)
	}

	if totals == nil {
		totals = []timeentry.DayTotal{}
	}

	return c.JSON(http.StatusOK, totals)
}

type UpdateTimeEntryRequest struct {
	ClientID   *uuid.UUID `json:"client_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
	EntryDate  *string    `json:"entry_date"`
	StartTime  *string    `json:"start_time"`
	StopTime   *string    `json:"stop_time"`
	SalesCount *int       `json:"sales_count"`
	Notes      *string    `json:"notes"`
	ClearStop  bool       `json:"clear_stop"`
}

// UpdateEntry merges the request over the stored entry, recomputes the
// duration from the merged endpoints, and persists the full state. Sending
// clear_stop=true (or an explicit empty stop_time) reopens the entry, which
// clears the duration as well.
func (h *TimeEntryHandler) UpdateEntry(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgUpdateEntryFail)
	}

	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateTimeEntryRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	current, err := h.entryRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdateEntryFail)
	}

	if err := auth.CanTouchEntry(identity, current.UserID); err != nil {
		return respondAppError(c, err, msgUpdateEntryFail)
	}

	merged := timeentry.UpdateTimeEntryInput{
		ClientID:   current.ClientID,
		ProjectID:  current.ProjectID,
		EntryDate:  current.EntryDate,
		StartTime:  current.StartTime,
		StopTime:   current.StopTime,
		SalesCount: current.SalesCount,
		Notes:      current.Notes,
	}

	if req.ClientID != nil {
		merged.ClientID = *req.ClientID
		// A client change invalidates the old project unless re-sent.
		if req.ProjectID == nil {
			merged.ProjectID = nil
		}
	}
	if req.ProjectID != nil {
		merged.ProjectID = req.ProjectID
	}
	if req.EntryDate != nil {
		if err := validator.Date(*req.EntryDate); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		merged.EntryDate = *req.EntryDate
	}
	if req.StartTime != nil {
		start, err := normalizeTime(req.StartTime)
		if err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		merged.StartTime = start
	}
	if req.StopTime != nil {
		stop, err := normalizeTime(req.StopTime)
		if err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		merged.StopTime = stop
	}
	if req.ClearStop {
		merged.StopTime = nil
	}
	if req.SalesCount != nil {
		merged.SalesCount = req.SalesCount
	}
	if req.Notes != nil {
		trimmed := strings.TrimSpace(*req.Notes)
		merged.Notes = trimmed
	}

	if err := h.checkReferences(c, merged.ClientID, merged.ProjectID); err != nil {
		return err
	}

	duration, err := timesheet.ComputeDuration(merged.StartTime, merged.StopTime)
	if err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	merged.DurationHours = duration

	if err := h.entryRepo.Update(c.Request().Context(), id, merged); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeTimeEntry, &id, audit.ActionUpdate, err)
		return respondAppError(c, err, msgUpdateEntryFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeTimeEntry, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	updated, err := h.entryRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdateEntryFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *TimeEntryHandler) DeleteEntry(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgDeleteEntryFail)
	}

	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	current, err := h.entryRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgDeleteEntryFail)
	}

	if err := auth.CanTouchEntry(identity, current.UserID); err != nil {
		return respondAppError(c, err, msgDeleteEntryFail)
	}

	if err := h.entryRepo.Delete(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeTimeEntry, &id, audit.ActionDelete, err)
		return respondAppError(c, err, msgDeleteEntryFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeTimeEntry, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return c.NoContent(http.StatusNoContent)
}

type PurgeRequest struct {
	Confirm   string     `json:"confirm"`
	UserID    *uuid.UUID `json:"user_id"`
	StartDate *string    `json:"start_date"`
	EndDate   *string    `json:"end_date"`
}

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

// PurgeEntries bulk hard-deletes entries. Admin-only, and the request must
// carry the literal confirmation phrase; an unscoped purge wipes the table.
func (h *TimeEntryHandler) PurgeEntries(c echo.Context) error {
	var req PurgeRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Confirm != purgeConfirmPhrase {
		return respondError(c, http.StatusBadRequest, msgPurgeConfirmRequired)
	}

	for _, d := range []*string{req.StartDate, req.EndDate} {
		if d != nil {
			if err := validator.Date(*d); err != nil {
				return respondError(c, http.StatusBadRequest, err.Error())
			}
		}
	}

	deleted, err := h.entryRepo.Purge(c.Request().Context(), timeentry.PurgeFilter{
		UserID:    req.UserID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeTimeEntry, nil, audit.ActionPurge, err)
		return respondAppError(c, err, msgPurgeFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeTimeEntry, nil, audit.ActionPurge, audit.StatusSuccess, map[string]any{
		"deleted": deleted,
	})

	return c.JSON(http.StatusOK, PurgeResponse{Deleted: deleted})
}
