package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/auth"
	"timekeep/internal/domain/script"
	apperrors "timekeep/pkg/errors"
	"timekeep/pkg/validator"
)

type ScriptHandler struct {
	scriptRepo  ScriptRepository
	auditLogger AuditLogger
}

func NewScriptHandler(scriptRepo ScriptRepository, auditLogger AuditLogger) *ScriptHandler {
	return &ScriptHandler{
		scriptRepo:  scriptRepo,
		auditLogger: auditLogger,
	}
}

// canTouchScript: public scripts are managed by admins, private ones by
// their owner or an admin.
func canTouchScript(identity auth.Identity, s *script.Script) error {
	if identity.IsAdmin {
		return nil
	}
	if s.OwnerID != nil && *s.OwnerID == identity.UserID {
		return nil
	}
	return apperrors.Forbidden("forbidden")
}

func applyScriptDefaults(req *CreateScriptRequest) {
	if req.FontSize <= 0 {
		req.FontSize = script.DefaultFontSize
	}
	if req.FgColor == "" {
		req.FgColor = script.DefaultFgColor
	}
	if req.BgColor == "" {
		req.BgColor = script.DefaultBgColor
	}
	if req.ScrollSpeed <= 0 {
		req.ScrollSpeed = script.DefaultScrollSpeed
	}
}

type CreateScriptRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	FontSize    int    `json:"font_size"`
	FgColor     string `json:"fg_color"`
	BgColor     string `json:"bg_color"`
	ScrollSpeed int    `json:"scroll_speed"`
	SortOrder   int    `json:"sort_order"`
	IsPublic    bool   `json:"is_public"`
}

func (h *ScriptHandler) CreateScript(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgCreateScriptFail)
	}

	var req CreateScriptRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := validator.Name(kindScript, req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	applyScriptDefaults(&req)

	// Only admins publish shared scripts; anyone else asking for public
	// quietly gets a personal one.
	var ownerID *uuid.UUID
	if !req.IsPublic || !identity.IsAdmin {
		owner := identity.UserID
		ownerID = &owner
	}

	created, err := h.scriptRepo.Create(c.Request().Context(), script.CreateScriptInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Content:     req.Content,
		FontSize:    req.FontSize,
		FgColor:     req.FgColor,
		BgColor:     req.BgColor,
		ScrollSpeed: req.ScrollSpeed,
		SortOrder:   req.SortOrder,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeScript, nil, audit.ActionCreate, err)
		return respondAppError(c, err, msgCreateScriptFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeScript, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, created)
}

func (h *ScriptHandler) ListScripts(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgListScriptsFail)
	}

	scripts, err := h.scriptRepo.ListVisible(c.Request().Context(), identity.UserID, identity.IsAdmin)
	if err != nil {
		return respondAppError(c, err, msgListScriptsFail)
	}

	return c.JSON(http.StatusOK, scripts)
}

func (h *ScriptHandler) GetScript(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgListScriptsFail)
	}

	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	s, err := h.scriptRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgListScriptsFail)
	}

	// Private scripts stay private.
	if s.OwnerID != nil && *s.OwnerID != identity.UserID && !identity.IsAdmin {
		return respondError(c, http.StatusNotFound, "script not found")
	}

	return c.JSON(http.StatusOK, s)
}

type UpdateScriptRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	FontSize    *int    `json:"font_size"`
	FgColor     *string `json:"fg_color"`
	BgColor     *string `json:"bg_color"`
	ScrollSpeed *int    `json:"scroll_speed"`
	SortOrder   *int    `json:"sort_order"`
}

func (h *ScriptHandler) UpdateScript(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgUpdateScriptFail)
	}

	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateScriptRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	current, err := h.scriptRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdateScriptFail)
	}

	if err := canTouchScript(identity, current); err != nil {
		return respondAppError(c, err, msgUpdateScriptFail)
	}

	merged := script.UpdateScriptInput{
		OwnerID:     current.OwnerID,
		Title:       current.Title,
		Content:     current.Content,
		FontSize:    current.FontSize,
		FgColor:     current.FgColor,
		BgColor:     current.BgColor,
		ScrollSpeed: current.ScrollSpeed,
		SortOrder:   current.SortOrder,
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if err := validator.Name(kindScript, trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		merged.Title = trimmed
	}
	if req.Content != nil {
		merged.Content = *req.Content
	}
	if req.FontSize != nil && *req.FontSize > 0 {
		merged.FontSize = *req.FontSize
	}
	if req.FgColor != nil && *req.FgColor != "" {
		merged.FgColor = *req.FgColor
	}
	if req.BgColor != nil && *req.BgColor != "" {
		merged.BgColor = *req.BgColor
	}
	if req.ScrollSpeed != nil && *req.ScrollSpeed > 0 {
		merged.ScrollSpeed = *req.ScrollSpeed
	}
	if req.SortOrder != nil {
		merged.SortOrder = *req.SortOrder
	}

	if err := h.scriptRepo.Update(c.Request().Context(), id, merged); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeScript, &id, audit.ActionUpdate, err)
		return respondAppError(c, err, msgUpdateScriptFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeScript, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	updated, err := h.scriptRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdateScriptFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *ScriptHandler) DeleteScript(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgDeleteScriptFail)
	}

	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	current, err := h.scriptRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgDeleteScriptFail)
	}

	if err := canTouchScript(identity, current); err != nil {
		return respondAppError(c, err, msgDeleteScriptFail)
	}

	if err := h.scriptRepo.Deactivate(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeScript, &id, audit.ActionDelete, err)
		return respondAppError(c, err, msgDeleteScriptFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeScript, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return c.NoContent(http.StatusNoContent)
}
