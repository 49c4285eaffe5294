package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/domain/link"
	"timekeep/pkg/validator"
)

type LinkHandler struct {
	linkRepo    LinkRepository
	auditLogger AuditLogger
}

func NewLinkHandler(linkRepo LinkRepository, auditLogger AuditLogger) *LinkHandler {
	return &LinkHandler{
		linkRepo:    linkRepo,
		auditLogger: auditLogger,
	}
}

type CreateLinkRequest struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order"`
}

func (h *LinkHandler) CreateLink(c echo.Context) error {
	var req CreateLinkRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Title = strings.TrimSpace(req.Title)
	req.URL = strings.TrimSpace(req.URL)

	if err := validator.Name(kindLink, req.Title); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.URL == "" {
		return respondError(c, http.StatusBadRequest, msgURLRequired)
	}

	created, err := h.linkRepo.Create(c.Request().Context(), link.CreateLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeLink, nil, audit.ActionCreate, err)
		return respondAppError(c, err, msgCreateLinkFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeLink, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, created)
}

func (h *LinkHandler) ListLinks(c echo.Context) error {
	links, err := h.linkRepo.List(c.Request().Context())
	if err != nil {
		return respondAppError(c, err, msgListLinksFail)
	}

	return c.JSON(http.StatusOK, links)
}

type UpdateLinkRequest struct {
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

func (h *LinkHandler) UpdateLink(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateLinkRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if err := validator.Name(kindLink, trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Title = &trimmed
	}
	if req.URL != nil {
		trimmed := strings.TrimSpace(*req.URL)
		if trimmed == "" {
			return respondError(c, http.StatusBadRequest, msgURLRequired)
		}
		req.URL = &trimmed
	}

	err = h.linkRepo.Update(c.Request().Context(), id, link.UpdateLinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeLink, &id, audit.ActionUpdate, err)
		return respondAppError(c, err, msgUpdateLinkFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeLink, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	updated, err := h.linkRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdateLinkFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *LinkHandler) DeleteLink(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.linkRepo.Delete(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeLink, &id, audit.ActionDelete, err)
		return respondAppError(c, err, msgDeleteLinkFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeLink, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return c.NoContent(http.StatusNoContent)
}
