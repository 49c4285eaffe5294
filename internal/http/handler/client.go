package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/domain/client"
	"timekeep/pkg/validator"
)

type ClientHandler struct {
	clientRepo  ClientRepository
	auditLogger AuditLogger
}

func NewClientHandler(clientRepo ClientRepository, auditLogger AuditLogger) *ClientHandler {
	return &ClientHandler{
		clientRepo:  clientRepo,
		auditLogger: auditLogger,
	}
}

type CreateClientRequest struct {
	Name string `json:"name"`
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req CreateClientRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(kindClient, req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.clientRepo.Create(c.Request().Context(), client.CreateClientInput{Name: req.Name})
	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeClient, nil, audit.ActionCreate, err)
		return respondAppError(c, err, msgCreateClientFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeClient, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, created)
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	clients, err := h.clientRepo.List(c.Request().Context())
	if err != nil {
		return respondAppError(c, err, msgListClientsFail)
	}

	return c.JSON(http.StatusOK, clients)
}

type UpdateClientRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateClientRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.Name(kindClient, trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Name = &trimmed
	}

	err = h.clientRepo.Update(c.Request().Context(), id, client.UpdateClientInput{
		Name:   req.Name,
		Active: req.Active,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeClient, &id, audit.ActionUpdate, err)
		return respondAppError(c, err, msgUpdateClientFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeClient, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	updated, err := h.clientRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdateClientFail)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteClient soft-deletes: historical entries keep pointing at the row.
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.clientRepo.Deactivate(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeClient, &id, audit.ActionDelete, err)
		return respondAppError(c, err, msgUpdateClientFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeClient, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return c.NoContent(http.StatusNoContent)
}
