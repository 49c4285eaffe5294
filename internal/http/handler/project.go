package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/domain/project"
	"timekeep/pkg/validator"
)

type ProjectHandler struct {
	projectRepo ProjectRepository
	clientRepo  ClientGetter
	auditLogger AuditLogger
}

func NewProjectHandler(projectRepo ProjectRepository, clientRepo ClientGetter, auditLogger AuditLogger) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		auditLogger: auditLogger,
	}
}

type CreateProjectRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Name(kindProject, req.Name); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.ClientID == uuid.Nil {
		return respondError(c, http.StatusBadRequest, msgInvalidClientID)
	}

	// The parent client must exist and be active.
	parent, err := h.clientRepo.GetByID(c.Request().Context(), req.ClientID)
	if err != nil {
		return respondAppError(c, err, msgCreateProjectFail)
	}
	if !parent.Active {
		return respondError(c, http.StatusBadRequest, msgClientInactive)
	}

	created, err := h.projectRepo.Create(c.Request().Context(), project.CreateProjectInput{
		ClientID: req.ClientID,
		Name:     req.Name,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeProject, nil, audit.ActionCreate, err)
		return respondAppError(c, err, msgCreateProjectFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeProject, &created.ID, audit.ActionCreate, audit.StatusSuccess, nil)

	return c.JSON(http.StatusCreated, created)
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	var clientID *uuid.UUID
	if raw := c.QueryParam(queryParamClientID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, http.StatusBadRequest, msgInvalidClientID)
		}
		clientID = &parsed
	}

	projects, err := h.projectRepo.List(c.Request().Context(), clientID)
	if err != nil {
		return respondAppError(c, err, msgListProjectsFail)
	}

	return c.JSON(http.StatusOK, projects)
}

type UpdateProjectRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.Name(kindProject, trimmed); err != nil {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		req.Name = &trimmed
	}

	err = h.projectRepo.Update(c.Request().Context(), id, project.UpdateProjectInput{
		Name:   req.Name,
		Active: req.Active,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeProject, &id, audit.ActionUpdate, err)
		return respondAppError(c, err, msgUpdateProjectFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeProject, &id, audit.ActionUpdate, audit.StatusSuccess, nil)

	updated, err := h.projectRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondAppError(c, err, msgUpdateProjectFail)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	if err := h.projectRepo.Deactivate(c.Request().Context(), id); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeProject, &id, audit.ActionDelete, err)
		return respondAppError(c, err, msgUpdateProjectFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeProject, &id, audit.ActionDelete, audit.StatusSuccess, nil)

	return c.NoContent(http.StatusNoContent)
}
