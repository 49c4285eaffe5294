package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/auth"
	"timekeep/internal/domain/user"
	"timekeep/pkg/password"
	"timekeep/pkg/validator"
)

type UserHandler struct {
	userRepo    UserRepository
	auditLogger AuditLogger
}

func NewUserHandler(userRepo UserRepository, auditLogger AuditLogger) *UserHandler {
	return &UserHandler{
		userRepo:    userRepo,
		auditLogger: auditLogger,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if err := validator.Username(req.Username); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Password(req.Password); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	u, err := h.userRepo.Create(c.Request().Context(), user.CreateUserInput{
		Username:     req.Username,
		PasswordHash: passwordHash,
		DisplayName:  req.DisplayName,
		IsAdmin:      req.IsAdmin,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeUser, nil, audit.ActionCreate, err)
		return respondAppError(c, err, msgCreateUserFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeUser, &u.ID, audit.ActionCreate, audit.StatusSuccess, map[string]any{
		"username": u.Username,
	})

	return c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		return respondAppError(c, err, msgListUsersFail)
	}

	return c.JSON(http.StatusOK, users)
}

type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	IsAdmin     *bool   `json:"is_admin"`
	Active      *bool   `json:"active"`
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgUpdateUserFail)
	}

	targetID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req UpdateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	if err := auth.CheckUserUpdate(identity, targetID, req.IsAdmin, req.Active); err != nil {
		return respondAppError(c, err, msgUpdateUserFail)
	}

	err = h.userRepo.Update(c.Request().Context(), targetID, user.UpdateUserInput{
		DisplayName: req.DisplayName,
		IsAdmin:     req.IsAdmin,
		Active:      req.Active,
	})

	if err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeUser, &targetID, audit.ActionUpdate, err)
		return respondAppError(c, err, msgUpdateUserFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeUser, &targetID, audit.ActionUpdate, audit.StatusSuccess, nil)

	updated, err := h.userRepo.GetByID(c.Request().Context(), targetID)
	if err != nil {
		return respondAppError(c, err, msgUpdateUserFail)
	}

	return c.JSON(http.StatusOK, updated)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword lets users rotate their own password (with the current one
// verified) and admins reset anyone's without it.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgPasswordProcessFail)
	}

	targetID, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	var req ChangePasswordRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	requireCurrent, err := auth.CheckPasswordChange(identity, targetID)
	if err != nil {
		return respondAppError(c, err, msgPasswordProcessFail)
	}

	if err := validator.Password(req.NewPassword); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	target, err := h.userRepo.GetByID(c.Request().Context(), targetID)
	if err != nil {
		return respondAppError(c, err, msgPasswordProcessFail)
	}

	if requireCurrent {
		if req.CurrentPassword == "" {
			return respondError(c, http.StatusBadRequest, msgCurrentPasswordRequired)
		}
		if !password.Verify(req.CurrentPassword, target.PasswordHash) {
			h.auditLogger.LogFromContext(c, audit.ResourceTypeUser, &targetID, audit.ActionPasswordChange, audit.StatusDenied, nil)
			return respondError(c, http.StatusUnauthorized, msgCurrentPasswordWrong)
		}
	}

	passwordHash, err := password.Hash(req.NewPassword)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	if err := h.userRepo.UpdatePassword(c.Request().Context(), targetID, passwordHash); err != nil {
		h.auditLogger.LogError(c, audit.ResourceTypeUser, &targetID, audit.ActionPasswordChange, err)
		return respondAppError(c, err, msgPasswordProcessFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeUser, &targetID, audit.ActionPasswordChange, audit.StatusSuccess, nil)

	return respondMessage(c, http.StatusOK, msgPasswordChanged)
}
