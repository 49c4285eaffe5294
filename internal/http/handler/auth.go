package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"timekeep/internal/audit"
	"timekeep/internal/auth"
	"timekeep/pkg/password"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type AuthHandler struct {
	userRepo    UserRepository
	jwtService  *auth.JWTService
	auditLogger AuditLogger
}

func NewAuthHandler(userRepo UserRepository, jwtService *auth.JWTService, auditLogger AuditLogger) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		jwtService:  jwtService,
		auditLogger: auditLogger,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	u, err := h.userRepo.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "user not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking username existence.
		password.Verify(req.Password, dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		h.auditLogger.LogFromContext(c, audit.ResourceTypeSession, &u.ID, audit.ActionLogin, audit.StatusDenied, nil)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !u.Active {
		h.auditLogger.LogFromContext(c, audit.ResourceTypeSession, &u.ID, audit.ActionLogin, audit.StatusDenied, nil)
		return respondError(c, http.StatusUnauthorized, msgAccountDisabled)
	}

	identity := auth.Identity{
		UserID:      u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
	}

	token, err := h.jwtService.Generate(identity)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	h.auditLogger.LogFromContext(c, audit.ResourceTypeSession, &u.ID, audit.ActionLogin, audit.StatusSuccess, nil)

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  identity,
	})
}

// Me returns the identity baked into the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := auth.GetIdentity(c)
	if err != nil {
		return respondAppError(c, err, msgInvalidCredentials)
	}

	return c.JSON(http.StatusOK, identity)
}
