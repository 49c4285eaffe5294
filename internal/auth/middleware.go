package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "timekeep/pkg/errors"
)

type Middleware struct {
	jwtService *JWTService
}

func NewMiddleware(jwtService *JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			claims, err := m.jwtService.Verify(token)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyIdentity, Identity{
				UserID:      claims.UserID,
				Username:    claims.Username,
				DisplayName: claims.DisplayName,
				IsAdmin:     claims.IsAdmin,
			})

			return next(c)
		}
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireJWT.
func (m *Middleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := GetIdentity(c)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			if !identity.IsAdmin {
				return respondError(c, http.StatusForbidden, msgAdminRequired)
			}

			return next(c)
		}
	}
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the ?token= query param used by export download links.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) == authHeaderParts && strings.ToLower(parts[0]) == bearerScheme {
			return parts[1]
		}
	}

	return strings.TrimSpace(c.QueryParam(queryParamToken))
}

func GetIdentity(c echo.Context) (Identity, error) {
	raw := c.Get(ContextKeyIdentity)
	if raw == nil {
		return Identity{}, apperrors.Unauthorized(msgIdentityNotSet)
	}

	identity, ok := raw.(Identity)
	if !ok {
		return Identity{}, apperrors.InternalServer(msgInvalidIdentityCtx, nil)
	}

	return identity, nil
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
