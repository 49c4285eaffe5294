package auth

const (
	ContextKeyIdentity = "identity"

	headerAuthorization = "Authorization"
	queryParamToken     = "token"
	bearerScheme        = "bearer"
	authHeaderParts     = 2

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
	msgMissingAuthorization    = "not authenticated"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgAdminRequired           = "admin required"
	msgIdentityNotSet          = "caller identity not set"
	msgInvalidIdentityCtx      = "invalid identity in context"
)
