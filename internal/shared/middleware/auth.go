package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"artifact-tracker-backend/internal/shared/response"
	"artifact-tracker-backend/pkg/jwt"
	"artifact-tracker-backend/pkg/logger"
)

// Context keys
const (
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"
)

const unauthorizedMessage = "unauthorized access"

// TokenVerifier is the part of the session codec the guard needs
type TokenVerifier interface {
	Verify(token string) (jwt.Claims, error)
}

// Identity is the verified session owner attached to the request
type Identity struct {
	Email  string
	Claims jwt.Claims
}

// SessionGuard admits requests carrying a valid session cookie.
//
// Flow:
// 1. No cookie → 401
// 2. Cookie present → verify signature + expiry
// 3. Invalid or no identity claim → 401 (same body as step 1)
// 4. Valid → Identity set in context, c.Next()
func SessionGuard(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			rejectSession(c, "no_token")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			rejectSession(c, failureReason(err))
			return
		}

		email, ok := claims.Identity()
		if !ok {
			rejectSession(c, "no_identity_claim")
			return
		}

		c.Set(ContextKeyIdentity, Identity{Email: email, Claims: claims})
		c.Next()
	}
}

func rejectSession(c *gin.Context, reason string) {
	logger.Debug("session rejected", map[string]interface{}{
		"request_id": c.GetString(ContextKeyRequestID),
		"path":       c.Request.URL.Path,
		"reason":     reason,
	})
	response.Unauthorized(c, unauthorizedMessage)
	c.Abort()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}

// GetIdentity returns the identity set by SessionGuard
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// RequireSameUser checks the authenticated identity owns the email supplied
// by the client. It writes 401/403 and returns false otherwise.
func RequireSameUser(c *gin.Context, email string) (Identity, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		response.Unauthorized(c, unauthorizedMessage)
		c.Abort()
		return Identity{}, false
	}

	if !SameEmail(identity.Email, email) {
		response.Forbidden(c, "forbidden access")
		c.Abort()
		return Identity{}, false
	}

	return identity, true
}

// SameEmail compares emails case-insensitively
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
