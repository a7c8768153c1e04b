package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"artifact-tracker-backend/internal/config"
	"artifact-tracker-backend/internal/shared/response"
	"artifact-tracker-backend/pkg/jwt"
	"artifact-tracker-backend/pkg/logger"
)

// TokenIssuer is the part of the session codec the handler needs
type TokenIssuer interface {
	Issue(claims map[string]any) (string, error)
	TTL() time.Duration
}

// =====================================================
// SESSION HANDLER
// =====================================================

type SessionHandler struct {
	issuer TokenIssuer
	cookie config.SessionConfig
}

func NewSessionHandler(issuer TokenIssuer, cookie config.SessionConfig) *SessionHandler {
	return &SessionHandler{
		issuer: issuer,
		cookie: cookie,
	}
}

// IssueSession signs the posted claims and stores the token in the cookie
// POST /jwt
func (h *SessionHandler) IssueSession(c *gin.Context) {
	// Step 1: Bind claims
	var claims map[string]any
	if err := c.ShouldBindJSON(&claims); err != nil || claims == nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 2: Identity claim
	email, _ := claims[jwt.IdentityClaim].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.EmailFormat); err != nil {
		response.BadRequest(c, "A valid email is required")
		return
	}
	claims[jwt.IdentityClaim] = email

	// Step 3: Sign
	token, err := h.issuer.Issue(claims)
	if err != nil {
		if errors.Is(err, jwt.ErrNonFlatClaims) {
			response.BadRequest(c, "Claims must be flat key-value pairs")
			return
		}
		logger.Error("failed to issue session token", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	// Step 4: Cookie
	h.setCookie(c, token, int(h.issuer.TTL().Seconds()))

	logger.Debug("session issued", map[string]interface{}{
		"email": email,
	})
	response.Success(c, http.StatusOK, nil)
}

// ClearSession expires the session cookie
// POST /clear-jwt
func (h *SessionHandler) ClearSession(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.Success(c, http.StatusOK, nil)
}

// setCookie writes the session cookie with the configured attributes.
// Clearing must repeat them or browsers keep the existing cookie.
func (h *SessionHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(
		h.cookie.CookieName,
		value,
		maxAge,
		h.cookie.CookiePath,
		h.cookie.CookieDomain,
		h.cookie.Secure,
		true, // httpOnly
	)
}
