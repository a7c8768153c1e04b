package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-tracker-backend/internal/config"
	"artifact-tracker-backend/internal/shared/middleware"
	"artifact-tracker-backend/pkg/jwt"
)

func newSessionRouter(t *testing.T, cookie config.SessionConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := jwt.NewManager("session-secret", jwt.DefaultSessionTTL)
	h := NewSessionHandler(m, cookie)

	r := gin.New()
	r.POST("/jwt", h.IssueSession)
	r.POST("/clear-jwt", h.ClearSession)
	r.GET("/whoami", middleware.SessionGuard(m, cookie.CookieName), func(c *gin.Context) {
		identity, _ := middleware.GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestIssueThenClearSession(t *testing.T) {
	cfg := config.LoadSessionConfig("development")
	r := newSessionRouter(t, cfg)

	// Issue
	rec := post(r, "/jwt", `{"email":"Alice@Example.com","name":"Alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	cookie := sessionCookie(t, rec, "token")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(jwt.DefaultSessionTTL.Seconds()), cookie.MaxAge)

	// Protected call with the issued cookie
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	who := httptest.NewRecorder()
	r.ServeHTTP(who, req)
	require.Equal(t, http.StatusOK, who.Code)
	assert.JSONEq(t, `{"email":"alice@example.com"}`, who.Body.String())

	// Clear
	cleared := post(r, "/clear-jwt", ``)
	require.Equal(t, http.StatusOK, cleared.Code)
	gone := sessionCookie(t, cleared, "token")
	assert.Empty(t, gone.Value)
	assert.Less(t, gone.MaxAge, 0)
	assert.True(t, gone.HttpOnly)

	// Browser drops the cookie, the next call is unauthorized
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	after := httptest.NewRecorder()
	r.ServeHTTP(after, req)
	assert.Equal(t, http.StatusUnauthorized, after.Code)
}

func TestCookieAttributesPerEnvironment(t *testing.T) {
	t.Setenv("SESSION_COOKIE_SECURE", "")
	t.Setenv("SESSION_COOKIE_SAMESITE", "")

	tests := []struct {
		env      string
		secure   bool
		sameSite http.SameSite
	}{
		{"development", false, http.SameSiteStrictMode},
		{"production", true, http.SameSiteNoneMode},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			r := newSessionRouter(t, config.LoadSessionConfig(tt.env))

			for _, path := range []string{"/jwt", "/clear-jwt"} {
				rec := post(r, path, `{"email":"alice@example.com"}`)
				require.Equal(t, http.StatusOK, rec.Code)

				cookie := sessionCookie(t, rec, "token")
				assert.Equal(t, tt.secure, cookie.Secure, path)
				assert.Equal(t, tt.sameSite, cookie.SameSite, path)
				assert.True(t, cookie.HttpOnly, path)
			}
		})
	}
}

func TestIssueSessionRejectsBadInput(t *testing.T) {
	r := newSessionRouter(t, config.LoadSessionConfig("development"))

	tests := []struct {
		name string
		body string
	}{
		{"no body", ``},
		{"null", `null`},
		{"missing email", `{"name":"alice"}`},
		{"bad email", `{"email":"not-an-email"}`},
		{"nested claims", `{"email":"alice@example.com","roles":["admin"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(r, "/jwt", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}
