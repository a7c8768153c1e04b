package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-tracker-backend/pkg/jwt"
)

const testCookie = "token"

func newGuardedRouter(t *testing.T, m *jwt.Manager, reached *bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/protected", SessionGuard(m, testCookie), func(c *gin.Context) {
		*reached = true
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email})
	})
	return r
}

func doGet(r http.Handler, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionGuardAdmitsValidToken(t *testing.T) {
	m := jwt.NewManager("guard-secret", 0)
	reached := false
	r := newGuardedRouter(t, m, &reached)

	token, err := m.Issue(map[string]any{"email": "alice@example.com"})
	require.NoError(t, err)

	rec := doGet(r, &http.Cookie{Name: testCookie, Value: token})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.JSONEq(t, `{"email":"alice@example.com"}`, rec.Body.String())
}

func TestSessionGuardRejectsMissingAndInvalidIdentically(t *testing.T) {
	m := jwt.NewManager("guard-secret", 0)

	expiredToken, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("guard-secret"))
	require.NoError(t, err)

	foreign, err := jwt.NewManager("other-secret", 0).Issue(map[string]any{"email": "alice@example.com"})
	require.NoError(t, err)

	noIdentity, err := m.Issue(map[string]any{"name": "alice"})
	require.NoError(t, err)

	cases := map[string]*http.Cookie{
		"no cookie":      nil,
		"empty cookie":   {Name: testCookie, Value: ""},
		"garbage":        {Name: testCookie, Value: "not-a-token"},
		"expired":        {Name: testCookie, Value: expiredToken},
		"wrong secret":   {Name: testCookie, Value: foreign},
		"no email claim": {Name: testCookie, Value: noIdentity},
	}

	var firstBody string
	for name, cookie := range cases {
		t.Run(name, func(t *testing.T) {
			reached := false
			r := newGuardedRouter(t, m, &reached)

			rec := doGet(r, cookie)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached, "downstream handler must not run")
			if firstBody == "" {
				firstBody = rec.Body.String()
			}
			assert.Equal(t, firstBody, rec.Body.String())
		})
	}
}

func TestRequireSameUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(identity *Identity, email string) int {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if identity != nil {
			c.Set(ContextKeyIdentity, *identity)
		}
		if _, ok := RequireSameUser(c, email); ok {
			return http.StatusOK
		}
		return rec.Code
	}

	alice := &Identity{Email: "Alice@Example.com"}
	assert.Equal(t, http.StatusOK, run(alice, "alice@example.com"))
	assert.Equal(t, http.StatusForbidden, run(alice, "bob@example.com"))
	assert.Equal(t, http.StatusUnauthorized, run(nil, "alice@example.com"))
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextKeyRequestID))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "3f1c2a6e-8b8f-4f57-9d4a-0c6f7f0f9b11")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "3f1c2a6e-8b8f-4f57-9d4a-0c6f7f0f9b11", rec.Header().Get(HeaderRequestID))
}

func TestCORSAllowsConfiguredOriginWithCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.POST("/jwt", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/jwt", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
