package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", 0)

	token, err := m.Issue(map[string]any{"email": "alice@example.com", "name": "Alice"})
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	email, ok := claims.Identity()
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", email)
	assert.Equal(t, "Alice", claims["name"])
}

func TestIssueSetsTenHourExpiry(t *testing.T) {
	m := NewManager("test-secret", 0)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	token, err := m.Issue(map[string]any{"email": "alice@example.com", "exp": 1})
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(10*time.Hour).Unix(), claims.ExpiresAt().Unix())
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(map[string]any{"email": "alice@example.com"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	m := NewManager("test-secret", 0)
	token, err := m.Issue(map[string]any{"email": "alice@example.com"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	// swap the payload for one claiming another identity
	other, err := m.Issue(map[string]any{"email": "mallory@example.com"})
	require.NoError(t, err)
	parts[1] = strings.Split(other, ".")[1]
	if parts[1] == strings.Split(token, ".")[1] {
		t.Fatalf("expected different payloads")
	}

	_, err = m.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 0).Issue(map[string]any{"email": "alice@example.com"})
	require.NoError(t, err)

	_, err = NewManager("secret-b", 0).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("test-secret", 0).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	m := NewManager("test-secret", 0)

	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
		assert.ErrorIs(t, err, ErrTokenMalformed, token)
	}
}

func TestIssueRejectsNonFlatClaims(t *testing.T) {
	m := NewManager("test-secret", 0)

	cases := []map[string]any{
		{"email": "alice@example.com", "roles": []string{"admin"}},
		{"email": "alice@example.com", "profile": map[string]any{"age": 3}},
		{"email": "alice@example.com", "when": time.Now()},
	}
	for _, claims := range cases {
		_, err := m.Issue(claims)
		assert.ErrorIs(t, err, ErrNonFlatClaims)
	}
}

func TestClaimsIdentityMissing(t *testing.T) {
	_, ok := Claims{"name": "x"}.Identity()
	assert.False(t, ok)

	_, ok = Claims{"email": 42}.Identity()
	assert.False(t, ok)
}
