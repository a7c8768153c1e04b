package jwt

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an issued session token stays valid
const DefaultSessionTTL = 10 * time.Hour

// IdentityClaim is the claim carrying the user identity (email)
const IdentityClaim = "email"

var (
	// ErrInvalidToken is returned for every verification failure.
	// Callers should only test for this one.
	ErrInvalidToken = errors.New("invalid session token")

	// Failure classes, wrapped together with ErrInvalidToken for logging
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrBadSignature   = errors.New("token signature is invalid")

	// ErrNonFlatClaims is returned by Issue when a claim value is not a scalar
	ErrNonFlatClaims = errors.New("claims must be a flat key-value set")
)

// Claims is the decoded claim set of a session token
type Claims map[string]any

// Identity returns the user identity carried by the token
func (c Claims) Identity() (string, bool) {
	v, ok := c[IdentityClaim].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ExpiresAt returns the exp claim as time
func (c Claims) ExpiresAt() time.Time {
	switch v := c["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0)
	case int64:
		return time.Unix(v, 0)
	}
	return time.Time{}
}

// Manager handles JWT operations
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates new JWT manager. ttl <= 0 falls back to DefaultSessionTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime of issued tokens
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs the given claims plus iat/exp.
// exp, iat and nbf supplied by the caller are overwritten.
func (m *Manager) Issue(claims map[string]any) (string, error) {
	mc := jwt.MapClaims{}
	for k, v := range claims {
		if !isFlatValue(v) {
			return "", fmt.Errorf("%w: claim %q has type %T", ErrNonFlatClaims, k, v)
		}
		mc[k] = v
	}

	now := m.now()
	delete(mc, "nbf")
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(m.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature, algorithm and expiry and returns the claims
func (m *Manager) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenMalformed)
	}

	mc := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, mc, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, classify(err))
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenMalformed)
	}

	return Claims(mc), nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrBadSignature
	default:
		return ErrTokenMalformed
	}
}

// isFlatValue accepts nil, strings, bools and numbers
func isFlatValue(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
