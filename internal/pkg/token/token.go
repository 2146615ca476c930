// Package token issues and verifies the service's bearer tokens.
//
// Tokens are HS256-signed JWTs carrying the identity snapshot taken at
// issuance time. Verification is purely local: signature plus expiry, no
// store lookup. A role change therefore only takes effect once the current
// token expires.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
)

// DefaultTTL matches the reference behavior: tokens are deliberately
// short-lived and callers are expected to re-authenticate.
const DefaultTTL = 60 * time.Second

// ErrInvalidToken covers every verification failure: bad signature, malformed
// token, or expiry. Callers get no partial trust and no detail.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload embedded in every issued token.
// The field names (email, roles, sub, iat, exp) are part of the wire contract.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"roles"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a single process-wide secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager signing with secret. A non-positive ttl falls
// back to DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given user. The role is snapshotted into the
// claims; it is not re-checked on later requests.
func (m *Manager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks the signature and expiry of raw and returns its claims.
// Any failure yields ErrInvalidToken.
func (m *Manager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
