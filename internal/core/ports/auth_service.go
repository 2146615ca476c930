package ports

import (
	"context"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
)

// AuthService validates credentials and issues bearer tokens.
type AuthService interface {
	// Login returns a signed token and the authenticated user's projection.
	// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// PasswordHasher is the one-way hashing leaf used by both the credential
// validator and the user creation path.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, digest string) bool
}

// TokenIssuer turns a verified user into a signed, expiring bearer token.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}
