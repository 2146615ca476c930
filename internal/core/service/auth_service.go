package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/core/ports"
)

// AuthService validates credentials against the user store and issues tokens.
// It is read-only: no login attempt mutates any state.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Login verifies the email/password pair and returns a signed token plus the
// user's projection.
//
// The repository's not-found signal must not leak: an unknown email and a
// wrong password both return the identical domain.ErrInvalidCredentials, so
// the response gives no user-enumeration oracle. The password itself is never
// logged on any path.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		s.log.Error().Err(err).Msg("credential lookup failed")
		return "", nil, err
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error().Err(err).Msg("token issuance failed")
		return "", nil, err
	}

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("login succeeded")
	return tok, user.Projection(), nil
}
