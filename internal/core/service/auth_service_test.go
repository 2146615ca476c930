package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/core/ports"
	"github.com/sirpyerre/user-management-api/internal/pkg/password"
	"github.com/sirpyerre/user-management-api/internal/pkg/token"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailInUse
	}
	stored := cloneUser(user)
	r.nextID++
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	for email, u := range r.byEmail {
		if u.ID == user.ID {
			if user.Email != email {
				if _, taken := r.byEmail[user.Email]; taken {
					return nil, domain.ErrEmailInUse
				}
				delete(r.byEmail, email)
			}
			r.byEmail[user.Email] = cloneUser(user)
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	for email, u := range r.byEmail {
		if u.ID == id {
			delete(r.byEmail, email)
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, int64, error) {
	all := make([]*domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		all = append(all, cloneUser(u))
	}
	total := int64(len(all))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func seedUser(t *testing.T, repo *stubUserRepo, email, pass string, role domain.Role) *domain.User {
	t.Helper()
	hasher := password.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(pass)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newAuthService(repo *stubUserRepo) (*AuthService, *token.Manager) {
	tokens := token.NewManager("test-secret", time.Minute)
	return NewAuthService(repo, password.NewHasher(bcrypt.MinCost), tokens, zerolog.Nop()), tokens
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "carol@example.com", "s3cret", domain.RoleAdmin)
	svc, tokens := newAuthService(repo)

	tok, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.PasswordHash != "" {
		t.Fatalf("projection leaked password hash")
	}

	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.Email != "carol@example.com" {
		t.Fatalf("email claim = %q", claims.Email)
	}
	if claims.Subject != seeded.ID {
		t.Fatalf("sub claim = %q, want %q", claims.Subject, seeded.ID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("roles claim = %q", claims.Role)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave@example.com", "goodpass", domain.RoleEditor)
	svc, _ := newAuthService(repo)

	// Unknown email and wrong password must be indistinguishable: the same
	// sentinel value, hence the same message, on both paths.
	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "goodpass")
	_, _, wrongPassErr := svc.Login(context.Background(), "dave@example.com", "badpass")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongPassErr != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr != wrongPassErr {
		t.Fatalf("login failures differ: %v vs %v", unknownErr, wrongPassErr)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _ := newAuthService(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_ReadOnly(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "erin@example.com", "pw", domain.RoleManager)
	svc, _ := newAuthService(repo)

	before := len(repo.byEmail)
	_, _, _ = svc.Login(context.Background(), "erin@example.com", "nope")
	_, _, _ = svc.Login(context.Background(), "erin@example.com", "pw")
	if len(repo.byEmail) != before {
		t.Fatalf("login mutated the repository")
	}
}
