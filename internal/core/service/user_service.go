package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// hexID matches the 24-hex-character id format assigned by the store.
// Malformed ids are rejected before any repository call.
var hexID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// UserService implements the management operations: create, update, delete,
// and paginated list. Every mutation emits an audit entry asynchronously.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, audit: audit, log: log}
}

// CreateUser hashes the password and inserts a new user.
//
// The FindByEmail pre-check is advisory only; the store's unique index is the
// real uniqueness mechanism, and a duplicate-key violation from a concurrent
// create surfaces as the same domain.ErrEmailInUse the pre-check produces.
// Other store faults are logged and wrapped as a generic create failure so
// storage internals never reach the caller.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		s.log.Error().Err(err).Msg("email pre-check failed")
		return nil, domain.ErrCreateUserFailed
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("password hashing failed")
		return nil, domain.ErrCreateUserFailed
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, domain.ErrEmailInUse
		}
		s.log.Error().Err(err).Msg("user insert failed")
		return nil, domain.ErrCreateUserFailed
	}

	s.recordAudit(created, domain.AuditUserCreated, input.Actor)
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created.Projection(), nil
}

// UpdateUser applies a partial update. The id-format guard runs before any
// store access; an email change re-checks uniqueness; a new password is
// re-hashed, never stored as plaintext.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if !hexID.MatchString(id) {
		return nil, domain.ErrInvalidUserID
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := s.repo.FindByEmail(ctx, *input.Email)
		if err == nil && existing.ID != id {
			return nil, domain.ErrEmailInUse
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Msg("email pre-check failed")
			return nil, domain.ErrUpdateUserFailed
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			s.log.Error().Err(err).Msg("password hashing failed")
			return nil, domain.ErrUpdateUserFailed
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailInUse), errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		default:
			s.log.Error().Err(err).Str("user_id", id).Msg("user update failed")
			return nil, domain.ErrUpdateUserFailed
		}
	}

	s.recordAudit(updated, domain.AuditUserUpdated, input.Actor)
	s.log.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated.Projection(), nil
}

// DeleteUser removes the user after the same id-format guard.
func (s *UserService) DeleteUser(ctx context.Context, id, actor string) (*domain.User, error) {
	if !hexID.MatchString(id) {
		return nil, domain.ErrInvalidUserID
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recordAudit(deleted, domain.AuditUserDeleted, actor)
	s.log.Info().Str("user_id", deleted.ID).Msg("user deleted")
	return deleted.Projection(), nil
}

// ListUsers returns one page of user projections plus the total count.
// Page and PageSize are normalized to sane bounds rather than rejected.
func (s *UserService) ListUsers(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	size := input.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	users, total, err := s.repo.List(ctx, ports.ListUsersFilter{Page: page, PageSize: size})
	if err != nil {
		s.log.Error().Err(err).Msg("user list failed")
		return nil, err
	}

	items := make([]*domain.User, len(users))
	for i, u := range users {
		items[i] = u.Projection()
	}

	return &ports.ListUsersResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

func (s *UserService) recordAudit(user *domain.User, action domain.AuditAction, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEntryInput{
		UserID:    user.ID,
		Email:     user.Email,
		Actor:     actor,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}
