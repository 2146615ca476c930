package ports

import (
	"context"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
)

// ListUsersFilter carries pagination parameters for listing users.
type ListUsersFilter struct {
	Page     int // 1-based
	PageSize int // rows per page
}

// UserRepository defines persistence operations for users.
//
// Uniqueness on email is enforced by the store itself (unique index), not by
// callers: Create and Update return domain.ErrEmailInUse on violation even
// when concurrent writers race past an advisory pre-check.
type UserRepository interface {
	// Create inserts user and returns it with its assigned id.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user has this email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrInvalidUserID for a malformed id and
	// domain.ErrUserNotFound when the id resolves to nothing.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists the full user document and returns the stored value.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user and returns the deleted document.
	Delete(ctx context.Context, id string) (*domain.User, error)
	// List returns one page of users (password hash excluded by projection)
	// plus the total count across all pages.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
