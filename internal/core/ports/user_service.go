package ports

import (
	"context"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new user.
// Actor is the email of the authenticated caller, recorded in the audit trail.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
	Actor     string
}

// UpdateUserInput carries a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *domain.Role
	Actor     string
}

// ListUsersInput carries pagination parameters for the list endpoint.
type ListUsersInput struct {
	Page     int
	PageSize int
}

// ListUsersResult is returned by ListUsers. Total is the count across all
// pages so callers can compute ceil(Total/PageSize).
type ListUsersResult struct {
	Items    []*domain.User
	Total    int64
	Page     int
	PageSize int
}

// UserService defines the management operations on users. All returned users
// are projections with the password hash stripped.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id, actor string) (*domain.User, error)
	ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
}
