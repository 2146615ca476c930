package domain

import "errors"

// Sentinel errors shared across services, repositories, and the HTTP layer.
// Login failures always surface as ErrInvalidCredentials, whether the email
// was unknown or the password wrong.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserID      = errors.New("invalid user ID format")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("access forbidden")
	ErrCreateUserFailed   = errors.New("failed to create user")
	ErrUpdateUserFailed   = errors.New("failed to update user")
)
