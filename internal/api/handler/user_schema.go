package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	Role      string `json:"role"       validate:"required,oneof=admin manager editor"`
}

// updateUserRequest is a partial update; omitted fields stay unchanged.
type updateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name,omitempty"  validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty"      validate:"omitempty,email"`
	Password  *string `json:"password,omitempty"   validate:"omitempty,min=6"`
	Role      *string `json:"role,omitempty"       validate:"omitempty,oneof=admin manager editor"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes. There is deliberately no password field anywhere
// in these types.

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listUsersResponse struct {
	Data        []userResponse `json:"data"`
	Total       int64          `json:"total"`
	CurrentPage int            `json:"current_page"`
	PageSize    int            `json:"page_size"`
}
