package handler

import (
	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createUserRequest, actor string) ports.CreateUserInput {
	return ports.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
		Actor:     actor,
	}
}

func toUpdateInput(req updateUserRequest, actor string) ports.UpdateUserInput {
	input := ports.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Actor:     actor,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}
	return input
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListUsersResult) listUsersResponse {
	items := make([]userResponse, len(r.Items))
	for i, u := range r.Items {
		items[i] = toUserResponse(u)
	}
	return listUsersResponse{
		Data:        items,
		Total:       r.Total,
		CurrentPage: r.Page,
		PageSize:    r.PageSize,
	}
}
