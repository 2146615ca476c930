package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/user-management-api/internal/api/metrics"
	"github.com/sirpyerre/user-management-api/internal/core/ports"
)

// UserHandler exposes the user management endpoints. All routes are behind
// the Auth middleware and a role gate; errors from the service layer are
// returned as-is and mapped centrally by the HTTP error handler.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.CreateUser(c.Request().Context(), toCreateInput(req, claims.Email))
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update handles PUT /v1/users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id (24 hex chars)"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateUser(c.Request().Context(), c.Param("id"), toUpdateInput(req, claims.Email))
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id (24 hex chars)"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.DeleteUser(c.Request().Context(), c.Param("id"), claims.Email)
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// List handles GET /v1/users with page/page_size query parameters.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number (1-based)"
// @Param        page_size  query     int  false  "Rows per page"
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	result, err := h.users.ListUsers(c.Request().Context(), ports.ListUsersInput{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	metrics.UserOperationsTotal.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, toListResponse(result))
}
