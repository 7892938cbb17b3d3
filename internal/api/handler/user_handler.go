package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/ports"
)

// UserHandler handles admin user management.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  successResponse
// @Failure      409   {object}  map[string]any
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return domain.ErrInvalidRole
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "User created successfully", user)
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User fetched successfully", user)
}

// List handles GET /api/users.
//
// @Summary      Get all users with pagination
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Users per page"
// @Success      200    {object}  successResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Users fetched successfully", listUsersResponse{
		Users: result.Items,
		Pagination: paginationMeta{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	})
}

// Update handles PUT /api/users/:id.
//
// @Summary      Update a user (allow-listed fields only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  successResponse
// @Failure      404   {object}  map[string]any
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := ports.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		CompanyID: req.CompanyID,
	}
	if req.Role != nil {
		role, ok := domain.ParseRole(*req.Role)
		if !ok {
			return domain.ErrInvalidRole
		}
		input.Role = &role
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "User updated successfully", user)
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "User id"
// @Success      200  {object}  successResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User deleted successfully", nil)
}
