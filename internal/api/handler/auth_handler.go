package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freightline/shipment-tracker/internal/api/metrics"
	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/ports"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
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

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      role,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "User created successfully.", user)
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginFailuresTotal.Inc()
		return err
	}

	return respond(c, http.StatusOK, "Login successful", loginResponse{
		Token: result.Token,
		User: loginUserResponse{
			ID:   result.User.ID,
			Role: string(result.User.Role),
		},
	})
}
