package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ynov-backend/accounts-api/internal/api/metrics"
	"github.com/ynov-backend/accounts-api/internal/api/middleware"
	"github.com/ynov-backend/accounts-api/internal/core/domain"
	"github.com/ynov-backend/accounts-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.accounts.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "user created",
		User:    toUserResponse(user),
	})
}

// Login authenticates a user and returns a signed token.
//
// The two credential failure kinds keep distinct messages, matching the
// behavior this service replaces; both map to 401.
//
// @Summary      Login with username and password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_password").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "incorrect password")
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message: "login successful",
		Token:   token,
		User:    toUserResponse(user),
	})
}

// List returns all users, passwords excluded. Admin-only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.accounts.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserListResponse(users))
}

// Delete removes a user by ID. Admin-only; self-deletion is forbidden.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	targetID := c.Param("id")
	caller := middleware.CallerPrincipal(c)

	if err := h.accounts.DeleteUser(c.Request().Context(), targetID, caller); err != nil {
		return err
	}

	metrics.DeletionsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// Root handles GET / with a service banner.
//
// @Summary      Service banner
// @Tags         meta
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       / [get]
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "user accounts API"})
}
