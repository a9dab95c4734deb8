package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elbuensabor/ordering-system/internal/api/metrics"
	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type registerRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Password    string `json:"password" validate:"required,min=6"`
}

type registerStaffRequest struct {
	registerRequest
	Role string `json:"role" validate:"required"`
}

type authResponse struct {
	Token    string          `json:"token"`
	Identity domain.Identity `json:"identity"`
}

// Login authenticates with email and password and starts a session.
//
// @Summary      Login with credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, sess, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(loginStatus(err), map[string]string{"error": err.Error()})
	}

	metrics.SessionsStartedTotal.WithLabelValues(string(sess.Identity.Role), "password").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, Identity: sess.Identity})
}

// GoogleLogin exchanges a Google ID token for a local session.
//
// @Summary      Login with a Google ID token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Google ID token"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, sess, err := h.authService.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return c.JSON(loginStatus(err), map[string]string{"error": err.Error()})
	}

	metrics.SessionsStartedTotal.WithLabelValues(string(sess.Identity.Role), "google").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, Identity: sess.Identity})
}

// Register creates a customer account.
//
// @Summary      Register a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		Role:        domain.RoleCustomer,
	})
	if err != nil {
		return c.JSON(registerStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, user)
}

// RegisterStaff creates a staff account. Administrators only.
//
// @Summary      Register a staff member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerStaffRequest  true  "Staff registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register/staff [post]
func (h *AuthHandler) RegisterStaff(c echo.Context) error {
	var req registerStaffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil || !role.Staff() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "staff role required"})
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		Role:        role,
	})
	if err != nil {
		return c.JSON(registerStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, user)
}

// Logout destroys the caller's session. Calling it twice is harmless.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), ctxSessionID(c)); err != nil {
		return err
	}
	metrics.SessionsEndedTotal.WithLabelValues("logout").Inc()
	return c.NoContent(http.StatusNoContent)
}

func loginStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountDeactivated):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrSessionUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func registerStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
