package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elbuensabor/ordering-system/internal/api/metrics"
	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
)

type RecoveryHandler struct {
	recovery ports.RecoveryService
}

func NewRecoveryHandler(recovery ports.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{recovery: recovery}
}

type recoveryRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type recoveryVerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type recoveryResetRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6"`
	Password string `json:"password" validate:"required,min=6"`
}

// Request issues a one-time recovery code for the account.
//
// @Summary      Request a password-recovery code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      recoveryRequestRequest  true  "Account email"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/recovery/request [post]
func (h *RecoveryHandler) Request(c echo.Context) error {
	var req recoveryRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.recovery.Request(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.RecoveryCodesTotal.WithLabelValues("issued").Inc()
	return c.JSON(http.StatusAccepted, map[string]string{"status": "code sent"})
}

// Verify checks a pending recovery code without consuming it.
//
// @Summary      Verify a password-recovery code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      recoveryVerifyRequest  true  "Email and code"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/recovery/verify [post]
func (h *RecoveryHandler) Verify(c echo.Context) error {
	var req recoveryVerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.recovery.Verify(c.Request().Context(), req.Email, req.Code); err != nil {
		if errors.Is(err, domain.ErrRecoveryCodeInvalid) {
			metrics.RecoveryCodesTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.RecoveryCodesTotal.WithLabelValues("verified").Inc()
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Reset sets a new password and consumes the recovery code.
//
// @Summary      Reset the password with a recovery code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      recoveryResetRequest  true  "Email, code, and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /auth/recovery/reset [post]
func (h *RecoveryHandler) Reset(c echo.Context) error {
	var req recoveryResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.recovery.Reset(c.Request().Context(), req.Email, req.Code, req.Password); err != nil {
		if errors.Is(err, domain.ErrRecoveryCodeInvalid) {
			metrics.RecoveryCodesTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "password updated"})
}
