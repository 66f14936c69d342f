package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sa-academy/cms-backend/internal/api/metrics"
	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

const (
	resetRequestedMessage = "If a user with that email exists, a reset link has been sent."
	resetCompletedMessage = "Password reset successfully. Please log in."
)

type ResetHandler struct {
	resets  ports.PasswordResetService
	metrics *metrics.Metrics
}

func NewResetHandler(resets ports.PasswordResetService, m *metrics.Metrics) *ResetHandler {
	return &ResetHandler{resets: resets, metrics: m}
}

// ForgotPassword mails a reset link if the address belongs to an account.
// The response does not depend on whether it does.
//
// @Summary      Request a password reset
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users/forgot-password [post]
func (h *ResetHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resets.RequestReset(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrDeliveryFailure) {
			h.metrics.ResetRequest("delivery_failure")
		} else {
			h.metrics.ResetRequest("error")
		}
		return err
	}

	h.metrics.ResetRequest("accepted")
	return c.JSON(http.StatusOK, messageResponse{Message: resetRequestedMessage})
}

// ResetPassword redeems a reset token and sets a new password.
//
// @Summary      Reset password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Reset token"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Router       /api/users/reset-password/{token} [patch]
func (h *ResetHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if _, err := h.resets.Redeem(c.Request().Context(), c.Param("token"), req.Password, req.ConfirmPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrResetInvalidOrExpired):
			h.metrics.ResetRedemption("invalid_or_expired")
		case errors.Is(err, domain.ErrPasswordMismatch):
			h.metrics.ResetRedemption("mismatch")
		default:
			h.metrics.ResetRedemption("error")
		}
		return err
	}

	h.metrics.ResetRedemption("success")
	return c.JSON(http.StatusOK, messageResponse{Message: resetCompletedMessage})
}
