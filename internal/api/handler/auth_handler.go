package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sa-academy/cms-backend/internal/api/metrics"
	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Register creates a new User account and signs it in.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		h.metrics.Registration("invalid")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		h.metrics.Registration("invalid")
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountExists):
			h.metrics.Registration("conflict")
		case errors.Is(err, domain.ErrInvalidInput):
			h.metrics.Registration("invalid")
		default:
			h.metrics.Registration("error")
		}
		return err
	}

	h.metrics.Registration("success")
	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.Login("invalid_credentials")
		} else {
			h.metrics.Login("error")
		}
		return err
	}

	h.metrics.Login("success")
	return c.JSON(http.StatusOK, toAuthResponse(result))
}
