package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sa-academy/cms-backend/internal/core/ports"
)

// AccountHandler serves the SuperAdmin account management routes.
type AccountHandler struct {
	accounts ports.AccountService
	log      zerolog.Logger
}

func NewAccountHandler(accounts ports.AccountService, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, log: log}
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponses(accounts))
}

// ChangeRole sets the role of an account.
//
// @Summary      Change a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account ID"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/users/{id}/role [put]
func (h *AccountHandler) ChangeRole(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.accounts.ChangeRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}

	h.log.Info().
		Str("actor_id", caller.AccountID).
		Str("account_id", updated.ID).
		Str("role", string(updated.Role)).
		Msg("role change applied")
	return c.JSON(http.StatusOK, toAccountResponse(updated))
}

// Delete removes an account. SuperAdmin accounts cannot be deleted.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.accounts.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.log.Info().Str("actor_id", caller.AccountID).Str("account_id", id).Msg("account deletion applied")
	return c.JSON(http.StatusOK, deleteResponse{ID: id, Message: "User deleted successfully"})
}
