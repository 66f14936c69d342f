package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sa-academy/cms-backend/internal/api/middleware"
	"github.com/sa-academy/cms-backend/internal/core/domain"
)

// callerIdentity returns the identity verified by the Auth middleware. Its
// absence means the route was mounted without Auth.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
