package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sa-academy/cms-backend/internal/api/metrics"
	"github.com/sa-academy/cms-backend/internal/core/domain"
)

// RBAC admits the identity stored by Auth only when its role is one of
// allowedRoles. It must run after Auth.
func RBAC(gate Authorizer, m *metrics.Metrics, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := append([]domain.Role(nil), allowedRoles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				m.Decision("unauthenticated")
				return domain.ErrUnauthenticated
			}
			if err := gate.Permit(id, allowed...); err != nil {
				m.Decision("forbidden")
				return err
			}
			m.Decision("allowed")
			return next(c)
		}
	}
}
