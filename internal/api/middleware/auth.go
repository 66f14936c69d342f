package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sa-academy/cms-backend/internal/api/metrics"
	"github.com/sa-academy/cms-backend/internal/core/domain"
)

const identityKey = "identity"

// Authorizer is the access decision the HTTP layer delegates to.
type Authorizer interface {
	Authorize(token string, allowed ...domain.Role) (domain.Identity, error)
	Permit(id domain.Identity, allowed ...domain.Role) error
}

// Auth validates the bearer token and stores the verified identity in the
// request context. Any failure is reported as domain.ErrUnauthenticated.
func Auth(gate Authorizer, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				m.Decision("unauthenticated")
				return domain.ErrUnauthenticated
			}

			id, err := gate.Authorize(token)
			if err != nil {
				m.Decision("unauthenticated")
				return domain.ErrUnauthenticated
			}

			WithIdentity(c, id)
			return next(c)
		}
	}
}

// WithIdentity stores a verified identity in the request context.
func WithIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok && id.AccountID != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
