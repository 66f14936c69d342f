package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sa-academy/cms-backend/internal/api/metrics"
	"github.com/sa-academy/cms-backend/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	gate, _ := newTestGate(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	WithIdentity(c, domain.Identity{AccountID: "acc-1", Role: "admin"})

	called := false
	mw := RBAC(gate, nil, domain.RoleSuperAdmin, "admin")
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	gate, _ := newTestGate(t)
	m := metrics.New(prometheus.NewRegistry())
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	WithIdentity(c, domain.Identity{AccountID: "acc-1", Role: domain.RoleContentAdmin})

	mw := RBAC(gate, m, domain.RoleSuperAdmin)
	err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_RequiresIdentity(t *testing.T) {
	gate, _ := newTestGate(t)
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RBAC(gate, nil, domain.RoleSuperAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
