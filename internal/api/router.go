package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sa-academy/cms-backend/docs"
	"github.com/sa-academy/cms-backend/internal/api/handler"
	"github.com/sa-academy/cms-backend/internal/api/metrics"
	"github.com/sa-academy/cms-backend/internal/api/middleware"
	"github.com/sa-academy/cms-backend/internal/core/domain"
	"github.com/sa-academy/cms-backend/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Accounts ports.AccountService
	Resets   ports.PasswordResetService
	Gate     middleware.Authorizer

	// ExtraAdminRoles are admitted to SuperAdmin routes in addition to
	// domain.RoleSuperAdmin.
	ExtraAdminRoles []domain.Role
	Checks          []handler.DependencyCheck

	// Registry receives every metric. A fresh registry is used when nil.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.New(reg)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "cms",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, m)
	resetHandler := handler.NewResetHandler(deps.Resets, m)
	accountHandler := handler.NewAccountHandler(deps.Accounts, deps.Log)

	adminRoles := append([]domain.Role{domain.RoleSuperAdmin}, deps.ExtraAdminRoles...)
	adminOnly := []echo.MiddlewareFunc{
		middleware.Auth(deps.Gate, m),
		middleware.RBAC(deps.Gate, m, adminRoles...),
	}

	// --- Account routes ---
	users := e.Group("/api/users")
	users.POST("", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.POST("/forgot-password", resetHandler.ForgotPassword)
	users.PATCH("/reset-password/:token", resetHandler.ResetPassword)

	users.GET("", accountHandler.List, adminOnly...)
	users.PUT("/:id/role", accountHandler.ChangeRole, adminOnly...)
	users.DELETE("/:id", accountHandler.Delete, adminOnly...)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request. Only the route pattern
// is logged, so reset tokens in the path never reach the log.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogRoutePath: true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error()
			}
			evt.
				Str("method", v.Method).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
