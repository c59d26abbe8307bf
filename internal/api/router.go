package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/leadvault/crm-api/docs"
	"github.com/leadvault/crm-api/internal/api/handler"
	"github.com/leadvault/crm-api/internal/api/middleware"
	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

// Services are the core use cases the router exposes.
type Services struct {
	Auth       ports.AuthService
	Verifier   ports.TokenVerifier
	Authorizer ports.Authorizer
	Imports    ports.ImportService
	Leads      ports.LeadService
	Users      ports.UserService
}

// Options tune the transport layer.
type Options struct {
	Log                zerolog.Logger
	RequestTimeout     time.Duration
	CORSOrigins        []string
	EnableSwagger      bool
	EnforcePermissions bool
	// Readiness holds the dependency checks served on /health/ready.
	Readiness map[string]handler.Pinger
	// Registry receives the HTTP request metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "crm",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if opts.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeout(opts.RequestTimeout))
	}

	// --- Operational routes ---
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	if opts.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Readiness)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	apiGroup := e.Group("/api")
	apiGroup.GET("/health", healthHandler.Liveness)

	// --- Auth ---
	auth := middleware.Auth(svc.Verifier)
	gate := func(permission string) []echo.MiddlewareFunc {
		if !opts.EnforcePermissions || svc.Authorizer == nil {
			return []echo.MiddlewareFunc{auth}
		}
		return []echo.MiddlewareFunc{auth, middleware.RequirePermission(svc.Authorizer, permission)}
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, auth)
	authGroup.GET("/me", authHandler.Me, auth)

	// --- Users ---
	userHandler := handler.NewUserHandler(svc.Users)
	apiGroup.GET("/users", userHandler.List, gate(domain.PermUserView)...)
	apiGroup.GET("/users/:id", userHandler.Get, gate(domain.PermUserView)...)

	// --- Imports ---
	importHandler := handler.NewImportHandler(svc.Imports)
	apiGroup.GET("/imports", importHandler.List, gate(domain.PermImportView)...)
	apiGroup.GET("/imports/:id", importHandler.Get, gate(domain.PermImportView)...)
	apiGroup.POST("/imports", importHandler.Create, gate(domain.PermImportCreate)...)
	apiGroup.PUT("/imports/:id", importHandler.Update, gate(domain.PermImportEdit)...)

	// --- Leads ---
	leadHandler := handler.NewLeadHandler(svc.Leads)
	apiGroup.GET("/leads", leadHandler.List, gate(domain.PermLeadView)...)
	apiGroup.GET("/leads/:id", leadHandler.Get, gate(domain.PermLeadView)...)
	apiGroup.POST("/leads", leadHandler.Create, gate(domain.PermLeadCreate)...)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				evt = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				evt = log.Warn()
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
