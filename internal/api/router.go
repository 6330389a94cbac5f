package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/bug-tracker/docs"
	"github.com/99minutos/bug-tracker/internal/api/handler"
	"github.com/99minutos/bug-tracker/internal/api/middleware"
	"github.com/99minutos/bug-tracker/internal/core/domain"
	"github.com/99minutos/bug-tracker/internal/core/ports"
)

// Deps are the wired services and feeds the router serves.
type Deps struct {
	Sessions ports.SessionService
	Bugs     ports.BugService

	// Feeds holds the polled snapshot per dashboard. Roles without a feed
	// read from Fallback.
	Feeds      map[domain.Role]ports.BugLister
	Fallback   ports.BugLister
	Refreshers []handler.Refresher

	Ready map[string]handler.Pinger
	Log   zerolog.Logger

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "bugtracker",
		Registerer: deps.Registerer,
	}))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	bugHandler := handler.NewBugHandler(deps.Bugs, deps.Refreshers...)
	boardHandler := handler.NewBoardHandler(deps.Bugs, deps.Feeds, deps.Fallback)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Ready)

	// --- Health probes and tooling (no session required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Session ---
	v1.POST("/session", sessionHandler.Login)
	v1.GET("/session", sessionHandler.Current)
	v1.DELETE("/session", sessionHandler.Logout)

	// --- Bugs (session required) ---
	bugs := v1.Group("/bugs", middleware.Session(deps.Sessions))
	bugs.GET("", bugHandler.List)
	bugs.GET("/board", boardHandler.Board)
	bugs.POST("", bugHandler.Report, middleware.RequireCapability(middleware.CanReport))
	bugs.PATCH("/:id/status", bugHandler.Transition, middleware.RequireCapability(middleware.CanTransition))
	bugs.DELETE("/:id", bugHandler.Delete, middleware.RequireCapability(middleware.CanDelete))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
