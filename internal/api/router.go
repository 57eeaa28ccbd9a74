package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/technotes/technotes-api/internal/api/handler"
	"github.com/technotes/technotes-api/internal/api/middleware"
	"github.com/technotes/technotes-api/internal/core/domain"
	"github.com/technotes/technotes-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Audit and LoginLimiter are
// optional; a nil value disables the feature.
type Deps struct {
	Users        ports.UserService
	Notes        ports.NoteService
	Auth         ports.AuthService
	Audit        ports.AuditRecorder
	LoginLimiter middleware.AttemptLimiter
	Pingers      map[string]handler.Pinger
	JWTSecret    string
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	if deps.LoginLimiter != nil {
		e.POST("/auth", authHandler.Login, middleware.LoginLimit(deps.LoginLimiter, deps.Logger))
	} else {
		e.POST("/auth", authHandler.Login)
	}

	// --- User lifecycle (managers and admins only) ---
	userHandler := handler.NewUserHandler(deps.Users, deps.Audit)
	users := e.Group("/users", authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PATCH("", userHandler.Update)
	users.DELETE("", userHandler.Delete)

	// --- Notes (any authenticated user) ---
	noteHandler := handler.NewNoteHandler(deps.Notes, deps.Audit)
	notes := e.Group("/notes", authMiddleware)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.PATCH("", noteHandler.Update)
	notes.DELETE("", noteHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
