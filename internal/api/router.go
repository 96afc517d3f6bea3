package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ynov-backend/accounts-api/docs"
	"github.com/ynov-backend/accounts-api/internal/api/handler"
	"github.com/ynov-backend/accounts-api/internal/api/middleware"
	"github.com/ynov-backend/accounts-api/internal/core/domain"
	"github.com/ynov-backend/accounts-api/internal/core/ports"
	"github.com/ynov-backend/accounts-api/internal/core/service"
)

// TokenProvider issues and verifies identity tokens.
type TokenProvider interface {
	ports.TokenIssuer
	ports.TokenVerifier
}

// RouterConfig carries the explicit dependency handles the router wires
// together. Mongo and Redis are used by the readiness probe and may be nil
// in tests, in which case the probe routes are not registered.
type RouterConfig struct {
	Users  ports.UserRepository
	Cache  ports.UserCache
	Tokens TokenProvider
	Mongo  *mongo.Database
	Redis  *redis.Client
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	accounts := service.NewAccountService(cfg.Users, cfg.Tokens, cfg.Cache, cfg.Log)
	userHandler := handler.NewUserHandler(accounts)
	authenticated := middleware.Auth(cfg.Tokens, cfg.Users, cfg.Cache, cfg.Log)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.GET("/", handler.Root)
	e.POST("/v1/users", userHandler.Register)
	e.POST("/v1/login", userHandler.Login)

	// --- Admin routes ---
	e.GET("/v1/users", userHandler.List, authenticated, adminOnly)
	e.DELETE("/v1/users/:id", userHandler.Delete, authenticated, adminOnly)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if cfg.Mongo != nil && cfg.Redis != nil {
		healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness)
	}

	return e
}
