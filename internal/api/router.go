package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veridian/identity-api/internal/api/handler"
	"github.com/veridian/identity-api/internal/api/middleware"
	"github.com/veridian/identity-api/internal/core/domain"
	"github.com/veridian/identity-api/internal/core/service"
	"github.com/veridian/identity-api/internal/core/token"
	"github.com/veridian/identity-api/internal/infrastructure/config"
	"github.com/veridian/identity-api/internal/infrastructure/crypto"
	mongodb "github.com/veridian/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/veridian/identity-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// It fails when the token signing key is not configured.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	tokens, err := token.New(token.Config{
		Key:      cfg.JWT.Key,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      time.Duration(cfg.JWT.ExpiryMinutes) * time.Minute,
	})
	if err != nil {
		return nil, err
	}

	accountRepo := mongodb.NewAccountRepository(db)
	hasher := crypto.NewBcryptHasher(0)
	throttle := redisdb.NewLoginThrottle(rdb, 0, 0)

	authService := service.NewAuthService(accountRepo, hasher, tokens, throttle, log)
	accountService := service.NewAccountService(accountRepo, hasher, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminUsersHandler(accountService)

	authMW := middleware.Auth(tokens)
	adminMW := middleware.RBAC(domain.RoleAdmin.String(), domain.RoleSuperAdmin.String())
	superMW := middleware.RBAC(domain.RoleSuperAdmin.String())

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Admin routes ---
	admin := e.Group("/admin/users", authMW, adminMW)
	admin.GET("", adminHandler.List)
	admin.GET("/all", adminHandler.ListAll, superMW)
	admin.POST("", adminHandler.Create)
	admin.GET("/:id", adminHandler.Get)
	admin.PUT("/:id", adminHandler.Update)
	admin.DELETE("/:id", adminHandler.Delete)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e, nil
}
