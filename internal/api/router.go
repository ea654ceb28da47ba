package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/identware/account-api/docs"
	"github.com/identware/account-api/internal/api/handler"
	"github.com/identware/account-api/internal/api/middleware"
	"github.com/identware/account-api/internal/core/domain"
	"github.com/identware/account-api/internal/core/service"
	"github.com/identware/account-api/internal/infrastructure/config"
	mongodb "github.com/identware/account-api/internal/infrastructure/db/mongo"
	redisdb "github.com/identware/account-api/internal/infrastructure/db/redis"
	"github.com/identware/account-api/internal/infrastructure/hash"
	"github.com/identware/account-api/internal/infrastructure/idgen"
	"github.com/identware/account-api/internal/infrastructure/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("account"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	codec := token.NewJWTCodec(cfg.JWTSecret, cfg.TokenTTL)
	denylist := redisdb.NewDenylist(rdb, cfg.TokenTTL)
	accountService := service.NewAccountService(
		accountRepo,
		idgen.NewUUIDGenerator(),
		hash.NewBcryptHasher(cfg.BcryptCost),
		codec,
		log,
	)
	accountHandler := handler.NewAccountHandler(accountService, denylist, log)
	authMiddleware := middleware.Auth(codec, denylist)

	// --- Auth routes ---
	e.POST("/auth/register", accountHandler.Register)
	e.POST("/auth/login", accountHandler.Login)

	// --- Account routes ---
	// The core checks the bearer token itself on the per-record routes, so
	// only the full listing sits behind the auth + admin-role middleware.
	e.GET("/users", accountHandler.List, authMiddleware, middleware.RBAC(domain.RoleAdmin))
	e.GET("/users/:id", accountHandler.GetByID)
	e.DELETE("/users/:id", accountHandler.DeleteByID)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
