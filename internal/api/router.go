package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sirpyerre/user-management-api/docs"
	"github.com/sirpyerre/user-management-api/internal/api/handler"
	"github.com/sirpyerre/user-management-api/internal/api/middleware"
	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/core/ports"
	"github.com/sirpyerre/user-management-api/internal/core/service"
	mongodb "github.com/sirpyerre/user-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sirpyerre/user-management-api/internal/infrastructure/db/redis"
	"github.com/sirpyerre/user-management-api/internal/pkg/config"
	"github.com/sirpyerre/user-management-api/internal/pkg/password"
	"github.com/sirpyerre/user-management-api/internal/pkg/token"
)

// NewRouter builds the Echo instance with all routes registered. Components
// are wired here with explicit constructors; audit is the enqueue side of the
// dispatcher started in main.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := password.NewHasher(cfg.BcryptCost)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	userService := service.NewUserService(userRepo, hasher, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	policy := domain.DefaultAccessPolicy()
	authMW := middleware.Auth(tokens)
	throttle := middleware.LoginThrottle(redisdb.NewLoginLimiter(rdb, cfg.LoginRateLimit), log)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, throttle)

	// --- User management (token + role gate per operation) ---
	users := e.Group("/v1/users", authMW)
	users.POST("", userHandler.Create, middleware.RequireOperation(policy, domain.OpUserCreate))
	users.PUT("/:id", userHandler.Update, middleware.RequireOperation(policy, domain.OpUserUpdate))
	users.DELETE("/:id", userHandler.Delete, middleware.RequireOperation(policy, domain.OpUserDelete))
	users.GET("", userHandler.List, middleware.RequireOperation(policy, domain.OpUserList))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
