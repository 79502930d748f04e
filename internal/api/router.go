package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/secureapp/identity-service/docs"
	"github.com/secureapp/identity-service/internal/api/handler"
	"github.com/secureapp/identity-service/internal/api/middleware"
	"github.com/secureapp/identity-service/internal/core/access"
	"github.com/secureapp/identity-service/internal/core/domain"
	"github.com/secureapp/identity-service/internal/core/ports"
	"github.com/secureapp/identity-service/internal/core/service"
	"github.com/secureapp/identity-service/internal/core/token"
	"github.com/secureapp/identity-service/internal/infrastructure/config"
	mongodb "github.com/secureapp/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/secureapp/identity-service/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered.
// audit may be the queue dispatcher or nil (tests).
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddleware("identity_http"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL)
	gate := access.NewGate(issuer)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Limiter.MaxFailures, cfg.Limiter.Window)

	roleService := service.NewRoleService(userRepo, roleRepo, audit, log)
	authService := service.NewAuthService(userRepo, roleService, issuer, limiter, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(roleService)
	userHandler := handler.NewUserHandler(userRepo)

	authn := middleware.Auth(gate)

	// --- Auth routes (public) ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/register", authHandler.Register)

	// --- User routes (authenticated) ---
	users := e.Group("/api/users", authn)
	users.GET("/search", userHandler.Search)
	users.GET("/profile", userHandler.Profile, middleware.RBAC()) // any authenticated subject
	users.GET("/sensitive", userHandler.Sensitive, middleware.RBAC(domain.RoleAdmin, domain.RoleUser))

	// --- Admin routes ---
	admin := e.Group("/api/admin", authn, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/roles/assign", adminHandler.AssignRole)
	admin.POST("/roles/remove", adminHandler.RemoveRole)
	admin.GET("/users/:id/roles", adminHandler.UserRoles)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
