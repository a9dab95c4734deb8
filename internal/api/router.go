package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elbuensabor/ordering-system/internal/api/handler"
	"github.com/elbuensabor/ordering-system/internal/api/middleware"
	"github.com/elbuensabor/ordering-system/internal/core/domain"
	"github.com/elbuensabor/ordering-system/internal/core/ports"
	"github.com/elbuensabor/ordering-system/internal/core/service"
	"github.com/elbuensabor/ordering-system/internal/infrastructure/config"
	mongodb "github.com/elbuensabor/ordering-system/internal/infrastructure/db/mongo"
	redisdb "github.com/elbuensabor/ordering-system/internal/infrastructure/db/redis"
	"github.com/elbuensabor/ordering-system/internal/infrastructure/oauth"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, policy domain.InactivityPolicy, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("ordering"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	recoveryStore := redisdb.NewRecoveryStore(rdb)

	sessionService := service.NewSessionService(sessionStore, policy, log)

	var google ports.GoogleVerifier
	if gv := oauth.NewGoogleVerifier(cfg.Google.ClientID); gv.IsConfigured() {
		google = gv
	}

	authService := service.NewAuthService(userRepo, sessionService, google, cfg.JWTSecret, cfg.Session.TokenTTL, log)
	recoveryService := service.NewRecoveryService(userRepo, recoveryStore, log)
	userService := service.NewUserService(userRepo, sessionService, log)

	authHandler := handler.NewAuthHandler(authService)
	recoveryHandler := handler.NewRecoveryHandler(recoveryService)
	profileHandler := handler.NewProfileHandler(userService)
	userHandler := handler.NewUserHandler(userService)

	requireAuth := middleware.Auth(cfg.JWTSecret, sessionService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/google", authHandler.GoogleLogin)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/register/staff", authHandler.RegisterStaff, requireAuth, middleware.Guard(domain.RoleAdministrator))
	e.POST("/auth/logout", authHandler.Logout, requireAuth)
	e.POST("/auth/recovery/request", recoveryHandler.Request)
	e.POST("/auth/recovery/verify", recoveryHandler.Verify)
	e.POST("/auth/recovery/reset", recoveryHandler.Reset)

	// --- Profile (any authenticated role) ---
	profile := e.Group("/profile", requireAuth, middleware.Guard(
		domain.RoleAdministrator,
		domain.RoleCustomer,
		domain.RoleCook,
		domain.RoleCashier,
		domain.RoleDelivery,
	))
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)

	// --- User administration ---
	users := e.Group("/users", requireAuth)
	users.GET("", userHandler.List, middleware.Guard(domain.RoleAdministrator))
	users.PUT("/:id", userHandler.Update, middleware.Guard(domain.RoleAdministrator))
	users.PATCH("/:id/deactivate", userHandler.ToggleDeactivate, middleware.Guard(domain.RoleAdministrator, domain.RoleCashier))

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
