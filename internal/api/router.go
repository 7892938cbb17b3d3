package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freightline/shipment-tracker/internal/api/handler"
	"github.com/freightline/shipment-tracker/internal/api/middleware"
	"github.com/freightline/shipment-tracker/internal/core/domain"
	"github.com/freightline/shipment-tracker/internal/core/service"
	"github.com/freightline/shipment-tracker/internal/infrastructure/config"
	mongodb "github.com/freightline/shipment-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/freightline/shipment-tracker/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("shiptrack"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	shipmentRepo := mongodb.NewShipmentRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	idemStore := redisdb.NewIdempotencyStore(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	shipmentService := service.NewShipmentService(shipmentRepo, userRepo, idemStore, log)
	userService := service.NewUserService(userRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)
	userHandler := handler.NewUserHandler(userService)
	companyHandler := handler.NewCompanyHandler(companyService)

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes (public) ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// --- Shipment routes ---
	shipments := e.Group("/api/shipments", authRequired)
	shipments.POST("", shipmentHandler.Create,
		middleware.RBAC(domain.RoleCompanyUser))
	shipments.GET("", shipmentHandler.List,
		middleware.RBAC(domain.RoleCustomer, domain.RoleCompanyUser, domain.RoleSuperAdmin))
	shipments.PUT("/:shipmentId/status", shipmentHandler.UpdateStatus,
		middleware.RBAC(domain.RoleCompanyUser))
	shipments.POST("/:shipmentId/event", shipmentHandler.AddEvent,
		middleware.RBAC(domain.RoleCompanyUser))
	shipments.GET("/:shipmentId", shipmentHandler.Get,
		middleware.RBAC(domain.RoleCustomer))

	// --- Company routes ---
	companies := e.Group("/api/companies", authRequired)
	companies.POST("", companyHandler.Create,
		middleware.RBAC(domain.RoleSuperAdmin))
	companies.GET("", companyHandler.List,
		middleware.RBAC(domain.RoleSuperAdmin))
	companies.GET("/:id", companyHandler.Get,
		middleware.RBAC(domain.RoleSuperAdmin, domain.RoleCompanyUser))

	// --- User routes ---
	users := e.Group("/api/users", authRequired)
	users.POST("", userHandler.Create,
		middleware.RBAC(domain.RoleSuperAdmin))
	users.GET("", userHandler.List,
		middleware.RBAC(domain.RoleSuperAdmin))
	users.GET("/:id", userHandler.Get,
		middleware.RBAC(domain.RoleSuperAdmin, domain.RoleCompanyUser))
	users.PUT("/:id", userHandler.Update,
		middleware.RBAC(domain.RoleSuperAdmin))
	users.DELETE("/:id", userHandler.Delete,
		middleware.RBAC(domain.RoleSuperAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
