package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/paysecure/payment-portal/internal/api/handler"
	"github.com/paysecure/payment-portal/internal/api/middleware"
	"github.com/paysecure/payment-portal/internal/core/domain"
	"github.com/paysecure/payment-portal/internal/core/ports"
	"github.com/paysecure/payment-portal/internal/core/service"
	"github.com/paysecure/payment-portal/internal/infrastructure/config"
	mongodb "github.com/paysecure/payment-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/paysecure/payment-portal/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder is constructed by the caller because its worker pool is
// started with the process lifecycle, not the router's.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("payment_portal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	paymentRepo := mongodb.NewPaymentRepository(db)
	denylist := redisdb.NewDenylist(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, denylist)
	authService := service.NewAuthService(userRepo, tokenService)
	paymentService := service.NewPaymentService(paymentRepo, audit, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	userHandler := handler.NewUserHandler(userService)

	authMiddleware := middleware.Auth(tokenService, userRepo)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Payment routes ---
	v1 := e.Group("/v1", authMiddleware)

	payments := v1.Group("/payments")
	payments.GET("", paymentHandler.ListOwn, middleware.RBAC(domain.RoleCustomer))
	payments.POST("", paymentHandler.Create, middleware.RBAC(domain.RoleCustomer))
	payments.GET("/pending", paymentHandler.ListPending, middleware.RBAC(domain.RoleEmployee, domain.RoleAdmin))
	payments.PUT("/:id", paymentHandler.Update, middleware.RBAC(domain.RoleCustomer))
	payments.DELETE("/:id", paymentHandler.Delete, middleware.RBAC(domain.RoleCustomer))
	payments.POST("/:id/verify", paymentHandler.Verify, middleware.RBAC(domain.RoleEmployee, domain.RoleAdmin))
	payments.POST("/:id/deny", paymentHandler.Deny, middleware.RBAC(domain.RoleEmployee, domain.RoleAdmin))

	// --- User management (admin only) ---
	users := v1.Group("/users", middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
