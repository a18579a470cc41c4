package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/kingrain94/shop-platform-api/internal/api"
	"github.com/kingrain94/shop-platform-api/internal/config"
	"github.com/kingrain94/shop-platform-api/internal/middleware"
	"github.com/kingrain94/shop-platform-api/internal/repository/postgres"
	"github.com/kingrain94/shop-platform-api/internal/routing"
	"github.com/kingrain94/shop-platform-api/internal/service"
	"github.com/kingrain94/shop-platform-api/internal/tenantdb"
	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	masterDB, err := config.NewMasterDatabase()
	if err != nil {
		appLogger.Fatal("Failed to connect to master database", err)
	}
	defer config.CloseDB(masterDB)

	adminDB, err := config.NewServerAdminConnection()
	if err != nil {
		appLogger.Fatal("Failed to open server-admin connection", err)
	}
	defer config.CloseDB(adminDB)

	appLogger.Info("Master registry and server-admin connections established")

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	registry := postgres.NewRegistry(masterDB, adminDB)

	// Routing bootstrap: one pool per active tenant. Failures for single
	// tenants are logged and skipped inside LoadAll.
	factory := routing.NewGormPoolFactory(config.GetTenantPoolConfig())
	routes := routing.NewDataSource(factory, appLogger)
	defer routes.CloseAll()

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), cfg.AdminOpTimeout)
	activeTenants, err := registry.Tenant().ListActive(bootstrapCtx)
	cancelBootstrap()
	if err != nil {
		appLogger.Fatal("Failed to list active tenants for routing bootstrap", err)
	}
	routes.LoadAll(context.Background(), activeTenants)

	tenantData := postgres.NewTenantDataRepository(routes)
	migrator := tenantdb.NewRunner(routes, appLogger)

	tenantDBDefaults := config.GetTenantDBDefaults()
	defaultPort, _ := strconv.Atoi(tenantDBDefaults.Port)

	// Initialize services
	tenantService := service.NewTenantService(registry, tenantData, routes, factory, migrator, appLogger, service.Options{
		AdminOpTimeout:    cfg.AdminOpTimeout,
		DefaultDBHost:     tenantDBDefaults.Host,
		DefaultDBPort:     defaultPort,
		DefaultDBUsername: tenantDBDefaults.User,
		DefaultDBPassword: tenantDBDefaults.Password,
	})
	aggregatorService := service.NewAggregatorService(registry, tenantData, appLogger)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, appLogger)

	// Initialize server
	server := api.NewServer(
		tenantService,
		aggregatorService,
		authMiddleware,
		rateLimitMiddleware,
		cfg.GlobalRateLimit,
	)

	// Initialize router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
