package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kingrain94/shop-platform-api/internal/config"
	"github.com/kingrain94/shop-platform-api/internal/repository/postgres"
	"github.com/kingrain94/shop-platform-api/internal/routing"
	"github.com/kingrain94/shop-platform-api/internal/service"
	"github.com/kingrain94/shop-platform-api/internal/tenantdb"
	"github.com/kingrain94/shop-platform-api/internal/worker"
	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

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

	registry := postgres.NewRegistry(masterDB, adminDB)

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

	tenantService := service.NewTenantService(registry, tenantData, routes, factory, migrator, appLogger, service.Options{
		AdminOpTimeout:    cfg.AdminOpTimeout,
		DefaultDBHost:     tenantDBDefaults.Host,
		DefaultDBPort:     defaultPort,
		DefaultDBUsername: tenantDBDefaults.User,
		DefaultDBPassword: tenantDBDefaults.Password,
	})

	reconcileWorker := worker.NewReconcileWorker(tenantService, appLogger, cfg.ReconcileInterval)
	reconcileWorker.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	reconcileWorker.Stop()
	appLogger.Info("Reconcile worker exiting")
	appLogger.Sync()
}
