package routing

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/config"
	"github.com/kingrain94/shop-platform-api/internal/domain"
)

//go:generate mockery --name PoolFactory --output ../mocks
type PoolFactory interface {
	NewPool(ctx context.Context, tenant *domain.Tenant) (*gorm.DB, error)
}

// GormPoolFactory builds a bounded GORM connection pool from a tenant's
// stored connection descriptor. It is stateless: two calls with the same
// descriptor produce two independent pools, and the caller is responsible
// for not duplicating them.
type GormPoolFactory struct {
	poolConfig *config.ConnectionPoolConfig
}

func NewGormPoolFactory(poolConfig *config.ConnectionPoolConfig) *GormPoolFactory {
	return &GormPoolFactory{poolConfig: poolConfig}
}

func (f *GormPoolFactory) NewPool(ctx context.Context, tenant *domain.Tenant) (*gorm.DB, error) {
	dbConfig := &config.DatabaseConfig{
		Host:     tenant.DBHost,
		Port:     strconv.Itoa(tenant.DBPort),
		User:     tenant.DBUsername,
		Password: tenant.DBPassword,
		DBName:   tenant.DBName,
		SSLMode:  "disable",
	}

	db, err := config.NewConnection(dbConfig, f.poolConfig)
	if err != nil {
		return nil, &ConnectionError{TenantID: tenant.ID, Err: err}
	}

	// GORM opens lazily; ping now so an unreachable host surfaces at
	// creation time instead of on the first tenant query.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{TenantID: tenant.ID, Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, f.poolConfig.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, &ConnectionError{TenantID: tenant.ID, Err: err}
	}

	return db, nil
}
