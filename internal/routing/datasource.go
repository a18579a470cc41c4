package routing

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/config"
	"github.com/kingrain94/shop-platform-api/internal/domain"
	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

// DataSource is the routing table mapping tenant id to a live connection
// pool. It is the one piece of shared mutable state in the subsystem:
// routing lookups from concurrent request handlers overlap with occasional
// writes from provisioning and deprovisioning, so all access goes through
// an RWMutex.
type DataSource struct {
	mu      sync.RWMutex
	pools   map[string]*gorm.DB
	factory PoolFactory
	logger  *logger.Logger
}

func NewDataSource(factory PoolFactory, logger *logger.Logger) *DataSource {
	return &DataSource{
		pools:   make(map[string]*gorm.DB),
		factory: factory,
		logger:  logger,
	}
}

// Resolve returns the cached pool for a tenant. A miss is an error, never a
// lazy create: silently building a pool here would mask provisioning bugs.
func (d *DataSource) Resolve(tenantID string) (*gorm.DB, error) {
	d.mu.RLock()
	pool, ok := d.pools[tenantID]
	d.mu.RUnlock()

	if !ok {
		return nil, &UnknownTenantError{TenantID: tenantID}
	}
	return pool, nil
}

// Register idempotently installs or replaces the pool for a tenant. A prior
// pool for the same id is not closed here; the caller decides its fate.
func (d *DataSource) Register(tenantID string, pool *gorm.DB) {
	d.mu.Lock()
	d.pools[tenantID] = pool
	d.mu.Unlock()
}

// Unregister removes and returns the pool for a tenant so the caller can
// close it. The second return value reports whether a pool was registered.
func (d *DataSource) Unregister(tenantID string) (*gorm.DB, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pool, ok := d.pools[tenantID]
	if ok {
		delete(d.pools, tenantID)
	}
	return pool, ok
}

// LoadAll bootstraps the routing table at process start: one pool per
// active tenant. A failure for one tenant is logged and skipped — partial
// availability beats total startup failure.
func (d *DataSource) LoadAll(ctx context.Context, tenants []domain.Tenant) {
	for i := range tenants {
		tenant := &tenants[i]
		if !tenant.IsActive {
			continue
		}

		pool, err := d.factory.NewPool(ctx, tenant)
		if err != nil {
			d.logger.Error("skipping tenant: failed to build connection pool", err,
				zap.String("tenant_id", tenant.ID),
				zap.String("tenant_code", tenant.Code))
			continue
		}

		d.Register(tenant.ID, pool)
		d.logger.Info("registered tenant connection pool",
			zap.String("tenant_id", tenant.ID),
			zap.String("tenant_code", tenant.Code),
			zap.String("db_name", tenant.DBName))
	}
}

// TenantIDs returns a snapshot of the tenant ids currently routable.
func (d *DataSource) TenantIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.pools))
	for id := range d.pools {
		ids = append(ids, id)
	}
	return ids
}

// CloseAll unregisters and closes every pool; used on shutdown.
func (d *DataSource) CloseAll() {
	d.mu.Lock()
	pools := d.pools
	d.pools = make(map[string]*gorm.DB)
	d.mu.Unlock()

	for id, pool := range pools {
		if err := config.CloseDB(pool); err != nil {
			d.logger.Error("failed to close tenant pool", err, zap.String("tenant_id", id))
		}
	}
}
