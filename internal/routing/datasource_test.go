package routing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/domain"
	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

// stubFactory builds fake pools and fails for configured tenant codes.
type stubFactory struct {
	mu      sync.Mutex
	failFor map[string]bool
	built   []string
}

func (f *stubFactory) NewPool(ctx context.Context, tenant *domain.Tenant) (*gorm.DB, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[tenant.Code] {
		return nil, &ConnectionError{TenantID: tenant.ID, Err: errors.New("host unreachable")}
	}
	f.built = append(f.built, tenant.ID)
	return newFakePool(), nil
}

func newFakePool() *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{}}
}

func newTestDataSource(factory PoolFactory) *DataSource {
	return NewDataSource(factory, logger.NewNop())
}

func TestResolve_UnknownTenant(t *testing.T) {
	ds := newTestDataSource(&stubFactory{})

	_, err := ds.Resolve("missing")

	var unknownErr *UnknownTenantError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "missing", unknownErr.TenantID)
}

func TestRegisterResolve_SameInstance(t *testing.T) {
	ds := newTestDataSource(&stubFactory{})
	pool := newFakePool()

	ds.Register("tenant1", pool)

	got, err := ds.Resolve("tenant1")
	require.NoError(t, err)
	assert.Same(t, pool, got)
}

func TestRegister_ReplacesWithoutClosing(t *testing.T) {
	ds := newTestDataSource(&stubFactory{})
	first := newFakePool()
	second := newFakePool()

	ds.Register("tenant1", first)
	ds.Register("tenant1", second)

	got, err := ds.Resolve("tenant1")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestUnregister_RemovesAndReturnsPool(t *testing.T) {
	ds := newTestDataSource(&stubFactory{})
	pool := newFakePool()
	ds.Register("tenant1", pool)

	got, ok := ds.Unregister("tenant1")
	require.True(t, ok)
	assert.Same(t, pool, got)

	_, err := ds.Resolve("tenant1")
	var unknownErr *UnknownTenantError
	assert.ErrorAs(t, err, &unknownErr)

	_, ok = ds.Unregister("tenant1")
	assert.False(t, ok)
}

func TestLoadAll_SkipsFailuresAndInactiveTenants(t *testing.T) {
	factory := &stubFactory{failFor: map[string]bool{"SHOP02": true}}
	ds := newTestDataSource(factory)

	tenants := []domain.Tenant{
		{ID: "t1", Code: "SHOP01", IsActive: true},
		{ID: "t2", Code: "SHOP02", IsActive: true},
		{ID: "t3", Code: "SHOP03", IsActive: false},
		{ID: "t4", Code: "SHOP04", IsActive: true},
	}

	ds.LoadAll(context.Background(), tenants)

	_, err := ds.Resolve("t1")
	assert.NoError(t, err)
	_, err = ds.Resolve("t4")
	assert.NoError(t, err)

	// The unreachable tenant is skipped, not fatal, and the inactive
	// tenant never gets a pool.
	_, err = ds.Resolve("t2")
	assert.Error(t, err)
	_, err = ds.Resolve("t3")
	assert.Error(t, err)

	assert.ElementsMatch(t, []string{"t1", "t4"}, factory.built)
}

func TestTenantIDs_Snapshot(t *testing.T) {
	ds := newTestDataSource(&stubFactory{})
	ds.Register("t1", newFakePool())
	ds.Register("t2", newFakePool())

	assert.ElementsMatch(t, []string{"t1", "t2"}, ds.TenantIDs())
}

// Routing lookups from many goroutines must safely overlap with
// provisioning and deprovisioning writes.
func TestDataSource_ConcurrentAccess(t *testing.T) {
	ds := newTestDataSource(&stubFactory{})

	const workers = 20
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			tenantID := fmt.Sprintf("tenant-%d", i)
			pool := newFakePool()

			for j := 0; j < 100; j++ {
				ds.Register(tenantID, pool)

				got, err := ds.Resolve(tenantID)
				if err != nil {
					t.Errorf("resolve %s: %v", tenantID, err)
					return
				}
				if got != pool {
					t.Errorf("resolve %s returned a different pool", tenantID)
					return
				}

				ds.TenantIDs()
				ds.Unregister(tenantID)
			}
		}(i)
	}

	wg.Wait()
}
