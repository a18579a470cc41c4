package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/api/dto"
	"github.com/kingrain94/shop-platform-api/internal/config"
	"github.com/kingrain94/shop-platform-api/internal/domain"
	"github.com/kingrain94/shop-platform-api/internal/repository"
	"github.com/kingrain94/shop-platform-api/internal/routing"
	"github.com/kingrain94/shop-platform-api/internal/utils"
	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

//go:generate mockery --name Migrator --output ../mocks
type Migrator interface {
	Run(ctx context.Context, tenantID string) error
}

// Options carries the out-of-band settings the orchestrator needs: the
// deadline for administrative database operations and the defaults used
// when a create request omits parts of the connection descriptor.
type Options struct {
	AdminOpTimeout    time.Duration
	DefaultDBHost     string
	DefaultDBPort     int
	DefaultDBUsername string
	DefaultDBPassword string
}

func (o *Options) applyDefaults() {
	if o.AdminOpTimeout == 0 {
		o.AdminOpTimeout = 30 * time.Second
	}
	if o.DefaultDBHost == "" {
		o.DefaultDBHost = "localhost"
	}
	if o.DefaultDBPort == 0 {
		o.DefaultDBPort = 5432
	}
}

// TenantService orchestrates the tenant lifecycle: provisioning, reads,
// updates, status flips and deletion, coordinating the master registry,
// the physical database, the routing table, migrations and bootstrap data.
type TenantService struct {
	registry   repository.Registry
	tenantData repository.TenantDataRepository
	routes     *routing.DataSource
	factory    routing.PoolFactory
	migrator   Migrator
	logger     *logger.Logger
	opts       Options
}

func NewTenantService(
	registry repository.Registry,
	tenantData repository.TenantDataRepository,
	routes *routing.DataSource,
	factory routing.PoolFactory,
	migrator Migrator,
	logger *logger.Logger,
	opts Options,
) *TenantService {
	opts.applyDefaults()
	return &TenantService{
		registry:   registry,
		tenantData: tenantData,
		routes:     routes,
		factory:    factory,
		migrator:   migrator,
		logger:     logger,
		opts:       opts,
	}
}

// Create provisions a new tenant end to end:
//
//	registry row (provisioning) -> physical database -> pool -> migrations
//	-> baseline data -> activate -> owner (master) -> owner mirror (tenant)
//
// Any failure from database creation onward deletes the registry row again
// and propagates the original error. The uniqueness checks up front are a
// fast reject only; the unique constraints in the master registry remain
// the real guarantee when two creates race.
func (s *TenantService) Create(ctx context.Context, req dto.CreateTenantRequest) (*dto.TenantDetailResponse, error) {
	if err := s.checkUniqueness(ctx, req); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Owner.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash owner password: %w", err)
	}

	tenant := s.buildTenant(req)

	if _, err := s.registry.Tenant().Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to insert tenant registry row: %w", err)
	}

	// Registry row exists from here on; every failure below must run the
	// compensating rollback before propagating.
	if err := s.createPhysicalDatabase(ctx, tenant); err != nil {
		return nil, err
	}

	pool, err := s.factory.NewPool(ctx, tenant)
	if err != nil {
		s.rollbackProvisioning(ctx, tenant, true)
		return nil, &ProvisioningError{Step: "build connection pool", Err: err}
	}
	s.routes.Register(tenant.ID, pool)

	if err := s.runProvisioningStep(ctx, tenant, "run migrations", func(stepCtx context.Context) error {
		return s.migrator.Run(stepCtx, tenant.ID)
	}); err != nil {
		return nil, err
	}

	if err := s.runProvisioningStep(ctx, tenant, "sync baseline roles", func(stepCtx context.Context) error {
		return utils.RunWithTenant(stepCtx, tenant.ID, func(tctx context.Context) error {
			return s.tenantData.SyncRoles(tctx, domain.DefaultRoles)
		})
	}); err != nil {
		return nil, err
	}

	tenant.Status = domain.TenantStatusActive
	tenant.IsActive = true
	if err := s.registry.Tenant().Update(ctx, tenant); err != nil {
		s.rollbackProvisioning(ctx, tenant, true)
		return nil, &ProvisioningError{Step: "activate tenant", Err: err}
	}

	owner := &domain.TenantOwner{
		ID:           uuid.NewString(),
		TenantID:     tenant.ID,
		Username:     req.Owner.Username,
		PasswordHash: string(passwordHash),
		FullName:     req.Owner.FullName,
		Email:        req.Owner.Email,
		Phone:        req.Owner.Phone,
		IsActive:     true,
	}
	if _, err := s.registry.Owner().Create(ctx, owner); err != nil {
		s.rollbackProvisioning(ctx, tenant, true)
		return nil, &ProvisioningError{Step: "create owner account", Err: err}
	}

	// The tenant-side mirror is deliberately asymmetric: a failure here is
	// surfaced but the committed master rows stay. The reconciliation
	// worker retries the tenant-side insert later.
	mirrorErr := utils.RunWithTenant(ctx, tenant.ID, func(tctx context.Context) error {
		return s.tenantData.InsertOwnerAccount(tctx, owner)
	})
	if mirrorErr != nil {
		if err := s.registry.Tenant().MarkOwnerSynced(ctx, tenant.ID, false); err != nil {
			s.logger.Error("failed to flag tenant for owner reconciliation", err, zap.String("tenant_id", tenant.ID))
		}
		s.logger.Error("owner mirror write failed, tenant needs reconciliation", mirrorErr,
			zap.String("tenant_id", tenant.ID), zap.String("tenant_code", tenant.Code))
		return nil, &PartialSuccessError{TenantID: tenant.ID, Err: mirrorErr}
	}

	tenant.OwnerSynced = true
	if err := s.registry.Tenant().MarkOwnerSynced(ctx, tenant.ID, true); err != nil {
		s.logger.Error("failed to mark owner as synced", err, zap.String("tenant_id", tenant.ID))
	}

	s.logger.Info("tenant provisioned",
		zap.String("tenant_id", tenant.ID),
		zap.String("tenant_code", tenant.Code),
		zap.String("db_name", tenant.DBName))

	resp := dto.ToTenantDetailResponse(tenant, owner, s.statsFor(ctx, tenant.ID))
	return &resp, nil
}

func (s *TenantService) checkUniqueness(ctx context.Context, req dto.CreateTenantRequest) error {
	checks := []struct {
		field  string
		value  string
		exists func(context.Context, string) (bool, error)
	}{
		{"tenant_code", req.Code, s.registry.Tenant().CodeExists},
		{"username", req.Owner.Username, s.registry.Owner().UsernameExists},
		{"email", req.Owner.Email, s.registry.Owner().EmailExists},
		{"phone", req.Owner.Phone, s.registry.Owner().PhoneExists},
	}
	if req.DBName != "" {
		checks = append(checks, struct {
			field  string
			value  string
			exists func(context.Context, string) (bool, error)
		}{"db_name", req.DBName, s.registry.Tenant().DatabaseNameExists})
	}

	for _, check := range checks {
		exists, err := check.exists(ctx, check.value)
		if err != nil {
			return fmt.Errorf("failed to check %s uniqueness: %w", check.field, err)
		}
		if exists {
			return &ConflictError{Field: check.field, Value: check.value}
		}
	}
	return nil
}

func (s *TenantService) buildTenant(req dto.CreateTenantRequest) *domain.Tenant {
	tenantID := uuid.NewString()

	dbName := req.DBName
	if dbName == "" {
		dbName = deriveDatabaseName(tenantID)
	}

	tenant := &domain.Tenant{
		ID:          tenantID,
		Code:        req.Code,
		Name:        req.Name,
		DBHost:      req.DBHost,
		DBPort:      req.DBPort,
		DBName:      dbName,
		DBUsername:  req.DBUsername,
		DBPassword:  req.DBPassword,
		IsActive:    false,
		Status:      domain.TenantStatusProvisioning,
		MaxUsers:    req.MaxUsers,
		MaxProducts: req.MaxProducts,
	}

	if tenant.DBHost == "" {
		tenant.DBHost = s.opts.DefaultDBHost
	}
	if tenant.DBPort == 0 {
		tenant.DBPort = s.opts.DefaultDBPort
	}
	if tenant.DBUsername == "" {
		tenant.DBUsername = s.opts.DefaultDBUsername
	}
	if tenant.DBPassword == "" {
		tenant.DBPassword = s.opts.DefaultDBPassword
	}
	if tenant.MaxUsers == 0 {
		tenant.MaxUsers = 10
	}
	if tenant.MaxProducts == 0 {
		tenant.MaxProducts = 1000
	}

	if req.SubscriptionStart != nil {
		tenant.SubscriptionStart = *req.SubscriptionStart
	} else {
		tenant.SubscriptionStart = time.Now()
	}
	tenant.SubscriptionEnd = req.SubscriptionEnd

	return tenant
}

// deriveDatabaseName builds a deterministic physical database name from
// the tenant id.
func deriveDatabaseName(tenantID string) string {
	return "shop_" + strings.ReplaceAll(tenantID, "-", "")
}

func (s *TenantService) createPhysicalDatabase(ctx context.Context, tenant *domain.Tenant) error {
	adminCtx, cancel := context.WithTimeout(ctx, s.opts.AdminOpTimeout)
	defer cancel()

	err := s.registry.ServerAdmin().CreateDatabase(adminCtx, tenant.DBName)
	if err == nil {
		return nil
	}

	// No database was created, so the rollback only removes the registry row.
	s.rollbackProvisioning(ctx, tenant, false)

	if errors.Is(err, repository.ErrDatabaseExists) {
		return &ConflictError{Field: "db_name", Value: tenant.DBName}
	}
	return &ProvisioningError{Step: "create physical database", Err: err}
}

// runProvisioningStep runs one forward step under the administrative
// deadline and pairs it with the compensating rollback on failure.
func (s *TenantService) runProvisioningStep(ctx context.Context, tenant *domain.Tenant, step string, fn func(ctx context.Context) error) error {
	stepCtx, cancel := context.WithTimeout(ctx, s.opts.AdminOpTimeout)
	defer cancel()

	if err := fn(stepCtx); err != nil {
		s.rollbackProvisioning(ctx, tenant, true)
		return &ProvisioningError{Step: step, Err: err}
	}
	return nil
}

// rollbackProvisioning is the manual saga reverse path: evict the pool,
// best-effort drop of the partially created database, delete the registry
// row. Drop failures are logged, never returned, so they cannot mask the
// original provisioning error.
func (s *TenantService) rollbackProvisioning(ctx context.Context, tenant *domain.Tenant, dropDatabase bool) {
	if pool, ok := s.routes.Unregister(tenant.ID); ok {
		if err := config.CloseDB(pool); err != nil {
			s.logger.Error("rollback: failed to close tenant pool", err, zap.String("tenant_id", tenant.ID))
		}
	}

	if dropDatabase {
		adminCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.AdminOpTimeout)
		defer cancel()
		if err := s.registry.ServerAdmin().DropDatabase(adminCtx, tenant.DBName); err != nil {
			s.logger.Error("rollback: failed to drop partially created database, manual cleanup required", err,
				zap.String("tenant_id", tenant.ID), zap.String("db_name", tenant.DBName))
		}
	}

	if err := s.registry.Tenant().Delete(context.WithoutCancel(ctx), tenant.ID); err != nil {
		s.logger.Error("rollback: failed to delete tenant registry row, manual cleanup required", err,
			zap.String("tenant_id", tenant.ID))
	}
}

// GetByID returns the tenant, its owner and tenant-scoped statistics. A
// statistics failure degrades to a nil stats block instead of failing the
// read.
func (s *TenantService) GetByID(ctx context.Context, id string) (*dto.TenantDetailResponse, error) {
	tenant, err := s.registry.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.composeDetail(ctx, tenant), nil
}

// GetByCode is GetByID keyed by the immutable business code.
func (s *TenantService) GetByCode(ctx context.Context, code string) (*dto.TenantDetailResponse, error) {
	tenant, err := s.registry.Tenant().GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return s.composeDetail(ctx, tenant), nil
}

func (s *TenantService) composeDetail(ctx context.Context, tenant *domain.Tenant) *dto.TenantDetailResponse {
	owner, err := s.registry.Owner().GetByTenantID(ctx, tenant.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to load tenant owner", err, zap.String("tenant_id", tenant.ID))
		owner = nil
	}

	resp := dto.ToTenantDetailResponse(tenant, owner, s.statsFor(ctx, tenant.ID))
	return &resp
}

// List returns every registry tenant enriched with statistics; a tenant
// whose statistics cannot be computed gets zero values rather than failing
// the whole listing.
func (s *TenantService) List(ctx context.Context) ([]dto.TenantResponse, error) {
	tenants, err := s.registry.Tenant().List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = dto.ToTenantResponse(&tenants[i], s.statsFor(ctx, tenants[i].ID))
	}
	return responses, nil
}

// statsFor binds the tenant and queries its database for aggregates,
// defaulting to zeros on any failure.
func (s *TenantService) statsFor(ctx context.Context, tenantID string) *domain.TenantStats {
	stats := &domain.TenantStats{}
	err := utils.RunWithTenant(ctx, tenantID, func(tctx context.Context) error {
		computed, err := s.tenantData.Stats(tctx)
		if err != nil {
			return err
		}
		*stats = *computed
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to compute tenant statistics, defaulting to zero",
			zap.String("tenant_id", tenantID), zap.Error(err))
		return &domain.TenantStats{}
	}
	return stats
}

// Update changes mutable display fields in the registry and mirrors owner
// contact changes into the tenant database. A mirror failure is logged but
// does not fail the operation; the registry is authoritative for reads.
func (s *TenantService) Update(ctx context.Context, id string, req dto.UpdateTenantRequest) (*dto.TenantDetailResponse, error) {
	tenant, err := s.registry.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.MaxUsers != nil {
		tenant.MaxUsers = *req.MaxUsers
	}
	if req.MaxProducts != nil {
		tenant.MaxProducts = *req.MaxProducts
	}
	if req.SubscriptionEnd != nil {
		tenant.SubscriptionEnd = req.SubscriptionEnd
	}
	tenant.UpdatedAt = time.Now()

	if err := s.registry.Tenant().Update(ctx, tenant); err != nil {
		return nil, err
	}

	owner, err := s.updateOwnerContact(ctx, tenant, req)
	if err != nil {
		return nil, err
	}

	resp := dto.ToTenantDetailResponse(tenant, owner, s.statsFor(ctx, tenant.ID))
	return &resp, nil
}

func (s *TenantService) updateOwnerContact(ctx context.Context, tenant *domain.Tenant, req dto.UpdateTenantRequest) (*domain.TenantOwner, error) {
	owner, err := s.registry.Owner().GetByTenantID(ctx, tenant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if req.OwnerFullName == nil && req.OwnerEmail == nil && req.OwnerPhone == nil {
		return owner, nil
	}

	if req.OwnerFullName != nil {
		owner.FullName = *req.OwnerFullName
	}
	if req.OwnerEmail != nil {
		owner.Email = *req.OwnerEmail
	}
	if req.OwnerPhone != nil {
		owner.Phone = *req.OwnerPhone
	}

	if err := s.registry.Owner().Update(ctx, owner); err != nil {
		return nil, err
	}

	mirrorErr := utils.RunWithTenant(ctx, tenant.ID, func(tctx context.Context) error {
		return s.tenantData.UpdateOwnerContact(tctx, owner)
	})
	if mirrorErr != nil {
		s.logger.Error("failed to mirror owner contact into tenant database", mirrorErr,
			zap.String("tenant_id", tenant.ID))
	}

	return owner, nil
}

// UpdateStatus flips the active flag. It does not evict the tenant's pool:
// deactivation gates new provisioning and admin actions, it is not a kill
// switch on live connections. EvictInactivePools handles eviction.
func (s *TenantService) UpdateStatus(ctx context.Context, id string, active bool) error {
	err := s.registry.Tenant().UpdateStatus(ctx, id, active)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTenantNotFound
	}
	return err
}

// Delete tears a tenant down: the pool is discarded first so no new
// connections are handed out, then the physical database is dropped (one
// forced-disconnect retry), and only after a successful drop is the
// registry row removed. A failed drop keeps the registry row so the
// undeletable database never loses its registry trace.
func (s *TenantService) Delete(ctx context.Context, id string) error {
	tenant, err := s.registry.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenantNotFound
		}
		return err
	}

	tenant.Status = domain.TenantStatusDeleting
	tenant.IsActive = false
	if err := s.registry.Tenant().Update(ctx, tenant); err != nil {
		return fmt.Errorf("failed to mark tenant as deleting: %w", err)
	}

	if pool, ok := s.routes.Unregister(tenant.ID); ok {
		if err := config.CloseDB(pool); err != nil {
			s.logger.Error("failed to close tenant pool during delete", err, zap.String("tenant_id", tenant.ID))
		}
	}

	if err := s.dropPhysicalDatabase(ctx, tenant); err != nil {
		return err
	}

	if err := s.registry.Tenant().Delete(ctx, tenant.ID); err != nil {
		return fmt.Errorf("database dropped but failed to delete tenant registry row: %w", err)
	}

	s.logger.Info("tenant deleted",
		zap.String("tenant_id", tenant.ID),
		zap.String("tenant_code", tenant.Code),
		zap.String("db_name", tenant.DBName))
	return nil
}

// dropPhysicalDatabase drops the tenant database, forcibly disconnecting
// live sessions and retrying once if the first attempt fails.
func (s *TenantService) dropPhysicalDatabase(ctx context.Context, tenant *domain.Tenant) error {
	adminCtx, cancel := context.WithTimeout(ctx, s.opts.AdminOpTimeout)
	defer cancel()

	err := s.registry.ServerAdmin().DropDatabase(adminCtx, tenant.DBName)
	if err == nil {
		return nil
	}

	s.logger.Warn("drop database failed, terminating live sessions and retrying",
		zap.String("tenant_id", tenant.ID), zap.String("db_name", tenant.DBName), zap.Error(err))

	retryCtx, cancelRetry := context.WithTimeout(ctx, s.opts.AdminOpTimeout)
	defer cancelRetry()

	if termErr := s.registry.ServerAdmin().TerminateSessions(retryCtx, tenant.DBName); termErr != nil {
		s.logger.Error("failed to terminate sessions on tenant database", termErr,
			zap.String("db_name", tenant.DBName))
	}

	if err := s.registry.ServerAdmin().DropDatabase(retryCtx, tenant.DBName); err != nil {
		return fmt.Errorf("failed to drop tenant database %q after forced disconnect: %w", tenant.DBName, err)
	}
	return nil
}

// EvictInactivePools removes and closes the pools of deactivated tenants.
// Run as an explicit administrative action, not implicitly on UpdateStatus.
func (s *TenantService) EvictInactivePools(ctx context.Context) (int, error) {
	tenants, err := s.registry.Tenant().List(ctx)
	if err != nil {
		return 0, err
	}

	evicted := 0
	for i := range tenants {
		if tenants[i].IsActive {
			continue
		}
		pool, ok := s.routes.Unregister(tenants[i].ID)
		if !ok {
			continue
		}
		if err := config.CloseDB(pool); err != nil {
			s.logger.Error("failed to close evicted pool", err, zap.String("tenant_id", tenants[i].ID))
		}
		evicted++
	}
	return evicted, nil
}

// ReconcileOwners retries the tenant-side owner mirror for every tenant
// flagged by a partial-success create. InsertOwnerAccount is idempotent,
// so a retry after an ambiguous failure is safe.
func (s *TenantService) ReconcileOwners(ctx context.Context) error {
	tenants, err := s.registry.Tenant().ListOwnerUnsynced(ctx)
	if err != nil {
		return err
	}

	for i := range tenants {
		tenant := &tenants[i]

		owner, err := s.registry.Owner().GetByTenantID(ctx, tenant.ID)
		if err != nil {
			s.logger.Error("reconcile: failed to load owner", err, zap.String("tenant_id", tenant.ID))
			continue
		}

		err = utils.RunWithTenant(ctx, tenant.ID, func(tctx context.Context) error {
			return s.tenantData.InsertOwnerAccount(tctx, owner)
		})
		if err != nil {
			s.logger.Error("reconcile: owner mirror write failed, will retry", err,
				zap.String("tenant_id", tenant.ID))
			continue
		}

		if err := s.registry.Tenant().MarkOwnerSynced(ctx, tenant.ID, true); err != nil {
			s.logger.Error("reconcile: failed to mark owner as synced", err, zap.String("tenant_id", tenant.ID))
			continue
		}

		s.logger.Info("reconciled owner mirror", zap.String("tenant_id", tenant.ID), zap.String("tenant_code", tenant.Code))
	}
	return nil
}
