package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kingrain94/shop-platform-api/internal/api/dto"
	"github.com/kingrain94/shop-platform-api/internal/domain"
	"github.com/kingrain94/shop-platform-api/internal/repository"
	"github.com/kingrain94/shop-platform-api/internal/utils"
	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

// AggregatorService is the administrative cross-tenant read path. It
// iterates every registry tenant, binds each one in turn and runs a read
// query inside its database. One tenant's failure is logged and skipped;
// it never aborts the iteration for the remaining tenants.
type AggregatorService struct {
	registry   repository.Registry
	tenantData repository.TenantDataRepository
	logger     *logger.Logger
}

func NewAggregatorService(registry repository.Registry, tenantData repository.TenantDataRepository, logger *logger.Logger) *AggregatorService {
	return &AggregatorService{
		registry:   registry,
		tenantData: tenantData,
		logger:     logger,
	}
}

// SearchAccounts lists accounts system-wide, applying the keyword/active/
// role filters tenant-locally and annotating each hit with its tenant.
func (s *AggregatorService) SearchAccounts(ctx context.Context, filter domain.AccountFilter) ([]dto.AccountResponse, error) {
	results := make([]dto.AccountResponse, 0)

	err := s.forEachTenant(ctx, func(tctx context.Context, tenant *domain.Tenant) error {
		accounts, err := s.tenantData.SearchAccounts(tctx, filter)
		if err != nil {
			return err
		}

		for _, account := range accounts {
			results = append(results, dto.ToAccountResponse(domain.AccountWithTenant{
				Account:    account,
				TenantID:   tenant.ID,
				TenantCode: tenant.Code,
			}))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// forEachTenant binds each registry tenant in turn and runs fn inside that
// binding. The binding is scoped to the derived context, so it is released
// before the next tenant regardless of how fn exits.
func (s *AggregatorService) forEachTenant(ctx context.Context, fn func(ctx context.Context, tenant *domain.Tenant) error) error {
	tenants, err := s.registry.Tenant().List(ctx)
	if err != nil {
		return err
	}

	for i := range tenants {
		tenant := &tenants[i]

		err := utils.RunWithTenant(ctx, tenant.ID, func(tctx context.Context) error {
			return fn(tctx, tenant)
		})
		if err != nil {
			s.logger.Warn("skipping tenant in cross-tenant aggregation",
				zap.String("tenant_id", tenant.ID),
				zap.String("tenant_code", tenant.Code),
				zap.Error(err))
		}
	}
	return nil
}
