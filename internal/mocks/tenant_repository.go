package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/shop-platform-api/internal/domain"
)

type TenantRepository struct {
	mock.Mock
}

func (_m *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	ret := _m.Called(ctx, tenant)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	ret := _m.Called(ctx, id)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) GetByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	ret := _m.Called(ctx, code)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	ret := _m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	ret := _m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) ListOwnerUnsynced(ctx context.Context) ([]domain.Tenant, error) {
	ret := _m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.Tenant), ret.Error(1)
}

func (_m *TenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	ret := _m.Called(ctx, tenant)
	return ret.Error(0)
}

func (_m *TenantRepository) UpdateStatus(ctx context.Context, id string, active bool) error {
	ret := _m.Called(ctx, id, active)
	return ret.Error(0)
}

func (_m *TenantRepository) MarkOwnerSynced(ctx context.Context, id string, synced bool) error {
	ret := _m.Called(ctx, id, synced)
	return ret.Error(0)
}

func (_m *TenantRepository) Delete(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *TenantRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	ret := _m.Called(ctx, code)
	return ret.Bool(0), ret.Error(1)
}

func (_m *TenantRepository) DatabaseNameExists(ctx context.Context, name string) (bool, error) {
	ret := _m.Called(ctx, name)
	return ret.Bool(0), ret.Error(1)
}
