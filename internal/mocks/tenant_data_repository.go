package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/shop-platform-api/internal/domain"
)

type TenantDataRepository struct {
	mock.Mock
}

func (_m *TenantDataRepository) SyncRoles(ctx context.Context, roles []domain.Role) error {
	ret := _m.Called(ctx, roles)
	return ret.Error(0)
}

func (_m *TenantDataRepository) InsertOwnerAccount(ctx context.Context, owner *domain.TenantOwner) error {
	ret := _m.Called(ctx, owner)
	return ret.Error(0)
}

func (_m *TenantDataRepository) UpdateOwnerContact(ctx context.Context, owner *domain.TenantOwner) error {
	ret := _m.Called(ctx, owner)
	return ret.Error(0)
}

func (_m *TenantDataRepository) Stats(ctx context.Context) (*domain.TenantStats, error) {
	ret := _m.Called(ctx)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.TenantStats), ret.Error(1)
}

func (_m *TenantDataRepository) SearchAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	ret := _m.Called(ctx, filter)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).([]domain.Account), ret.Error(1)
}
