package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/shop-platform-api/internal/domain"
)

type TenantOwnerRepository struct {
	mock.Mock
}

func (_m *TenantOwnerRepository) Create(ctx context.Context, owner *domain.TenantOwner) (*domain.TenantOwner, error) {
	ret := _m.Called(ctx, owner)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.TenantOwner), ret.Error(1)
}

func (_m *TenantOwnerRepository) GetByTenantID(ctx context.Context, tenantID string) (*domain.TenantOwner, error) {
	ret := _m.Called(ctx, tenantID)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*domain.TenantOwner), ret.Error(1)
}

func (_m *TenantOwnerRepository) Update(ctx context.Context, owner *domain.TenantOwner) error {
	ret := _m.Called(ctx, owner)
	return ret.Error(0)
}

func (_m *TenantOwnerRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	ret := _m.Called(ctx, username)
	return ret.Bool(0), ret.Error(1)
}

func (_m *TenantOwnerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ret := _m.Called(ctx, email)
	return ret.Bool(0), ret.Error(1)
}

func (_m *TenantOwnerRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	ret := _m.Called(ctx, phone)
	return ret.Bool(0), ret.Error(1)
}
