package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/domain"
)

type PoolFactory struct {
	mock.Mock
}

func (_m *PoolFactory) NewPool(ctx context.Context, tenant *domain.Tenant) (*gorm.DB, error) {
	ret := _m.Called(ctx, tenant)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*gorm.DB), ret.Error(1)
}
