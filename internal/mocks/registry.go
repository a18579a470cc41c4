package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/kingrain94/shop-platform-api/internal/repository"
)

type Registry struct {
	mock.Mock
}

func (_m *Registry) Tenant() repository.TenantRepository {
	ret := _m.Called()
	return ret.Get(0).(repository.TenantRepository)
}

func (_m *Registry) Owner() repository.TenantOwnerRepository {
	ret := _m.Called()
	return ret.Get(0).(repository.TenantOwnerRepository)
}

func (_m *Registry) ServerAdmin() repository.ServerAdminRepository {
	ret := _m.Called()
	return ret.Get(0).(repository.ServerAdminRepository)
}
