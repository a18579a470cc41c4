package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type ServerAdminRepository struct {
	mock.Mock
}

func (_m *ServerAdminRepository) CreateDatabase(ctx context.Context, name string) error {
	ret := _m.Called(ctx, name)
	return ret.Error(0)
}

func (_m *ServerAdminRepository) DropDatabase(ctx context.Context, name string) error {
	ret := _m.Called(ctx, name)
	return ret.Error(0)
}

func (_m *ServerAdminRepository) TerminateSessions(ctx context.Context, name string) error {
	ret := _m.Called(ctx, name)
	return ret.Error(0)
}
