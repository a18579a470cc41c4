package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Migrator struct {
	mock.Mock
}

func (_m *Migrator) Run(ctx context.Context, tenantID string) error {
	ret := _m.Called(ctx, tenantID)
	return ret.Error(0)
}
