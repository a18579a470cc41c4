package utils

import (
	"context"
	"errors"
)

type ContextKey string

const (
	ClaimsKey   ContextKey = "claims"
	TenantIDKey ContextKey = "tenant_id"
)

var (
	ErrNoTenantInContext   = errors.New("no tenant bound to context")
	ErrInvalidTenantIDType = errors.New("tenant_id must be a string")
)

// WithTenantID binds a unit of work to a tenant. The binding lives only in
// the derived context, so concurrent units of work never observe each
// other's tenant.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// TenantIDFromContext returns the tenant the calling unit of work is bound
// to, or ErrNoTenantInContext when unbound.
func TenantIDFromContext(ctx context.Context) (string, error) {
	v := ctx.Value(TenantIDKey)
	if v == nil {
		return "", ErrNoTenantInContext
	}

	tenantID, ok := v.(string)
	if !ok {
		return "", ErrInvalidTenantIDType
	}

	return tenantID, nil
}

// RunWithTenant runs fn with ctx bound to tenantID. The binding is scoped
// to the derived context passed to fn, so it is released on every exit
// path, including errors.
func RunWithTenant(ctx context.Context, tenantID string, fn func(ctx context.Context) error) error {
	return fn(WithTenantID(ctx, tenantID))
}
