package routing

import "fmt"

// UnknownTenantError is returned when a routing lookup misses. Pools are
// pre-registered at startup and added at tenant creation, so a miss means a
// provisioning bug or a stale cache and is always fatal to the calling
// operation.
type UnknownTenantError struct {
	TenantID string
}

func (e *UnknownTenantError) Error() string {
	return fmt.Sprintf("no connection pool registered for tenant %q", e.TenantID)
}

// ConnectionError wraps a failure to build a pool from a tenant's
// connection descriptor: a malformed descriptor or an unreachable host.
type ConnectionError struct {
	TenantID string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to open connection pool for tenant %q: %v", e.TenantID, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
