package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTenantNotFound is returned for lookups of unknown tenant ids or codes.
	ErrTenantNotFound = errors.New("tenant not found")
)

// ConflictError reports a uniqueness violation on a caller-supplied field
// (tenant code, database name, owner username/email/phone). Safe to show
// verbatim to an admin UI.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q is already in use", e.Field, e.Value)
}

// ProvisioningError reports a failed provisioning step. By the time it is
// returned, the compensating rollback (registry row deletion, pool
// eviction, best-effort database drop) has already run.
type ProvisioningError struct {
	Step string
	Err  error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("tenant provisioning failed at %s: %v", e.Step, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// PartialSuccessError reports that the master-side tenant and owner rows
// were committed but the owner mirror could not be written into the tenant
// database. The master rows are deliberately not rolled back: the master
// registry is the source of truth for subsequent lookups, and retrying
// only the tenant-side insert is the intended recovery path.
type PartialSuccessError struct {
	TenantID string
	Err      error
}

func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("tenant %s created but owner account could not be created in tenant database: %v", e.TenantID, e.Err)
}

func (e *PartialSuccessError) Unwrap() error {
	return e.Err
}
