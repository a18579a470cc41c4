package domain

import "slices"

// Role represents an account role inside a tenant database
type Role string

const (
	// RoleOwner is the shop owner role assigned to the primary account during provisioning
	RoleOwner Role = "owner"

	// RoleManager can manage catalog, orders and staff accounts within the shop
	RoleManager Role = "manager"

	// RoleStaff has day-to-day access to sales and inventory operations
	RoleStaff Role = "staff"
)

// DefaultRoles is the baseline role set synchronized into every freshly
// provisioned tenant database.
var DefaultRoles = []Role{RoleOwner, RoleManager, RoleStaff}

// RoleDescriptions maps each baseline role to its human description.
var RoleDescriptions = map[Role]string{
	RoleOwner:   "Shop owner with full access",
	RoleManager: "Manages catalog, orders and staff",
	RoleStaff:   "Handles day-to-day sales and inventory",
}

// IsValidRole checks if a given role is part of the baseline role set
func IsValidRole(role string) bool {
	return slices.Contains(DefaultRoles, Role(role))
}
