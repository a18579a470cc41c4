package domain

import (
	"time"
)

// TenantStatus tracks where a tenant is in its provisioning lifecycle.
// The status is persisted so that a crash mid-provisioning is observable
// and cleanable by an operator.
type TenantStatus string

const (
	TenantStatusProvisioning TenantStatus = "provisioning"
	TenantStatusActive       TenantStatus = "active"
	TenantStatusInactive     TenantStatus = "inactive"
	TenantStatusDeleting     TenantStatus = "deleting"
)

// Tenant is a master-registry row describing one shop and the physical
// database it owns. The connection descriptor fields hold the tenant's own
// application credentials, not the server-admin login.
type Tenant struct {
	ID                string       `gorm:"column:tenant_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Code              string       `gorm:"column:tenant_code;type:text;not null;unique" json:"code"`
	Name              string       `gorm:"column:tenant_name;type:text;not null" json:"name"`
	DBHost            string       `gorm:"column:db_host;type:text;not null" json:"db_host"`
	DBPort            int          `gorm:"column:db_port;not null;default:5432" json:"db_port"`
	DBName            string       `gorm:"column:db_name;type:text;not null;unique" json:"db_name"`
	DBUsername        string       `gorm:"column:db_username;type:text;not null" json:"-"`
	DBPassword        string       `gorm:"column:db_password;type:text;not null" json:"-"`
	IsActive          bool         `gorm:"column:is_active;not null;default:false" json:"is_active"`
	Status            TenantStatus `gorm:"column:status;type:text;not null;default:'provisioning'" json:"status"`
	OwnerSynced       bool         `gorm:"column:owner_synced;not null;default:false" json:"owner_synced"`
	SubscriptionStart time.Time    `gorm:"column:subscription_start;type:timestamp with time zone" json:"subscription_start"`
	SubscriptionEnd   *time.Time   `gorm:"column:subscription_end;type:timestamp with time zone" json:"subscription_end,omitempty"`
	MaxUsers          int          `gorm:"column:max_users;not null;default:10" json:"max_users"`
	MaxProducts       int          `gorm:"column:max_products;not null;default:1000" json:"max_products"`
	CreatedAt         time.Time    `gorm:"column:created_at;type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time    `gorm:"column:updated_at;type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// TenantStats are per-tenant aggregates computed inside the tenant database.
type TenantStats struct {
	UserCount    int64   `json:"user_count"`
	ProductCount int64   `json:"product_count"`
	Revenue      float64 `json:"revenue"`
}
