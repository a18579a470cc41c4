package domain

import "time"

// Account is a row in a tenant database's accounts table. It is never
// persisted in the master registry; the routing layer decides which
// physical database a query against it hits.
type Account struct {
	ID           string    `gorm:"column:account_id;primaryKey;type:uuid" json:"id"`
	Username     string    `gorm:"column:username;type:text;not null;unique" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null" json:"-"`
	FullName     string    `gorm:"column:full_name;type:text;not null" json:"full_name"`
	Email        string    `gorm:"column:email;type:text" json:"email"`
	Phone        string    `gorm:"column:phone;type:text" json:"phone"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamp with time zone;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}

type AccountFilter struct {
	Keyword string `json:"keyword"`
	Role    string `json:"role"`
	Active  *bool  `json:"active"`
	Limit   int    `json:"limit"`
}

// AccountWithTenant is an aggregator result row: an account annotated with
// the tenant it was found in.
type AccountWithTenant struct {
	Account
	TenantID   string `json:"tenant_id"`
	TenantCode string `json:"tenant_code"`
}
