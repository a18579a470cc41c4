package dto

import "time"

type TenantStatsResponse struct {
	UserCount    int64   `json:"user_count"`
	ProductCount int64   `json:"product_count"`
	Revenue      float64 `json:"revenue"`
}

type OwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

type TenantResponse struct {
	ID                string               `json:"id"`
	Code              string               `json:"code"`
	Name              string               `json:"name"`
	DBName            string               `json:"db_name"`
	IsActive          bool                 `json:"is_active"`
	Status            string               `json:"status"`
	OwnerSynced       bool                 `json:"owner_synced"`
	SubscriptionStart time.Time            `json:"subscription_start"`
	SubscriptionEnd   *time.Time           `json:"subscription_end,omitempty"`
	MaxUsers          int                  `json:"max_users"`
	MaxProducts       int                  `json:"max_products"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Stats             *TenantStatsResponse `json:"stats,omitempty"`
}

type TenantDetailResponse struct {
	TenantResponse
	Owner *OwnerResponse `json:"owner,omitempty"`
}

type AccountResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	TenantCode string    `json:"tenant_code"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
