package dto

import "time"

type CreateOwnerRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FullName string `json:"full_name" binding:"required" example:"Alice Nguyen"`
	Email    string `json:"email" binding:"required,email" example:"alice@shop01.example"`
	Phone    string `json:"phone" binding:"required" example:"+84901234567"`
}

type CreateTenantRequest struct {
	Code              string             `json:"code" binding:"required" example:"SHOP01"`
	Name              string             `json:"name" binding:"required" example:"Shop 01"`
	DBHost            string             `json:"db_host,omitempty" example:"localhost"`
	DBPort            int                `json:"db_port,omitempty" example:"5432"`
	DBName            string             `json:"db_name,omitempty" example:"shop_01"`
	DBUsername        string             `json:"db_username,omitempty"`
	DBPassword        string             `json:"db_password,omitempty"`
	MaxUsers          int                `json:"max_users,omitempty" example:"10"`
	MaxProducts       int                `json:"max_products,omitempty" example:"1000"`
	SubscriptionStart *time.Time         `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time         `json:"subscription_end,omitempty"`
	Owner             CreateOwnerRequest `json:"owner" binding:"required"`
}

type UpdateTenantRequest struct {
	Name            *string    `json:"name,omitempty"`
	MaxUsers        *int       `json:"max_users,omitempty"`
	MaxProducts     *int       `json:"max_products,omitempty"`
	SubscriptionEnd *time.Time `json:"subscription_end,omitempty"`
	OwnerFullName   *string    `json:"owner_full_name,omitempty"`
	OwnerEmail      *string    `json:"owner_email,omitempty"`
	OwnerPhone      *string    `json:"owner_phone,omitempty"`
}

type UpdateTenantStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type SearchAccountsRequest struct {
	Keyword string `form:"keyword"`
	Role    string `form:"role"`
	Active  *bool  `form:"active"`
	Limit   int    `form:"limit"`
}
