package dto

import (
	"github.com/kingrain94/shop-platform-api/internal/domain"
)

func ToTenantResponse(tenant *domain.Tenant, stats *domain.TenantStats) TenantResponse {
	resp := TenantResponse{
		ID:                tenant.ID,
		Code:              tenant.Code,
		Name:              tenant.Name,
		DBName:            tenant.DBName,
		IsActive:          tenant.IsActive,
		Status:            string(tenant.Status),
		OwnerSynced:       tenant.OwnerSynced,
		SubscriptionStart: tenant.SubscriptionStart,
		SubscriptionEnd:   tenant.SubscriptionEnd,
		MaxUsers:          tenant.MaxUsers,
		MaxProducts:       tenant.MaxProducts,
		CreatedAt:         tenant.CreatedAt,
		UpdatedAt:         tenant.UpdatedAt,
	}
	if stats != nil {
		resp.Stats = &TenantStatsResponse{
			UserCount:    stats.UserCount,
			ProductCount: stats.ProductCount,
			Revenue:      stats.Revenue,
		}
	}
	return resp
}

func ToOwnerResponse(owner *domain.TenantOwner) *OwnerResponse {
	if owner == nil {
		return nil
	}
	return &OwnerResponse{
		ID:       owner.ID,
		Username: owner.Username,
		FullName: owner.FullName,
		Email:    owner.Email,
		Phone:    owner.Phone,
		IsActive: owner.IsActive,
	}
}

func ToTenantDetailResponse(tenant *domain.Tenant, owner *domain.TenantOwner, stats *domain.TenantStats) TenantDetailResponse {
	return TenantDetailResponse{
		TenantResponse: ToTenantResponse(tenant, stats),
		Owner:          ToOwnerResponse(owner),
	}
}

func ToAccountResponse(account domain.AccountWithTenant) AccountResponse {
	return AccountResponse{
		ID:         account.ID,
		TenantID:   account.TenantID,
		TenantCode: account.TenantCode,
		Username:   account.Username,
		FullName:   account.FullName,
		Email:      account.Email,
		Phone:      account.Phone,
		IsActive:   account.IsActive,
		CreatedAt:  account.CreatedAt,
	}
}
