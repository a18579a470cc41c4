package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/domain"
)

type TenantOwnerRepository struct {
	db *gorm.DB
}

func NewTenantOwnerRepository(db *gorm.DB) *TenantOwnerRepository {
	return &TenantOwnerRepository{db: db}
}

func (r *TenantOwnerRepository) Create(ctx context.Context, owner *domain.TenantOwner) (*domain.TenantOwner, error) {
	if err := r.db.WithContext(ctx).Create(owner).Error; err != nil {
		return nil, err
	}
	return owner, nil
}

func (r *TenantOwnerRepository) GetByTenantID(ctx context.Context, tenantID string) (*domain.TenantOwner, error) {
	var owner domain.TenantOwner
	if err := r.db.WithContext(ctx).First(&owner, "tenant_id = ?", tenantID).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *TenantOwnerRepository) Update(ctx context.Context, owner *domain.TenantOwner) error {
	return r.db.WithContext(ctx).Save(owner).Error
}

func (r *TenantOwnerRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *TenantOwnerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *TenantOwnerRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone = ?", phone)
}

func (r *TenantOwnerRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.TenantOwner{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
