package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/domain"
	"github.com/kingrain94/shop-platform-api/internal/routing"
	"github.com/kingrain94/shop-platform-api/internal/utils"
)

// TenantDataRepository runs statements inside the database of whichever
// tenant the context is bound to. It never holds a pool itself; every call
// resolves one through the routing data source, so pools outlive the
// context values that reference them.
type TenantDataRepository struct {
	routes *routing.DataSource
}

func NewTenantDataRepository(routes *routing.DataSource) *TenantDataRepository {
	return &TenantDataRepository{routes: routes}
}

// scoped resolves the pool for the tenant bound to ctx.
func (r *TenantDataRepository) scoped(ctx context.Context) (*gorm.DB, error) {
	tenantID, err := utils.TenantIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	db, err := r.routes.Resolve(tenantID)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// SyncRoles installs the baseline role set into the tenant database,
// skipping roles that already exist.
func (r *TenantDataRepository) SyncRoles(ctx context.Context, roles []domain.Role) error {
	db, err := r.scoped(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range roles {
			err := tx.Exec(
				`INSERT INTO roles (role_name, description) VALUES (?, ?) ON CONFLICT (role_name) DO NOTHING`,
				string(role), domain.RoleDescriptions[role]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertOwnerAccount mirrors the master-registry owner into the tenant
// database and assigns it the owner role, as one transaction. The inserts
// are idempotent so the reconciliation path can retry after an ambiguous
// failure.
func (r *TenantDataRepository) InsertOwnerAccount(ctx context.Context, owner *domain.TenantOwner) error {
	db, err := r.scoped(ctx)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			`INSERT INTO accounts (account_id, username, password_hash, full_name, email, phone, is_active)
			 VALUES (?, ?, ?, ?, ?, ?, TRUE)
			 ON CONFLICT (account_id) DO NOTHING`,
			owner.ID, owner.Username, owner.PasswordHash, owner.FullName, owner.Email, owner.Phone).Error
		if err != nil {
			return err
		}

		return tx.Exec(
			`INSERT INTO account_roles (account_id, role_id)
			 SELECT ?, role_id FROM roles WHERE role_name = ?
			 ON CONFLICT (account_id, role_id) DO NOTHING`,
			owner.ID, string(domain.RoleOwner)).Error
	})
}

// UpdateOwnerContact mirrors owner contact changes from the master
// registry into the tenant database's accounts row.
func (r *TenantDataRepository) UpdateOwnerContact(ctx context.Context, owner *domain.TenantOwner) error {
	db, err := r.scoped(ctx)
	if err != nil {
		return err
	}

	return db.Exec(
		`UPDATE accounts SET full_name = ?, email = ?, phone = ? WHERE username = ?`,
		owner.FullName, owner.Email, owner.Phone, owner.Username).Error
}

// Stats computes the tenant-scoped aggregates surfaced on tenant views.
func (r *TenantDataRepository) Stats(ctx context.Context) (*domain.TenantStats, error) {
	db, err := r.scoped(ctx)
	if err != nil {
		return nil, err
	}

	var stats domain.TenantStats
	err = db.Raw(
		`SELECT
			(SELECT COUNT(*) FROM accounts) AS user_count,
			(SELECT COUNT(*) FROM products) AS product_count,
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled') AS revenue`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// SearchAccounts runs a tenant-local account search with the optional
// keyword/active/role filters.
func (r *TenantDataRepository) SearchAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	db, err := r.scoped(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&domain.Account{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("username ILIKE ? OR full_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	if filter.Role != "" {
		query = query.Where(
			`account_id IN (
				SELECT ar.account_id FROM account_roles ar
				JOIN roles ro ON ro.role_id = ar.role_id
				WHERE ro.role_name = ?)`, filter.Role)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var accounts []domain.Account
	if err := query.Order("username").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
