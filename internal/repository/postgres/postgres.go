package postgres

import (
	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/repository"
)

type postgresRegistry struct {
	masterDB   *gorm.DB
	tenantRepo repository.TenantRepository
	ownerRepo  repository.TenantOwnerRepository
	adminRepo  repository.ServerAdminRepository
}

// NewRegistry wires the master registry repositories over the master
// database connection and the server-admin connection.
func NewRegistry(masterDB, adminDB *gorm.DB) repository.Registry {
	return &postgresRegistry{
		masterDB:   masterDB,
		tenantRepo: NewTenantRepository(masterDB),
		ownerRepo:  NewTenantOwnerRepository(masterDB),
		adminRepo:  NewServerAdminRepository(adminDB),
	}
}

func (r *postgresRegistry) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRegistry) Owner() repository.TenantOwnerRepository {
	return r.ownerRepo
}

func (r *postgresRegistry) ServerAdmin() repository.ServerAdminRepository {
	return r.adminRepo
}
