package repository

import (
	"context"
	"errors"

	"github.com/kingrain94/shop-platform-api/internal/domain"
)

// ErrDatabaseExists is returned by ServerAdminRepository.CreateDatabase
// when a physical database of the requested name is already present. This
// is caller-correctable, not fatal.
var ErrDatabaseExists = errors.New("database already exists")

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetByCode(ctx context.Context, code string) (*domain.Tenant, error)
	List(ctx context.Context) ([]domain.Tenant, error)
	ListActive(ctx context.Context) ([]domain.Tenant, error)
	ListOwnerUnsynced(ctx context.Context) ([]domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	UpdateStatus(ctx context.Context, id string, active bool) error
	MarkOwnerSynced(ctx context.Context, id string, synced bool) error
	Delete(ctx context.Context, id string) error
	CodeExists(ctx context.Context, code string) (bool, error)
	DatabaseNameExists(ctx context.Context, name string) (bool, error)
}

//go:generate mockery --name TenantOwnerRepository --output ../mocks
type TenantOwnerRepository interface {
	Create(ctx context.Context, owner *domain.TenantOwner) (*domain.TenantOwner, error)
	GetByTenantID(ctx context.Context, tenantID string) (*domain.TenantOwner, error)
	Update(ctx context.Context, owner *domain.TenantOwner) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
}

// ServerAdminRepository runs server-level administrative statements with
// the master SQL login: creating and dropping physical tenant databases.
//
//go:generate mockery --name ServerAdminRepository --output ../mocks
type ServerAdminRepository interface {
	CreateDatabase(ctx context.Context, name string) error
	DropDatabase(ctx context.Context, name string) error
	TerminateSessions(ctx context.Context, name string) error
}

// TenantDataRepository executes statements inside the tenant database of
// the tenant currently bound to the context. Every method resolves its
// pool through the routing data source.
//
//go:generate mockery --name TenantDataRepository --output ../mocks
type TenantDataRepository interface {
	SyncRoles(ctx context.Context, roles []domain.Role) error
	InsertOwnerAccount(ctx context.Context, owner *domain.TenantOwner) error
	UpdateOwnerContact(ctx context.Context, owner *domain.TenantOwner) error
	Stats(ctx context.Context) (*domain.TenantStats, error)
	SearchAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

//go:generate mockery --name Registry --output ../mocks
type Registry interface {
	Tenant() TenantRepository
	Owner() TenantOwnerRepository
	ServerAdmin() ServerAdminRepository
}
