package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/repository"
)

// pgDuplicateDatabase is the SQLSTATE raised by CREATE DATABASE when the
// name is taken.
const pgDuplicateDatabase = "42P04"

// ServerAdminRepository issues server-level statements with the master SQL
// login. CREATE/DROP DATABASE cannot run inside a transaction and take the
// database name as an identifier, not a bind parameter, so names are
// quoted explicitly.
type ServerAdminRepository struct {
	db *gorm.DB
}

func NewServerAdminRepository(db *gorm.DB) *ServerAdminRepository {
	return &ServerAdminRepository{db: db}
}

func (r *ServerAdminRepository) CreateDatabase(ctx context.Context, name string) error {
	err := r.db.WithContext(ctx).Exec(fmt.Sprintf(`CREATE DATABASE %s`, quoteIdentifier(name))).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateDatabase {
			return repository.ErrDatabaseExists
		}
		return err
	}
	return nil
}

func (r *ServerAdminRepository) DropDatabase(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Exec(fmt.Sprintf(`DROP DATABASE %s`, quoteIdentifier(name))).Error
}

// TerminateSessions forcibly disconnects every live session against the
// named database so a subsequent DROP DATABASE can proceed.
func (r *ServerAdminRepository) TerminateSessions(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Exec(
		`SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = ? AND pid <> pg_backend_pid()`,
		name).Error
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
