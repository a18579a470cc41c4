package tenantdb

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kingrain94/shop-platform-api/internal/routing"
	"github.com/kingrain94/shop-platform-api/pkg/logger"
)

// MigrationError reports which schema version failed. The tenant database
// is left at the last successfully applied version.
type MigrationError struct {
	Version int
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration version %d failed: %v", e.Version, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Runner applies the versioned tenant schema through the pool resolved for
// the tenant. Applied versions are recorded in schema_migrations, so
// re-running against an already-migrated database is a no-op.
type Runner struct {
	routes     *routing.DataSource
	migrations []Migration
	logger     *logger.Logger
}

func NewRunner(routes *routing.DataSource, logger *logger.Logger) *Runner {
	return &Runner{
		routes:     routes,
		migrations: Migrations,
		logger:     logger,
	}
}

// NewRunnerWithMigrations builds a runner over an explicit migration set.
func NewRunnerWithMigrations(routes *routing.DataSource, migrations []Migration, logger *logger.Logger) *Runner {
	return &Runner{
		routes:     routes,
		migrations: migrations,
		logger:     logger,
	}
}

// Run applies all migrations not yet recorded as applied, in strict
// ascending version order, each inside its own transaction.
func (r *Runner) Run(ctx context.Context, tenantID string) error {
	db, err := r.routes.Resolve(tenantID)
	if err != nil {
		return err
	}

	if err := r.ensureVersionTable(ctx, db); err != nil {
		return err
	}

	applied, err := r.appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		if err := r.apply(ctx, db, m); err != nil {
			return &MigrationError{Version: m.Version, Err: err}
		}
		r.logger.Info("applied tenant migration",
			zap.String("tenant_id", tenantID),
			zap.Int("version", m.Version),
			zap.String("name", m.Name))
	}

	return nil
}

func (r *Runner) ensureVersionTable(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`).Error
}

func (r *Runner) appliedVersions(ctx context.Context, db *gorm.DB) (map[int]bool, error) {
	var versions []int
	if err := db.WithContext(ctx).Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, err
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, db *gorm.DB, m Migration) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range m.Statements {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name).Error
	})
}
