// Package repomanager provides a concrete RepositoryManager for PostgreSQL
// and SQLite, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/myjar/internal/dbx"
	"github.com/dmitrijs2005/myjar/internal/server/migrations"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/attributes"
	"github.com/dmitrijs2005/myjar/internal/server/repositories/clients"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends SQL-backed repository implementations for one
// dialect and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Clients returns a clients.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Clients(db dbx.DBTX) clients.Repository {
	return clients.NewSQLRepository(db, m.dialect)
}

// Attributes returns an attributes.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Attributes(db dbx.DBTX) attributes.Repository {
	return attributes.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and runs them against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, string(m.dialect)); err != nil {
		return err
	}
	return nil
}

// Open connects to dsn. postgres:// and postgresql:// DSNs use pgx; sqlite://
// DSNs, file: URIs and plain paths use the embedded SQLite driver.
func Open(ctx context.Context, dsn string) (*sql.DB, dbx.Dialect, error) {
	driver, source, dialect := resolveDSN(dsn)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		// a single writer avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("db ping error: %w", err)
	}

	return db, dialect, nil
}

func resolveDSN(dsn string) (driver, source string, dialect dbx.Dialect) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn, dbx.DialectPostgres
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite://"), dbx.DialectSQLite
	default:
		return "sqlite", dsn, dbx.DialectSQLite
	}
}
