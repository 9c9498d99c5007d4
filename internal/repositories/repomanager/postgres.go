package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/somukhan9/dapper-identity/internal/config"
	"github.com/somukhan9/dapper-identity/internal/dbx"
	"github.com/somukhan9/dapper-identity/internal/logging"
	"github.com/somukhan9/dapper-identity/internal/migrations"
	"github.com/somukhan9/dapper-identity/internal/repositories/roles"
	"github.com/somukhan9/dapper-identity/internal/repositories/users"
)

// PostgresManager is the PostgreSQL-backed Manager. It opens the pgx handle,
// applies the pool limits from config and hands one executor to both adapters.
type PostgresManager struct {
	db    *sqlx.DB
	exec  *dbx.Executor
	users users.Repository
	roles roles.Store
}

var _ Manager = (*PostgresManager)(nil)

// NewPostgresManager opens the database and constructs the adapters. The
// handle is pooled; each executor call borrows a connection for exactly one
// round trip.
func NewPostgresManager(cfg *config.Config, log logging.Logger) (*PostgresManager, error) {
	db, err := sqlx.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	exec := dbx.NewExecutor(db, log, dbx.WithDefaultTimeout(cfg.CommandTimeout))

	return &PostgresManager{
		db:    db,
		exec:  exec,
		users: users.NewPostgresRepository(exec, log),
		roles: roles.NewPostgresRepository(exec, log),
	}, nil
}

func (m *PostgresManager) Users() users.Repository { return m.users }

func (m *PostgresManager) Roles() roles.Store { return m.roles }

func (m *PostgresManager) Executor() *dbx.Executor { return m.exec }

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the managed connection.
func (m *PostgresManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db.DB, "."); err != nil {
		return err
	}
	return nil
}

// Ping probes connectivity through the executor.
func (m *PostgresManager) Ping(ctx context.Context) error {
	return m.exec.Ping(ctx)
}

// Close releases the pooled connections.
func (m *PostgresManager) Close() error {
	return m.db.Close()
}
