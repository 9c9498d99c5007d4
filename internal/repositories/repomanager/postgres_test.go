package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/somukhan9/dapper-identity/internal/dbx"
	"github.com/somukhan9/dapper-identity/internal/logging"
	"github.com/somukhan9/dapper-identity/internal/repositories/roles"
	"github.com/somukhan9/dapper-identity/internal/repositories/users"
)

func newManagerWithMock(t *testing.T) (*PostgresManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	sdb := sqlx.NewDb(db, "pgx")
	exec := dbx.NewExecutor(sdb, log)
	return &PostgresManager{
		db:    sdb,
		exec:  exec,
		users: users.NewPostgresRepository(exec, log),
		roles: roles.NewPostgresRepository(exec, log),
	}, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	m, _ := newManagerWithMock(t)

	if m.Users() == nil {
		t.Fatal("Users() nil")
	}
	if m.Roles() == nil {
		t.Fatal("Roles() nil")
	}
	if m.Executor() == nil {
		t.Fatal("Executor() nil")
	}

	var _ users.Repository = m.Users()
	var _ roles.Store = m.Roles()
}

func TestRunMigrations_Success(t *testing.T) {
	m, _ := newManagerWithMock(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	m, _ := newManagerWithMock(t)

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	if err := m.RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPing(t *testing.T) {
	m, mock := newManagerWithMock(t)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	if err := m.Ping(context.Background()); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
}
