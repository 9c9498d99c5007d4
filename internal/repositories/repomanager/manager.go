// Package repomanager wires the database handle, the command executor and the
// persistence adapters together behind a single entry point.
package repomanager

import (
	"context"

	"github.com/somukhan9/dapper-identity/internal/dbx"
	"github.com/somukhan9/dapper-identity/internal/repositories/roles"
	"github.com/somukhan9/dapper-identity/internal/repositories/users"
)

// Manager vends the persistence adapters and owns the database handle they
// share.
type Manager interface {
	// Users returns the user persistence adapter.
	Users() users.Repository

	// Roles returns the role persistence adapter.
	Roles() roles.Store

	// Executor returns the shared command executor for ad hoc commands.
	Executor() *dbx.Executor

	// RunMigrations brings the identity schema up to date.
	RunMigrations(ctx context.Context) error

	// Ping probes database connectivity.
	Ping(ctx context.Context) error

	// Close releases the database handle.
	Close() error
}
