// Package roles persists identity roles over hand-written SQL.
package roles

import (
	"context"

	"github.com/somukhan9/dapper-identity/internal/identity"
)

// Store is the persistence contract for roles. Mutations report their
// outcome as an identity.Result; the error channel is reserved for missing
// arguments and cancelled contexts. Lookups return nil when no role matches.
type Store interface {
	Create(ctx context.Context, role *identity.Role) (identity.Result, error)
	Update(ctx context.Context, role *identity.Role) (identity.Result, error)
	Delete(ctx context.Context, role *identity.Role) (identity.Result, error)

	FindByID(ctx context.Context, id int32) (*identity.Role, error)
	// FindByName matches on the normalized role name.
	FindByName(ctx context.Context, normalizedName string) (*identity.Role, error)
}
