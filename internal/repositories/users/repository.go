// Package users implements the account persistence adapter: a set of narrow
// capability contracts over one entity type, expressed entirely as commands
// sent to the dbx executor. Collaborators should depend on the slice they
// need, not on the composed Repository.
package users

import (
	"context"

	"github.com/somukhan9/dapper-identity/internal/identity"
)

// Store is the identity capability group: account lifecycle and the
// single-row lookups.
//
// Create, Update and Delete report persistence failures through the returned
// Result; the error return is reserved for argument validation and context
// cancellation. Lookups return nil (not an error) when no row matches.
type Store interface {
	Create(ctx context.Context, user *identity.User) (identity.Result, error)
	Update(ctx context.Context, user *identity.User) (identity.Result, error)
	Delete(ctx context.Context, user *identity.User) (identity.Result, error)
	FindByID(ctx context.Context, id int32) (*identity.User, error)
	FindByName(ctx context.Context, normalizedUserName string) (*identity.User, error)
}

// EmailStore looks an account up by its normalized email.
type EmailStore interface {
	FindByEmail(ctx context.Context, normalizedEmail string) (*identity.User, error)
}

// ClaimStore manages the claim rows attached to an account.
type ClaimStore interface {
	GetClaims(ctx context.Context, user *identity.User) ([]identity.Claim, error)
	AddClaims(ctx context.Context, user *identity.User, claims []identity.Claim) error
	ReplaceClaim(ctx context.Context, user *identity.User, oldClaim, newClaim identity.Claim) error
	RemoveClaims(ctx context.Context, user *identity.User, claims []identity.Claim) error
	GetUsersForClaim(ctx context.Context, claim identity.Claim) ([]identity.User, error)
}

// LoginStore is the external-login capability group. The postgres adapter
// declares it but does not implement it; every call fails with
// common.ErrorNotSupported (or an unsupported Result).
type LoginStore interface {
	AddLogin(ctx context.Context, user *identity.User, login identity.UserLogin) identity.Result
	RemoveLogin(ctx context.Context, user *identity.User, loginProvider, providerKey string) identity.Result
	GetLogins(ctx context.Context, user *identity.User) ([]identity.UserLogin, error)
	FindByLogin(ctx context.Context, loginProvider, providerKey string) (*identity.User, error)
}

// TokenStore is the account-token capability group, unimplemented like
// LoginStore.
type TokenStore interface {
	SetToken(ctx context.Context, user *identity.User, token identity.UserToken) identity.Result
	RemoveToken(ctx context.Context, user *identity.User, loginProvider, name string) identity.Result
	GetToken(ctx context.Context, user *identity.User, loginProvider, name string) (*identity.UserToken, error)
}

// RoleStore is the role membership capability group. Role names are resolved
// through their normalized form, so membership checks are case-insensitive.
type RoleStore interface {
	AddToRole(ctx context.Context, user *identity.User, roleName string) error
	RemoveFromRole(ctx context.Context, user *identity.User, roleName string) error
	GetRoles(ctx context.Context, user *identity.User) ([]string, error)
	IsInRole(ctx context.Context, user *identity.User, roleName string) (bool, error)
	GetUsersInRole(ctx context.Context, roleName string) ([]identity.User, error)
}

// Repository composes every capability group onto one contract for
// collaborators that genuinely need all of them (wiring, seeds).
type Repository interface {
	Store
	EmailStore
	ClaimStore
	LoginStore
	TokenStore
	RoleStore
}
