package roles

import (
	"context"
	"fmt"

	"github.com/somukhan9/dapper-identity/internal/common"
	"github.com/somukhan9/dapper-identity/internal/dbx"
	"github.com/somukhan9/dapper-identity/internal/identity"
	"github.com/somukhan9/dapper-identity/internal/logging"
)

const (
	msgCreateFailed = "Error occurred while creating role."
	msgUpdateFailed = "Error occurred while updating role."
	msgDeleteFailed = "Error occurred while deleting role."
)

// PostgresRepository implements Store over the Roles table.
type PostgresRepository struct {
	exec *dbx.Executor
	log  logging.Logger
}

func NewPostgresRepository(exec *dbx.Executor, log logging.Logger) *PostgresRepository {
	return &PostgresRepository{exec: exec, log: log}
}

var _ Store = (*PostgresRepository)(nil)

// Create inserts the role and captures its generated id. A fresh concurrency
// stamp is always assigned and a missing normalized name is derived from the
// plain name.
func (r *PostgresRepository) Create(ctx context.Context, role *identity.Role) (identity.Result, error) {
	if role == nil {
		return identity.Result{}, fmt.Errorf("role: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return identity.Result{}, err
	}

	role.ConcurrencyStamp = identity.NewStamp()
	if role.NormalizedName == "" {
		role.NormalizedName = identity.Normalize(role.Name)
	}

	query := `INSERT INTO "Roles" ("Name", "NormalizedName", "ConcurrencyStamp")
		VALUES (:Name, :NormalizedName, :ConcurrencyStamp)
		RETURNING CAST("Id" AS INT)`

	id, err := dbx.QueryFirst[int32](ctx, r.exec, dbx.NewCommand(query, role))
	if err != nil || id == nil {
		r.log.Error(ctx, "create role failed", "error", err)
		return identity.Failed(msgCreateFailed), nil
	}

	role.ID = *id
	return identity.Ok(), nil
}

// Update rewrites the role row keyed by id.
func (r *PostgresRepository) Update(ctx context.Context, role *identity.Role) (identity.Result, error) {
	if role == nil {
		return identity.Result{}, fmt.Errorf("role: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return identity.Result{}, err
	}

	query := `UPDATE "Roles" SET
		"Name" = :Name, "NormalizedName" = :NormalizedName, "ConcurrencyStamp" = :ConcurrencyStamp
		WHERE "Id" = :Id`

	n, err := r.exec.ExecOne(ctx, dbx.NewCommand(query, role))
	if err != nil || n != 1 {
		r.log.Error(ctx, "update role failed", "id", role.ID, "affected", n, "error", err)
		return identity.Failed(msgUpdateFailed), nil
	}
	return identity.Ok(), nil
}

// Delete removes the role row together with its membership links, in one
// transaction. A partial failure leaves all rows intact.
func (r *PostgresRepository) Delete(ctx context.Context, role *identity.Role) (identity.Result, error) {
	if role == nil {
		return identity.Result{}, fmt.Errorf("role: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return identity.Result{}, err
	}

	id := map[string]any{"Id": role.ID}
	batch := dbx.NewBatch(
		dbx.NewCommand(`DELETE FROM "AccountRoles" WHERE "RoleId" = :Id`, id),
		dbx.NewCommand(`DELETE FROM "RoleClaims" WHERE "RoleId" = :Id`, id),
		dbx.NewCommand(`DELETE FROM "Roles" WHERE "Id" = :Id`, id),
	)

	n, err := r.exec.ExecBatch(ctx, batch)
	if err != nil || n == 0 {
		r.log.Error(ctx, "delete role failed", "id", role.ID, "affected", n, "error", err)
		return identity.Failed(msgDeleteFailed), nil
	}
	return identity.Ok(), nil
}

// FindByID returns the role with the given id, or nil when none exists.
func (r *PostgresRepository) FindByID(ctx context.Context, id int32) (*identity.Role, error) {
	query := `SELECT * FROM "Roles" WHERE "Id" = :Id`

	return dbx.QuerySingle[identity.Role](ctx, r.exec, dbx.NewCommand(query, map[string]any{"Id": id}))
}

// FindByName returns the role whose normalized name matches, or nil.
func (r *PostgresRepository) FindByName(ctx context.Context, normalizedName string) (*identity.Role, error) {
	query := `SELECT * FROM "Roles" WHERE "NormalizedName" = :NormalizedName`

	return dbx.QuerySingle[identity.Role](ctx, r.exec,
		dbx.NewCommand(query, map[string]any{"NormalizedName": normalizedName}))
}
