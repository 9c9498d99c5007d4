package users

import (
	"context"
	"fmt"

	"github.com/somukhan9/dapper-identity/internal/common"
	"github.com/somukhan9/dapper-identity/internal/dbx"
	"github.com/somukhan9/dapper-identity/internal/identity"
	"github.com/somukhan9/dapper-identity/internal/logging"
)

const (
	msgCreateFailed = "Error occurred while creating a user."
	msgUpdateFailed = "Error occurred while updating a user."
	msgDeleteFailed = "Error occurred while deleting a user."
)

// PostgresRepository implements every user capability group over the
// Accounts schema. All SQL lives here; the executor is the only way it
// reaches the database.
type PostgresRepository struct {
	exec *dbx.Executor
	log  logging.Logger
}

func NewPostgresRepository(exec *dbx.Executor, log logging.Logger) *PostgresRepository {
	return &PostgresRepository{exec: exec, log: log}
}

var _ Repository = (*PostgresRepository)(nil)

// Create inserts the account and captures its generated id. Fresh
// concurrency and security stamps are always assigned, UserName defaults to
// Email when absent, and missing normalized fields are derived so the
// upper-case invariant holds from the first row. Callers that set the
// normalized fields themselves win over the derivation.
func (r *PostgresRepository) Create(ctx context.Context, user *identity.User) (identity.Result, error) {
	if user == nil {
		return identity.Result{}, fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return identity.Result{}, err
	}

	user.ConcurrencyStamp = identity.NewStamp()
	user.SecurityStamp = identity.NewStamp()

	if user.UserName == "" {
		user.UserName = user.Email
	}
	if user.NormalizedUserName == "" {
		user.NormalizedUserName = identity.Normalize(user.UserName)
	}
	if user.NormalizedEmail == "" {
		user.NormalizedEmail = identity.Normalize(user.Email)
	}

	query := `INSERT INTO "Accounts"
		("UserName", "NormalizedUserName", "Email", "NormalizedEmail", "EmailConfirmed",
		 "PasswordHash", "SecurityStamp", "ConcurrencyStamp", "PhoneNumber", "PhoneNumberConfirmed",
		 "TwoFactorEnabled", "LockoutEnd", "LockoutEnabled", "AccessFailedCount", "FirstName", "LastName")
		VALUES (:UserName, :NormalizedUserName, :Email, :NormalizedEmail, :EmailConfirmed,
		 :PasswordHash, :SecurityStamp, :ConcurrencyStamp, :PhoneNumber, :PhoneNumberConfirmed,
		 :TwoFactorEnabled, :LockoutEnd, :LockoutEnabled, :AccessFailedCount, :FirstName, :LastName)
		RETURNING CAST("Id" AS INT)`

	id, err := dbx.QueryFirst[int32](ctx, r.exec, dbx.NewCommand(query, user))
	if err != nil || id == nil {
		r.log.Error(ctx, "create user failed", "error", err)
		return identity.Failed(msgCreateFailed), nil
	}

	user.ID = *id
	return identity.Ok(), nil
}

// Update rewrites the full row keyed by id. The concurrency stamp is stored
// but deliberately absent from the WHERE clause; two concurrent updates to
// the same account race at the row level and the later write wins.
func (r *PostgresRepository) Update(ctx context.Context, user *identity.User) (identity.Result, error) {
	if user == nil {
		return identity.Result{}, fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return identity.Result{}, err
	}

	query := `UPDATE "Accounts" SET
		"UserName" = :UserName, "NormalizedUserName" = :NormalizedUserName,
		"Email" = :Email, "NormalizedEmail" = :NormalizedEmail, "EmailConfirmed" = :EmailConfirmed,
		"PasswordHash" = :PasswordHash, "SecurityStamp" = :SecurityStamp,
		"ConcurrencyStamp" = :ConcurrencyStamp, "PhoneNumber" = :PhoneNumber,
		"PhoneNumberConfirmed" = :PhoneNumberConfirmed, "TwoFactorEnabled" = :TwoFactorEnabled,
		"LockoutEnd" = :LockoutEnd, "LockoutEnabled" = :LockoutEnabled,
		"AccessFailedCount" = :AccessFailedCount, "FirstName" = :FirstName, "LastName" = :LastName
		WHERE "Id" = :Id`

	n, err := r.exec.ExecOne(ctx, dbx.NewCommand(query, user))
	if err != nil || n != 1 {
		r.log.Error(ctx, "update user failed", "id", user.ID, "affected", n, "error", err)
		return identity.Failed(msgUpdateFailed), nil
	}
	return identity.Ok(), nil
}

// Delete removes the account row together with every claim, role-link,
// login and token row referencing it, in one transaction. A partial failure
// leaves all rows intact.
func (r *PostgresRepository) Delete(ctx context.Context, user *identity.User) (identity.Result, error) {
	if user == nil {
		return identity.Result{}, fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return identity.Result{}, err
	}

	id := map[string]any{"Id": user.ID}
	batch := dbx.NewBatch(
		dbx.NewCommand(`DELETE FROM "AccountClaims" WHERE "UserId" = :Id`, id),
		dbx.NewCommand(`DELETE FROM "AccountRoles" WHERE "UserId" = :Id`, id),
		dbx.NewCommand(`DELETE FROM "AccountLogins" WHERE "UserId" = :Id`, id),
		dbx.NewCommand(`DELETE FROM "AccountTokens" WHERE "UserId" = :Id`, id),
		dbx.NewCommand(`DELETE FROM "Accounts" WHERE "Id" = :Id`, id),
	)

	n, err := r.exec.ExecBatch(ctx, batch)
	if err != nil || n == 0 {
		r.log.Error(ctx, "delete user failed", "id", user.ID, "affected", n, "error", err)
		return identity.Failed(msgDeleteFailed), nil
	}
	return identity.Ok(), nil
}

// FindByID returns the account with the given id, or nil when none exists.
func (r *PostgresRepository) FindByID(ctx context.Context, id int32) (*identity.User, error) {
	query := `SELECT * FROM "Accounts" WHERE "Id" = :Id`

	return dbx.QuerySingle[identity.User](ctx, r.exec, dbx.NewCommand(query, map[string]any{"Id": id}))
}

// FindByName returns the account whose normalized user name matches, or nil.
func (r *PostgresRepository) FindByName(ctx context.Context, normalizedUserName string) (*identity.User, error) {
	query := `SELECT * FROM "Accounts" WHERE "NormalizedUserName" = :NormalizedUserName`

	return dbx.QuerySingle[identity.User](ctx, r.exec,
		dbx.NewCommand(query, map[string]any{"NormalizedUserName": normalizedUserName}))
}

// FindByEmail returns the account whose normalized email matches, or nil.
func (r *PostgresRepository) FindByEmail(ctx context.Context, normalizedEmail string) (*identity.User, error) {
	query := `SELECT * FROM "Accounts" WHERE "NormalizedEmail" = :NormalizedEmail`

	return dbx.QuerySingle[identity.User](ctx, r.exec,
		dbx.NewCommand(query, map[string]any{"NormalizedEmail": normalizedEmail}))
}

// GetClaims returns the (type, value) pairs attached to the account.
func (r *PostgresRepository) GetClaims(ctx context.Context, user *identity.User) ([]identity.Claim, error) {
	if user == nil {
		return nil, fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}

	query := `SELECT "ClaimType", "ClaimValue" FROM "AccountClaims" WHERE "UserId" = :UserId`

	return dbx.QueryMany[identity.Claim](ctx, r.exec,
		dbx.NewCommand(query, map[string]any{"UserId": user.ID}))
}

// AddClaims inserts one claim row per pair as a single atomic batch.
func (r *PostgresRepository) AddClaims(ctx context.Context, user *identity.User, claims []identity.Claim) error {
	if user == nil {
		return fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(claims) == 0 {
		return nil
	}

	query := `INSERT INTO "AccountClaims" ("UserId", "ClaimType", "ClaimValue")
		VALUES (:UserId, :ClaimType, :ClaimValue)`

	batch := dbx.NewBatch()
	for _, c := range claims {
		batch.Add(dbx.NewCommand(query, map[string]any{
			"UserId":     user.ID,
			"ClaimType":  c.Type,
			"ClaimValue": c.Value,
		}))
	}

	_, err := r.exec.ExecBatch(ctx, batch)
	return err
}

// ReplaceClaim rewrites a single claim matched on (account, old type, old value).
func (r *PostgresRepository) ReplaceClaim(ctx context.Context, user *identity.User, oldClaim, newClaim identity.Claim) error {
	if user == nil {
		return fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	query := `UPDATE "AccountClaims"
		SET "ClaimType" = :NewClaimType, "ClaimValue" = :NewClaimValue
		WHERE "UserId" = :UserId AND "ClaimType" = :ClaimType AND "ClaimValue" = :ClaimValue`

	_, err := r.exec.ExecOne(ctx, dbx.NewCommand(query, map[string]any{
		"NewClaimType":  newClaim.Type,
		"NewClaimValue": newClaim.Value,
		"UserId":        user.ID,
		"ClaimType":     oldClaim.Type,
		"ClaimValue":    oldClaim.Value,
	}))
	return err
}

// RemoveClaims deletes one claim row per pair as a single atomic batch.
func (r *PostgresRepository) RemoveClaims(ctx context.Context, user *identity.User, claims []identity.Claim) error {
	if user == nil {
		return fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(claims) == 0 {
		return nil
	}

	query := `DELETE FROM "AccountClaims"
		WHERE "UserId" = :UserId AND "ClaimType" = :ClaimType AND "ClaimValue" = :ClaimValue`

	batch := dbx.NewBatch()
	for _, c := range claims {
		batch.Add(dbx.NewCommand(query, map[string]any{
			"UserId":     user.ID,
			"ClaimType":  c.Type,
			"ClaimValue": c.Value,
		}))
	}

	_, err := r.exec.ExecBatch(ctx, batch)
	return err
}

// GetUsersForClaim returns every account holding the given (type, value) pair.
func (r *PostgresRepository) GetUsersForClaim(ctx context.Context, claim identity.Claim) ([]identity.User, error) {
	query := `SELECT u.* FROM "Accounts" u
		JOIN "AccountClaims" c ON c."UserId" = u."Id"
		WHERE c."ClaimType" = :ClaimType AND c."ClaimValue" = :ClaimValue`

	return dbx.QueryMany[identity.User](ctx, r.exec, dbx.NewCommand(query, claim))
}

// AddLogin is declared by the contract but not implemented by this adapter.
func (r *PostgresRepository) AddLogin(ctx context.Context, user *identity.User, login identity.UserLogin) identity.Result {
	return identity.NotSupported()
}

// RemoveLogin is declared by the contract but not implemented by this adapter.
func (r *PostgresRepository) RemoveLogin(ctx context.Context, user *identity.User, loginProvider, providerKey string) identity.Result {
	return identity.NotSupported()
}

// GetLogins is declared by the contract but not implemented by this adapter.
func (r *PostgresRepository) GetLogins(ctx context.Context, user *identity.User) ([]identity.UserLogin, error) {
	return nil, fmt.Errorf("logins: %w", common.ErrorNotSupported)
}

// FindByLogin is declared by the contract but not implemented by this adapter.
func (r *PostgresRepository) FindByLogin(ctx context.Context, loginProvider, providerKey string) (*identity.User, error) {
	return nil, fmt.Errorf("logins: %w", common.ErrorNotSupported)
}

// SetToken is declared by the contract but not implemented by this adapter.
func (r *PostgresRepository) SetToken(ctx context.Context, user *identity.User, token identity.UserToken) identity.Result {
	return identity.NotSupported()
}

// RemoveToken is declared by the contract but not implemented by this adapter.
func (r *PostgresRepository) RemoveToken(ctx context.Context, user *identity.User, loginProvider, name string) identity.Result {
	return identity.NotSupported()
}

// GetToken is declared by the contract but not implemented by this adapter.
func (r *PostgresRepository) GetToken(ctx context.Context, user *identity.User, loginProvider, name string) (*identity.UserToken, error) {
	return nil, fmt.Errorf("tokens: %w", common.ErrorNotSupported)
}

// roleID resolves a role name through its normalized form.
func (r *PostgresRepository) roleID(ctx context.Context, roleName string) (*int32, error) {
	query := `SELECT "Id" FROM "Roles" WHERE "NormalizedName" = :NormalizedName`

	return dbx.QueryFirst[int32](ctx, r.exec,
		dbx.NewCommand(query, map[string]any{"NormalizedName": identity.Normalize(roleName)}))
}

// AddToRole links the account to the named role. An unknown role name is an
// invalid operation: common.ErrorUnknownRole comes back and no row is written.
func (r *PostgresRepository) AddToRole(ctx context.Context, user *identity.User, roleName string) error {
	if user == nil {
		return fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	roleID, err := r.roleID(ctx, roleName)
	if err != nil {
		return err
	}
	if roleID == nil {
		return fmt.Errorf("role %q: %w", roleName, common.ErrorUnknownRole)
	}

	query := `INSERT INTO "AccountRoles" ("UserId", "RoleId") VALUES (:UserId, :RoleId)`

	_, err = r.exec.ExecOne(ctx, dbx.NewCommand(query, map[string]any{
		"UserId": user.ID,
		"RoleId": *roleID,
	}))
	return err
}

// RemoveFromRole unlinks the account from the named role.
func (r *PostgresRepository) RemoveFromRole(ctx context.Context, user *identity.User, roleName string) error {
	if user == nil {
		return fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	roleID, err := r.roleID(ctx, roleName)
	if err != nil {
		return err
	}
	if roleID == nil {
		return fmt.Errorf("role %q: %w", roleName, common.ErrorUnknownRole)
	}

	query := `DELETE FROM "AccountRoles" WHERE "UserId" = :UserId AND "RoleId" = :RoleId`

	_, err = r.exec.ExecOne(ctx, dbx.NewCommand(query, map[string]any{
		"UserId": user.ID,
		"RoleId": *roleID,
	}))
	return err
}

// GetRoles returns the names of every role the account belongs to.
func (r *PostgresRepository) GetRoles(ctx context.Context, user *identity.User) ([]string, error) {
	if user == nil {
		return nil, fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}

	query := `SELECT r."Name" FROM "Roles" r
		JOIN "AccountRoles" ur ON ur."RoleId" = r."Id"
		WHERE ur."UserId" = :UserId`

	return dbx.QueryMany[string](ctx, r.exec,
		dbx.NewCommand(query, map[string]any{"UserId": user.ID}))
}

// IsInRole reports membership regardless of the role name's casing.
func (r *PostgresRepository) IsInRole(ctx context.Context, user *identity.User, roleName string) (bool, error) {
	if user == nil {
		return false, fmt.Errorf("user: %w", common.ErrorMissingArgument)
	}

	query := `SELECT EXISTS (
		SELECT 1 FROM "AccountRoles" ur
		JOIN "Roles" r ON r."Id" = ur."RoleId"
		WHERE ur."UserId" = :UserId AND r."NormalizedName" = :NormalizedName)`

	in, err := dbx.QueryFirst[bool](ctx, r.exec, dbx.NewCommand(query, map[string]any{
		"UserId":         user.ID,
		"NormalizedName": identity.Normalize(roleName),
	}))
	if err != nil {
		return false, err
	}
	return in != nil && *in, nil
}

// GetUsersInRole returns every account linked to the named role.
func (r *PostgresRepository) GetUsersInRole(ctx context.Context, roleName string) ([]identity.User, error) {
	query := `SELECT u.* FROM "Accounts" u
		JOIN "AccountRoles" ur ON ur."UserId" = u."Id"
		JOIN "Roles" r ON r."Id" = ur."RoleId"
		WHERE r."NormalizedName" = :NormalizedName`

	return dbx.QueryMany[identity.User](ctx, r.exec,
		dbx.NewCommand(query, map[string]any{"NormalizedName": identity.Normalize(roleName)}))
}
