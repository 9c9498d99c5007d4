package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/somukhan9/dapper-identity/internal/common"
	"github.com/somukhan9/dapper-identity/internal/logging"
)

// Executor runs Commands against a PostgreSQL database. Connection
// acquisition and release are scoped to each call: the underlying
// database/sql pool hands out a connection for the round trip and reclaims
// it on every exit path, so no connection is ever held across operations.
// The only transaction scope is a single ExecBatch call.
type Executor struct {
	db             *sqlx.DB
	log            logging.Logger
	defaultTimeout time.Duration
}

// ExecutorOption customizes a new Executor.
type ExecutorOption func(*Executor)

// WithDefaultTimeout sets the statement timeout applied to commands that do
// not carry their own. Zero disables the default.
func WithDefaultTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.defaultTimeout = d }
}

// NewExecutor wraps an open database handle.
func NewExecutor(db *sqlx.DB, log logging.Logger, opts ...ExecutorOption) *Executor {
	e := &Executor{db: db, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// bind expands the command's named placeholders into driver-positional form
// using the parameter object's field names (or map keys).
func (e *Executor) bind(cmd Command) (string, []any, error) {
	if cmd.Kind != KindText {
		return "", nil, fmt.Errorf("stored procedure commands: %w", common.ErrorNotSupported)
	}
	params := cmd.Params
	if params == nil {
		params = map[string]any{}
	}
	query, args, err := sqlx.Named(cmd.SQL, params)
	if err != nil {
		return "", nil, fmt.Errorf("bind error: %w", err)
	}
	return e.db.Rebind(query), args, nil
}

// scope derives the context for one round trip, applying the command's
// timeout or the executor default.
func (e *Executor) scope(ctx context.Context, cmd Command) (context.Context, context.CancelFunc) {
	d := cmd.Timeout
	if d == 0 {
		d = e.defaultTimeout
	}
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}

// QueryFirst runs the command and maps the first row into T. An absent row
// is not an error: the result is nil, nil.
func QueryFirst[T any](ctx context.Context, e *Executor, cmd Command) (*T, error) {
	query, args, err := e.bind(cmd)
	if err != nil {
		return nil, err
	}

	ctx, cancel := e.scope(ctx, cmd)
	defer cancel()

	var out T
	err = e.db.GetContext(ctx, &out, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

// QuerySingle is semantically identical to QueryFirst. It exists for lookups
// expected to be unique; uniqueness itself is enforced by the caller's SQL,
// not by this function.
func QuerySingle[T any](ctx context.Context, e *Executor, cmd Command) (*T, error) {
	return QueryFirst[T](ctx, e, cmd)
}

// QueryMany runs the command and maps every row into a T slice, eagerly
// materialized. Re-running the query means re-invoking.
func QueryMany[T any](ctx context.Context, e *Executor, cmd Command) ([]T, error) {
	query, args, err := e.bind(cmd)
	if err != nil {
		return nil, err
	}

	ctx, cancel := e.scope(ctx, cmd)
	defer cancel()

	var out []T
	if err := e.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// ExecOne runs a single mutating command and returns the affected row count.
func (e *Executor) ExecOne(ctx context.Context, cmd Command) (int64, error) {
	query, args, err := e.bind(cmd)
	if err != nil {
		return 0, err
	}

	ctx, cancel := e.scope(ctx, cmd)
	defer cancel()

	res, err := e.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

// ExecBatch opens one transaction, runs every command of the batch against
// it in order, and commits once all succeed. Any failure rolls the whole
// transaction back and the triggering error propagates: the caller must
// treat the batch as not applied at all. On success the batch is drained as
// a release signal; a drained batch must not be re-submitted.
//
// The returned count is the sum of each command's affected rows.
func (e *Executor) ExecBatch(ctx context.Context, b *Batch) (int64, error) {
	if b.Len() == 0 {
		return 0, nil
	}

	var total int64

	err := e.withTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, cmd := range b.commands {
			query, args, err := e.bind(cmd)
			if err != nil {
				return err
			}

			cctx, cancel := e.scope(ctx, cmd)
			res, err := tx.ExecContext(cctx, query, args...)
			cancel()
			if err != nil {
				return fmt.Errorf("db error: %w", err)
			}

			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		e.log.Error(ctx, "batch rolled back", "commands", b.Len(), "error", err)
		return 0, err
	}

	b.reset()
	return total, nil
}

// withTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
func (e *Executor) withTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// Ping opens a connection and runs a trivial probe statement. A connectivity
// failure is logged and returned; this layer never retries.
func (e *Executor) Ping(ctx context.Context) error {
	var one int
	if err := e.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		e.log.Error(ctx, "connection probe failed", "error", err)
		return fmt.Errorf("connection probe: %w", err)
	}
	if one != 1 {
		err := fmt.Errorf("connection probe: unexpected result %d", one)
		e.log.Error(ctx, "connection probe failed", "error", err)
		return err
	}
	return nil
}

// IsConnectionOK reports whether the database answered the probe.
func (e *Executor) IsConnectionOK(ctx context.Context) bool {
	return e.Ping(ctx) == nil
}
