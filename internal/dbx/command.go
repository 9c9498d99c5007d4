// Package dbx is the transactional SQL execution facade for the identity
// stores. It bundles statements into Command values, binds their named
// parameters, and runs them either one at a time or as an atomic batch.
// No other package talks to the database directly.
package dbx

import "time"

// CommandKind describes how the statement text should be interpreted.
type CommandKind int

const (
	// KindText is a plain SQL statement. This is the only kind the
	// postgres executor runs.
	KindText CommandKind = iota
	// KindStoredProcedure is carried for contract completeness; the
	// executor rejects it with common.ErrorNotSupported.
	KindStoredProcedure
)

// Command is an immutable statement + parameter pair. SQL uses named
// placeholders (":Id", ":NormalizedEmail") that must match a field or map
// key of Params. A zero Timeout falls back to the executor's default.
type Command struct {
	SQL     string
	Params  any
	Kind    CommandKind
	Timeout time.Duration
}

// CommandOption customizes a Command at construction time.
type CommandOption func(*Command)

// WithKind overrides the statement kind.
func WithKind(k CommandKind) CommandOption {
	return func(c *Command) { c.Kind = k }
}

// WithTimeout sets a per-command timeout for the database round trip.
func WithTimeout(d time.Duration) CommandOption {
	return func(c *Command) { c.Timeout = d }
}

// NewCommand builds a Command for the given statement and parameter object.
func NewCommand(sql string, params any, opts ...CommandOption) Command {
	c := Command{SQL: sql, Params: params}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Batch is an ordered list of commands executed inside one transaction.
type Batch struct {
	commands []Command
}

// NewBatch builds a Batch from the given commands, preserving order.
func NewBatch(cmds ...Command) *Batch {
	return &Batch{commands: cmds}
}

// Add appends a command to the batch.
func (b *Batch) Add(cmd Command) {
	b.commands = append(b.commands, cmd)
}

// Len returns the number of pending commands.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.commands)
}

// reset drains the batch after a successful commit. A drained batch
// submitted again is a no-op, which keeps accidental re-submission from
// re-applying writes.
func (b *Batch) reset() {
	b.commands = nil
}
