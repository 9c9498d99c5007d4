package dbx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCommand_Defaults(t *testing.T) {
	cmd := NewCommand(`SELECT 1`, nil)

	assert.Equal(t, KindText, cmd.Kind)
	assert.Equal(t, time.Duration(0), cmd.Timeout)
	assert.Nil(t, cmd.Params)
}

func TestNewCommand_Options(t *testing.T) {
	cmd := NewCommand(`SELECT 1`, map[string]any{"Id": 1},
		WithKind(KindStoredProcedure),
		WithTimeout(2*time.Second),
	)

	assert.Equal(t, KindStoredProcedure, cmd.Kind)
	assert.Equal(t, 2*time.Second, cmd.Timeout)
}

func TestBatch_AddAndLen(t *testing.T) {
	b := NewBatch()
	assert.Equal(t, 0, b.Len())

	b.Add(NewCommand(`DELETE FROM "Accounts" WHERE "Id" = :Id`, map[string]any{"Id": 1}))
	b.Add(NewCommand(`DELETE FROM "Roles" WHERE "Id" = :Id`, map[string]any{"Id": 2}))
	assert.Equal(t, 2, b.Len())
}

func TestBatch_NilSafeLen(t *testing.T) {
	var b *Batch
	assert.Equal(t, 0, b.Len())
}
