package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Normalize returns the canonical upper-case form used for case-insensitive
// lookups. Every "normalized" column stores the result of this function;
// applying it at the write boundary is what keeps the invariant global.
func Normalize(s string) string {
	return strings.ToUpper(s)
}

// NewStamp returns a fresh opaque token for the concurrency and security
// stamp fields. Only presence and change matter to consumers, not the value.
func NewStamp() string {
	return uuid.NewString()
}
