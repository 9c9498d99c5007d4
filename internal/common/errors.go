// Package common defines shared sentinel errors used across the storage
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Argument validation errors, surfaced before any database call.
	ErrorMissingArgument = errors.New("missing required argument")

	// Capability errors. Logins and tokens are declared by the user store
	// contract but intentionally unimplemented; callers branch on this
	// sentinel instead of inspecting types.
	ErrorNotSupported = errors.New("not supported")

	// Role membership errors.
	ErrorUnknownRole = errors.New("unknown role")
)
