package identity

import "strings"

// ResultError is a single human-readable failure description. Descriptions
// are written for end users and never carry raw database error text.
type ResultError struct {
	Description string
}

// Result is the outcome of a persistence operation. Single-row writes report
// failure through a Result instead of an error so callers can render
// per-field messages; Unsupported marks capabilities the adapter declares
// but does not implement.
type Result struct {
	Succeeded   bool
	Unsupported bool
	Errors      []ResultError
}

// Ok returns a successful Result.
func Ok() Result {
	return Result{Succeeded: true}
}

// Failed returns a failed Result carrying the given descriptions.
func Failed(descriptions ...string) Result {
	r := Result{}
	for _, d := range descriptions {
		r.Errors = append(r.Errors, ResultError{Description: d})
	}
	return r
}

// NotSupported returns a failed Result tagged as an unimplemented capability.
func NotSupported() Result {
	r := Failed("The requested capability is not supported.")
	r.Unsupported = true
	return r
}

// String renders the outcome for logs: "succeeded" or the joined
// descriptions.
func (r Result) String() string {
	if r.Succeeded {
		return "succeeded"
	}
	if len(r.Errors) == 0 {
		return "failed"
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Description)
	}
	return "failed: " + strings.Join(parts, "; ")
}
