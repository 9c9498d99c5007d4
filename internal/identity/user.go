// Package identity defines the in-memory representations of the identity
// schema (accounts, roles, claims, join rows) together with the small pure
// helpers the storage contract is built on: upper-case normalization, stamp
// generation, and the Result outcome type.
package identity

import "time"

// User is an account row. The struct tags name the database columns exactly;
// the same names are used as placeholders when a User is bound as a command
// parameter.
//
// NormalizedUserName and NormalizedEmail must always be the upper-case form
// of their raw counterparts. Callers that change UserName or Email are
// responsible for re-normalizing via Normalize; the create path derives
// missing normalized fields itself so the invariant holds from the first row.
type User struct {
	ID                   int32      `db:"Id"`
	UserName             string     `db:"UserName"`
	NormalizedUserName   string     `db:"NormalizedUserName"`
	Email                string     `db:"Email"`
	NormalizedEmail      string     `db:"NormalizedEmail"`
	EmailConfirmed       bool       `db:"EmailConfirmed"`
	PasswordHash         string     `db:"PasswordHash"`
	SecurityStamp        string     `db:"SecurityStamp"`
	ConcurrencyStamp     string     `db:"ConcurrencyStamp"`
	PhoneNumber          string     `db:"PhoneNumber"`
	PhoneNumberConfirmed bool       `db:"PhoneNumberConfirmed"`
	TwoFactorEnabled     bool       `db:"TwoFactorEnabled"`
	LockoutEnd           *time.Time `db:"LockoutEnd"`
	LockoutEnabled       bool       `db:"LockoutEnabled"`
	AccessFailedCount    int32      `db:"AccessFailedCount"`
	FirstName            string     `db:"FirstName"`
	LastName             string     `db:"LastName"`
}

// HasPassword reports whether the account has a password hash set.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != ""
}
