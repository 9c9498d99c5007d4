package identity

// Role is a role row. NormalizedName follows the same upper-case invariant
// as the account's normalized fields.
type Role struct {
	ID               int32  `db:"Id"`
	Name             string `db:"Name"`
	NormalizedName   string `db:"NormalizedName"`
	ConcurrencyStamp string `db:"ConcurrencyStamp"`
}
