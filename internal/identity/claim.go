package identity

// Claim is the (type, value) pair exchanged at the capability boundary.
// The tags let claim queries scan straight into it.
type Claim struct {
	Type  string `db:"ClaimType"`
	Value string `db:"ClaimValue"`
}

// UserClaim is a claim row owned by an account via UserID, a foreign
// reference rather than an owning pointer: deleting the account deletes
// its claim rows.
type UserClaim struct {
	ID         int32  `db:"Id"`
	UserID     int32  `db:"UserId"`
	ClaimType  string `db:"ClaimType"`
	ClaimValue string `db:"ClaimValue"`
}

// UserRole is the many-to-many account/role join row. It has no identity of
// its own beyond the pair.
type UserRole struct {
	UserID int32 `db:"UserId"`
	RoleID int32 `db:"RoleId"`
}

// UserLogin is an external-login row scoped to an account. Referenced by the
// store contract but not persisted by the current adapter.
type UserLogin struct {
	LoginProvider       string `db:"LoginProvider"`
	ProviderKey         string `db:"ProviderKey"`
	ProviderDisplayName string `db:"ProviderDisplayName"`
	UserID              int32  `db:"UserId"`
}

// UserToken is a named token row scoped to an account and provider.
// Referenced by the store contract but not persisted by the current adapter.
type UserToken struct {
	UserID        int32  `db:"UserId"`
	LoginProvider string `db:"LoginProvider"`
	Name          string `db:"Name"`
	Value         string `db:"Value"`
}

// RoleClaim is a claim row attached to a role.
type RoleClaim struct {
	ID         int32  `db:"Id"`
	RoleID     int32  `db:"RoleId"`
	ClaimType  string `db:"ClaimType"`
	ClaimValue string `db:"ClaimValue"`
}
