package model

import "time"

// AccountID uniquely identifies an account. Assigned by storage, never reused.
type AccountID int64

// Role is the privilege level of an account
type Role string

const (
	RoleStandard Role = "user"  // Default for new accounts
	RoleElevated Role = "admin" // May manage the catalog
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleElevated
}

// Account is a customer or administrator identity
type Account struct {
	ID         AccountID
	Email      string // login handle, unique
	Name       string
	Phone      string
	Role       Role
	Credential string // salt.digest, never the plaintext password
	CreatedAt  time.Time
}

// Redacted returns a copy of the account with the credential cleared
func (a Account) Redacted() *Account {
	a.Credential = ""
	return &a
}
