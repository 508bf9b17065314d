package model

// AddressID uniquely identifies a delivery address
type AddressID int64

// Address is a delivery location saved by an account
type Address struct {
	ID          AddressID
	AccountID   AccountID
	Name        string // e.g. "Home", "Office"
	Description string
	Lat         float64
	Lng         float64
	IsDefault   bool
}
