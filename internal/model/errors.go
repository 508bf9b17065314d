package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")

	// Account-owned resources
	ErrAddressNotFound = errors.New("address not found")
	ErrPaymentNotFound = errors.New("payment not found")

	// Catalog errors
	ErrProductNotFound   = errors.New("product not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrRecordNotFound    = errors.New("record not found")
	ErrNotASize          = errors.New("record is not a size")
)

// ErrSessionNotFound is returned by session stores for absent and expired
// sessions alike.
var ErrSessionNotFound = errors.New("session not found")
