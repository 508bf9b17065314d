package random

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// ErrEntropyFailure is returned when the system entropy source cannot supply bytes.
// Callers must abort rather than fall back to weaker randomness.
var ErrEntropyFailure = errors.New("entropy source failure")

// Random provides random bytes that can be mocked for testing
type Random interface {
	// Bytes returns n cryptographically random bytes
	Bytes(n int) ([]byte, error)
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Bytes reads n bytes from crypto/rand
func (r *CryptoRandom) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyFailure, err)
	}
	return b, nil
}
