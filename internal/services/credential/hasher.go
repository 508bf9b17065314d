// Package credential turns passwords into salted scrypt credential strings
// and verifies candidate passwords against them.
//
// A credential string has the form "<salt-hex>.<digest-hex>". The salt passed
// to scrypt is the hex text of the salt, not the raw bytes. The cost
// parameters below are part of the stored format: changing any of them makes
// every previously stored credential fail verification.
package credential

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/sync/semaphore"

	"github.com/mcoot/pizzeria/internal/dependencies/random"
)

const (
	// SaltLength is the number of random salt bytes per credential
	SaltLength = 8
	// KeyLength is the scrypt output length in bytes
	KeyLength = 32

	costN = 16384
	costR = 8
	costP = 1

	separator = "."
)

// ErrMalformedCredential is returned by Verify when the stored string cannot be parsed
var ErrMalformedCredential = errors.New("malformed credential string")

// Config holds configuration for the hasher
type Config struct {
	// MaxConcurrent bounds simultaneous scrypt derivations
	MaxConcurrent int64
}

// DefaultConfig returns default hasher configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrent: int64(runtime.NumCPU()),
	}
}

// Hasher hashes and verifies passwords
type Hasher struct {
	random  random.Random
	limiter *semaphore.Weighted
}

// New creates a new Hasher
func New(rnd random.Random, cfg Config) *Hasher {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultConfig().MaxConcurrent
	}
	return &Hasher{
		random:  rnd,
		limiter: semaphore.NewWeighted(cfg.MaxConcurrent),
	}
}

// Hash derives a credential string for password using a fresh salt.
// It fails only if the entropy source fails or ctx is done while waiting
// for a derivation slot.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	salt, err := h.random.Bytes(SaltLength)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	if len(salt) != SaltLength {
		return "", fmt.Errorf("generate salt: %w: short read", random.ErrEntropyFailure)
	}

	saltHex := hex.EncodeToString(salt)
	digest, err := h.derive(ctx, password, saltHex)
	if err != nil {
		return "", err
	}

	return saltHex + separator + hex.EncodeToString(digest), nil
}

// Verify reports whether password matches the stored credential string
func (h *Hasher) Verify(ctx context.Context, password, stored string) (bool, error) {
	saltHex, digestHex, ok := strings.Cut(stored, separator)
	if !ok || saltHex == "" {
		return false, ErrMalformedCredential
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil || len(want) != KeyLength {
		return false, ErrMalformedCredential
	}

	got, err := h.derive(ctx, password, saltHex)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// derive runs scrypt while holding a limiter slot
func (h *Hasher) derive(ctx context.Context, password, salt string) ([]byte, error) {
	if err := h.limiter.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.limiter.Release(1)

	return scrypt.Key([]byte(password), []byte(salt), costN, costR, costP, KeyLength)
}
