// Package identity registers accounts and authenticates login attempts.
//
// Handles are email addresses, normalized by trimming surrounding whitespace
// and lowercasing. Neither operation touches sessions; binding an account to
// a session is the caller's job.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/pizzeria/internal/dependencies/clock"
	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/services/credential"
	"github.com/mcoot/pizzeria/internal/storage"
)

// Errors
var (
	ErrDuplicateHandle    = errors.New("handle already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// decoyCredential is verified against on a handle miss so that unknown and
// known handles cost the same KDF work.
const decoyCredential = "a1b2c3d4e5f60718." +
	"0000000000000000000000000000000000000000000000000000000000000000"

// Hasher derives and checks credential strings
type Hasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, stored string) (bool, error)
}

// Registration is the input to Register
type Registration struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     model.Role // empty means RoleStandard
}

// Resolver maps handles and passwords to accounts
type Resolver struct {
	storage storage.Storage
	hasher  Hasher
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new Resolver
func New(store storage.Storage, hasher Hasher, clk clock.Clock, logger *slog.Logger) *Resolver {
	return &Resolver{
		storage: store,
		hasher:  hasher,
		clock:   clk,
		logger:  logger,
	}
}

// NormalizeHandle returns the canonical form of an email handle
func NormalizeHandle(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. The returned account has its credential
// cleared.
func (r *Resolver) Register(ctx context.Context, reg Registration) (*model.Account, error) {
	email := NormalizeHandle(reg.Email)

	role := reg.Role
	if role == "" {
		role = model.RoleStandard
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	existing, err := r.storage.FindAccountsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrDuplicateHandle
	}

	cred, err := r.hasher.Hash(ctx, reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Email:      email,
		Name:       reg.Name,
		Phone:      reg.Phone,
		Role:       role,
		Credential: cred,
		CreatedAt:  r.clock.Now(),
	}

	// A concurrent registration may have claimed the handle since the lookup
	if err := r.storage.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, ErrDuplicateHandle
		}
		return nil, err
	}

	r.logger.Info("account registered",
		slog.Int64("account_id", int64(account.ID)),
		slog.String("role", string(account.Role)))

	return account.Redacted(), nil
}

// Authenticate checks a password against the account registered under email.
// Unknown handles and wrong passwords both yield ErrInvalidCredentials.
func (r *Resolver) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	email = NormalizeHandle(email)

	found, err := r.storage.FindAccountsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if len(found) == 0 {
		_, _ = r.hasher.Verify(ctx, password, decoyCredential)
		return nil, ErrInvalidCredentials
	}

	account := found[0]
	ok, err := r.hasher.Verify(ctx, password, account.Credential)
	if err != nil {
		if errors.Is(err, credential.ErrMalformedCredential) {
			r.logger.Warn("stored credential is malformed",
				slog.Int64("account_id", int64(account.ID)))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return account.Redacted(), nil
}
