package address

import (
	"context"
	"log/slog"

	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/storage"
)

// Service manages an account's delivery addresses
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new address Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// List returns the account's addresses in creation order
func (s *Service) List(ctx context.Context, accountID model.AccountID) ([]*model.Address, error) {
	return s.storage.ListAddresses(ctx, accountID)
}

// Create saves an address for accountID
func (s *Service) Create(ctx context.Context, accountID model.AccountID, a model.Address) (*model.Address, error) {
	a.ID = 0
	a.AccountID = accountID

	if err := s.storage.CreateAddress(ctx, &a); err != nil {
		return nil, err
	}

	s.logger.Debug("address saved",
		slog.Int64("account_id", int64(accountID)),
		slog.Int64("address_id", int64(a.ID)))

	return &a, nil
}

// Delete removes one of the account's addresses. Addresses owned by other
// accounts are reported as not found and left in place.
func (s *Service) Delete(ctx context.Context, accountID model.AccountID, id model.AddressID) error {
	a, err := s.storage.GetAddress(ctx, id)
	if err != nil {
		return err
	}
	if a.AccountID != accountID {
		return model.ErrAddressNotFound
	}
	return s.storage.DeleteAddress(ctx, id)
}
