// Package payment stores saved cards and projects them for output.
//
// Every payment leaving Service has been through Project: the brand is set
// and the number and security code are masked.
package payment

import (
	"context"
	"log/slog"

	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/storage"
)

// Service manages an account's saved payment methods
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new payment Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// List returns the account's payments, projected, in creation order
func (s *Service) List(ctx context.Context, accountID model.AccountID) ([]model.Payment, error) {
	stored, err := s.storage.ListPayments(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]model.Payment, 0, len(stored))
	for _, p := range stored {
		out = append(out, Project(*p))
	}
	return out, nil
}

// Create saves a payment for accountID and returns its projection
func (s *Service) Create(ctx context.Context, accountID model.AccountID, p model.Payment) (*model.Payment, error) {
	p.ID = 0
	p.AccountID = accountID
	p.Brand = model.BrandUnknown

	if err := s.storage.CreatePayment(ctx, &p); err != nil {
		return nil, err
	}

	s.logger.Info("payment method saved",
		slog.Int64("account_id", int64(accountID)),
		slog.Int64("payment_id", int64(p.ID)))

	projected := Project(p)
	return &projected, nil
}

// Get returns one of the account's payments, projected. Payments owned by
// other accounts are reported as not found.
func (s *Service) Get(ctx context.Context, accountID model.AccountID, id model.PaymentID) (*model.Payment, error) {
	p, err := s.owned(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	projected := Project(*p)
	return &projected, nil
}

// Delete removes one of the account's payments
func (s *Service) Delete(ctx context.Context, accountID model.AccountID, id model.PaymentID) error {
	if _, err := s.owned(ctx, accountID, id); err != nil {
		return err
	}
	return s.storage.DeletePayment(ctx, id)
}

func (s *Service) owned(ctx context.Context, accountID model.AccountID, id model.PaymentID) (*model.Payment, error) {
	p, err := s.storage.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.AccountID != accountID {
		return nil, model.ErrPaymentNotFound
	}
	return p, nil
}
