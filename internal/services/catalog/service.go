// Package catalog manages the menu: products, promotions and the
// customization records (sizes, sauces, toppings and so on) they refer to.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/storage"
)

// ErrInvalidPromotion wraps a failed reference check on a promotion's
// product or size
var ErrInvalidPromotion = errors.New("invalid promotion")

// Service manages catalog entities
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new catalog Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// Products

func (s *Service) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.storage.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	return s.storage.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	p.ID = 0
	if err := s.storage.CreateProduct(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", slog.Int64("product_id", int64(p.ID)))
	return &p, nil
}

// UpdateProduct applies patch to the stored product and saves it
func (s *Service) UpdateProduct(ctx context.Context, id model.ProductID, patch func(*model.Product)) (*model.Product, error) {
	p, err := s.storage.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	patch(p)
	p.ID = id
	if err := s.storage.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id model.ProductID) error {
	if _, err := s.storage.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteProduct(ctx, id)
}

// Promotions

func (s *Service) ListPromotions(ctx context.Context) ([]*model.Promotion, error) {
	return s.storage.ListPromotions(ctx)
}

func (s *Service) GetPromotion(ctx context.Context, id model.PromotionID) (*model.Promotion, error) {
	return s.storage.GetPromotion(ctx, id)
}

// CreatePromotion saves a promotion after checking that its product exists
// and that its size refers to a record of type size.
func (s *Service) CreatePromotion(ctx context.Context, p model.Promotion) (*model.Promotion, error) {
	if err := s.checkPromotionRefs(ctx, p); err != nil {
		return nil, err
	}
	p.ID = 0
	if err := s.storage.CreatePromotion(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.Info("promotion created",
		slog.Int64("promotion_id", int64(p.ID)),
		slog.Int64("product_id", int64(p.ProductID)))
	return &p, nil
}

// UpdatePromotion applies patch and re-checks the references before saving
func (s *Service) UpdatePromotion(ctx context.Context, id model.PromotionID, patch func(*model.Promotion)) (*model.Promotion, error) {
	p, err := s.storage.GetPromotion(ctx, id)
	if err != nil {
		return nil, err
	}
	patch(p)
	p.ID = id
	if err := s.checkPromotionRefs(ctx, *p); err != nil {
		return nil, err
	}
	if err := s.storage.UpdatePromotion(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePromotion(ctx context.Context, id model.PromotionID) error {
	if _, err := s.storage.GetPromotion(ctx, id); err != nil {
		return err
	}
	return s.storage.DeletePromotion(ctx, id)
}

func (s *Service) checkPromotionRefs(ctx context.Context, p model.Promotion) error {
	if _, err := s.storage.GetProduct(ctx, p.ProductID); err != nil {
		return refError("product", int64(p.ProductID), err)
	}

	size, err := s.storage.GetRecord(ctx, p.SizeID)
	if err != nil {
		return refError("size", int64(p.SizeID), err)
	}
	if size.Type != model.RecordTypeSize {
		return fmt.Errorf("%w: size %d: %w", ErrInvalidPromotion, p.SizeID, model.ErrNotASize)
	}
	return nil
}

// refError marks missing references as ErrInvalidPromotion; store failures pass through
func refError(field string, id int64, err error) error {
	if errors.Is(err, model.ErrProductNotFound) || errors.Is(err, model.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d: %w", ErrInvalidPromotion, field, id, err)
	}
	return err
}

// Records

func (s *Service) ListRecords(ctx context.Context) ([]*model.Record, error) {
	return s.storage.ListRecords(ctx)
}

func (s *Service) GetRecord(ctx context.Context, id model.RecordID) (*model.Record, error) {
	return s.storage.GetRecord(ctx, id)
}

func (s *Service) CreateRecord(ctx context.Context, r model.Record) (*model.Record, error) {
	r.ID = 0
	if err := s.storage.CreateRecord(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) UpdateRecord(ctx context.Context, id model.RecordID, patch func(*model.Record)) (*model.Record, error) {
	r, err := s.storage.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	patch(r)
	r.ID = id
	if err := s.storage.UpdateRecord(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) DeleteRecord(ctx context.Context, id model.RecordID) error {
	if _, err := s.storage.GetRecord(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteRecord(ctx, id)
}
