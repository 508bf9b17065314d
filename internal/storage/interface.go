package storage

import (
	"context"

	"github.com/mcoot/pizzeria/internal/model"
)

// Storage defines the interface for data persistence.
//
// Create methods assign the entity ID. Get methods return the matching
// model.Err*NotFound error when absent. List methods return an empty slice,
// not an error, when nothing matches.
type Storage interface {
	// Account operations
	// CreateAccount must fail with model.ErrEmailTaken if the email is already
	// registered, even when two calls race.
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	FindAccountsByEmail(ctx context.Context, email string) ([]*model.Account, error)

	// Address operations
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddress(ctx context.Context, id model.AddressID) (*model.Address, error)
	ListAddresses(ctx context.Context, accountID model.AccountID) ([]*model.Address, error)
	DeleteAddress(ctx context.Context, id model.AddressID) error

	// Payment operations
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error)
	ListPayments(ctx context.Context, accountID model.AccountID) ([]*model.Payment, error)
	DeletePayment(ctx context.Context, id model.PaymentID) error

	// Product operations
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id model.ProductID) error

	// Promotion operations
	CreatePromotion(ctx context.Context, promotion *model.Promotion) error
	GetPromotion(ctx context.Context, id model.PromotionID) (*model.Promotion, error)
	ListPromotions(ctx context.Context) ([]*model.Promotion, error)
	UpdatePromotion(ctx context.Context, promotion *model.Promotion) error
	DeletePromotion(ctx context.Context, id model.PromotionID) error

	// Record operations
	CreateRecord(ctx context.Context, record *model.Record) error
	GetRecord(ctx context.Context, id model.RecordID) (*model.Record, error)
	ListRecords(ctx context.Context) ([]*model.Record, error)
	UpdateRecord(ctx context.Context, record *model.Record) error
	DeleteRecord(ctx context.Context, id model.RecordID) error
}
