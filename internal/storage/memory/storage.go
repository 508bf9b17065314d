package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Entities are stored and returned as copies so callers cannot mutate
// stored state through a returned pointer.
type Storage struct {
	mu sync.RWMutex

	accounts   map[model.AccountID]model.Account
	emailIndex map[string]model.AccountID
	addresses  map[model.AddressID]model.Address
	payments   map[model.PaymentID]model.Payment
	products   map[model.ProductID]model.Product
	promotions map[model.PromotionID]model.Promotion
	records    map[model.RecordID]model.Record

	// Last assigned ID; shared across entity types
	seq int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:   make(map[model.AccountID]model.Account),
		emailIndex: make(map[string]model.AccountID),
		addresses:  make(map[model.AddressID]model.Address),
		payments:   make(map[model.PaymentID]model.Payment),
		products:   make(map[model.ProductID]model.Product),
		promotions: make(map[model.PromotionID]model.Promotion),
		records:    make(map[model.RecordID]model.Record),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// nextID must be called with mu held for writing
func (s *Storage) nextID() int64 {
	s.seq++
	return s.seq
}

// sortedByID copies map values into a slice ordered by ascending ID
func sortedByID[K cmp.Ordered, V any](m map[K]V, keep func(V) bool) []*V {
	keys := make([]K, 0, len(m))
	for k, v := range m {
		if keep == nil || keep(v) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	out := make([]*V, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		out = append(out, &v)
	}
	return out
}

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emailIndex[account.Email]; taken {
		return model.ErrEmailTaken
	}
	account.ID = model.AccountID(s.nextID())
	s.accounts[account.ID] = *account
	s.emailIndex[account.Email] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &account, nil
}

func (s *Storage) FindAccountsByEmail(ctx context.Context, email string) ([]*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return []*model.Account{}, nil
	}
	account := s.accounts[id]
	return []*model.Account{&account}, nil
}

// Address operations

func (s *Storage) CreateAddress(ctx context.Context, address *model.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	address.ID = model.AddressID(s.nextID())
	s.addresses[address.ID] = *address
	return nil
}

func (s *Storage) GetAddress(ctx context.Context, id model.AddressID) (*model.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	address, ok := s.addresses[id]
	if !ok {
		return nil, model.ErrAddressNotFound
	}
	return &address, nil
}

func (s *Storage) ListAddresses(ctx context.Context, accountID model.AccountID) ([]*model.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.addresses, func(a model.Address) bool { return a.AccountID == accountID }), nil
}

func (s *Storage) DeleteAddress(ctx context.Context, id model.AddressID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.addresses, id)
	return nil
}

// Payment operations

func (s *Storage) CreatePayment(ctx context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment.ID = model.PaymentID(s.nextID())
	stored := *payment
	stored.Brand = model.BrandUnknown
	s.payments[payment.ID] = stored
	return nil
}

func (s *Storage) GetPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, ok := s.payments[id]
	if !ok {
		return nil, model.ErrPaymentNotFound
	}
	return &payment, nil
}

func (s *Storage) ListPayments(ctx context.Context, accountID model.AccountID) ([]*model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.payments, func(p model.Payment) bool { return p.AccountID == accountID }), nil
}

func (s *Storage) DeletePayment(ctx context.Context, id model.PaymentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.payments, id)
	return nil
}

// Product operations

func (s *Storage) CreateProduct(ctx context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product.ID = model.ProductID(s.nextID())
	s.products[product.ID] = *product
	return nil
}

func (s *Storage) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	return &product, nil
}

func (s *Storage) ListProducts(ctx context.Context) ([]*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.products, nil), nil
}

func (s *Storage) UpdateProduct(ctx context.Context, product *model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	s.products[product.ID] = *product
	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id model.ProductID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	return nil
}

// Promotion operations

func (s *Storage) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	promotion.ID = model.PromotionID(s.nextID())
	s.promotions[promotion.ID] = *promotion
	return nil
}

func (s *Storage) GetPromotion(ctx context.Context, id model.PromotionID) (*model.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	promotion, ok := s.promotions[id]
	if !ok {
		return nil, model.ErrPromotionNotFound
	}
	return &promotion, nil
}

func (s *Storage) ListPromotions(ctx context.Context) ([]*model.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.promotions, nil), nil
}

func (s *Storage) UpdatePromotion(ctx context.Context, promotion *model.Promotion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.promotions[promotion.ID]; !ok {
		return model.ErrPromotionNotFound
	}
	s.promotions[promotion.ID] = *promotion
	return nil
}

func (s *Storage) DeletePromotion(ctx context.Context, id model.PromotionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.promotions, id)
	return nil
}

// Record operations

func (s *Storage) CreateRecord(ctx context.Context, record *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = model.RecordID(s.nextID())
	s.records[record.ID] = *record
	return nil
}

func (s *Storage) GetRecord(ctx context.Context, id model.RecordID) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, model.ErrRecordNotFound
	}
	return &record, nil
}

func (s *Storage) ListRecords(ctx context.Context) ([]*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.records, nil), nil
}

func (s *Storage) UpdateRecord(ctx context.Context, record *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; !ok {
		return model.ErrRecordNotFound
	}
	s.records[record.ID] = *record
	return nil
}

func (s *Storage) DeleteRecord(ctx context.Context, id model.RecordID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
