package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are JSON values; IDs come from per-entity INCR counters and
// collections are tracked in SET indexes.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// NewClient connects to Redis and verifies the connection
func NewClient(cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().DialTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// New creates a new Redis storage instance with its own connection
func New(cfg Config) (*Storage, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Client returns the underlying client so other stores can share the pool
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Generic helpers

func getJSON[T any](ctx context.Context, client *redis.Client, key string, notFound error) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// listJSON loads every entity whose ID is a member of indexKey, ordered by ID.
// Members whose value has disappeared are skipped.
func listJSON[T any](ctx context.Context, client *redis.Client, indexKey, entity string) ([]*T, error) {
	members, err := client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = entityKey(entity, id)
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, raw := range values {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

func (s *Storage) nextID(ctx context.Context, entity string) (int64, error) {
	return s.client.Incr(ctx, seqKey(entity)).Result()
}

// insert writes a new entity and adds it to its index atomically
func (s *Storage) insert(ctx context.Context, entity string, id int64, v any, indexKey string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, entityKey(entity, id), data, 0)
	pipe.SAdd(ctx, indexKey, id)
	_, err = pipe.Exec(ctx)
	return err
}

// replace overwrites an existing entity, failing with notFound if it is absent
func (s *Storage) replace(ctx context.Context, entity string, id int64, v any, notFound error) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	ok, err := s.client.SetXX(ctx, entityKey(entity, id), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}

// remove deletes an entity and its index membership atomically
func (s *Storage) remove(ctx context.Context, entity string, id int64, indexKey string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, entityKey(entity, id))
	pipe.SRem(ctx, indexKey, id)
	_, err := pipe.Exec(ctx)
	return err
}

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	id, err := s.nextID(ctx, entityAccount)
	if err != nil {
		return err
	}

	// Claim the email first; SETNX makes concurrent registrations race safely
	claimed, err := s.client.SetNX(ctx, emailIndexKey(account.Email), id, 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return model.ErrEmailTaken
	}

	account.ID = model.AccountID(id)
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, entityKey(entityAccount, id), data, 0).Err(); err != nil {
		_ = s.client.Del(ctx, emailIndexKey(account.Email)).Err()
		account.ID = 0
		return err
	}
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	return getJSON[model.Account](ctx, s.client, entityKey(entityAccount, int64(id)), model.ErrAccountNotFound)
}

func (s *Storage) FindAccountsByEmail(ctx context.Context, email string) ([]*model.Account, error) {
	idStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*model.Account{}, nil
		}
		return nil, err
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt email index for %q: %w", email, err)
	}

	account, err := s.GetAccount(ctx, model.AccountID(id))
	if err != nil {
		// Email claimed by a registration that has not finished writing yet
		if errors.Is(err, model.ErrAccountNotFound) {
			return []*model.Account{}, nil
		}
		return nil, err
	}
	return []*model.Account{account}, nil
}

// Address operations

func (s *Storage) CreateAddress(ctx context.Context, address *model.Address) error {
	id, err := s.nextID(ctx, entityAddress)
	if err != nil {
		return err
	}
	address.ID = model.AddressID(id)
	return s.insert(ctx, entityAddress, id, address, ownedIndexKey(entityAddress, address.AccountID))
}

func (s *Storage) GetAddress(ctx context.Context, id model.AddressID) (*model.Address, error) {
	return getJSON[model.Address](ctx, s.client, entityKey(entityAddress, int64(id)), model.ErrAddressNotFound)
}

func (s *Storage) ListAddresses(ctx context.Context, accountID model.AccountID) ([]*model.Address, error) {
	return listJSON[model.Address](ctx, s.client, ownedIndexKey(entityAddress, accountID), entityAddress)
}

func (s *Storage) DeleteAddress(ctx context.Context, id model.AddressID) error {
	address, err := s.GetAddress(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAddressNotFound) {
			return nil
		}
		return err
	}
	return s.remove(ctx, entityAddress, int64(id), ownedIndexKey(entityAddress, address.AccountID))
}

// Payment operations

func (s *Storage) CreatePayment(ctx context.Context, payment *model.Payment) error {
	id, err := s.nextID(ctx, entityPayment)
	if err != nil {
		return err
	}
	payment.ID = model.PaymentID(id)
	return s.insert(ctx, entityPayment, id, payment, ownedIndexKey(entityPayment, payment.AccountID))
}

func (s *Storage) GetPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	return getJSON[model.Payment](ctx, s.client, entityKey(entityPayment, int64(id)), model.ErrPaymentNotFound)
}

func (s *Storage) ListPayments(ctx context.Context, accountID model.AccountID) ([]*model.Payment, error) {
	return listJSON[model.Payment](ctx, s.client, ownedIndexKey(entityPayment, accountID), entityPayment)
}

func (s *Storage) DeletePayment(ctx context.Context, id model.PaymentID) error {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPaymentNotFound) {
			return nil
		}
		return err
	}
	return s.remove(ctx, entityPayment, int64(id), ownedIndexKey(entityPayment, payment.AccountID))
}

// Product operations

func (s *Storage) CreateProduct(ctx context.Context, product *model.Product) error {
	id, err := s.nextID(ctx, entityProduct)
	if err != nil {
		return err
	}
	product.ID = model.ProductID(id)
	return s.insert(ctx, entityProduct, id, product, catalogIndexKey(entityProduct))
}

func (s *Storage) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	return getJSON[model.Product](ctx, s.client, entityKey(entityProduct, int64(id)), model.ErrProductNotFound)
}

func (s *Storage) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return listJSON[model.Product](ctx, s.client, catalogIndexKey(entityProduct), entityProduct)
}

func (s *Storage) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.replace(ctx, entityProduct, int64(product.ID), product, model.ErrProductNotFound)
}

func (s *Storage) DeleteProduct(ctx context.Context, id model.ProductID) error {
	return s.remove(ctx, entityProduct, int64(id), catalogIndexKey(entityProduct))
}

// Promotion operations

func (s *Storage) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	id, err := s.nextID(ctx, entityPromotion)
	if err != nil {
		return err
	}
	promotion.ID = model.PromotionID(id)
	return s.insert(ctx, entityPromotion, id, promotion, catalogIndexKey(entityPromotion))
}

func (s *Storage) GetPromotion(ctx context.Context, id model.PromotionID) (*model.Promotion, error) {
	return getJSON[model.Promotion](ctx, s.client, entityKey(entityPromotion, int64(id)), model.ErrPromotionNotFound)
}

func (s *Storage) ListPromotions(ctx context.Context) ([]*model.Promotion, error) {
	return listJSON[model.Promotion](ctx, s.client, catalogIndexKey(entityPromotion), entityPromotion)
}

func (s *Storage) UpdatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return s.replace(ctx, entityPromotion, int64(promotion.ID), promotion, model.ErrPromotionNotFound)
}

func (s *Storage) DeletePromotion(ctx context.Context, id model.PromotionID) error {
	return s.remove(ctx, entityPromotion, int64(id), catalogIndexKey(entityPromotion))
}

// Record operations

func (s *Storage) CreateRecord(ctx context.Context, record *model.Record) error {
	id, err := s.nextID(ctx, entityRecord)
	if err != nil {
		return err
	}
	record.ID = model.RecordID(id)
	return s.insert(ctx, entityRecord, id, record, catalogIndexKey(entityRecord))
}

func (s *Storage) GetRecord(ctx context.Context, id model.RecordID) (*model.Record, error) {
	return getJSON[model.Record](ctx, s.client, entityKey(entityRecord, int64(id)), model.ErrRecordNotFound)
}

func (s *Storage) ListRecords(ctx context.Context) ([]*model.Record, error) {
	return listJSON[model.Record](ctx, s.client, catalogIndexKey(entityRecord), entityRecord)
}

func (s *Storage) UpdateRecord(ctx context.Context, record *model.Record) error {
	return s.replace(ctx, entityRecord, int64(record.ID), record, model.ErrRecordNotFound)
}

func (s *Storage) DeleteRecord(ctx context.Context, id model.RecordID) error {
	return s.remove(ctx, entityRecord, int64(id), catalogIndexKey(entityRecord))
}
