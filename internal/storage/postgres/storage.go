// Package postgres implements the storage interface on PostgreSQL through
// the pgx database/sql driver. The schema is managed by goose migrations
// embedded in the binary.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/storage"
)

// SQLSTATE for unique_violation
const uniqueViolation = "23505"

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	db   DBTX
	conn *sql.DB
}

// Open connects to PostgreSQL, verifies the connection and applies migrations
func Open(ctx context.Context, cfg Config) (*Storage, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Storage{db: conn, conn: conn}, nil
}

// New wraps an existing handle without running migrations
func New(db DBTX) *Storage {
	s := &Storage{db: db}
	if conn, ok := db.(*sql.DB); ok {
		s.conn = conn
	}
	return s
}

// Close closes the underlying connection pool, if this Storage owns one
func (s *Storage) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func wrap(err error) error {
	return fmt.Errorf("db error: %w", err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and scans every row with scan
func queryAll[T any](ctx context.Context, db DBTX, scan func(scanner) (*T, error), query string, args ...any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

// queryOne runs query expecting a single row, mapping no rows to notFound
func queryOne[T any](ctx context.Context, db DBTX, scan func(scanner) (*T, error), notFound error, query string, args ...any) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, wrap(err)
	}
	return v, nil
}

// execAffecting runs an UPDATE and maps zero affected rows to notFound
func (s *Storage) execAffecting(ctx context.Context, notFound error, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func (s *Storage) exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return wrap(err)
	}
	return nil
}

// Account operations

const accountColumns = `id, email, name, phone, role, credential, created_at`

func scanAccount(row scanner) (*model.Account, error) {
	a := &model.Account{}
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.Phone, &a.Role, &a.Credential, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	query :=
		`INSERT INTO accounts (email, name, phone, role, credential, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		account.Email, account.Name, account.Phone, account.Role, account.Credential, account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrEmailTaken
		}
		return wrap(err)
	}
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	return queryOne(ctx, s.db, scanAccount, model.ErrAccountNotFound,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (s *Storage) FindAccountsByEmail(ctx context.Context, email string) ([]*model.Account, error) {
	return queryAll(ctx, s.db, scanAccount,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1 ORDER BY id`, email)
}

// Address operations

const addressColumns = `id, account_id, name, description, lat, lng, is_default`

func scanAddress(row scanner) (*model.Address, error) {
	a := &model.Address{}
	if err := row.Scan(&a.ID, &a.AccountID, &a.Name, &a.Description, &a.Lat, &a.Lng, &a.IsDefault); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Storage) CreateAddress(ctx context.Context, address *model.Address) error {
	query :=
		`INSERT INTO addresses (account_id, name, description, lat, lng, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		address.AccountID, address.Name, address.Description, address.Lat, address.Lng, address.IsDefault,
	).Scan(&address.ID)
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Storage) GetAddress(ctx context.Context, id model.AddressID) (*model.Address, error) {
	return queryOne(ctx, s.db, scanAddress, model.ErrAddressNotFound,
		`SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
}

func (s *Storage) ListAddresses(ctx context.Context, accountID model.AccountID) ([]*model.Address, error) {
	return queryAll(ctx, s.db, scanAddress,
		`SELECT `+addressColumns+` FROM addresses WHERE account_id = $1 ORDER BY id`, accountID)
}

func (s *Storage) DeleteAddress(ctx context.Context, id model.AddressID) error {
	return s.exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
}

// Payment operations

const paymentColumns = `id, account_id, type, bank, number, name, expiration, security_code`

func scanPayment(row scanner) (*model.Payment, error) {
	p := &model.Payment{}
	if err := row.Scan(&p.ID, &p.AccountID, &p.Type, &p.Bank, &p.Number, &p.Name, &p.Expiration, &p.SecurityCode); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Storage) CreatePayment(ctx context.Context, payment *model.Payment) error {
	query :=
		`INSERT INTO payments (account_id, type, bank, number, name, expiration, security_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		payment.AccountID, payment.Type, payment.Bank, payment.Number, payment.Name, payment.Expiration, payment.SecurityCode,
	).Scan(&payment.ID)
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Storage) GetPayment(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	return queryOne(ctx, s.db, scanPayment, model.ErrPaymentNotFound,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (s *Storage) ListPayments(ctx context.Context, accountID model.AccountID) ([]*model.Payment, error) {
	return queryAll(ctx, s.db, scanPayment,
		`SELECT `+paymentColumns+` FROM payments WHERE account_id = $1 ORDER BY id`, accountID)
}

func (s *Storage) DeletePayment(ctx context.Context, id model.PaymentID) error {
	return s.exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
}

// Product operations

const productColumns = `id, name, description, price, image, color, weight, calories`

func scanProduct(row scanner) (*model.Product, error) {
	p := &model.Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Color, &p.Weight, &p.Calories); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Storage) CreateProduct(ctx context.Context, product *model.Product) error {
	query :=
		`INSERT INTO products (name, description, price, image, color, weight, calories)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.Image, product.Color, product.Weight, product.Calories,
	).Scan(&product.ID)
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Storage) GetProduct(ctx context.Context, id model.ProductID) (*model.Product, error) {
	return queryOne(ctx, s.db, scanProduct, model.ErrProductNotFound,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (s *Storage) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return queryAll(ctx, s.db, scanProduct, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (s *Storage) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.execAffecting(ctx, model.ErrProductNotFound,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, image = $5, color = $6, weight = $7, calories = $8
		 WHERE id = $1`,
		product.ID, product.Name, product.Description, product.Price, product.Image, product.Color, product.Weight, product.Calories)
}

func (s *Storage) DeleteProduct(ctx context.Context, id model.ProductID) error {
	return s.exec(ctx, `DELETE FROM products WHERE id = $1`, id)
}

// Promotion operations

const promotionColumns = `id, name, description, image, discount, product_id, size_id`

func scanPromotion(row scanner) (*model.Promotion, error) {
	p := &model.Promotion{}
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Discount, &p.ProductID, &p.SizeID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Storage) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	query :=
		`INSERT INTO promotions (name, description, image, discount, product_id, size_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		promotion.Name, promotion.Description, promotion.Image, promotion.Discount, promotion.ProductID, promotion.SizeID,
	).Scan(&promotion.ID)
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Storage) GetPromotion(ctx context.Context, id model.PromotionID) (*model.Promotion, error) {
	return queryOne(ctx, s.db, scanPromotion, model.ErrPromotionNotFound,
		`SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id)
}

func (s *Storage) ListPromotions(ctx context.Context) ([]*model.Promotion, error) {
	return queryAll(ctx, s.db, scanPromotion, `SELECT `+promotionColumns+` FROM promotions ORDER BY id`)
}

func (s *Storage) UpdatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return s.execAffecting(ctx, model.ErrPromotionNotFound,
		`UPDATE promotions
		 SET name = $2, description = $3, image = $4, discount = $5, product_id = $6, size_id = $7
		 WHERE id = $1`,
		promotion.ID, promotion.Name, promotion.Description, promotion.Image, promotion.Discount, promotion.ProductID, promotion.SizeID)
}

func (s *Storage) DeletePromotion(ctx context.Context, id model.PromotionID) error {
	return s.exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
}

// Record operations

const recordColumns = `id, name, type, price`

func scanRecord(row scanner) (*model.Record, error) {
	r := &model.Record{}
	if err := row.Scan(&r.ID, &r.Name, &r.Type, &r.Price); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Storage) CreateRecord(ctx context.Context, record *model.Record) error {
	query :=
		`INSERT INTO records (name, type, price)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	err := s.db.QueryRowContext(ctx, query, record.Name, record.Type, record.Price).Scan(&record.ID)
	if err != nil {
		return wrap(err)
	}
	return nil
}

func (s *Storage) GetRecord(ctx context.Context, id model.RecordID) (*model.Record, error) {
	return queryOne(ctx, s.db, scanRecord, model.ErrRecordNotFound,
		`SELECT `+recordColumns+` FROM records WHERE id = $1`, id)
}

func (s *Storage) ListRecords(ctx context.Context) ([]*model.Record, error) {
	return queryAll(ctx, s.db, scanRecord, `SELECT `+recordColumns+` FROM records ORDER BY id`)
}

func (s *Storage) UpdateRecord(ctx context.Context, record *model.Record) error {
	return s.execAffecting(ctx, model.ErrRecordNotFound,
		`UPDATE records SET name = $2, type = $3, price = $4 WHERE id = $1`,
		record.ID, record.Name, record.Type, record.Price)
}

func (s *Storage) DeleteRecord(ctx context.Context, id model.RecordID) error {
	return s.exec(ctx, `DELETE FROM records WHERE id = $1`, id)
}
