package response

import (
	"time"

	"github.com/mcoot/pizzeria/internal/model"
)

// Account represents an account in API responses. The credential is never
// included.
type Account struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:        int64(a.ID),
		Email:     a.Email,
		Name:      a.Name,
		Phone:     a.Phone,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

// AuthResponse is the response for register and login
type AuthResponse struct {
	Account      Account   `json:"account"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a bound session
func AuthResponseFromSession(s *model.Session) AuthResponse {
	return AuthResponse{
		Account:      AccountFromModel(s.Account),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// WhoAmIResponse reports the account bound to the caller's session, if any
type WhoAmIResponse struct {
	Account *Account `json:"account"`
}

// Address represents a delivery address
type Address struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	IsDefault   bool    `json:"is_default"`
}

// AddressFromModel converts a model.Address
func AddressFromModel(a *model.Address) Address {
	return Address{
		ID:          int64(a.ID),
		Name:        a.Name,
		Description: a.Description,
		Lat:         a.Lat,
		Lng:         a.Lng,
		IsDefault:   a.IsDefault,
	}
}

// Payment represents a saved card. Number and SecurityCode are masked.
type Payment struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Bank         string `json:"bank"`
	Number       string `json:"number"`
	Name         string `json:"name"`
	Expiration   string `json:"expiration"`
	SecurityCode string `json:"security_code"`
	Brand        string `json:"brand"`
}

// PaymentFromProjection converts a payment that has already been projected
// by the payment service.
func PaymentFromProjection(p *model.Payment) Payment {
	return Payment{
		ID:           int64(p.ID),
		Type:         string(p.Type),
		Bank:         p.Bank,
		Number:       p.Number,
		Name:         p.Name,
		Expiration:   p.Expiration,
		SecurityCode: p.SecurityCode,
		Brand:        string(p.Brand),
	}
}

// Product represents a menu product
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	Calories    float64 `json:"calories"`
}

// ProductFromModel converts a model.Product
func ProductFromModel(p *model.Product) Product {
	return Product{
		ID:          int64(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Color:       p.Color,
		Weight:      p.Weight,
		Calories:    p.Calories,
	}
}

// Promotion represents a promotion
type Promotion struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Discount    float64 `json:"discount"`
	ProductID   int64   `json:"product_id"`
	SizeID      int64   `json:"size_id"`
}

// PromotionFromModel converts a model.Promotion
func PromotionFromModel(p *model.Promotion) Promotion {
	return Promotion{
		ID:          int64(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Discount:    p.Discount,
		ProductID:   int64(p.ProductID),
		SizeID:      int64(p.SizeID),
	}
}

// Record represents a customization record
type Record struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// RecordFromModel converts a model.Record
func RecordFromModel(r *model.Record) Record {
	return Record{
		ID:    int64(r.ID),
		Name:  r.Name,
		Type:  string(r.Type),
		Price: r.Price,
	}
}

// ListFromModels converts a slice with the given converter
func ListFromModels[M any, R any](items []*M, convert func(*M) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}
