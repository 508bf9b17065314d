package request

import "strings"

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name" validate:"required,max=100"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Normalize trims the handle so padded input reaches the resolver
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// CreateAddressRequest is the request body for saving a delivery address
type CreateAddressRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Lat         float64 `json:"lat" validate:"latitude"`
	Lng         float64 `json:"lng" validate:"longitude"`
	IsDefault   bool    `json:"is_default"`
}

// CreatePaymentRequest is the request body for saving a card
type CreatePaymentRequest struct {
	Type         string `json:"type" validate:"required,oneof=credit debit"`
	Bank         string `json:"bank" validate:"required,max=100"`
	Number       string `json:"number" validate:"required,len=16,numeric"`
	Name         string `json:"name" validate:"required,max=100"`
	Expiration   string `json:"expiration" validate:"required,datetime=2006-01-02"`
	SecurityCode string `json:"security_code" validate:"required,numeric,min=3,max=4"`
}

// CreateProductRequest is the request body for adding a menu product
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
	Price       float64 `json:"price" validate:"gte=0"`
	Weight      float64 `json:"weight" validate:"gte=0"`
	Calories    float64 `json:"calories" validate:"gte=0"`
}

// UpdateProductRequest is the request body for patching a product.
// Absent fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Color       *string  `json:"color" validate:"omitempty,hexcolor"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=0"`
	Calories    *float64 `json:"calories" validate:"omitempty,gte=0"`
}

// CreatePromotionRequest is the request body for adding a promotion
type CreatePromotionRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Discount    float64 `json:"discount" validate:"gte=0,lte=1"`
	ProductID   int64   `json:"product_id" validate:"required,gt=0"`
	SizeID      int64   `json:"size_id" validate:"required,gt=0"`
}

// UpdatePromotionRequest is the request body for patching a promotion
type UpdatePromotionRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Discount    *float64 `json:"discount" validate:"omitempty,gte=0,lte=1"`
	ProductID   *int64   `json:"product_id" validate:"omitempty,gt=0"`
	SizeID      *int64   `json:"size_id" validate:"omitempty,gt=0"`
}

// CreateRecordRequest is the request body for adding a customization record
type CreateRecordRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Type  string  `json:"type" validate:"required,oneof=size sauce cheese topping drink salad appetizer dessert"`
	Price float64 `json:"price" validate:"gte=0"`
}

// UpdateRecordRequest is the request body for patching a record
type UpdateRecordRequest struct {
	Name  *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Type  *string  `json:"type" validate:"omitempty,oneof=size sauce cheese topping drink salad appetizer dessert"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}
