package model

// ProductID uniquely identifies a menu product
type ProductID int64

// Product is an item on the menu
type Product struct {
	ID          ProductID
	Name        string
	Description string
	Price       float64
	Image       string
	Color       string
	Weight      float64 // grams
	Calories    float64
}

// PromotionID uniquely identifies a promotion
type PromotionID int64

// Promotion is a discount on a product in a given size
type Promotion struct {
	ID          PromotionID
	Name        string
	Description string
	Image       string
	Discount    float64 // fraction in [0, 1]
	ProductID   ProductID
	SizeID      RecordID
}

// RecordID uniquely identifies a customization record
type RecordID int64

// RecordType groups customization records
type RecordType string

const (
	RecordTypeSize      RecordType = "size"
	RecordTypeSauce     RecordType = "sauce"
	RecordTypeCheese    RecordType = "cheese"
	RecordTypeTopping   RecordType = "topping"
	RecordTypeDrink     RecordType = "drink"
	RecordTypeSalad     RecordType = "salad"
	RecordTypeAppetizer RecordType = "appetizer"
	RecordTypeDessert   RecordType = "dessert"
)

// Record is a customization option with its surcharge
type Record struct {
	ID    RecordID
	Name  string
	Type  RecordType
	Price float64
}
