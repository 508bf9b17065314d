package model

// PaymentID uniquely identifies a stored payment method
type PaymentID int64

// CardType distinguishes credit and debit cards
type CardType string

const (
	CardTypeCredit CardType = "credit"
	CardTypeDebit  CardType = "debit"
)

// Brand is the card issuer derived from the card number
type Brand string

const (
	BrandUnknown    Brand = ""
	BrandVisa       Brand = "Visa"
	BrandMastercard Brand = "Mastercard"
	BrandAmex       Brand = "AMEX"
	BrandDiscover   Brand = "Discover"
	BrandDiners     Brand = "Diners"
)

// Payment is a card saved by an account.
//
// Number and SecurityCode hold the original values while the record is inside
// the payment service. Brand is never persisted; it is filled in when the
// record is projected for output.
type Payment struct {
	ID           PaymentID
	AccountID    AccountID
	Type         CardType
	Bank         string
	Number       string
	Name         string // cardholder
	Expiration   string
	SecurityCode string
	Brand        Brand `json:"-"`
}
