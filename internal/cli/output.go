package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AuthResult:
		o.printAuthResult(v)
	case WhoAmIResult:
		o.printWhoAmI(v)
	case []Address:
		o.printAddresses(v)
	case Address:
		o.printAddresses([]Address{v})
	case []Payment:
		o.printPayments(v)
	case Payment:
		o.printPayments([]Payment{v})
	case []Product:
		o.printProducts(v)
	case Product:
		o.printProduct(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// AuthResult combines account and token
type AuthResult struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// WhoAmIResult is the whoami response
type WhoAmIResult struct {
	Account *Account `json:"account"`
}

// Address response type
type Address struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	IsDefault   bool    `json:"is_default"`
}

// Payment response type. Number and SecurityCode arrive masked.
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

// Product response type
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

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Fprintf(o.w, "Account: %s <%s> (%d)\n", a.Name, a.Email, a.ID)
	fmt.Fprintf(o.w, "Role: %s\n", a.Role)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printAccount(a.Account)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
}

func (o *Output) printWhoAmI(w WhoAmIResult) {
	if w.Account == nil {
		fmt.Fprintln(o.w, "Not logged in")
		return
	}
	o.printAccount(*w.Account)
}

func (o *Output) printAddresses(addresses []Address) {
	if len(addresses) == 0 {
		fmt.Fprintln(o.w, "No addresses")
		return
	}
	for _, a := range addresses {
		def := ""
		if a.IsDefault {
			def = " [default]"
		}
		fmt.Fprintf(o.w, "%d: %s (%.5f, %.5f)%s\n", a.ID, a.Name, a.Lat, a.Lng, def)
		if a.Description != "" {
			fmt.Fprintf(o.w, "    %s\n", a.Description)
		}
	}
}

func (o *Output) printPayments(payments []Payment) {
	if len(payments) == 0 {
		fmt.Fprintln(o.w, "No payment methods")
		return
	}
	for _, p := range payments {
		brand := p.Brand
		if brand == "" {
			brand = "Unknown"
		}
		fmt.Fprintf(o.w, "%d: %s %s %s (%s, %s) exp %s\n", p.ID, brand, p.Type, p.Number, p.Bank, p.Name, p.Expiration)
	}
}

func (o *Output) printProducts(products []Product) {
	if len(products) == 0 {
		fmt.Fprintln(o.w, "No products")
		return
	}
	for _, p := range products {
		fmt.Fprintf(o.w, "%d: %s %.2f\n", p.ID, p.Name, p.Price)
	}
}

func (o *Output) printProduct(p Product) {
	fmt.Fprintf(o.w, "Product: %s (%d)\n", p.Name, p.ID)
	fmt.Fprintf(o.w, "Price: %.2f\n", p.Price)
	if p.Description != "" {
		fmt.Fprintf(o.w, "Description: %s\n", p.Description)
	}
	if p.Weight > 0 {
		fmt.Fprintf(o.w, "Weight: %.0fg\n", p.Weight)
	}
	if p.Calories > 0 {
		fmt.Fprintf(o.w, "Calories: %.0f\n", p.Calories)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
