package payment

import (
	"strconv"
	"strings"

	"github.com/mcoot/pizzeria/internal/model"
)

const maskChar = "X"

// brandRule matches card numbers whose first len(lo) digits fall in [lo, hi]
type brandRule struct {
	lo, hi string
}

func (r brandRule) matches(number string) bool {
	n := len(r.lo)
	if len(number) < n {
		return false
	}
	prefix, err := strconv.Atoi(number[:n])
	if err != nil {
		return false
	}
	lo, _ := strconv.Atoi(r.lo)
	hi, _ := strconv.Atoi(r.hi)
	return prefix >= lo && prefix <= hi
}

// brandTable is evaluated in order; the first brand with a matching rule wins
var brandTable = []struct {
	brand model.Brand
	rules []brandRule
}{
	{model.BrandVisa, []brandRule{{"4", "4"}}},
	{model.BrandMastercard, []brandRule{{"51", "55"}, {"2221", "2720"}}},
	{model.BrandAmex, []brandRule{{"34", "34"}, {"37", "37"}}},
	{model.BrandDiscover, []brandRule{{"6011", "6011"}, {"622126", "622925"}, {"644", "649"}, {"65", "65"}}},
	{model.BrandDiners, []brandRule{{"36", "36"}}},
}

// ClassifyBrand derives the card issuer from the number's leading digits.
// Numbers containing anything other than digits, such as an already masked
// number, classify as BrandUnknown.
func ClassifyBrand(number string) model.Brand {
	if number == "" || strings.IndexFunc(number, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return model.BrandUnknown
	}
	for _, entry := range brandTable {
		for _, rule := range entry.rules {
			if rule.matches(number) {
				return entry.brand
			}
		}
	}
	return model.BrandUnknown
}

// MaskCardNumber hides all but the last four characters, grouping the hidden
// part in fours. "4111111111111111" becomes "XXXX-XXXX-XXXX-1111".
func MaskCardNumber(number string) string {
	l := len(number)
	if l < 4 {
		// Not grouped: the "XX-123" form would expose every digit of a short input.
		return strings.Repeat(maskChar, l)
	}

	var b strings.Builder
	for i := 0; i < l-4; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteString("-")
		}
		b.WriteString(maskChar)
	}
	b.WriteString("-")
	b.WriteString(number[l-4:])
	return b.String()
}

// MaskSecurityCode replaces every character with X
func MaskSecurityCode(code string) string {
	return strings.Repeat(maskChar, len(code))
}

// Project returns the outward-facing copy of p: brand classified from the
// original number, then number and security code masked.
func Project(p model.Payment) model.Payment {
	p.Brand = ClassifyBrand(p.Number)
	p.Number = MaskCardNumber(p.Number)
	p.SecurityCode = MaskSecurityCode(p.SecurityCode)
	return p
}
