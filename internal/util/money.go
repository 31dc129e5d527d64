package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal money string ("149.90") to cents. Decimal
// arithmetic avoids the float rounding that a ParseFloat-and-multiply would
// introduce. Comma is accepted as the decimal separator since the UI sends
// pt-BR formatted values.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(normalizeDecimal(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}
	return d.Shift(2).IntPart(), nil
}

// FormatAmount renders cents as a plain two-decimal string ("149.90").
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func normalizeDecimal(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == ',' {
			out[i] = '.'
		}
	}
	return string(out)
}
