// Package format renders money and percentages for reports in Brazilian
// notation (R$ 1.234,56 and 12,34%).
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Cents rounds a float amount to cents using half-away-from-zero rounding.
func Cents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// Currency returns a currency string with the real sign and thousands separators (e.g., "-R$ 1.234,56").
func Currency(amount float64) string {
	value := Cents(amount)
	formatted := groupDecimal(value.Abs())
	if value.IsNegative() {
		return "-R$ " + formatted
	}
	return "R$ " + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1.234,56").
func NumericCurrency(amount float64) string {
	value := Cents(amount)
	sign := ""
	if value.IsNegative() {
		sign = "-"
	}
	return sign + groupDecimal(value.Abs())
}

// Percent renders a 0-1 ratio as a percentage with two decimals (0.0835 -> "8,35%").
func Percent(ratio float64) string {
	value := decimal.NewFromFloat(ratio).Shift(2).Round(2)
	sign := ""
	if value.IsNegative() {
		sign = "-"
	}
	return sign + groupDecimal(value.Abs()) + "%"
}

func groupDecimal(value decimal.Decimal) string {
	formatted := value.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('.')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "," + decPart
}
