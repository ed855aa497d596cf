package utils

import (
	"strings"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// fallbackDecimalPlaces is used for codes the ISO table does not know.
const fallbackDecimalPlaces = 2

// ApplyRounding rounds amount to precision places using the given method.
// Round is half away from zero; Floor and Ceiling go towards -inf and +inf;
// Truncate drops the extra digits.
func ApplyRounding(amount decimal.Decimal, method domain.RoundingMethod, precision int) decimal.Decimal {
	places := int32(precision)
	switch method {
	case domain.RoundingFloor:
		return amount.RoundFloor(places)
	case domain.RoundingCeiling:
		return amount.RoundCeil(places)
	case domain.RoundingTruncate:
		return amount.Truncate(places)
	default:
		return amount.Round(places)
	}
}

// FormatWithPrecision renders amount with exactly precision decimal places.
// Example: 12.5 with precision 2 returns "12.50".
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatWithCurrency renders amount the way the currency displays it, e.g.
// "$1,234.50" or "1.234,50 €".
func FormatWithCurrency(amount decimal.Decimal, c domain.Currency) string {
	fixed := amount.Abs().StringFixed(int32(c.DecimalPlaces))
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(c.ThousandsSeparator)
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteString(c.DecimalSeparator)
		b.WriteString(fracPart)
	}
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	if c.SymbolPosition == domain.SymbolAfter {
		return sign + b.String() + " " + c.Symbol
	}
	return sign + c.Symbol + b.String()
}

// DefaultDecimalPlaces returns the ISO 4217 minor unit scale for code, capped
// at domain.MaxDecimalPlaces. Unknown codes get two places.
func DefaultDecimalPlaces(code string) int {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fallbackDecimalPlaces
	}
	scale, _ := currency.Standard.Rounding(unit)
	if scale > domain.MaxDecimalPlaces {
		return domain.MaxDecimalPlaces
	}
	return scale
}
