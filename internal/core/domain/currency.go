package domain

import (
	"regexp"
	"strings"
)

// SymbolPosition controls where a currency symbol is rendered relative to the amount.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "Before"
	SymbolAfter  SymbolPosition = "After"
)

// MaxDecimalPlaces is the largest precision a currency may declare.
const MaxDecimalPlaces = 4

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCode trims and upper-cases a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidCurrencyCode reports whether code normalizes to three letters.
func ValidCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(NormalizeCode(code))
}

// Currency represents a company-scoped currency used by the expense module.
type Currency struct {
	ID                       int64          `json:"id"`
	CompanyID                int64          `json:"company_id"`
	Code                     string         `json:"code"`   // e.g., "USD"
	Name                     string         `json:"name"`   // e.g., "US Dollar"
	Symbol                   string         `json:"symbol"` // e.g., "$"
	SymbolPosition           SymbolPosition `json:"symbol_position"`
	DecimalPlaces            int            `json:"decimal_places"`
	DecimalSeparator         string         `json:"decimal_separator"`
	ThousandsSeparator       string         `json:"thousands_separator"`
	IsBaseCurrency           bool           `json:"is_base_currency"`
	IsDefaultExpenseCurrency bool           `json:"is_default_expense_currency"`
	IsActive                 bool           `json:"is_active"`
	AuditFields
}

// CurrencyUpdate holds the fields of a partial currency update. Nil means unchanged.
type CurrencyUpdate struct {
	Code                     *string
	Name                     *string
	Symbol                   *string
	SymbolPosition           *SymbolPosition
	DecimalPlaces            *int
	DecimalSeparator         *string
	ThousandsSeparator       *string
	IsBaseCurrency           *bool
	IsDefaultExpenseCurrency *bool
	IsActive                 *bool
}

// Apply copies the provided fields onto c.
func (u CurrencyUpdate) Apply(c *Currency) {
	if u.Code != nil {
		c.Code = *u.Code
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Symbol != nil {
		c.Symbol = *u.Symbol
	}
	if u.SymbolPosition != nil {
		c.SymbolPosition = *u.SymbolPosition
	}
	if u.DecimalPlaces != nil {
		c.DecimalPlaces = *u.DecimalPlaces
	}
	if u.DecimalSeparator != nil {
		c.DecimalSeparator = *u.DecimalSeparator
	}
	if u.ThousandsSeparator != nil {
		c.ThousandsSeparator = *u.ThousandsSeparator
	}
	if u.IsBaseCurrency != nil {
		c.IsBaseCurrency = *u.IsBaseCurrency
	}
	if u.IsDefaultExpenseCurrency != nil {
		c.IsDefaultExpenseCurrency = *u.IsDefaultExpenseCurrency
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
}

// CurrencyUsage reports what still references a currency.
type CurrencyUsage struct {
	CurrencyID        int64 `json:"currency_id"`
	IsBaseCurrency    bool  `json:"is_base_currency"`
	IsDefaultCurrency bool  `json:"is_default_currency"`
	ExchangeRateCount int   `json:"exchange_rate_count"`
	TotalUsageCount   int   `json:"total_usage_count"`
	CanDelete         bool  `json:"can_delete"`
}

// NewCurrencyUsage builds the usage report and derives the totals.
func NewCurrencyUsage(currency *Currency, rateCount int) CurrencyUsage {
	usage := CurrencyUsage{
		CurrencyID:        currency.ID,
		IsBaseCurrency:    currency.IsBaseCurrency,
		IsDefaultCurrency: currency.IsDefaultExpenseCurrency,
		ExchangeRateCount: rateCount,
	}
	if usage.IsBaseCurrency {
		usage.TotalUsageCount++
	}
	if usage.IsDefaultCurrency {
		usage.TotalUsageCount++
	}
	usage.TotalUsageCount += rateCount
	usage.CanDelete = usage.TotalUsageCount == 0
	return usage
}
