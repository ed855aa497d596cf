package dto

import (
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Code                     string `json:"code" binding:"required,currency_code"`
	Name                     string `json:"name" binding:"required,max=100"`
	Symbol                   string `json:"symbol" binding:"required,max=10"`
	SymbolPosition           string `json:"symbol_position" binding:"omitempty,oneof=Before After"`
	DecimalPlaces            *int   `json:"decimal_places" binding:"omitempty,gte=0,lte=4"`
	DecimalSeparator         string `json:"decimal_separator" binding:"omitempty,max=1"`
	ThousandsSeparator       string `json:"thousands_separator" binding:"omitempty,max=1"`
	IsBaseCurrency           bool   `json:"is_base_currency"`
	IsDefaultExpenseCurrency bool   `json:"is_default_expense_currency"`
	IsActive                 *bool  `json:"is_active"`
}

// UpdateCurrencyRequest is a partial update; omitted fields are left unchanged.
type UpdateCurrencyRequest struct {
	ID                       int64   `json:"id" binding:"required,gt=0"`
	Code                     *string `json:"code" binding:"omitempty,currency_code"`
	Name                     *string `json:"name" binding:"omitempty,max=100"`
	Symbol                   *string `json:"symbol" binding:"omitempty,max=10"`
	SymbolPosition           *string `json:"symbol_position" binding:"omitempty,oneof=Before After"`
	DecimalPlaces            *int    `json:"decimal_places" binding:"omitempty,gte=0,lte=4"`
	DecimalSeparator         *string `json:"decimal_separator" binding:"omitempty,max=1"`
	ThousandsSeparator       *string `json:"thousands_separator" binding:"omitempty,max=1"`
	IsBaseCurrency           *bool   `json:"is_base_currency"`
	IsDefaultExpenseCurrency *bool   `json:"is_default_expense_currency"`
	IsActive                 *bool   `json:"is_active"`
}

// ToUpdate converts the request into a domain.CurrencyUpdate.
func (r UpdateCurrencyRequest) ToUpdate() domain.CurrencyUpdate {
	u := domain.CurrencyUpdate{
		Code:                     r.Code,
		Name:                     r.Name,
		Symbol:                   r.Symbol,
		DecimalPlaces:            r.DecimalPlaces,
		DecimalSeparator:         r.DecimalSeparator,
		ThousandsSeparator:       r.ThousandsSeparator,
		IsBaseCurrency:           r.IsBaseCurrency,
		IsDefaultExpenseCurrency: r.IsDefaultExpenseCurrency,
		IsActive:                 r.IsActive,
	}
	if r.SymbolPosition != nil {
		pos := domain.SymbolPosition(*r.SymbolPosition)
		u.SymbolPosition = &pos
	}
	return u
}

// ListCurrenciesRequest filters the currency list. Sortable by code, name, created_at.
type ListCurrenciesRequest struct {
	ListRequest
}

// CurrencyDetailsResponse is a currency together with its most recent rates.
type CurrencyDetailsResponse struct {
	domain.Currency
	RecentExchangeRates []domain.ExchangeRate `json:"recent_exchange_rates"`
}

// ConvertAmountRequest asks for an amount converted between two currencies.
type ConvertAmountRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	FromCurrencyID int64           `json:"from_currency_id" binding:"required,gt=0"`
	ToCurrencyID   int64           `json:"to_currency_id" binding:"required,gt=0"`
	ConversionDate string          `json:"conversion_date" binding:"omitempty,datetime=2006-01-02"`
}
