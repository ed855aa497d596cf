package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource tags where an exchange rate came from.
type RateSource string

const (
	RateSourceManual RateSource = "Manual"
	RateSourceAPI    RateSource = "API"
	RateSourceBank   RateSource = "Bank"
)

// Valid reports whether s is a known source.
func (s RateSource) Valid() bool {
	switch s {
	case RateSourceManual, RateSourceAPI, RateSourceBank:
		return true
	}
	return false
}

// ExchangeRate is the rate for an ordered currency pair over an effective window.
// EffectiveTo == nil means the window is open-ended.
type ExchangeRate struct {
	ID               int64           `json:"id"`
	CompanyID        int64           `json:"company_id"`
	FromCurrencyID   int64           `json:"from_currency_id"`
	ToCurrencyID     int64           `json:"to_currency_id"`
	FromCurrencyCode string          `json:"from_currency_code,omitempty"`
	ToCurrencyCode   string          `json:"to_currency_code,omitempty"`
	Rate             decimal.Decimal `json:"rate"`
	EffectiveFrom    time.Time       `json:"effective_from"`
	EffectiveTo      *time.Time      `json:"effective_to"`
	Source           RateSource      `json:"source"`
	Notes            string          `json:"notes,omitempty"`
	IsActive         bool            `json:"is_active"`
	AuditFields
}

// Covers reports whether date falls in [EffectiveFrom, EffectiveTo], treating a
// nil EffectiveTo as infinity.
func (r ExchangeRate) Covers(date time.Time) bool {
	day := DateOnly(date)
	if day.Before(DateOnly(r.EffectiveFrom)) {
		return false
	}
	return r.EffectiveTo == nil || !day.After(DateOnly(*r.EffectiveTo))
}

// CloseDateFor returns the effective_to a previous open rate gets when a new
// rate starts on newFrom.
func CloseDateFor(newFrom time.Time) time.Time {
	return DateOnly(newFrom).AddDate(0, 0, -1)
}

// HistoryAction enumerates what happened to a rate.
type HistoryAction string

const (
	HistoryCreate     HistoryAction = "Create"
	HistoryUpdate     HistoryAction = "Update"
	HistoryDeactivate HistoryAction = "Deactivate"
)

// Reasons recorded in the history log.
const (
	ReasonAutoClosed  = "Auto-closed due to new rate"
	ReasonNewRate     = "New rate created"
	ReasonDeactivated = "Rate deactivated"
	ReasonCurrencyDel = "Currency deleted"
)

// ExchangeRateHistory is an immutable audit row for a rate change.
type ExchangeRateHistory struct {
	ID               int64            `json:"id"`
	ExchangeRateID   int64            `json:"exchange_rate_id"`
	CompanyID        int64            `json:"company_id"`
	FromCurrencyID   int64            `json:"from_currency_id"`
	ToCurrencyID     int64            `json:"to_currency_id"`
	Action           HistoryAction    `json:"action"`
	OldRate          *decimal.Decimal `json:"old_rate"`
	NewRate          *decimal.Decimal `json:"new_rate"`
	OldEffectiveFrom *time.Time       `json:"old_effective_from"`
	NewEffectiveFrom *time.Time       `json:"new_effective_from"`
	OldEffectiveTo   *time.Time       `json:"old_effective_to"`
	NewEffectiveTo   *time.Time       `json:"new_effective_to"`
	Reason           string           `json:"reason"`
	ChangedBy        int64            `json:"changed_by"`
	ChangedAt        time.Time        `json:"changed_at"`
}

// ExchangeRateFilter narrows the paginated rate list.
type ExchangeRateFilter struct {
	ListFilter
	FromCurrencyID *int64
	ToCurrencyID   *int64
	CurrencyID     *int64 // either side of the pair
	Source         *RateSource
	DateFrom       *time.Time
	DateTo         *time.Time
}

// Conversion is the result of converting an amount between two currencies.
type Conversion struct {
	Amount          decimal.Decimal `json:"amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	FormattedAmount string          `json:"formatted_amount"`
	DisplayAmount   string          `json:"display_amount"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	FromCurrencyID  int64           `json:"from_currency_id"`
	ToCurrencyID    int64           `json:"to_currency_id"`
	RateID          *int64          `json:"rate_id,omitempty"`
	EffectiveFrom   *time.Time      `json:"effective_from,omitempty"`
	ConversionDate  time.Time       `json:"conversion_date"`
	RateSource      string          `json:"rate_source"`
	RoundingMethod  RoundingMethod  `json:"rounding_method,omitempty"`
	Precision       int             `json:"rounding_precision"`
	IsStaleRate     bool            `json:"is_stale_rate"`
}

// RateSourceSameCurrency is reported when from and to are identical.
const RateSourceSameCurrency = "Same Currency"

// BulkRateStatus is the outcome of one bulk-update item.
type BulkRateStatus string

const (
	BulkRateApplied BulkRateStatus = "applied"
	BulkRateSkipped BulkRateStatus = "skipped"
)

// BulkRateResult reports what happened to one item of a bulk update.
type BulkRateResult struct {
	Index          int            `json:"index"`
	FromCurrencyID int64          `json:"from_currency_id"`
	ToCurrencyID   int64          `json:"to_currency_id"`
	Status         BulkRateStatus `json:"status"`
	RateID         *int64         `json:"rate_id,omitempty"`
	Reason         string         `json:"reason,omitempty"`
}
