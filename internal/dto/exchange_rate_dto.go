package dto

import (
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest starts a new rate window for a currency pair.
type UpsertExchangeRateRequest struct {
	FromCurrencyID int64           `json:"from_currency_id" binding:"required,gt=0"`
	ToCurrencyID   int64           `json:"to_currency_id" binding:"required,gt=0"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveFrom  string          `json:"effective_from" binding:"required,datetime=2006-01-02"`
	Source         string          `json:"source" binding:"omitempty,oneof=Manual API Bank"`
	Notes          string          `json:"notes" binding:"omitempty,max=500"`
}

// BulkUpdateExchangeRatesRequest applies many rate upserts in one transaction.
// Items are validated individually so that one bad item does not fail the batch.
type BulkUpdateExchangeRatesRequest struct {
	Rates []UpsertExchangeRateRequest `json:"rates" binding:"required,min=1,max=500"`
}

// BulkUpdateExchangeRatesResponse reports the outcome of every item.
type BulkUpdateExchangeRatesResponse struct {
	Applied int                     `json:"applied"`
	Skipped int                     `json:"skipped"`
	Results []domain.BulkRateResult `json:"results"`
}

// NewBulkUpdateResponse counts the per-item outcomes.
func NewBulkUpdateResponse(results []domain.BulkRateResult) BulkUpdateExchangeRatesResponse {
	resp := BulkUpdateExchangeRatesResponse{Results: results}
	for _, r := range results {
		if r.Status == domain.BulkRateApplied {
			resp.Applied++
		} else {
			resp.Skipped++
		}
	}
	return resp
}

// ListExchangeRatesRequest filters the rate list. CurrentRate additionally
// asks for the single rate of the pair effective on Date; IncludeHistory
// additionally asks for the pair's full timeline and history log.
type ListExchangeRatesRequest struct {
	ListRequest
	FromCurrencyID *int64 `json:"from_currency_id" binding:"omitempty,gt=0"`
	ToCurrencyID   *int64 `json:"to_currency_id" binding:"omitempty,gt=0"`
	CurrencyID     *int64 `json:"currency_id" binding:"omitempty,gt=0"`
	Source         string `json:"source" binding:"omitempty,oneof=Manual API Bank"`
	DateFrom       string `json:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo         string `json:"date_to" binding:"omitempty,datetime=2006-01-02"`
	CurrentRate    bool   `json:"current_rate"`
	Date           string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	IncludeHistory bool   `json:"include_history"`
}

// ToFilter converts the request into a domain.ExchangeRateFilter.
func (r ListExchangeRatesRequest) ToFilter() (domain.ExchangeRateFilter, error) {
	filter := domain.ExchangeRateFilter{
		ListFilter:     r.ListRequest.ToFilter(),
		FromCurrencyID: r.FromCurrencyID,
		ToCurrencyID:   r.ToCurrencyID,
		CurrencyID:     r.CurrencyID,
	}
	if r.Source != "" {
		src := domain.RateSource(r.Source)
		filter.Source = &src
	}
	var err error
	if filter.DateFrom, err = ParseDate(r.DateFrom); err != nil {
		return filter, err
	}
	if filter.DateTo, err = ParseDate(r.DateTo); err != nil {
		return filter, err
	}
	return filter, nil
}

// ExchangeRateTimelineResponse is every rate of a pair plus its change log.
type ExchangeRateTimelineResponse struct {
	Rates   []domain.ExchangeRate        `json:"rates"`
	History []domain.ExchangeRateHistory `json:"history"`
}

// ExchangeRateQueryResponse is the result of the rate list query. Rates is the
// filtered page; CurrentRate and History are set only when requested for a pair.
// CurrentRate stays null when no rate covers the date.
type ExchangeRateQueryResponse struct {
	CurrentRate *domain.ExchangeRate          `json:"current_rate"`
	History     *ExchangeRateTimelineResponse `json:"history,omitempty"`
	Rates       []domain.ExchangeRate         `json:"rates"`
}
