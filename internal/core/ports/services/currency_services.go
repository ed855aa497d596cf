package services

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data.
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves a currency of the actor's company.
	GetCurrencyByID(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.Currency, error)

	// GetCurrencyDetails returns the currency with its 10 most recent exchange rates.
	GetCurrencyDetails(ctx context.Context, actor domain.Actor, currencyID int64) (*dto.CurrencyDetailsResponse, error)

	// ListCurrencies retrieves a page of currencies and the total count.
	ListCurrencies(ctx context.Context, actor domain.Actor, req dto.ListCurrenciesRequest) ([]domain.Currency, int, error)

	// CheckUsage reports what still references the currency.
	CheckUsage(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.CurrencyUsage, error)
}

// CurrencyWriterSvc defines write operations for currency data.
type CurrencyWriterSvc interface {
	// CreateCurrency creates a currency, or restores a soft-deleted one with the same code.
	CreateCurrency(ctx context.Context, actor domain.Actor, req dto.CreateCurrencyRequest) (*domain.Currency, error)

	// UpdateCurrency applies a partial update.
	UpdateCurrency(ctx context.Context, actor domain.Actor, req dto.UpdateCurrencyRequest) (*domain.Currency, error)

	// DeleteCurrency soft-deletes the currency and deactivates its exchange rates.
	DeleteCurrency(ctx context.Context, actor domain.Actor, currencyID int64) error

	// SetBaseCurrency moves the base flag to the given currency.
	SetBaseCurrency(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data.
type ExchangeRateReaderSvc interface {
	ListExchangeRates(ctx context.Context, actor domain.Actor, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, int, error)

	// GetCurrentRate returns the rate of the pair effective on date.
	GetCurrentRate(ctx context.Context, actor domain.Actor, fromID, toID int64, date time.Time) (*domain.ExchangeRate, error)

	// GetRateTimeline returns every rate of the pair with the history log.
	GetRateTimeline(ctx context.Context, actor domain.Actor, fromID, toID int64) (*dto.ExchangeRateTimelineResponse, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data.
type ExchangeRateWriterSvc interface {
	// UpsertExchangeRate closes the open window of the pair, if any, and opens a new one.
	UpsertExchangeRate(ctx context.Context, actor domain.Actor, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error)

	// BulkUpdateExchangeRates upserts many pairs in one transaction and reports every item.
	BulkUpdateExchangeRates(ctx context.Context, actor domain.Actor, req dto.BulkUpdateExchangeRatesRequest) ([]domain.BulkRateResult, error)

	// DeleteExchangeRate deactivates a rate.
	DeleteExchangeRate(ctx context.Context, actor domain.Actor, rateID int64) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// ConversionSvc converts amounts using the stored rates and the company policy.
type ConversionSvc interface {
	ConvertAmount(ctx context.Context, actor domain.Actor, req dto.ConvertAmountRequest) (*domain.Conversion, error)
}

// CurrencyPolicySvc reads and updates the company's currency policy.
type CurrencyPolicySvc interface {
	// GetPolicy returns the stored policy, or the defaults when none is stored.
	GetPolicy(ctx context.Context, actor domain.Actor) (*domain.CurrencyPolicy, error)
	UpdatePolicy(ctx context.Context, actor domain.Actor, req dto.UpdateCurrencyPolicyRequest) (*domain.CurrencyPolicy, error)
}

// RateCache memoizes resolved exchange rates per company.
type RateCache interface {
	// GetRate returns the cached rate for the key or calls load and stores its result.
	GetRate(ctx context.Context, companyID, fromID, toID int64, date time.Time, load func(context.Context) (*domain.ExchangeRate, error)) (*domain.ExchangeRate, error)

	// Invalidate drops every cached rate of the company.
	Invalidate(ctx context.Context, companyID int64) error
}
