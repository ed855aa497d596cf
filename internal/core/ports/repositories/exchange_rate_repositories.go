package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rates.
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a rate of the company.
	FindExchangeRateByID(ctx context.Context, companyID, rateID int64) (*domain.ExchangeRate, error)

	// FindOpenRateForUpdate finds the active open-ended rate for the pair and locks it.
	// It must run inside a transaction.
	FindOpenRateForUpdate(ctx context.Context, companyID, fromID, toID int64) (*domain.ExchangeRate, error)

	// FindRateAt returns the active rate whose window contains date; the latest
	// effective_from wins when windows overlap.
	FindRateAt(ctx context.Context, companyID, fromID, toID int64, date time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves a filtered page of rates and the total match count.
	ListExchangeRates(ctx context.Context, companyID int64, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, int, error)

	// ListRatesForPair returns every rate of the pair ordered by effective_from.
	ListRatesForPair(ctx context.Context, companyID, fromID, toID int64) ([]domain.ExchangeRate, error)

	// ListRecentRatesForCurrency returns the newest rates where the currency is on either side.
	ListRecentRatesForCurrency(ctx context.Context, companyID, currencyID int64, limit int) ([]domain.ExchangeRate, error)

	// CountActiveRatesForCurrency counts active rates where the currency is on either side.
	CountActiveRatesForCurrency(ctx context.Context, companyID, currencyID int64) (int, error)
}

// ExchangeRateWriter defines write operations for exchange rates.
type ExchangeRateWriter interface {
	// CreateExchangeRate inserts the rate and fills in its ID.
	CreateExchangeRate(ctx context.Context, rate *domain.ExchangeRate) error

	// CloseExchangeRate sets effective_to on an open rate.
	CloseExchangeRate(ctx context.Context, rateID int64, effectiveTo time.Time, userID int64, now time.Time) error

	// DeactivateExchangeRate sets is_active=false on a single rate.
	DeactivateExchangeRate(ctx context.Context, companyID, rateID, userID int64, now time.Time) error

	// DeactivateRatesForCurrency deactivates every active rate touching the
	// currency and returns the affected rows.
	DeactivateRatesForCurrency(ctx context.Context, companyID, currencyID, userID int64, now time.Time) ([]domain.ExchangeRate, error)
}

// ExchangeRateHistoryRepository appends to and reads the immutable rate history log.
type ExchangeRateHistoryRepository interface {
	InsertHistory(ctx context.Context, entry *domain.ExchangeRateHistory) error
	ListHistoryForPair(ctx context.Context, companyID, fromID, toID int64) ([]domain.ExchangeRateHistory, error)
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
	ExchangeRateHistoryRepository
}
