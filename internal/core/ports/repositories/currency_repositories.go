package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
)

// CurrencyReader defines read operations for currency data.
// Lookups ignore soft-deleted rows unless stated otherwise.
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency of the company by its identifier.
	FindCurrencyByID(ctx context.Context, companyID, currencyID int64) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a currency of the company by its 3-letter code.
	FindCurrencyByCode(ctx context.Context, companyID int64, code string) (*domain.Currency, error)

	// FindDeletedCurrencyByCode returns the most recently soft-deleted currency with the code.
	FindDeletedCurrencyByCode(ctx context.Context, companyID int64, code string) (*domain.Currency, error)

	// FindBaseCurrency returns the company's base currency.
	FindBaseCurrency(ctx context.Context, companyID int64) (*domain.Currency, error)

	// FindDefaultExpenseCurrency returns the company's default expense currency.
	FindDefaultExpenseCurrency(ctx context.Context, companyID int64) (*domain.Currency, error)

	// ListCurrencies retrieves a page of currencies and the total match count.
	ListCurrencies(ctx context.Context, companyID int64, filter domain.ListFilter) ([]domain.Currency, int, error)
}

// CurrencyWriter defines write operations for currency data.
type CurrencyWriter interface {
	// CreateCurrency inserts the currency and fills in its ID.
	CreateCurrency(ctx context.Context, currency *domain.Currency) error

	// RestoreCurrency revives a soft-deleted row, overwriting it with the given values.
	RestoreCurrency(ctx context.Context, currency *domain.Currency) error

	// UpdateCurrency persists every mutable column of the currency.
	UpdateCurrency(ctx context.Context, currency *domain.Currency) error

	// SoftDeleteCurrency marks the currency deleted and inactive.
	SoftDeleteCurrency(ctx context.Context, companyID, currencyID, userID int64, now time.Time) error

	// ClearBaseFlag unsets is_base_currency on every other currency of the company.
	ClearBaseFlag(ctx context.Context, companyID, exceptID, userID int64, now time.Time) error

	// ClearDefaultFlag unsets is_default_expense_currency on every other currency of the company.
	ClearDefaultFlag(ctx context.Context, companyID, exceptID, userID int64, now time.Time) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
