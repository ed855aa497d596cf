package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const currencyColumns = `id, company_id, code, name, symbol, symbol_position, decimal_places,
	decimal_separator, thousands_separator, is_base_currency, is_default_expense_currency,
	is_active, ` + auditColumns

const currencyNotFound = "Currency not found"

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool DB) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

func scanCurrency(row rowScanner) (domain.Currency, error) {
	var c domain.Currency
	dest := []any{
		&c.ID, &c.CompanyID, &c.Code, &c.Name, &c.Symbol, &c.SymbolPosition, &c.DecimalPlaces,
		&c.DecimalSeparator, &c.ThousandsSeparator, &c.IsBaseCurrency, &c.IsDefaultExpenseCurrency,
		&c.IsActive,
	}
	err := row.Scan(append(dest, auditDest(&c.AuditFields)...)...)
	return c, err
}

func (r *PgxCurrencyRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE ` + where
	c, err := scanCurrency(r.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFoundOr(err, currencyNotFound)
	}
	return &c, nil
}

// FindCurrencyByID retrieves a live currency of the company.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, companyID, currencyID int64) (*domain.Currency, error) {
	return r.findOne(ctx, `company_id = $1 AND id = $2 AND deleted_at IS NULL`, companyID, currencyID)
}

// FindCurrencyByCode retrieves a live currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, companyID int64, code string) (*domain.Currency, error) {
	return r.findOne(ctx, `company_id = $1 AND code = $2 AND deleted_at IS NULL`, companyID, code)
}

// FindDeletedCurrencyByCode returns the most recently soft-deleted currency with the code.
func (r *PgxCurrencyRepository) FindDeletedCurrencyByCode(ctx context.Context, companyID int64, code string) (*domain.Currency, error) {
	return r.findOne(ctx, `company_id = $1 AND code = $2 AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC LIMIT 1`, companyID, code)
}

func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context, companyID int64) (*domain.Currency, error) {
	return r.findOne(ctx, `company_id = $1 AND is_base_currency AND deleted_at IS NULL`, companyID)
}

func (r *PgxCurrencyRepository) FindDefaultExpenseCurrency(ctx context.Context, companyID int64) (*domain.Currency, error) {
	return r.findOne(ctx, `company_id = $1 AND is_default_expense_currency AND deleted_at IS NULL`, companyID)
}

// ListCurrencies retrieves a page of live currencies and the total match count.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, companyID int64, filter domain.ListFilter) ([]domain.Currency, int, error) {
	q := newListQuery("company_id", companyID)
	q.addRaw("deleted_at IS NULL")
	if filter.Search != "" {
		q.add("(code ILIKE $%d OR name ILIKE $%d)", containsPattern(filter.Search))
	}
	if filter.IsActive != nil {
		q.add("is_active = $%d", *filter.IsActive)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM currencies`+q.whereSQL(), q.args...).Scan(&total); err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to count currencies")
	}

	page, args := q.pageSQL(sortOrder(filter, commonSortColumns, "code", "id"), filter)
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+currencyColumns+` FROM currencies`+q.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to query currencies")
	}
	defer rows.Close()

	currencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to scan currencies")
	}
	return currencies, total, nil
}

// CreateCurrency inserts the currency and fills in its ID.
func (r *PgxCurrencyRepository) CreateCurrency(ctx context.Context, c *domain.Currency) error {
	query := `
		INSERT INTO currencies (company_id, code, name, symbol, symbol_position, decimal_places,
			decimal_separator, thousands_separator, is_base_currency, is_default_expense_currency,
			is_active, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $12, $13)
		RETURNING id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		c.CompanyID, c.Code, c.Name, c.Symbol, c.SymbolPosition, c.DecimalPlaces,
		c.DecimalSeparator, c.ThousandsSeparator, c.IsBaseCurrency, c.IsDefaultExpenseCurrency,
		c.IsActive, c.CreatedAt, c.CreatedBy,
	).Scan(&c.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to create currency")
	}
	c.UpdatedAt = c.CreatedAt
	c.UpdatedBy = c.CreatedBy
	return nil
}

// RestoreCurrency revives a soft-deleted row with new values.
func (r *PgxCurrencyRepository) RestoreCurrency(ctx context.Context, c *domain.Currency) error {
	query := `
		UPDATE currencies SET
			name = $3, symbol = $4, symbol_position = $5, decimal_places = $6,
			decimal_separator = $7, thousands_separator = $8, is_base_currency = $9,
			is_default_expense_currency = $10, is_active = $11, updated_at = $12, updated_by = $13,
			deleted_at = NULL, deleted_by = NULL
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NOT NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		c.CompanyID, c.ID, c.Name, c.Symbol, c.SymbolPosition, c.DecimalPlaces,
		c.DecimalSeparator, c.ThousandsSeparator, c.IsBaseCurrency, c.IsDefaultExpenseCurrency,
		c.IsActive, c.UpdatedAt, c.UpdatedBy,
	)
	if err != nil {
		return apperrors.FromPg(err, "failed to restore currency")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(currencyNotFound)
	}
	c.DeletedAt = nil
	c.DeletedBy = nil
	return nil
}

// UpdateCurrency persists every mutable column of a live currency.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, c *domain.Currency) error {
	query := `
		UPDATE currencies SET
			code = $3, name = $4, symbol = $5, symbol_position = $6, decimal_places = $7,
			decimal_separator = $8, thousands_separator = $9, is_base_currency = $10,
			is_default_expense_currency = $11, is_active = $12, updated_at = $13, updated_by = $14
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		c.CompanyID, c.ID, c.Code, c.Name, c.Symbol, c.SymbolPosition, c.DecimalPlaces,
		c.DecimalSeparator, c.ThousandsSeparator, c.IsBaseCurrency, c.IsDefaultExpenseCurrency,
		c.IsActive, c.UpdatedAt, c.UpdatedBy,
	)
	if err != nil {
		return apperrors.FromPg(err, "failed to update currency")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(currencyNotFound)
	}
	return nil
}

// SoftDeleteCurrency marks the currency deleted and inactive.
func (r *PgxCurrencyRepository) SoftDeleteCurrency(ctx context.Context, companyID, currencyID, userID int64, now time.Time) error {
	query := `
		UPDATE currencies SET
			is_active = FALSE, deleted_at = $3, deleted_by = $4, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, companyID, currencyID, now, userID)
	if err != nil {
		return apperrors.FromPg(err, "failed to delete currency")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(currencyNotFound)
	}
	return nil
}

// ClearBaseFlag unsets the base flag on every other live currency of the company.
func (r *PgxCurrencyRepository) ClearBaseFlag(ctx context.Context, companyID, exceptID, userID int64, now time.Time) error {
	query := `
		UPDATE currencies SET is_base_currency = FALSE, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id <> $2 AND is_base_currency AND deleted_at IS NULL;
	`
	if _, err := r.conn(ctx).Exec(ctx, query, companyID, exceptID, now, userID); err != nil {
		return apperrors.FromPg(err, "failed to clear base currency flag")
	}
	return nil
}

// ClearDefaultFlag unsets the default expense flag on every other live currency of the company.
func (r *PgxCurrencyRepository) ClearDefaultFlag(ctx context.Context, companyID, exceptID, userID int64, now time.Time) error {
	query := `
		UPDATE currencies SET is_default_expense_currency = FALSE, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id <> $2 AND is_default_expense_currency AND deleted_at IS NULL;
	`
	if _, err := r.conn(ctx).Exec(ctx, query, companyID, exceptID, now, userID); err != nil {
		return apperrors.FromPg(err, "failed to clear default currency flag")
	}
	return nil
}
