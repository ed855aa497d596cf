package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const rateSelect = `
	SELECT er.id, er.company_id, er.from_currency_id, er.to_currency_id, fc.code, tc.code,
		er.rate, er.effective_from, er.effective_to, er.source, er.notes, er.is_active,
		er.created_at, er.created_by, er.updated_at, er.updated_by, er.deleted_at, er.deleted_by
	FROM exchange_rates er
	JOIN currencies fc ON fc.id = er.from_currency_id
	JOIN currencies tc ON tc.id = er.to_currency_id`

const historyColumns = `id, exchange_rate_id, company_id, from_currency_id, to_currency_id, action,
	old_rate, new_rate, old_effective_from, new_effective_from, old_effective_to, new_effective_to,
	reason, changed_by, changed_at`

const rateNotFound = "Exchange rate not found"

var rateSortColumns = map[string]string{
	"effective_from": "er.effective_from",
	"rate":           "er.rate",
	"created_at":     "er.created_at",
}

type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool DB) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row rowScanner) (domain.ExchangeRate, error) {
	var er domain.ExchangeRate
	dest := []any{
		&er.ID, &er.CompanyID, &er.FromCurrencyID, &er.ToCurrencyID, &er.FromCurrencyCode, &er.ToCurrencyCode,
		&er.Rate, &er.EffectiveFrom, &er.EffectiveTo, &er.Source, &er.Notes, &er.IsActive,
	}
	err := row.Scan(append(dest, auditDest(&er.AuditFields)...)...)
	return er, err
}

func (r *PgxExchangeRateRepository) collectRates(ctx context.Context, query string, args ...any) ([]domain.ExchangeRate, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to query exchange rates")
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan exchange rates")
	}
	return rates, nil
}

// FindExchangeRateByID retrieves a rate of the company.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, companyID, rateID int64) (*domain.ExchangeRate, error) {
	query := rateSelect + ` WHERE er.company_id = $1 AND er.id = $2 AND er.deleted_at IS NULL`
	er, err := scanExchangeRate(r.conn(ctx).QueryRow(ctx, query, companyID, rateID))
	if err != nil {
		return nil, notFoundOr(err, rateNotFound)
	}
	return &er, nil
}

// FindOpenRateForUpdate finds and row-locks the open rate of the pair.
func (r *PgxExchangeRateRepository) FindOpenRateForUpdate(ctx context.Context, companyID, fromID, toID int64) (*domain.ExchangeRate, error) {
	query := rateSelect + `
		WHERE er.company_id = $1 AND er.from_currency_id = $2 AND er.to_currency_id = $3
			AND er.effective_to IS NULL AND er.is_active AND er.deleted_at IS NULL
		FOR UPDATE OF er`
	er, err := scanExchangeRate(r.conn(ctx).QueryRow(ctx, query, companyID, fromID, toID))
	if err != nil {
		return nil, notFoundOr(err, rateNotFound)
	}
	return &er, nil
}

// FindRateAt returns the active rate of the pair whose window contains date.
func (r *PgxExchangeRateRepository) FindRateAt(ctx context.Context, companyID, fromID, toID int64, date time.Time) (*domain.ExchangeRate, error) {
	query := rateSelect + `
		WHERE er.company_id = $1 AND er.from_currency_id = $2 AND er.to_currency_id = $3
			AND er.is_active AND er.deleted_at IS NULL
			AND er.effective_from <= $4 AND (er.effective_to IS NULL OR er.effective_to >= $4)
		ORDER BY er.effective_from DESC, er.id DESC
		LIMIT 1`
	er, err := scanExchangeRate(r.conn(ctx).QueryRow(ctx, query, companyID, fromID, toID, domain.DateOnly(date)))
	if err != nil {
		return nil, notFoundOr(err, "No exchange rate found")
	}
	return &er, nil
}

// ListExchangeRates retrieves a filtered page of rates. DateFrom/DateTo select
// windows overlapping the range.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, companyID int64, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, int, error) {
	q := newListQuery("er.company_id", companyID)
	q.addRaw("er.deleted_at IS NULL")
	if filter.FromCurrencyID != nil {
		q.add("er.from_currency_id = $%d", *filter.FromCurrencyID)
	}
	if filter.ToCurrencyID != nil {
		q.add("er.to_currency_id = $%d", *filter.ToCurrencyID)
	}
	if filter.CurrencyID != nil {
		q.add("(er.from_currency_id = $%d OR er.to_currency_id = $%d)", *filter.CurrencyID)
	}
	if filter.Source != nil {
		q.add("er.source = $%d", string(*filter.Source))
	}
	if filter.IsActive != nil {
		q.add("er.is_active = $%d", *filter.IsActive)
	}
	if filter.DateFrom != nil {
		q.add("(er.effective_to IS NULL OR er.effective_to >= $%d)", domain.DateOnly(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		q.add("er.effective_from <= $%d", domain.DateOnly(*filter.DateTo))
	}
	if filter.Search != "" {
		q.add("(fc.code ILIKE $%d OR tc.code ILIKE $%d)", containsPattern(filter.Search))
	}

	countQuery := `SELECT COUNT(*) FROM exchange_rates er
		JOIN currencies fc ON fc.id = er.from_currency_id
		JOIN currencies tc ON tc.id = er.to_currency_id` + q.whereSQL()
	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, q.args...).Scan(&total); err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to count exchange rates")
	}

	page, args := q.pageSQL(sortOrder(filter.ListFilter, rateSortColumns, "er.effective_from", "er.id"), filter.ListFilter)
	rates, err := r.collectRates(ctx, rateSelect+q.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

// ListRatesForPair returns every rate of the pair in chronological order.
func (r *PgxExchangeRateRepository) ListRatesForPair(ctx context.Context, companyID, fromID, toID int64) ([]domain.ExchangeRate, error) {
	query := rateSelect + `
		WHERE er.company_id = $1 AND er.from_currency_id = $2 AND er.to_currency_id = $3
			AND er.deleted_at IS NULL
		ORDER BY er.effective_from ASC, er.id ASC`
	return r.collectRates(ctx, query, companyID, fromID, toID)
}

// ListRecentRatesForCurrency returns the newest rates with the currency on either side.
func (r *PgxExchangeRateRepository) ListRecentRatesForCurrency(ctx context.Context, companyID, currencyID int64, limit int) ([]domain.ExchangeRate, error) {
	query := rateSelect + `
		WHERE er.company_id = $1 AND (er.from_currency_id = $2 OR er.to_currency_id = $2)
			AND er.deleted_at IS NULL
		ORDER BY er.effective_from DESC, er.id DESC
		LIMIT $3`
	return r.collectRates(ctx, query, companyID, currencyID, limit)
}

// CountActiveRatesForCurrency counts active rates with the currency on either side.
func (r *PgxExchangeRateRepository) CountActiveRatesForCurrency(ctx context.Context, companyID, currencyID int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM exchange_rates
		WHERE company_id = $1 AND (from_currency_id = $2 OR to_currency_id = $2)
			AND is_active AND deleted_at IS NULL;
	`
	var count int
	if err := r.conn(ctx).QueryRow(ctx, query, companyID, currencyID).Scan(&count); err != nil {
		return 0, apperrors.FromPg(err, "failed to count exchange rates")
	}
	return count, nil
}

// CreateExchangeRate inserts the rate and fills in its ID.
func (r *PgxExchangeRateRepository) CreateExchangeRate(ctx context.Context, er *domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (company_id, from_currency_id, to_currency_id, rate, effective_from,
			effective_to, source, notes, is_active, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $10, $11)
		RETURNING id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		er.CompanyID, er.FromCurrencyID, er.ToCurrencyID, er.Rate, er.EffectiveFrom,
		er.EffectiveTo, string(er.Source), er.Notes, er.IsActive, er.CreatedAt, er.CreatedBy,
	).Scan(&er.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to create exchange rate")
	}
	er.UpdatedAt = er.CreatedAt
	er.UpdatedBy = er.CreatedBy
	return nil
}

// CloseExchangeRate ends an open window.
func (r *PgxExchangeRateRepository) CloseExchangeRate(ctx context.Context, rateID int64, effectiveTo time.Time, userID int64, now time.Time) error {
	query := `
		UPDATE exchange_rates SET effective_to = $2, updated_at = $3, updated_by = $4
		WHERE id = $1 AND effective_to IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, rateID, domain.DateOnly(effectiveTo), now, userID)
	if err != nil {
		return apperrors.FromPg(err, "failed to close exchange rate")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("Exchange rate was closed concurrently")
	}
	return nil
}

// DeactivateExchangeRate sets is_active=false on a single rate.
func (r *PgxExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, companyID, rateID, userID int64, now time.Time) error {
	query := `
		UPDATE exchange_rates SET is_active = FALSE, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, companyID, rateID, now, userID)
	if err != nil {
		return apperrors.FromPg(err, "failed to deactivate exchange rate")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(rateNotFound)
	}
	return nil
}

// DeactivateRatesForCurrency deactivates every active rate touching the currency.
func (r *PgxExchangeRateRepository) DeactivateRatesForCurrency(ctx context.Context, companyID, currencyID, userID int64, now time.Time) ([]domain.ExchangeRate, error) {
	query := `
		UPDATE exchange_rates SET is_active = FALSE, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND (from_currency_id = $2 OR to_currency_id = $2)
			AND is_active AND deleted_at IS NULL
		RETURNING id, company_id, from_currency_id, to_currency_id, rate, effective_from, effective_to;
	`
	rows, err := r.conn(ctx).Query(ctx, query, companyID, currencyID, now, userID)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to deactivate exchange rates")
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		var er domain.ExchangeRate
		err := row.Scan(&er.ID, &er.CompanyID, &er.FromCurrencyID, &er.ToCurrencyID, &er.Rate, &er.EffectiveFrom, &er.EffectiveTo)
		return er, err
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan deactivated exchange rates")
	}
	return rates, nil
}

// InsertHistory appends an entry to the immutable history log.
func (r *PgxExchangeRateRepository) InsertHistory(ctx context.Context, h *domain.ExchangeRateHistory) error {
	query := `
		INSERT INTO exchange_rate_history (exchange_rate_id, company_id, from_currency_id, to_currency_id,
			action, old_rate, new_rate, old_effective_from, new_effective_from, old_effective_to,
			new_effective_to, reason, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		h.ExchangeRateID, h.CompanyID, h.FromCurrencyID, h.ToCurrencyID,
		string(h.Action), h.OldRate, h.NewRate, h.OldEffectiveFrom, h.NewEffectiveFrom, h.OldEffectiveTo,
		h.NewEffectiveTo, h.Reason, h.ChangedBy, h.ChangedAt,
	).Scan(&h.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to write exchange rate history")
	}
	return nil
}

// ListHistoryForPair returns the history log of the pair in chronological order.
func (r *PgxExchangeRateRepository) ListHistoryForPair(ctx context.Context, companyID, fromID, toID int64) ([]domain.ExchangeRateHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM exchange_rate_history
		WHERE company_id = $1 AND from_currency_id = $2 AND to_currency_id = $3
		ORDER BY changed_at ASC, id ASC`
	rows, err := r.conn(ctx).Query(ctx, query, companyID, fromID, toID)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to query exchange rate history")
	}
	defer rows.Close()

	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRateHistory, error) {
		var h domain.ExchangeRateHistory
		err := row.Scan(&h.ID, &h.ExchangeRateID, &h.CompanyID, &h.FromCurrencyID, &h.ToCurrencyID, &h.Action,
			&h.OldRate, &h.NewRate, &h.OldEffectiveFrom, &h.NewEffectiveFrom, &h.OldEffectiveTo, &h.NewEffectiveTo,
			&h.Reason, &h.ChangedBy, &h.ChangedAt)
		return h, err
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan exchange rate history")
	}
	return history, nil
}
