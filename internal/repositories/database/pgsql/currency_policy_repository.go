package pgsql

import (
	"context"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
)

type PgxCurrencyPolicyRepository struct {
	BaseRepository
}

func newPgxCurrencyPolicyRepository(pool DB) portsrepo.CurrencyPolicyRepository {
	return &PgxCurrencyPolicyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyPolicyRepository = (*PgxCurrencyPolicyRepository)(nil)

// FindPolicy returns the stored policy of the company.
func (r *PgxCurrencyPolicyRepository) FindPolicy(ctx context.Context, companyID int64) (*domain.CurrencyPolicy, error) {
	query := `
		SELECT id, company_id, allow_multi_currency, auto_convert_to_base, conversion_timing,
			rate_tolerance_percentage, allow_manual_rate_override, rounding_method, rounding_precision,
			use_fallback_rate, max_rate_age_days, created_at, created_by, updated_at, updated_by
		FROM currency_policies
		WHERE company_id = $1;
	`
	var p domain.CurrencyPolicy
	err := r.conn(ctx).QueryRow(ctx, query, companyID).Scan(
		&p.ID, &p.CompanyID, &p.AllowMultiCurrency, &p.AutoConvertToBase, &p.ConversionTiming,
		&p.RateTolerancePercentage, &p.AllowManualRateOverride, &p.RoundingMethod, &p.RoundingPrecision,
		&p.UseFallbackRate, &p.MaxRateAgeDays, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, "Currency policy not found")
	}
	return &p, nil
}

// UpsertPolicy inserts the company's policy or replaces the stored settings.
// CreatedAt/CreatedBy are only written on insert.
func (r *PgxCurrencyPolicyRepository) UpsertPolicy(ctx context.Context, p *domain.CurrencyPolicy) error {
	query := `
		INSERT INTO currency_policies (company_id, allow_multi_currency, auto_convert_to_base,
			conversion_timing, rate_tolerance_percentage, allow_manual_rate_override, rounding_method,
			rounding_precision, use_fallback_rate, max_rate_age_days, created_at, created_by,
			updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $11, $12)
		ON CONFLICT (company_id) DO UPDATE SET
			allow_multi_currency = EXCLUDED.allow_multi_currency,
			auto_convert_to_base = EXCLUDED.auto_convert_to_base,
			conversion_timing = EXCLUDED.conversion_timing,
			rate_tolerance_percentage = EXCLUDED.rate_tolerance_percentage,
			allow_manual_rate_override = EXCLUDED.allow_manual_rate_override,
			rounding_method = EXCLUDED.rounding_method,
			rounding_precision = EXCLUDED.rounding_precision,
			use_fallback_rate = EXCLUDED.use_fallback_rate,
			max_rate_age_days = EXCLUDED.max_rate_age_days,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
		RETURNING id, created_at, created_by, updated_at, updated_by;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		p.CompanyID, p.AllowMultiCurrency, p.AutoConvertToBase, string(p.ConversionTiming),
		p.RateTolerancePercentage, p.AllowManualRateOverride, string(p.RoundingMethod),
		p.RoundingPrecision, p.UseFallbackRate, p.MaxRateAgeDays, p.UpdatedAt, p.UpdatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.CreatedBy, &p.UpdatedAt, &p.UpdatedBy)
	if err != nil {
		return apperrors.FromPg(err, "failed to save currency policy")
	}
	p.IsDefault = false
	return nil
}
