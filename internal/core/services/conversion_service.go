package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/utils"
	"github.com/shopspring/decimal"
)

// inverseRatePlaces is the scale of a rate derived by inverting the reverse pair.
const inverseRatePlaces = 10

// ConversionService converts amounts between currencies of a company.
type ConversionService struct {
	BaseService
	currencyRepo portsrepo.CurrencyReader
	rates        portssvc.ExchangeRateReaderSvc
	policies     portssvc.CurrencyPolicySvc
}

func NewConversionService(currencyRepo portsrepo.CurrencyReader, rates portssvc.ExchangeRateReaderSvc, policies portssvc.CurrencyPolicySvc) *ConversionService {
	return &ConversionService{currencyRepo: currencyRepo, rates: rates, policies: policies}
}

var _ portssvc.ConversionSvc = (*ConversionService)(nil)

// ConvertAmount converts req.Amount with the rate effective on the conversion
// date and rounds it the way the company policy says.
func (s *ConversionService) ConvertAmount(ctx context.Context, actor domain.Actor, req dto.ConvertAmountRequest) (*domain.Conversion, error) {
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, apperrors.NewValidationError("Amount must be greater than zero")
	}
	date := today()
	if parsed, err := dto.ParseDate(req.ConversionDate); err != nil {
		return nil, apperrors.NewValidationError("Conversion date must be YYYY-MM-DD")
	} else if parsed != nil {
		date = domain.DateOnly(*parsed)
	}

	if req.FromCurrencyID <= 0 || req.ToCurrencyID <= 0 {
		return nil, apperrors.NewValidationError("from_currency_id and to_currency_id must be positive")
	}

	var target *domain.Currency
	for _, id := range []int64{req.FromCurrencyID, req.ToCurrencyID} {
		c, err := s.currencyRepo.FindCurrencyByID(ctx, actor.CompanyID, id)
		if err != nil {
			return nil, err
		}
		target = c
	}

	result := &domain.Conversion{
		Amount:         req.Amount,
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		ConversionDate: date,
	}

	// Same currency is returned as is, without rate lookup or rounding.
	if req.FromCurrencyID == req.ToCurrencyID {
		result.ExchangeRate = decimal.NewFromInt(1)
		result.RateSource = domain.RateSourceSameCurrency
		result.ConvertedAmount = req.Amount
		result.FormattedAmount = req.Amount.String()
		result.DisplayAmount = utils.FormatWithCurrency(req.Amount, *target)
		return result, nil
	}

	policy, err := s.policies.GetPolicy(ctx, actor)
	if err != nil {
		return nil, err
	}
	result.RoundingMethod = policy.RoundingMethod
	result.Precision = policy.RoundingPrecision

	rate, source, err := s.resolveRate(ctx, actor, req.FromCurrencyID, req.ToCurrencyID, date, policy.UseFallbackRate)
	if err != nil {
		return nil, err
	}
	effectiveFrom := rate.EffectiveFrom
	rateID := rate.ID
	result.ExchangeRate = rate.Rate
	result.RateID = &rateID
	result.EffectiveFrom = &effectiveFrom
	result.RateSource = source
	result.IsStaleRate = isStale(effectiveFrom, date, policy.MaxRateAgeDays)

	converted := req.Amount.Mul(result.ExchangeRate)
	result.ConvertedAmount = utils.ApplyRounding(converted, policy.RoundingMethod, policy.RoundingPrecision)
	result.FormattedAmount = utils.FormatWithPrecision(result.ConvertedAmount, policy.RoundingPrecision)
	result.DisplayAmount = utils.FormatWithCurrency(result.ConvertedAmount, *target)

	s.LogDebug(ctx, "Amount converted",
		slog.Int64("from_currency_id", req.FromCurrencyID),
		slog.Int64("to_currency_id", req.ToCurrencyID),
		slog.String("rate", result.ExchangeRate.String()),
		slog.String("converted", result.FormattedAmount))
	return result, nil
}

// resolveRate finds the rate for the pair. With fallback enabled, a missing
// rate is derived from the reverse pair.
func (s *ConversionService) resolveRate(ctx context.Context, actor domain.Actor, fromID, toID int64, date time.Time, fallback bool) (*domain.ExchangeRate, string, error) {
	rate, err := s.rates.GetCurrentRate(ctx, actor, fromID, toID, date)
	if err == nil {
		return rate, string(rate.Source), nil
	}
	if !isNotFound(err) || !fallback {
		return nil, "", err
	}

	reverse, revErr := s.rates.GetCurrentRate(ctx, actor, toID, fromID, date)
	if revErr != nil {
		if isNotFound(revErr) {
			return nil, "", err
		}
		return nil, "", revErr
	}
	inverted := *reverse
	inverted.Rate = decimal.NewFromInt(1).DivRound(reverse.Rate, inverseRatePlaces)
	return &inverted, string(reverse.Source) + " (inverse)", nil
}

// isStale reports whether a rate that started on effectiveFrom is older than
// maxAgeDays on date. Zero disables the check.
func isStale(effectiveFrom, date time.Time, maxAgeDays int) bool {
	if maxAgeDays <= 0 {
		return false
	}
	return domain.DateOnly(date).After(domain.DateOnly(effectiveFrom).AddDate(0, 0, maxAgeDays))
}
