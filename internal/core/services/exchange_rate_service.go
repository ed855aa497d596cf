package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateService maintains the effective-dated rate timeline of each
// currency pair. Every change is mirrored in the history log.
type ExchangeRateService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	currencyRepo portsrepo.CurrencyReader
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	rateCache    portssvc.RateCache
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(
	txManager portsrepo.TransactionManager,
	currencyRepo portsrepo.CurrencyReader,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	rateCache portssvc.RateCache,
) *ExchangeRateService {
	return &ExchangeRateService{
		txManager:    txManager,
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		rateCache:    rateCache,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// rateChange is a validated upsert waiting to be written.
type rateChange struct {
	rate *domain.ExchangeRate
	open *domain.ExchangeRate // current open window of the pair, if any
}

// prepareUpsert validates req and locks the pair's open window. It performs
// no writes, so a validation failure leaves the transaction usable.
func (s *ExchangeRateService) prepareUpsert(ctx context.Context, actor domain.Actor, req dto.UpsertExchangeRateRequest, ts time.Time) (*rateChange, error) {
	if req.FromCurrencyID <= 0 || req.ToCurrencyID <= 0 {
		return nil, apperrors.NewValidationError("From and to currencies are required")
	}
	if req.FromCurrencyID == req.ToCurrencyID {
		return nil, apperrors.NewValidationError("From and to currencies must be different")
	}
	if !req.Rate.GreaterThan(decimal.Zero) {
		return nil, apperrors.NewValidationError("Exchange rate must be greater than zero")
	}
	effectiveFrom, err := dto.ParseDate(req.EffectiveFrom)
	if err != nil || effectiveFrom == nil {
		return nil, apperrors.NewValidationError("Effective from date is required (YYYY-MM-DD)")
	}
	source := domain.RateSourceManual
	if req.Source != "" {
		source = domain.RateSource(req.Source)
	}
	if !source.Valid() {
		return nil, apperrors.NewValidationError("Source must be one of Manual, API, Bank")
	}

	from, err := s.activeCurrency(ctx, actor.CompanyID, req.FromCurrencyID, "From")
	if err != nil {
		return nil, err
	}
	to, err := s.activeCurrency(ctx, actor.CompanyID, req.ToCurrencyID, "To")
	if err != nil {
		return nil, err
	}

	change := &rateChange{rate: &domain.ExchangeRate{
		CompanyID:        actor.CompanyID,
		FromCurrencyID:   from.ID,
		ToCurrencyID:     to.ID,
		FromCurrencyCode: from.Code,
		ToCurrencyCode:   to.Code,
		Rate:             req.Rate,
		EffectiveFrom:    domain.DateOnly(*effectiveFrom),
		Source:           source,
		Notes:            strings.TrimSpace(req.Notes),
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt: ts,
			CreatedBy: actor.UserID,
			UpdatedAt: ts,
			UpdatedBy: actor.UserID,
		},
	}}

	open, err := s.rateRepo.FindOpenRateForUpdate(ctx, actor.CompanyID, from.ID, to.ID)
	switch {
	case err == nil:
		if !change.rate.EffectiveFrom.After(domain.DateOnly(open.EffectiveFrom)) {
			return nil, apperrors.NewValidationError(fmt.Sprintf(
				"Effective from must be after %s, the start of the current rate",
				open.EffectiveFrom.Format(dto.DateLayout)))
		}
		change.open = open
	case isNotFound(err):
	default:
		return nil, err
	}
	return change, nil
}

func (s *ExchangeRateService) activeCurrency(ctx context.Context, companyID, currencyID int64, side string) (*domain.Currency, error) {
	c, err := s.currencyRepo.FindCurrencyByID(ctx, companyID, currencyID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewNotFoundError(side + " currency not found")
		}
		return nil, err
	}
	if !c.IsActive {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s currency %s is inactive", side, c.Code))
	}
	return c, nil
}

// applyUpsert closes the open window the day before the new rate starts and
// inserts the new rate, logging both steps.
func (s *ExchangeRateService) applyUpsert(ctx context.Context, change *rateChange) error {
	rate := change.rate
	if open := change.open; open != nil {
		closeTo := domain.CloseDateFor(rate.EffectiveFrom)
		if err := s.rateRepo.CloseExchangeRate(ctx, open.ID, closeTo, rate.CreatedBy, rate.CreatedAt); err != nil {
			return err
		}
		if err := s.rateRepo.InsertHistory(ctx, &domain.ExchangeRateHistory{
			ExchangeRateID:   open.ID,
			CompanyID:        open.CompanyID,
			FromCurrencyID:   open.FromCurrencyID,
			ToCurrencyID:     open.ToCurrencyID,
			Action:           domain.HistoryUpdate,
			OldRate:          &open.Rate,
			NewRate:          &open.Rate,
			OldEffectiveFrom: &open.EffectiveFrom,
			NewEffectiveFrom: &open.EffectiveFrom,
			OldEffectiveTo:   nil,
			NewEffectiveTo:   &closeTo,
			Reason:           domain.ReasonAutoClosed,
			ChangedBy:        rate.CreatedBy,
			ChangedAt:        rate.CreatedAt,
		}); err != nil {
			return err
		}
	}

	if err := s.rateRepo.CreateExchangeRate(ctx, rate); err != nil {
		return err
	}
	return s.rateRepo.InsertHistory(ctx, &domain.ExchangeRateHistory{
		ExchangeRateID:   rate.ID,
		CompanyID:        rate.CompanyID,
		FromCurrencyID:   rate.FromCurrencyID,
		ToCurrencyID:     rate.ToCurrencyID,
		Action:           domain.HistoryCreate,
		NewRate:          &rate.Rate,
		NewEffectiveFrom: &rate.EffectiveFrom,
		Reason:           domain.ReasonNewRate,
		ChangedBy:        rate.CreatedBy,
		ChangedAt:        rate.CreatedAt,
	})
}

// UpsertExchangeRate opens a new rate window for the pair.
func (s *ExchangeRateService) UpsertExchangeRate(ctx context.Context, actor domain.Actor, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error) {
	var created *domain.ExchangeRate
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		change, err := s.prepareUpsert(ctx, actor, req, now())
		if err != nil {
			return err
		}
		if err := s.applyUpsert(ctx, change); err != nil {
			return err
		}
		created = change.rate
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to upsert exchange rate",
			slog.Int64("from_currency_id", req.FromCurrencyID),
			slog.Int64("to_currency_id", req.ToCurrencyID))
		return nil, err
	}

	s.invalidateRates(ctx, s.rateCache, actor.CompanyID)
	s.LogInfo(ctx, "Exchange rate created",
		slog.Int64("rate_id", created.ID),
		slog.String("pair", created.FromCurrencyCode+"/"+created.ToCurrencyCode),
		slog.String("rate", created.Rate.String()))
	return created, nil
}

// BulkUpdateExchangeRates upserts every item in one transaction. Items that
// fail validation are reported as skipped; a database failure aborts the batch.
func (s *ExchangeRateService) BulkUpdateExchangeRates(ctx context.Context, actor domain.Actor, req dto.BulkUpdateExchangeRatesRequest) ([]domain.BulkRateResult, error) {
	if len(req.Rates) == 0 {
		return nil, apperrors.NewValidationError("At least one rate is required")
	}

	var results []domain.BulkRateResult
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		results = make([]domain.BulkRateResult, 0, len(req.Rates))
		ts := now()
		for i, item := range req.Rates {
			result := domain.BulkRateResult{
				Index:          i,
				FromCurrencyID: item.FromCurrencyID,
				ToCurrencyID:   item.ToCurrencyID,
			}
			change, err := s.prepareUpsert(ctx, actor, item, ts)
			if err != nil {
				if apperrors.KindOf(err) == apperrors.KindInternal {
					return err
				}
				result.Status = domain.BulkRateSkipped
				result.Reason = apperrors.PublicMessage(err)
				results = append(results, result)
				continue
			}
			if err := s.applyUpsert(ctx, change); err != nil {
				return err
			}
			id := change.rate.ID
			result.Status = domain.BulkRateApplied
			result.RateID = &id
			results = append(results, result)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Bulk exchange rate update failed", slog.Int("items", len(req.Rates)))
		return nil, err
	}

	s.invalidateRates(ctx, s.rateCache, actor.CompanyID)
	resp := dto.NewBulkUpdateResponse(results)
	s.LogInfo(ctx, "Bulk exchange rate update finished",
		slog.Int("applied", resp.Applied),
		slog.Int("skipped", resp.Skipped))
	return results, nil
}

// DeleteExchangeRate deactivates a rate and logs the change.
func (s *ExchangeRateService) DeleteExchangeRate(ctx context.Context, actor domain.Actor, rateID int64) error {
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		rate, err := s.rateRepo.FindExchangeRateByID(ctx, actor.CompanyID, rateID)
		if err != nil {
			return err
		}
		if !rate.IsActive {
			return apperrors.NewValidationError("Exchange rate is already inactive")
		}
		ts := now()
		if err := s.rateRepo.DeactivateExchangeRate(ctx, actor.CompanyID, rateID, actor.UserID, ts); err != nil {
			return err
		}
		return s.rateRepo.InsertHistory(ctx, deactivationHistory(rate, domain.ReasonDeactivated, actor.UserID, ts))
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete exchange rate", slog.Int64("rate_id", rateID))
		return err
	}

	s.invalidateRates(ctx, s.rateCache, actor.CompanyID)
	s.LogInfo(ctx, "Exchange rate deactivated", slog.Int64("rate_id", rateID))
	return nil
}

func deactivationHistory(rate *domain.ExchangeRate, reason string, userID int64, ts time.Time) *domain.ExchangeRateHistory {
	return &domain.ExchangeRateHistory{
		ExchangeRateID:   rate.ID,
		CompanyID:        rate.CompanyID,
		FromCurrencyID:   rate.FromCurrencyID,
		ToCurrencyID:     rate.ToCurrencyID,
		Action:           domain.HistoryDeactivate,
		OldRate:          &rate.Rate,
		NewRate:          &rate.Rate,
		OldEffectiveFrom: &rate.EffectiveFrom,
		NewEffectiveFrom: &rate.EffectiveFrom,
		OldEffectiveTo:   rate.EffectiveTo,
		NewEffectiveTo:   rate.EffectiveTo,
		Reason:           reason,
		ChangedBy:        userID,
		ChangedAt:        ts,
	}
}

// ListExchangeRates returns a filtered page of rates. Without an explicit
// sort the newest windows come first.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, actor domain.Actor, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, int, error) {
	if filter.SortBy == "" {
		filter.SortBy = "effective_from"
		filter.SortDir = domain.SortDesc
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, 0, apperrors.NewValidationError("date_to must not be before date_from")
	}
	rates, total, err := s.rateRepo.ListExchangeRates(ctx, actor.CompanyID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, 0, err
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, total, nil
}

// GetCurrentRate returns the active rate whose window contains date.
func (s *ExchangeRateService) GetCurrentRate(ctx context.Context, actor domain.Actor, fromID, toID int64, date time.Time) (*domain.ExchangeRate, error) {
	if fromID <= 0 || toID <= 0 {
		return nil, apperrors.NewValidationError("from_currency_id and to_currency_id are required")
	}
	if date.IsZero() {
		date = today()
	}
	date = domain.DateOnly(date)
	load := func(ctx context.Context) (*domain.ExchangeRate, error) {
		return s.rateRepo.FindRateAt(ctx, actor.CompanyID, fromID, toID, date)
	}
	var (
		rate *domain.ExchangeRate
		err  error
	)
	if s.rateCache != nil {
		rate, err = s.rateCache.GetRate(ctx, actor.CompanyID, fromID, toID, date, load)
	} else {
		rate, err = load(ctx)
	}
	if err != nil {
		s.logFailure(ctx, err, "Failed to resolve exchange rate",
			slog.Int64("from_currency_id", fromID),
			slog.Int64("to_currency_id", toID))
		return nil, err
	}
	if !rate.Covers(date) {
		s.GetLogger(ctx).Warn("Resolved exchange rate does not cover the requested date",
			slog.Int64("rate_id", rate.ID),
			slog.String("date", date.Format(dto.DateLayout)))
		return nil, apperrors.NewNotFoundError("No exchange rate found")
	}
	return rate, nil
}

// GetRateTimeline returns every rate of the pair and its history log.
func (s *ExchangeRateService) GetRateTimeline(ctx context.Context, actor domain.Actor, fromID, toID int64) (*dto.ExchangeRateTimelineResponse, error) {
	if fromID <= 0 || toID <= 0 {
		return nil, apperrors.NewValidationError("from_currency_id and to_currency_id are required")
	}
	rates, err := s.rateRepo.ListRatesForPair(ctx, actor.CompanyID, fromID, toID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rates for pair")
		return nil, err
	}
	history, err := s.rateRepo.ListHistoryForPair(ctx, actor.CompanyID, fromID, toID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rate history for pair")
		return nil, err
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	if history == nil {
		history = []domain.ExchangeRateHistory{}
	}
	return &dto.ExchangeRateTimelineResponse{Rates: rates, History: history}, nil
}
