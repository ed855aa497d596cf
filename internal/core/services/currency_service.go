package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/SscSPs/expense_admin_app/internal/utils"
)

// recentRatesLimit is how many rates the currency details include.
const recentRatesLimit = 10

// CurrencyService manages the currency lifecycle of a company.
type CurrencyService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	companyRepo  portsrepo.CompanyRepository
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	rateCache    portssvc.RateCache
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(
	txManager portsrepo.TransactionManager,
	companyRepo portsrepo.CompanyRepository,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	rateCache portssvc.RateCache,
) *CurrencyService {
	return &CurrencyService{
		txManager:    txManager,
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		rateCache:    rateCache,
	}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

func validateCurrency(c *domain.Currency) error {
	if !domain.ValidCurrencyCode(c.Code) {
		return apperrors.NewValidationError("Currency code must be 3 uppercase letters")
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.NewValidationError("Currency name is required")
	}
	if strings.TrimSpace(c.Symbol) == "" {
		return apperrors.NewValidationError("Currency symbol is required")
	}
	if c.DecimalPlaces < 0 || c.DecimalPlaces > domain.MaxDecimalPlaces {
		return apperrors.NewValidationError(fmt.Sprintf("Decimal places must be between 0 and %d", domain.MaxDecimalPlaces))
	}
	if c.SymbolPosition != domain.SymbolBefore && c.SymbolPosition != domain.SymbolAfter {
		return apperrors.NewValidationError("Symbol position must be Before or After")
	}
	return nil
}

// reassignFlags clears the base and default flags held by other currencies
// when c claims them. The caller holds the company lock.
func (s *CurrencyService) reassignFlags(ctx context.Context, c *domain.Currency, claimBase, claimDefault bool) error {
	if claimBase {
		if err := s.currencyRepo.ClearBaseFlag(ctx, c.CompanyID, c.ID, c.UpdatedBy, c.UpdatedAt); err != nil {
			return err
		}
	}
	if claimDefault {
		if err := s.currencyRepo.ClearDefaultFlag(ctx, c.CompanyID, c.ID, c.UpdatedBy, c.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

// CreateCurrency creates a currency. A soft-deleted currency with the same
// code is restored and overwritten instead of inserting a second row.
func (s *CurrencyService) CreateCurrency(ctx context.Context, actor domain.Actor, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	ts := now()
	code := domain.NormalizeCode(req.Code)
	c := &domain.Currency{
		CompanyID:                actor.CompanyID,
		Code:                     code,
		Name:                     strings.TrimSpace(req.Name),
		Symbol:                   strings.TrimSpace(req.Symbol),
		SymbolPosition:           domain.SymbolBefore,
		DecimalPlaces:            utils.DefaultDecimalPlaces(code),
		DecimalSeparator:         ".",
		ThousandsSeparator:       ",",
		IsBaseCurrency:           req.IsBaseCurrency,
		IsDefaultExpenseCurrency: req.IsDefaultExpenseCurrency,
		IsActive:                 boolOr(req.IsActive, true),
		AuditFields: domain.AuditFields{
			CreatedAt: ts,
			CreatedBy: actor.UserID,
			UpdatedAt: ts,
			UpdatedBy: actor.UserID,
		},
	}
	if req.SymbolPosition != "" {
		c.SymbolPosition = domain.SymbolPosition(req.SymbolPosition)
	}
	if req.DecimalPlaces != nil {
		c.DecimalPlaces = *req.DecimalPlaces
	}
	if req.DecimalSeparator != "" {
		c.DecimalSeparator = req.DecimalSeparator
	}
	if req.ThousandsSeparator != "" {
		c.ThousandsSeparator = req.ThousandsSeparator
	}
	if err := validateCurrency(c); err != nil {
		return nil, err
	}
	if c.IsBaseCurrency && !c.IsActive {
		return nil, apperrors.NewValidationError("Base currency must be active")
	}

	restored := false
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.companyRepo.LockCompany(ctx, actor.CompanyID); err != nil {
			return err
		}
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, actor.CompanyID, code); err == nil {
			return apperrors.NewConflictError("Currency code already exists")
		} else if !isNotFound(err) {
			return err
		}
		if err := s.reassignFlags(ctx, c, c.IsBaseCurrency, c.IsDefaultExpenseCurrency); err != nil {
			return err
		}

		deleted, err := s.currencyRepo.FindDeletedCurrencyByCode(ctx, actor.CompanyID, code)
		switch {
		case err == nil:
			c.ID = deleted.ID
			c.CreatedAt = deleted.CreatedAt
			c.CreatedBy = deleted.CreatedBy
			restored = true
			return s.currencyRepo.RestoreCurrency(ctx, c)
		case isNotFound(err):
			return s.currencyRepo.CreateCurrency(ctx, c)
		default:
			return err
		}
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create currency", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Currency created",
		slog.Int64("currency_id", c.ID),
		slog.String("code", c.Code),
		slog.Bool("restored", restored))
	return c, nil
}

// UpdateCurrency applies a partial update to a currency.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, actor domain.Actor, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	update := req.ToUpdate()
	if update.Code != nil {
		code := domain.NormalizeCode(*update.Code)
		update.Code = &code
	}

	var updated *domain.Currency
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.companyRepo.LockCompany(ctx, actor.CompanyID); err != nil {
			return err
		}
		current, err := s.currencyRepo.FindCurrencyByID(ctx, actor.CompanyID, req.ID)
		if err != nil {
			return err
		}
		wasBase, wasDefault := current.IsBaseCurrency, current.IsDefaultExpenseCurrency
		oldCode := current.Code

		update.Apply(current)
		current.Name = strings.TrimSpace(current.Name)
		current.Symbol = strings.TrimSpace(current.Symbol)
		current.UpdatedAt = now()
		current.UpdatedBy = actor.UserID
		if err := validateCurrency(current); err != nil {
			return err
		}
		if wasBase && !current.IsBaseCurrency {
			return apperrors.NewValidationError("Cannot unset the base currency; set another currency as base instead")
		}
		if current.IsBaseCurrency && !current.IsActive {
			return apperrors.NewValidationError("Base currency must be active")
		}

		if current.Code != oldCode {
			if other, err := s.currencyRepo.FindCurrencyByCode(ctx, actor.CompanyID, current.Code); err == nil && other.ID != current.ID {
				return apperrors.NewConflictError("Currency code already exists")
			} else if err != nil && !isNotFound(err) {
				return err
			}
		}
		claimBase := current.IsBaseCurrency && !wasBase
		claimDefault := current.IsDefaultExpenseCurrency && !wasDefault
		if err := s.reassignFlags(ctx, current, claimBase, claimDefault); err != nil {
			return err
		}
		if err := s.currencyRepo.UpdateCurrency(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update currency", slog.Int64("currency_id", req.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Currency updated", slog.Int64("currency_id", updated.ID))
	return updated, nil
}

// DeleteCurrency soft-deletes the currency and deactivates every exchange
// rate that references it, recording each in the history log.
func (s *CurrencyService) DeleteCurrency(ctx context.Context, actor domain.Actor, currencyID int64) error {
	var deactivated int
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.currencyRepo.FindCurrencyByID(ctx, actor.CompanyID, currencyID)
		if err != nil {
			return err
		}
		if c.IsBaseCurrency {
			return apperrors.NewValidationError("Cannot delete base currency")
		}

		ts := now()
		if err := s.currencyRepo.SoftDeleteCurrency(ctx, actor.CompanyID, currencyID, actor.UserID, ts); err != nil {
			return err
		}
		rates, err := s.rateRepo.DeactivateRatesForCurrency(ctx, actor.CompanyID, currencyID, actor.UserID, ts)
		if err != nil {
			return err
		}
		for i := range rates {
			entry := deactivationHistory(&rates[i], domain.ReasonCurrencyDel, actor.UserID, ts)
			if err := s.rateRepo.InsertHistory(ctx, entry); err != nil {
				return err
			}
		}
		deactivated = len(rates)
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete currency", slog.Int64("currency_id", currencyID))
		return err
	}

	if deactivated > 0 {
		s.invalidateRates(ctx, s.rateCache, actor.CompanyID)
	}
	s.LogInfo(ctx, "Currency deleted",
		slog.Int64("currency_id", currencyID),
		slog.Int("deactivated_rates", deactivated))
	return nil
}

// SetBaseCurrency moves the base flag to currencyID.
func (s *CurrencyService) SetBaseCurrency(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.Currency, error) {
	var base *domain.Currency
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.companyRepo.LockCompany(ctx, actor.CompanyID); err != nil {
			return err
		}
		c, err := s.currencyRepo.FindCurrencyByID(ctx, actor.CompanyID, currencyID)
		if err != nil {
			return err
		}
		if !c.IsActive {
			return apperrors.NewValidationError("Base currency must be active")
		}
		base = c
		if c.IsBaseCurrency {
			return nil
		}
		c.IsBaseCurrency = true
		c.UpdatedAt = now()
		c.UpdatedBy = actor.UserID
		if err := s.reassignFlags(ctx, c, true, false); err != nil {
			return err
		}
		return s.currencyRepo.UpdateCurrency(ctx, c)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to set base currency", slog.Int64("currency_id", currencyID))
		return nil, err
	}

	s.LogInfo(ctx, "Base currency set", slog.Int64("currency_id", currencyID))
	return base, nil
}

// GetCurrencyByID retrieves a currency of the actor's company.
func (s *CurrencyService) GetCurrencyByID(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.Currency, error) {
	c, err := s.currencyRepo.FindCurrencyByID(ctx, actor.CompanyID, currencyID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find currency", slog.Int64("currency_id", currencyID))
		return nil, err
	}
	return c, nil
}

// GetCurrencyDetails returns the currency with its most recent rates.
func (s *CurrencyService) GetCurrencyDetails(ctx context.Context, actor domain.Actor, currencyID int64) (*dto.CurrencyDetailsResponse, error) {
	c, err := s.GetCurrencyByID(ctx, actor, currencyID)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListRecentRatesForCurrency(ctx, actor.CompanyID, currencyID, recentRatesLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent exchange rates", slog.Int64("currency_id", currencyID))
		return nil, err
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return &dto.CurrencyDetailsResponse{Currency: *c, RecentExchangeRates: rates}, nil
}

// ListCurrencies retrieves a page of currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context, actor domain.Actor, req dto.ListCurrenciesRequest) ([]domain.Currency, int, error) {
	currencies, total, err := s.currencyRepo.ListCurrencies(ctx, actor.CompanyID, req.ToFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, 0, err
	}
	if currencies == nil {
		currencies = []domain.Currency{}
	}
	s.LogDebug(ctx, "Currencies listed", slog.Int("count", len(currencies)), slog.Int("total", total))
	return currencies, total, nil
}

// CheckUsage reports what still references the currency.
func (s *CurrencyService) CheckUsage(ctx context.Context, actor domain.Actor, currencyID int64) (*domain.CurrencyUsage, error) {
	c, err := s.GetCurrencyByID(ctx, actor, currencyID)
	if err != nil {
		return nil, err
	}
	count, err := s.rateRepo.CountActiveRatesForCurrency(ctx, actor.CompanyID, currencyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count exchange rates", slog.Int64("currency_id", currencyID))
		return nil, err
	}
	usage := domain.NewCurrencyUsage(c, count)
	return &usage, nil
}
