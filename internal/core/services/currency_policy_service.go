package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyPolicyService reads and writes the company's conversion policy.
type CurrencyPolicyService struct {
	BaseService
	policyRepo   portsrepo.CurrencyPolicyRepository
	currencyRepo portsrepo.CurrencyReader
}

func NewCurrencyPolicyService(policyRepo portsrepo.CurrencyPolicyRepository, currencyRepo portsrepo.CurrencyReader) *CurrencyPolicyService {
	return &CurrencyPolicyService{policyRepo: policyRepo, currencyRepo: currencyRepo}
}

var _ portssvc.CurrencyPolicySvc = (*CurrencyPolicyService)(nil)

// load returns the stored policy or the defaults.
func (s *CurrencyPolicyService) load(ctx context.Context, companyID int64) (*domain.CurrencyPolicy, error) {
	policy, err := s.policyRepo.FindPolicy(ctx, companyID)
	if err == nil {
		return policy, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	def := domain.DefaultCurrencyPolicy(companyID)
	return &def, nil
}

// GetPolicy returns the policy together with the base and default expense currencies.
func (s *CurrencyPolicyService) GetPolicy(ctx context.Context, actor domain.Actor) (*domain.CurrencyPolicy, error) {
	policy, err := s.load(ctx, actor.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load currency policy")
		return nil, err
	}
	if err := s.attachCurrencies(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *CurrencyPolicyService) attachCurrencies(ctx context.Context, policy *domain.CurrencyPolicy) error {
	base, err := s.currencyRepo.FindBaseCurrency(ctx, policy.CompanyID)
	if err != nil && !isNotFound(err) {
		s.LogError(ctx, err, "Failed to load base currency")
		return err
	}
	policy.BaseCurrency = base

	def, err := s.currencyRepo.FindDefaultExpenseCurrency(ctx, policy.CompanyID)
	if err != nil && !isNotFound(err) {
		s.LogError(ctx, err, "Failed to load default expense currency")
		return err
	}
	policy.DefaultExpenseCurrency = def
	return nil
}

func validatePolicy(p *domain.CurrencyPolicy) error {
	if !p.ConversionTiming.Valid() {
		return apperrors.NewValidationError("Conversion timing must be one of Submission, Approval, Payment")
	}
	if !p.RoundingMethod.Valid() {
		return apperrors.NewValidationError("Rounding method must be one of Round, Floor, Ceiling, Truncate")
	}
	if p.RoundingPrecision < 0 || p.RoundingPrecision > domain.MaxDecimalPlaces {
		return apperrors.NewValidationError("Rounding precision must be between 0 and 4")
	}
	if p.RateTolerancePercentage.LessThan(decimal.Zero) {
		return apperrors.NewValidationError("Rate tolerance percentage must not be negative")
	}
	if p.MaxRateAgeDays < 0 {
		return apperrors.NewValidationError("Max rate age days must not be negative")
	}
	return nil
}

// UpdatePolicy merges req onto the stored or default policy and saves it.
func (s *CurrencyPolicyService) UpdatePolicy(ctx context.Context, actor domain.Actor, req dto.UpdateCurrencyPolicyRequest) (*domain.CurrencyPolicy, error) {
	policy, err := s.load(ctx, actor.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load currency policy")
		return nil, err
	}
	req.ToUpdate().Apply(policy)
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}

	ts := now()
	userID := actor.UserID
	policy.UpdatedAt = &ts
	policy.UpdatedBy = &userID
	if err := s.policyRepo.UpsertPolicy(ctx, policy); err != nil {
		s.logFailure(ctx, err, "Failed to save currency policy")
		return nil, err
	}
	if err := s.attachCurrencies(ctx, policy); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Currency policy updated",
		slog.String("rounding_method", string(policy.RoundingMethod)),
		slog.Int("rounding_precision", policy.RoundingPrecision))
	return policy, nil
}
