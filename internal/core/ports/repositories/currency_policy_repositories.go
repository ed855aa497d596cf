package repositories

import (
	"context"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
)

// CurrencyPolicyRepository persists the single currency policy row of a company.
type CurrencyPolicyRepository interface {
	// FindPolicy returns apperrors.ErrNotFound when the company has no stored policy.
	FindPolicy(ctx context.Context, companyID int64) (*domain.CurrencyPolicy, error)

	// UpsertPolicy inserts or replaces the company's policy and fills in its ID.
	UpsertPolicy(ctx context.Context, policy *domain.CurrencyPolicy) error
}
