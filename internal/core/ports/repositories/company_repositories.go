package repositories

import (
	"context"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
)

// CompanyRepository reads and updates company rows.
type CompanyRepository interface {
	FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error)
	UpdateCompany(ctx context.Context, company *domain.Company) error

	// LockCompany takes a row lock on the company for the current transaction.
	// Flag reassignments that must stay unique per company serialize on it.
	LockCompany(ctx context.Context, companyID int64) error
}
