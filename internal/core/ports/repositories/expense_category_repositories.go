package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
)

// ExpenseCategoryReader defines read operations for expense categories.
type ExpenseCategoryReader interface {
	FindCategoryByID(ctx context.Context, companyID, categoryID int64) (*domain.ExpenseCategory, error)
	FindCategoryByCode(ctx context.Context, companyID int64, code string) (*domain.ExpenseCategory, error)
	ListCategories(ctx context.Context, companyID int64, filter domain.ExpenseCategoryFilter) ([]domain.ExpenseCategory, int, error)

	// ListAllCategories returns every non-deleted category of the company without children collections.
	ListAllCategories(ctx context.Context, companyID int64) ([]domain.ExpenseCategory, error)

	CountActiveSubcategories(ctx context.Context, companyID, categoryID int64) (int, error)
}

// ExpenseCategoryWriter defines write operations for expense categories.
type ExpenseCategoryWriter interface {
	CreateCategory(ctx context.Context, category *domain.ExpenseCategory) error
	UpdateCategory(ctx context.Context, category *domain.ExpenseCategory) error
	SoftDeleteCategory(ctx context.Context, companyID, categoryID, userID int64, now time.Time) error
}

// CategoryChildrenRepository manages the limits, custom fields and filing
// rules owned by a category.
type CategoryChildrenRepository interface {
	ListLimits(ctx context.Context, categoryID int64) ([]domain.CategoryLimit, error)
	InsertLimit(ctx context.Context, limit *domain.CategoryLimit) error
	UpdateLimit(ctx context.Context, limit *domain.CategoryLimit) error
	DeleteLimits(ctx context.Context, categoryID int64, ids []int64) error

	ListCustomFields(ctx context.Context, categoryID int64) ([]domain.CategoryCustomField, error)
	InsertCustomField(ctx context.Context, field *domain.CategoryCustomField) error
	UpdateCustomField(ctx context.Context, field *domain.CategoryCustomField) error
	DeleteCustomFields(ctx context.Context, categoryID int64, ids []int64) error

	ListFilingRules(ctx context.Context, categoryID int64) ([]domain.CategoryFilingRule, error)
	InsertFilingRule(ctx context.Context, rule *domain.CategoryFilingRule) error
	UpdateFilingRule(ctx context.Context, rule *domain.CategoryFilingRule) error
	DeleteFilingRules(ctx context.Context, categoryID int64, ids []int64) error
}

// ExpenseCategoryRepositoryFacade combines all expense-category repository interfaces.
type ExpenseCategoryRepositoryFacade interface {
	ExpenseCategoryReader
	ExpenseCategoryWriter
	CategoryChildrenRepository
}
