package services

import (
	"context"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
)

// ExpenseCategoryReaderSvc defines read operations for expense categories.
type ExpenseCategoryReaderSvc interface {
	// GetCategory returns the category with its limits, custom fields and filing rules.
	GetCategory(ctx context.Context, actor domain.Actor, categoryID int64) (*domain.ExpenseCategory, error)
	ListCategories(ctx context.Context, actor domain.Actor, req dto.ListExpenseCategoriesRequest) ([]domain.ExpenseCategory, int, error)

	// GetCategoryTree returns every category nested under its parent.
	GetCategoryTree(ctx context.Context, actor domain.Actor) ([]domain.ExpenseCategory, error)
}

// ExpenseCategoryWriterSvc defines write operations for expense categories.
type ExpenseCategoryWriterSvc interface {
	CreateCategory(ctx context.Context, actor domain.Actor, req dto.CreateExpenseCategoryRequest) (*domain.ExpenseCategory, error)
	UpdateCategory(ctx context.Context, actor domain.Actor, req dto.UpdateExpenseCategoryRequest) (*domain.ExpenseCategory, error)
	DeleteCategory(ctx context.Context, actor domain.Actor, categoryID int64) error
}

// ExpenseCategorySvcFacade combines all expense-category service interfaces.
type ExpenseCategorySvcFacade interface {
	ExpenseCategoryReaderSvc
	ExpenseCategoryWriterSvc
}
