package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ExpenseCategoryService manages the category tree and the limits, custom
// fields and filing rules hanging off each category.
type ExpenseCategoryService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	categoryRepo portsrepo.ExpenseCategoryRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	recordRepo   portsrepo.MasterRecordReader
}

func NewExpenseCategoryService(
	txManager portsrepo.TransactionManager,
	categoryRepo portsrepo.ExpenseCategoryRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	recordRepo portsrepo.MasterRecordReader,
) *ExpenseCategoryService {
	return &ExpenseCategoryService{
		txManager:    txManager,
		categoryRepo: categoryRepo,
		currencyRepo: currencyRepo,
		recordRepo:   recordRepo,
	}
}

var _ portssvc.ExpenseCategorySvcFacade = (*ExpenseCategoryService)(nil)

func (s *ExpenseCategoryService) validateLimits(ctx context.Context, companyID int64, limits []domain.CategoryLimit) error {
	for i, l := range limits {
		if !l.LimitType.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("limits[%d]: limit type must be one of PerTransaction, Daily, Monthly, Yearly", i))
		}
		if !l.Amount.GreaterThan(decimal.Zero) {
			return apperrors.NewValidationError(fmt.Sprintf("limits[%d]: amount must be greater than zero", i))
		}
		if _, err := s.currencyRepo.FindCurrencyByID(ctx, companyID, l.CurrencyID); err != nil {
			if isNotFound(err) {
				return apperrors.NewValidationError(fmt.Sprintf("limits[%d]: currency not found", i))
			}
			return err
		}
		if l.GradeID != nil {
			if _, err := s.recordRepo.FindMasterRecordByID(ctx, companyID, domain.KindGrade, *l.GradeID); err != nil {
				if isNotFound(err) {
					return apperrors.NewValidationError(fmt.Sprintf("limits[%d]: grade not found", i))
				}
				return err
			}
		}
	}
	return nil
}

func validateCustomFields(fields []domain.CategoryCustomField) error {
	keys := make(map[string]bool, len(fields))
	for i := range fields {
		f := &fields[i]
		f.FieldKey = strings.TrimSpace(f.FieldKey)
		f.Label = strings.TrimSpace(f.Label)
		if f.FieldKey == "" || f.Label == "" {
			return apperrors.NewValidationError(fmt.Sprintf("custom_fields[%d]: field key and label are required", i))
		}
		if !f.FieldType.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("custom_fields[%d]: field type must be one of Text, Number, Date, Select, Boolean", i))
		}
		if f.FieldType == domain.FieldSelect && len(f.Options) == 0 {
			return apperrors.NewValidationError(fmt.Sprintf("custom_fields[%d]: select fields need at least one option", i))
		}
		if f.FieldType != domain.FieldSelect {
			f.Options = []string{}
		}
		if keys[f.FieldKey] {
			return apperrors.NewValidationError(fmt.Sprintf("custom_fields[%d]: duplicate field key %q", i, f.FieldKey))
		}
		keys[f.FieldKey] = true
	}
	return nil
}

func validateFilingRules(rules []domain.CategoryFilingRule) error {
	for i, r := range rules {
		if !r.RuleType.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("filing_rules[%d]: unknown rule type %q", i, r.RuleType))
		}
		if r.RuleType == domain.RuleMaxDaysToFile {
			days, err := strconv.Atoi(strings.TrimSpace(r.RuleValue))
			if err != nil || days <= 0 {
				return apperrors.NewValidationError(fmt.Sprintf("filing_rules[%d]: MaxDaysToFile needs a positive number of days", i))
			}
		}
	}
	return nil
}

// validateParent checks that parentID names a live category of the company
// that is neither c itself nor one of its descendants.
func (s *ExpenseCategoryService) validateParent(ctx context.Context, c *domain.ExpenseCategory) error {
	if c.ParentID == nil {
		return nil
	}
	if c.ID != 0 && *c.ParentID == c.ID {
		return apperrors.NewValidationError("A category cannot be its own parent")
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, c.CompanyID, *c.ParentID); err != nil {
		if isNotFound(err) {
			return apperrors.NewValidationError("Parent category not found")
		}
		return err
	}
	if c.ID == 0 {
		return nil
	}

	all, err := s.categoryRepo.ListAllCategories(ctx, c.CompanyID)
	if err != nil {
		return err
	}
	parentOf := make(map[int64]*int64, len(all))
	for _, cat := range all {
		parentOf[cat.ID] = cat.ParentID
	}
	seen := map[int64]bool{}
	for cur := c.ParentID; cur != nil && !seen[*cur]; cur = parentOf[*cur] {
		if *cur == c.ID {
			return apperrors.NewValidationError("A category cannot be moved under one of its descendants")
		}
		seen[*cur] = true
	}
	return nil
}

func (s *ExpenseCategoryService) validateCategory(ctx context.Context, c *domain.ExpenseCategory) error {
	if c.Code == "" {
		return apperrors.NewValidationError("Category code is required")
	}
	if c.Name == "" {
		return apperrors.NewValidationError("Category name is required")
	}
	if c.ReceiptThreshold != nil && c.ReceiptThreshold.IsNegative() {
		return apperrors.NewValidationError("Receipt threshold must not be negative")
	}
	if err := s.validateParent(ctx, c); err != nil {
		return err
	}
	existing, err := s.categoryRepo.FindCategoryByCode(ctx, c.CompanyID, c.Code)
	if err == nil && existing.ID != c.ID {
		return apperrors.NewConflictError("Category code already exists")
	}
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

// validateChildren checks the collections that are being written; nil ones are skipped.
func (s *ExpenseCategoryService) validateChildren(ctx context.Context, companyID int64, limits []domain.CategoryLimit, fields []domain.CategoryCustomField, rules []domain.CategoryFilingRule) error {
	if err := s.validateLimits(ctx, companyID, limits); err != nil {
		return err
	}
	if err := validateCustomFields(fields); err != nil {
		return err
	}
	return validateFilingRules(rules)
}

// syncChildren reconciles every non-nil collection of c against the stored rows.
func (s *ExpenseCategoryService) syncChildren(ctx context.Context, c *domain.ExpenseCategory, limits []domain.CategoryLimit, fields []domain.CategoryCustomField, rules []domain.CategoryFilingRule) error {
	if limits != nil {
		for i := range limits {
			limits[i].CategoryID = c.ID
		}
		existing, err := s.categoryRepo.ListLimits(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := reconcile(ctx, existing, limits, childStore[domain.CategoryLimit]{
			label:  "limit",
			insert: s.categoryRepo.InsertLimit,
			update: s.categoryRepo.UpdateLimit,
			remove: func(ctx context.Context, ids []int64) error { return s.categoryRepo.DeleteLimits(ctx, c.ID, ids) },
		}); err != nil {
			return err
		}
	}
	if fields != nil {
		for i := range fields {
			fields[i].CategoryID = c.ID
		}
		existing, err := s.categoryRepo.ListCustomFields(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := reconcile(ctx, existing, fields, childStore[domain.CategoryCustomField]{
			label:  "custom field",
			insert: s.categoryRepo.InsertCustomField,
			update: s.categoryRepo.UpdateCustomField,
			remove: func(ctx context.Context, ids []int64) error { return s.categoryRepo.DeleteCustomFields(ctx, c.ID, ids) },
		}); err != nil {
			return err
		}
	}
	if rules != nil {
		for i := range rules {
			rules[i].CategoryID = c.ID
		}
		existing, err := s.categoryRepo.ListFilingRules(ctx, c.ID)
		if err != nil {
			return err
		}
		if err := reconcile(ctx, existing, rules, childStore[domain.CategoryFilingRule]{
			label:  "filing rule",
			insert: s.categoryRepo.InsertFilingRule,
			update: s.categoryRepo.UpdateFilingRule,
			remove: func(ctx context.Context, ids []int64) error { return s.categoryRepo.DeleteFilingRules(ctx, c.ID, ids) },
		}); err != nil {
			return err
		}
	}
	return nil
}

// loadChildren fills the child collections of c.
func (s *ExpenseCategoryService) loadChildren(ctx context.Context, c *domain.ExpenseCategory) error {
	var err error
	if c.Limits, err = s.categoryRepo.ListLimits(ctx, c.ID); err != nil {
		return err
	}
	if c.CustomFields, err = s.categoryRepo.ListCustomFields(ctx, c.ID); err != nil {
		return err
	}
	c.FilingRules, err = s.categoryRepo.ListFilingRules(ctx, c.ID)
	return err
}

func (s *ExpenseCategoryService) CreateCategory(ctx context.Context, actor domain.Actor, req dto.CreateExpenseCategoryRequest) (*domain.ExpenseCategory, error) {
	ts := now()
	category := &domain.ExpenseCategory{
		CompanyID:        actor.CompanyID,
		ParentID:         req.ParentID,
		Code:             domain.NormalizeCode(req.Code),
		Name:             strings.TrimSpace(req.Name),
		Description:      strings.TrimSpace(req.Description),
		GLCode:           strings.TrimSpace(req.GLCode),
		RequiresReceipt:  req.RequiresReceipt,
		ReceiptThreshold: req.ReceiptThreshold,
		IsActive:         boolOr(req.IsActive, true),
		AuditFields:      domain.AuditFields{CreatedAt: ts, CreatedBy: actor.UserID, UpdatedAt: ts, UpdatedBy: actor.UserID},
	}
	limits := dto.ToDomainLimits(req.Limits)
	fields := dto.ToDomainCustomFields(req.CustomFields)
	rules := dto.ToDomainFilingRules(req.FilingRules)
	for _, id := range []int64{firstID(limits), firstID(fields), firstID(rules)} {
		if id != 0 {
			return nil, apperrors.NewValidationError("New categories cannot reference existing child ids")
		}
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.validateCategory(ctx, category); err != nil {
			return err
		}
		if err := s.validateChildren(ctx, actor.CompanyID, limits, fields, rules); err != nil {
			return err
		}
		if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
			return err
		}
		if err := s.syncChildren(ctx, category, limits, fields, rules); err != nil {
			return err
		}
		return s.loadChildren(ctx, category)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create expense category", slog.String("code", category.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Expense category created",
		slog.Int64("category_id", category.ID),
		slog.String("code", category.Code))
	return category, nil
}

// firstID returns the first non-zero id in items.
func firstID[T identifiable](items []T) int64 {
	for _, item := range items {
		if id := item.GetID(); id != 0 {
			return id
		}
	}
	return 0
}

func (s *ExpenseCategoryService) UpdateCategory(ctx context.Context, actor domain.Actor, req dto.UpdateExpenseCategoryRequest) (*domain.ExpenseCategory, error) {
	update := req.ToUpdate()
	var category *domain.ExpenseCategory
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.categoryRepo.FindCategoryByID(ctx, actor.CompanyID, req.ID)
		if err != nil {
			return err
		}
		update.Apply(current)
		current.Code = domain.NormalizeCode(current.Code)
		current.Name = strings.TrimSpace(current.Name)
		current.UpdatedAt = now()
		current.UpdatedBy = actor.UserID

		if err := s.validateCategory(ctx, current); err != nil {
			return err
		}
		if err := s.validateChildren(ctx, actor.CompanyID, update.Limits, update.CustomFields, update.FilingRules); err != nil {
			return err
		}
		if err := s.categoryRepo.UpdateCategory(ctx, current); err != nil {
			return err
		}
		if err := s.syncChildren(ctx, current, update.Limits, update.CustomFields, update.FilingRules); err != nil {
			return err
		}
		if err := s.loadChildren(ctx, current); err != nil {
			return err
		}
		category = current
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update expense category", slog.Int64("category_id", req.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense category updated", slog.Int64("category_id", category.ID))
	return category, nil
}

// DeleteCategory soft-deletes a category without active sub-categories.
func (s *ExpenseCategoryService) DeleteCategory(ctx context.Context, actor domain.Actor, categoryID int64) error {
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, actor.CompanyID, categoryID); err != nil {
			return err
		}
		subs, err := s.categoryRepo.CountActiveSubcategories(ctx, actor.CompanyID, categoryID)
		if err != nil {
			return err
		}
		if subs > 0 {
			return apperrors.NewValidationError(fmt.Sprintf("Cannot delete category with %d active sub-categories", subs))
		}
		return s.categoryRepo.SoftDeleteCategory(ctx, actor.CompanyID, categoryID, actor.UserID, now())
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete expense category", slog.Int64("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Expense category deleted", slog.Int64("category_id", categoryID))
	return nil
}

func (s *ExpenseCategoryService) GetCategory(ctx context.Context, actor domain.Actor, categoryID int64) (*domain.ExpenseCategory, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, actor.CompanyID, categoryID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find expense category", slog.Int64("category_id", categoryID))
		return nil, err
	}
	if err := s.loadChildren(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to load category children", slog.Int64("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *ExpenseCategoryService) ListCategories(ctx context.Context, actor domain.Actor, req dto.ListExpenseCategoriesRequest) ([]domain.ExpenseCategory, int, error) {
	categories, total, err := s.categoryRepo.ListCategories(ctx, actor.CompanyID, req.ToFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list expense categories")
		return nil, 0, err
	}
	if categories == nil {
		categories = []domain.ExpenseCategory{}
	}
	return categories, total, nil
}

// GetCategoryTree returns the company's categories nested by parent.
func (s *ExpenseCategoryService) GetCategoryTree(ctx context.Context, actor domain.Actor) ([]domain.ExpenseCategory, error) {
	all, err := s.categoryRepo.ListAllCategories(ctx, actor.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense categories")
		return nil, err
	}
	tree := domain.BuildCategoryTree(all)
	if tree == nil {
		tree = []domain.ExpenseCategory{}
	}
	return tree, nil
}
