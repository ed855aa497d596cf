package dto

import (
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryLimitInput is one limit of a category. A zero ID inserts a new limit.
type CategoryLimitInput struct {
	ID         int64           `json:"id"`
	LimitType  string          `json:"limit_type"`
	Amount     decimal.Decimal `json:"amount"`
	CurrencyID int64           `json:"currency_id"`
	GradeID    *int64          `json:"grade_id"`
	IsActive   *bool           `json:"is_active"`
}

// CustomFieldInput is one custom field of a category. A zero ID inserts a new field.
type CustomFieldInput struct {
	ID         int64    `json:"id"`
	FieldKey   string   `json:"field_key"`
	Label      string   `json:"label"`
	FieldType  string   `json:"field_type"`
	IsRequired bool     `json:"is_required"`
	Options    []string `json:"options"`
	SortOrder  int      `json:"sort_order"`
}

// FilingRuleInput is one filing rule of a category. A zero ID inserts a new rule.
type FilingRuleInput struct {
	ID        int64  `json:"id"`
	RuleType  string `json:"rule_type"`
	RuleValue string `json:"rule_value"`
	IsActive  *bool  `json:"is_active"`
}

// CreateExpenseCategoryRequest creates a category with its child collections.
type CreateExpenseCategoryRequest struct {
	Code             string               `json:"code" binding:"required,max=50"`
	Name             string               `json:"name" binding:"required,max=200"`
	Description      string               `json:"description" binding:"omitempty,max=500"`
	ParentID         *int64               `json:"parent_id" binding:"omitempty,gt=0"`
	GLCode           string               `json:"gl_code" binding:"omitempty,max=50"`
	RequiresReceipt  bool                 `json:"requires_receipt"`
	ReceiptThreshold *decimal.Decimal     `json:"receipt_threshold"`
	IsActive         *bool                `json:"is_active"`
	Limits           []CategoryLimitInput `json:"limits"`
	CustomFields     []CustomFieldInput   `json:"custom_fields"`
	FilingRules      []FilingRuleInput    `json:"filing_rules"`
}

// UpdateExpenseCategoryRequest is a partial update. A child collection that is
// present, even empty, replaces the stored one; an absent one is left alone.
type UpdateExpenseCategoryRequest struct {
	ID               int64                `json:"id" binding:"required,gt=0"`
	Code             *string              `json:"code" binding:"omitempty,min=1,max=50"`
	Name             *string              `json:"name" binding:"omitempty,min=1,max=200"`
	Description      *string              `json:"description" binding:"omitempty,max=500"`
	ParentID         *int64               `json:"parent_id" binding:"omitempty,gt=0"`
	ClearParent      bool                 `json:"clear_parent"`
	GLCode           *string              `json:"gl_code" binding:"omitempty,max=50"`
	RequiresReceipt  *bool                `json:"requires_receipt"`
	ReceiptThreshold *decimal.Decimal     `json:"receipt_threshold"`
	IsActive         *bool                `json:"is_active"`
	Limits           []CategoryLimitInput `json:"limits"`
	CustomFields     []CustomFieldInput   `json:"custom_fields"`
	FilingRules      []FilingRuleInput    `json:"filing_rules"`
}

// ToUpdate converts the request into a domain.ExpenseCategoryUpdate.
func (r UpdateExpenseCategoryRequest) ToUpdate() domain.ExpenseCategoryUpdate {
	return domain.ExpenseCategoryUpdate{
		ParentID:         r.ParentID,
		ClearParent:      r.ClearParent,
		Code:             r.Code,
		Name:             r.Name,
		Description:      r.Description,
		GLCode:           r.GLCode,
		RequiresReceipt:  r.RequiresReceipt,
		ReceiptThreshold: r.ReceiptThreshold,
		IsActive:         r.IsActive,
		Limits:           ToDomainLimits(r.Limits),
		CustomFields:     ToDomainCustomFields(r.CustomFields),
		FilingRules:      ToDomainFilingRules(r.FilingRules),
	}
}

// ListExpenseCategoriesRequest filters the flat category list. Sortable by code, name, created_at.
type ListExpenseCategoriesRequest struct {
	ListRequest
	ParentID  *int64 `json:"parent_id" binding:"omitempty,gt=0"`
	RootsOnly bool   `json:"roots_only"`
}

func (r ListExpenseCategoriesRequest) ToFilter() domain.ExpenseCategoryFilter {
	return domain.ExpenseCategoryFilter{ListFilter: r.ListRequest.ToFilter(), ParentID: r.ParentID, RootsOnly: r.RootsOnly}
}

// ToDomainLimits keeps nil as nil so that absent collections stay untouched.
func ToDomainLimits(in []CategoryLimitInput) []domain.CategoryLimit {
	if in == nil {
		return nil
	}
	out := make([]domain.CategoryLimit, len(in))
	for i, l := range in {
		out[i] = domain.CategoryLimit{
			ID:         l.ID,
			LimitType:  domain.LimitType(l.LimitType),
			Amount:     l.Amount,
			CurrencyID: l.CurrencyID,
			GradeID:    l.GradeID,
			IsActive:   l.IsActive == nil || *l.IsActive,
		}
	}
	return out
}

func ToDomainCustomFields(in []CustomFieldInput) []domain.CategoryCustomField {
	if in == nil {
		return nil
	}
	out := make([]domain.CategoryCustomField, len(in))
	for i, f := range in {
		out[i] = domain.CategoryCustomField{
			ID:         f.ID,
			FieldKey:   f.FieldKey,
			Label:      f.Label,
			FieldType:  domain.FieldType(f.FieldType),
			IsRequired: f.IsRequired,
			Options:    f.Options,
			SortOrder:  f.SortOrder,
		}
	}
	return out
}

func ToDomainFilingRules(in []FilingRuleInput) []domain.CategoryFilingRule {
	if in == nil {
		return nil
	}
	out := make([]domain.CategoryFilingRule, len(in))
	for i, r := range in {
		out[i] = domain.CategoryFilingRule{
			ID:        r.ID,
			RuleType:  domain.FilingRuleType(r.RuleType),
			RuleValue: r.RuleValue,
			IsActive:  r.IsActive == nil || *r.IsActive,
		}
	}
	return out
}
