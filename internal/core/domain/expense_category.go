package domain

import "github.com/shopspring/decimal"

// ExpenseCategory is a node of the company's expense category tree.
type ExpenseCategory struct {
	ID               int64                 `json:"id"`
	CompanyID        int64                 `json:"company_id"`
	ParentID         *int64                `json:"parent_id"`
	Code             string                `json:"code"`
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	GLCode           string                `json:"gl_code"`
	RequiresReceipt  bool                  `json:"requires_receipt"`
	ReceiptThreshold *decimal.Decimal      `json:"receipt_threshold"`
	IsActive         bool                  `json:"is_active"`
	Limits           []CategoryLimit       `json:"limits,omitempty"`
	CustomFields     []CategoryCustomField `json:"custom_fields,omitempty"`
	FilingRules      []CategoryFilingRule  `json:"filing_rules,omitempty"`
	Children         []ExpenseCategory     `json:"children,omitempty"`
	AuditFields
}

// ExpenseCategoryUpdate is a partial update. A nil slice leaves the child
// collection untouched; a non-nil slice (even empty) replaces it.
type ExpenseCategoryUpdate struct {
	ParentID         *int64
	ClearParent      bool
	Code             *string
	Name             *string
	Description      *string
	GLCode           *string
	RequiresReceipt  *bool
	ReceiptThreshold *decimal.Decimal
	IsActive         *bool
	Limits           []CategoryLimit
	CustomFields     []CategoryCustomField
	FilingRules      []CategoryFilingRule
}

// Apply copies the scalar fields onto c.
func (u ExpenseCategoryUpdate) Apply(c *ExpenseCategory) {
	if u.ClearParent {
		c.ParentID = nil
	} else if u.ParentID != nil {
		c.ParentID = u.ParentID
	}
	if u.Code != nil {
		c.Code = *u.Code
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.GLCode != nil {
		c.GLCode = *u.GLCode
	}
	if u.RequiresReceipt != nil {
		c.RequiresReceipt = *u.RequiresReceipt
	}
	if u.ReceiptThreshold != nil {
		c.ReceiptThreshold = u.ReceiptThreshold
	}
	if u.IsActive != nil {
		c.IsActive = *u.IsActive
	}
}

// LimitType is the period a category limit applies to.
type LimitType string

const (
	LimitPerTransaction LimitType = "PerTransaction"
	LimitDaily          LimitType = "Daily"
	LimitMonthly        LimitType = "Monthly"
	LimitYearly         LimitType = "Yearly"
)

func (t LimitType) Valid() bool {
	switch t {
	case LimitPerTransaction, LimitDaily, LimitMonthly, LimitYearly:
		return true
	}
	return false
}

// CategoryLimit caps spending in a category, optionally per grade.
type CategoryLimit struct {
	ID         int64           `json:"id"`
	CategoryID int64           `json:"category_id"`
	LimitType  LimitType       `json:"limit_type"`
	Amount     decimal.Decimal `json:"amount"`
	CurrencyID int64           `json:"currency_id"`
	GradeID    *int64          `json:"grade_id"`
	IsActive   bool            `json:"is_active"`
}

// GetID exposes the key used when reconciling the collection.
func (l CategoryLimit) GetID() int64 { return l.ID }

// FieldType is the input type of a custom field.
type FieldType string

const (
	FieldText    FieldType = "Text"
	FieldNumber  FieldType = "Number"
	FieldDate    FieldType = "Date"
	FieldSelect  FieldType = "Select"
	FieldBoolean FieldType = "Boolean"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldDate, FieldSelect, FieldBoolean:
		return true
	}
	return false
}

// CategoryCustomField is an extra input collected on expenses of the category.
type CategoryCustomField struct {
	ID         int64     `json:"id"`
	CategoryID int64     `json:"category_id"`
	FieldKey   string    `json:"field_key"`
	Label      string    `json:"label"`
	FieldType  FieldType `json:"field_type"`
	IsRequired bool      `json:"is_required"`
	Options    []string  `json:"options"`
	SortOrder  int       `json:"sort_order"`
}

func (f CategoryCustomField) GetID() int64 { return f.ID }

// FilingRuleType enumerates filing rules.
type FilingRuleType string

const (
	RuleReceiptRequired       FilingRuleType = "ReceiptRequired"
	RuleMaxDaysToFile         FilingRuleType = "MaxDaysToFile"
	RuleJustificationRequired FilingRuleType = "JustificationRequired"
	RuleApprovalRequired      FilingRuleType = "ApprovalRequired"
)

func (t FilingRuleType) Valid() bool {
	switch t {
	case RuleReceiptRequired, RuleMaxDaysToFile, RuleJustificationRequired, RuleApprovalRequired:
		return true
	}
	return false
}

// CategoryFilingRule constrains how an expense in the category is filed.
type CategoryFilingRule struct {
	ID         int64          `json:"id"`
	CategoryID int64          `json:"category_id"`
	RuleType   FilingRuleType `json:"rule_type"`
	RuleValue  string         `json:"rule_value"`
	IsActive   bool           `json:"is_active"`
}

func (r CategoryFilingRule) GetID() int64 { return r.ID }

// ExpenseCategoryFilter narrows category lists.
type ExpenseCategoryFilter struct {
	ListFilter
	ParentID  *int64
	RootsOnly bool
}

// BuildCategoryTree nests a flat list by ParentID. Orphans (parent missing
// from the list) become roots.
func BuildCategoryTree(flat []ExpenseCategory) []ExpenseCategory {
	byParent := make(map[int64][]ExpenseCategory)
	present := make(map[int64]bool, len(flat))
	for _, c := range flat {
		present[c.ID] = true
	}
	var roots []ExpenseCategory
	for _, c := range flat {
		if c.ParentID == nil || !present[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}
	var attach func(nodes []ExpenseCategory) []ExpenseCategory
	attach = func(nodes []ExpenseCategory) []ExpenseCategory {
		for i := range nodes {
			nodes[i].Children = attach(byParent[nodes[i].ID])
		}
		return nodes
	}
	return attach(roots)
}
