package pgsql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const (
	categoryColumns = `id, company_id, parent_id, code, name, description, gl_code, requires_receipt,
		receipt_threshold, is_active, ` + auditColumns
	categoryNotFound = "Expense category not found"
)

var categorySortColumns = map[string]string{
	"code":       "code",
	"name":       "name",
	"gl_code":    "gl_code",
	"created_at": "created_at",
}

type PgxExpenseCategoryRepository struct {
	BaseRepository
}

func newPgxExpenseCategoryRepository(pool DB) portsrepo.ExpenseCategoryRepositoryFacade {
	return &PgxExpenseCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseCategoryRepositoryFacade = (*PgxExpenseCategoryRepository)(nil)

func scanCategory(row rowScanner) (domain.ExpenseCategory, error) {
	var c domain.ExpenseCategory
	dest := []any{
		&c.ID, &c.CompanyID, &c.ParentID, &c.Code, &c.Name, &c.Description, &c.GLCode,
		&c.RequiresReceipt, &c.ReceiptThreshold, &c.IsActive,
	}
	err := row.Scan(append(dest, auditDest(&c.AuditFields)...)...)
	return c, err
}

func (r *PgxExpenseCategoryRepository) findOne(ctx context.Context, where string, args ...any) (*domain.ExpenseCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM expense_categories WHERE ` + where + ` AND deleted_at IS NULL`
	c, err := scanCategory(r.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFoundOr(err, categoryNotFound)
	}
	return &c, nil
}

func (r *PgxExpenseCategoryRepository) FindCategoryByID(ctx context.Context, companyID, categoryID int64) (*domain.ExpenseCategory, error) {
	return r.findOne(ctx, "company_id = $1 AND id = $2", companyID, categoryID)
}

func (r *PgxExpenseCategoryRepository) FindCategoryByCode(ctx context.Context, companyID int64, code string) (*domain.ExpenseCategory, error) {
	return r.findOne(ctx, "company_id = $1 AND code = $2", companyID, code)
}

func (r *PgxExpenseCategoryRepository) ListCategories(ctx context.Context, companyID int64, filter domain.ExpenseCategoryFilter) ([]domain.ExpenseCategory, int, error) {
	q := newListQuery("company_id", companyID)
	q.addRaw("deleted_at IS NULL")
	if filter.Search != "" {
		q.add("(code ILIKE $%d OR name ILIKE $%d OR gl_code ILIKE $%d)", containsPattern(filter.Search))
	}
	if filter.IsActive != nil {
		q.add("is_active = $%d", *filter.IsActive)
	}
	if filter.ParentID != nil {
		q.add("parent_id = $%d", *filter.ParentID)
	} else if filter.RootsOnly {
		q.addRaw("parent_id IS NULL")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM expense_categories`+q.whereSQL(), q.args...).Scan(&total); err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to count expense categories")
	}

	page, args := q.pageSQL(sortOrder(filter.ListFilter, categorySortColumns, "code", "id"), filter.ListFilter)
	categories, err := r.collect(ctx, `SELECT `+categoryColumns+` FROM expense_categories`+q.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *PgxExpenseCategoryRepository) ListAllCategories(ctx context.Context, companyID int64) ([]domain.ExpenseCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM expense_categories
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY code, id`
	return r.collect(ctx, query, companyID)
}

func (r *PgxExpenseCategoryRepository) collect(ctx context.Context, query string, args ...any) ([]domain.ExpenseCategory, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to query expense categories")
	}
	defer rows.Close()

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExpenseCategory, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan expense categories")
	}
	return categories, nil
}

func (r *PgxExpenseCategoryRepository) CountActiveSubcategories(ctx context.Context, companyID, categoryID int64) (int, error) {
	query := `SELECT COUNT(*) FROM expense_categories
		WHERE company_id = $1 AND parent_id = $2 AND is_active AND deleted_at IS NULL`
	var count int
	if err := r.conn(ctx).QueryRow(ctx, query, companyID, categoryID).Scan(&count); err != nil {
		return 0, apperrors.FromPg(err, "failed to count subcategories")
	}
	return count, nil
}

func (r *PgxExpenseCategoryRepository) CreateCategory(ctx context.Context, c *domain.ExpenseCategory) error {
	query := `
		INSERT INTO expense_categories (company_id, parent_id, code, name, description, gl_code,
			requires_receipt, receipt_threshold, is_active, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $10, $11)
		RETURNING id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		c.CompanyID, c.ParentID, c.Code, c.Name, c.Description, c.GLCode,
		c.RequiresReceipt, c.ReceiptThreshold, c.IsActive, c.CreatedAt, c.CreatedBy,
	).Scan(&c.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to create expense category")
	}
	c.UpdatedAt = c.CreatedAt
	c.UpdatedBy = c.CreatedBy
	return nil
}

func (r *PgxExpenseCategoryRepository) UpdateCategory(ctx context.Context, c *domain.ExpenseCategory) error {
	query := `
		UPDATE expense_categories SET
			parent_id = $3, code = $4, name = $5, description = $6, gl_code = $7, requires_receipt = $8,
			receipt_threshold = $9, is_active = $10, updated_at = $11, updated_by = $12
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		c.CompanyID, c.ID, c.ParentID, c.Code, c.Name, c.Description, c.GLCode, c.RequiresReceipt,
		c.ReceiptThreshold, c.IsActive, c.UpdatedAt, c.UpdatedBy,
	)
	if err != nil {
		return apperrors.FromPg(err, "failed to update expense category")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(categoryNotFound)
	}
	return nil
}

func (r *PgxExpenseCategoryRepository) SoftDeleteCategory(ctx context.Context, companyID, categoryID, userID int64, now time.Time) error {
	query := `
		UPDATE expense_categories SET is_active = FALSE, deleted_at = $3, deleted_by = $4, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, companyID, categoryID, now, userID)
	if err != nil {
		return apperrors.FromPg(err, "failed to delete expense category")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(categoryNotFound)
	}
	return nil
}

// execOne runs a child-row statement and fails with a not-found error when no row matched.
func (r *PgxExpenseCategoryRepository) execOne(ctx context.Context, notFound, query string, args ...any) error {
	tag, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return apperrors.FromPg(err, notFound)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(notFound)
	}
	return nil
}

func (r *PgxExpenseCategoryRepository) deleteChildren(ctx context.Context, table string, categoryID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM `+table+` WHERE category_id = $1 AND id = ANY($2)`, categoryID, ids)
	if err != nil {
		return apperrors.FromPg(err, "failed to delete from "+table)
	}
	return nil
}

// Limits

func (r *PgxExpenseCategoryRepository) ListLimits(ctx context.Context, categoryID int64) ([]domain.CategoryLimit, error) {
	query := `SELECT id, category_id, limit_type, amount, currency_id, grade_id, is_active
		FROM expense_category_limits WHERE category_id = $1 ORDER BY id`
	rows, err := r.conn(ctx).Query(ctx, query, categoryID)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to query category limits")
	}
	defer rows.Close()

	limits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryLimit, error) {
		var l domain.CategoryLimit
		err := row.Scan(&l.ID, &l.CategoryID, &l.LimitType, &l.Amount, &l.CurrencyID, &l.GradeID, &l.IsActive)
		return l, err
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan category limits")
	}
	return limits, nil
}

func (r *PgxExpenseCategoryRepository) InsertLimit(ctx context.Context, l *domain.CategoryLimit) error {
	query := `INSERT INTO expense_category_limits (category_id, limit_type, amount, currency_id, grade_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.conn(ctx).QueryRow(ctx, query,
		l.CategoryID, string(l.LimitType), l.Amount, l.CurrencyID, l.GradeID, l.IsActive,
	).Scan(&l.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to create category limit")
	}
	return nil
}

func (r *PgxExpenseCategoryRepository) UpdateLimit(ctx context.Context, l *domain.CategoryLimit) error {
	query := `UPDATE expense_category_limits SET limit_type = $3, amount = $4, currency_id = $5, grade_id = $6, is_active = $7
		WHERE category_id = $1 AND id = $2`
	return r.execOne(ctx, "Category limit not found", query,
		l.CategoryID, l.ID, string(l.LimitType), l.Amount, l.CurrencyID, l.GradeID, l.IsActive)
}

func (r *PgxExpenseCategoryRepository) DeleteLimits(ctx context.Context, categoryID int64, ids []int64) error {
	return r.deleteChildren(ctx, "expense_category_limits", categoryID, ids)
}

// Custom fields

func (r *PgxExpenseCategoryRepository) ListCustomFields(ctx context.Context, categoryID int64) ([]domain.CategoryCustomField, error) {
	query := `SELECT id, category_id, field_key, label, field_type, is_required, options, sort_order
		FROM expense_category_custom_fields WHERE category_id = $1 ORDER BY sort_order, id`
	rows, err := r.conn(ctx).Query(ctx, query, categoryID)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to query custom fields")
	}
	defer rows.Close()

	fields, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryCustomField, error) {
		var f domain.CategoryCustomField
		var options []byte
		if err := row.Scan(&f.ID, &f.CategoryID, &f.FieldKey, &f.Label, &f.FieldType, &f.IsRequired, &options, &f.SortOrder); err != nil {
			return f, err
		}
		f.Options = []string{}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &f.Options); err != nil {
				return f, err
			}
		}
		return f, nil
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan custom fields")
	}
	return fields, nil
}

func encodeOptions(options []string) ([]byte, error) {
	if options == nil {
		options = []string{}
	}
	return json.Marshal(options)
}

func (r *PgxExpenseCategoryRepository) InsertCustomField(ctx context.Context, f *domain.CategoryCustomField) error {
	options, err := encodeOptions(f.Options)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode custom field options", err)
	}
	query := `INSERT INTO expense_category_custom_fields (category_id, field_key, label, field_type, is_required, options, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = r.conn(ctx).QueryRow(ctx, query,
		f.CategoryID, f.FieldKey, f.Label, string(f.FieldType), f.IsRequired, options, f.SortOrder,
	).Scan(&f.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to create custom field")
	}
	return nil
}

func (r *PgxExpenseCategoryRepository) UpdateCustomField(ctx context.Context, f *domain.CategoryCustomField) error {
	options, err := encodeOptions(f.Options)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode custom field options", err)
	}
	query := `UPDATE expense_category_custom_fields SET field_key = $3, label = $4, field_type = $5,
			is_required = $6, options = $7, sort_order = $8
		WHERE category_id = $1 AND id = $2`
	return r.execOne(ctx, "Custom field not found", query,
		f.CategoryID, f.ID, f.FieldKey, f.Label, string(f.FieldType), f.IsRequired, options, f.SortOrder)
}

func (r *PgxExpenseCategoryRepository) DeleteCustomFields(ctx context.Context, categoryID int64, ids []int64) error {
	return r.deleteChildren(ctx, "expense_category_custom_fields", categoryID, ids)
}

// Filing rules

func (r *PgxExpenseCategoryRepository) ListFilingRules(ctx context.Context, categoryID int64) ([]domain.CategoryFilingRule, error) {
	query := `SELECT id, category_id, rule_type, rule_value, is_active
		FROM expense_category_filing_rules WHERE category_id = $1 ORDER BY id`
	rows, err := r.conn(ctx).Query(ctx, query, categoryID)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to query filing rules")
	}
	defer rows.Close()

	rules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryFilingRule, error) {
		var fr domain.CategoryFilingRule
		err := row.Scan(&fr.ID, &fr.CategoryID, &fr.RuleType, &fr.RuleValue, &fr.IsActive)
		return fr, err
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan filing rules")
	}
	return rules, nil
}

func (r *PgxExpenseCategoryRepository) InsertFilingRule(ctx context.Context, fr *domain.CategoryFilingRule) error {
	query := `INSERT INTO expense_category_filing_rules (category_id, rule_type, rule_value, is_active)
		VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.conn(ctx).QueryRow(ctx, query, fr.CategoryID, string(fr.RuleType), fr.RuleValue, fr.IsActive).Scan(&fr.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to create filing rule")
	}
	return nil
}

func (r *PgxExpenseCategoryRepository) UpdateFilingRule(ctx context.Context, fr *domain.CategoryFilingRule) error {
	query := `UPDATE expense_category_filing_rules SET rule_type = $3, rule_value = $4, is_active = $5
		WHERE category_id = $1 AND id = $2`
	return r.execOne(ctx, "Filing rule not found", query,
		fr.CategoryID, fr.ID, string(fr.RuleType), fr.RuleValue, fr.IsActive)
}

func (r *PgxExpenseCategoryRepository) DeleteFilingRules(ctx context.Context, categoryID int64, ids []int64) error {
	return r.deleteChildren(ctx, "expense_category_filing_rules", categoryID, ids)
}
