package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const masterRecordColumns = `id, company_id, kind, code, name, description, parent_id, level, is_active, ` + auditColumns

var masterSortColumns = map[string]string{
	"code":       "code",
	"name":       "name",
	"created_at": "created_at",
	"level":      "level",
}

// PgxMasterRecordRepository stores every master-data kind in one table
// discriminated by the kind column.
type PgxMasterRecordRepository struct {
	BaseRepository
}

func newPgxMasterRecordRepository(pool DB) portsrepo.MasterRecordRepositoryFacade {
	return &PgxMasterRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MasterRecordRepositoryFacade = (*PgxMasterRecordRepository)(nil)

func scanMasterRecord(row rowScanner) (domain.MasterRecord, error) {
	var m domain.MasterRecord
	dest := []any{&m.ID, &m.CompanyID, &m.Kind, &m.Code, &m.Name, &m.Description, &m.ParentID, &m.Level, &m.IsActive}
	err := row.Scan(append(dest, auditDest(&m.AuditFields)...)...)
	return m, err
}

func kindNotFound(kind domain.MasterKind) string {
	if def, ok := domain.LookupMasterKind(kind); ok {
		return def.Label + " not found"
	}
	return "Record not found"
}

func (r *PgxMasterRecordRepository) FindMasterRecordByID(ctx context.Context, companyID int64, kind domain.MasterKind, id int64) (*domain.MasterRecord, error) {
	query := `SELECT ` + masterRecordColumns + ` FROM master_records
		WHERE company_id = $1 AND kind = $2 AND id = $3 AND deleted_at IS NULL`
	m, err := scanMasterRecord(r.conn(ctx).QueryRow(ctx, query, companyID, string(kind), id))
	if err != nil {
		return nil, notFoundOr(err, kindNotFound(kind))
	}
	return &m, nil
}

func (r *PgxMasterRecordRepository) FindMasterRecordByCode(ctx context.Context, companyID int64, kind domain.MasterKind, code string) (*domain.MasterRecord, error) {
	query := `SELECT ` + masterRecordColumns + ` FROM master_records
		WHERE company_id = $1 AND kind = $2 AND code = $3 AND deleted_at IS NULL`
	m, err := scanMasterRecord(r.conn(ctx).QueryRow(ctx, query, companyID, string(kind), code))
	if err != nil {
		return nil, notFoundOr(err, kindNotFound(kind))
	}
	return &m, nil
}

func (r *PgxMasterRecordRepository) ListMasterRecords(ctx context.Context, companyID int64, kind domain.MasterKind, filter domain.MasterRecordFilter) ([]domain.MasterRecord, int, error) {
	q := newListQuery("company_id", companyID)
	q.add("kind = $%d", string(kind))
	q.addRaw("deleted_at IS NULL")
	if filter.Search != "" {
		q.add("(code ILIKE $%d OR name ILIKE $%d)", containsPattern(filter.Search))
	}
	if filter.IsActive != nil {
		q.add("is_active = $%d", *filter.IsActive)
	}
	if filter.ParentID != nil {
		q.add("parent_id = $%d", *filter.ParentID)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM master_records`+q.whereSQL(), q.args...).Scan(&total); err != nil {
		return nil, 0, apperrors.FromPg(err, fmt.Sprintf("failed to count %s records", kind))
	}

	page, args := q.pageSQL(sortOrder(filter.ListFilter, masterSortColumns, "code", "id"), filter.ListFilter)
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+masterRecordColumns+` FROM master_records`+q.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, apperrors.FromPg(err, fmt.Sprintf("failed to query %s records", kind))
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MasterRecord, error) {
		return scanMasterRecord(row)
	})
	if err != nil {
		return nil, 0, apperrors.FromPg(err, fmt.Sprintf("failed to scan %s records", kind))
	}
	return records, total, nil
}

func (r *PgxMasterRecordRepository) CountActiveChildren(ctx context.Context, companyID, parentID int64) (int, error) {
	query := `SELECT COUNT(*) FROM master_records
		WHERE company_id = $1 AND parent_id = $2 AND is_active AND deleted_at IS NULL`
	var count int
	if err := r.conn(ctx).QueryRow(ctx, query, companyID, parentID).Scan(&count); err != nil {
		return 0, apperrors.FromPg(err, "failed to count child records")
	}
	return count, nil
}

func (r *PgxMasterRecordRepository) CreateMasterRecord(ctx context.Context, m *domain.MasterRecord) error {
	query := `
		INSERT INTO master_records (company_id, kind, code, name, description, parent_id, level,
			is_active, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $9, $10)
		RETURNING id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		m.CompanyID, string(m.Kind), m.Code, m.Name, m.Description, m.ParentID, m.Level,
		m.IsActive, m.CreatedAt, m.CreatedBy,
	).Scan(&m.ID)
	if err != nil {
		return apperrors.FromPg(err, fmt.Sprintf("failed to create %s", m.Kind))
	}
	m.UpdatedAt = m.CreatedAt
	m.UpdatedBy = m.CreatedBy
	return nil
}

func (r *PgxMasterRecordRepository) UpdateMasterRecord(ctx context.Context, m *domain.MasterRecord) error {
	query := `
		UPDATE master_records SET
			code = $4, name = $5, description = $6, parent_id = $7, level = $8, is_active = $9,
			updated_at = $10, updated_by = $11
		WHERE company_id = $1 AND kind = $2 AND id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.CompanyID, string(m.Kind), m.ID, m.Code, m.Name, m.Description, m.ParentID, m.Level, m.IsActive,
		m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return apperrors.FromPg(err, fmt.Sprintf("failed to update %s", m.Kind))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(kindNotFound(m.Kind))
	}
	return nil
}

func (r *PgxMasterRecordRepository) SoftDeleteMasterRecord(ctx context.Context, companyID int64, kind domain.MasterKind, id, userID int64, now time.Time) error {
	query := `
		UPDATE master_records SET is_active = FALSE, deleted_at = $4, deleted_by = $5, updated_at = $4, updated_by = $5
		WHERE company_id = $1 AND kind = $2 AND id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, companyID, string(kind), id, now, userID)
	if err != nil {
		return apperrors.FromPg(err, fmt.Sprintf("failed to delete %s", kind))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(kindNotFound(kind))
	}
	return nil
}
