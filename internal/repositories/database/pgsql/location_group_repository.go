package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

const (
	locationGroupColumns  = `id, company_id, code, name, description, is_active, ` + auditColumns
	locationGroupNotFound = "Location group not found"
)

type PgxLocationGroupRepository struct {
	BaseRepository
}

func newPgxLocationGroupRepository(pool DB) portsrepo.LocationGroupRepositoryFacade {
	return &PgxLocationGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LocationGroupRepositoryFacade = (*PgxLocationGroupRepository)(nil)

func scanLocationGroup(row rowScanner) (domain.LocationGroup, error) {
	var g domain.LocationGroup
	dest := []any{&g.ID, &g.CompanyID, &g.Code, &g.Name, &g.Description, &g.IsActive}
	err := row.Scan(append(dest, auditDest(&g.AuditFields)...)...)
	return g, err
}

func (r *PgxLocationGroupRepository) FindLocationGroupByID(ctx context.Context, companyID, groupID int64) (*domain.LocationGroup, error) {
	query := `SELECT ` + locationGroupColumns + ` FROM location_groups
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`
	g, err := scanLocationGroup(r.conn(ctx).QueryRow(ctx, query, companyID, groupID))
	if err != nil {
		return nil, notFoundOr(err, locationGroupNotFound)
	}
	return &g, nil
}

// FindLocationGroupByName matches the name case-insensitively.
func (r *PgxLocationGroupRepository) FindLocationGroupByName(ctx context.Context, companyID int64, name string) (*domain.LocationGroup, error) {
	query := `SELECT ` + locationGroupColumns + ` FROM location_groups
		WHERE company_id = $1 AND LOWER(name) = LOWER($2) AND deleted_at IS NULL`
	g, err := scanLocationGroup(r.conn(ctx).QueryRow(ctx, query, companyID, name))
	if err != nil {
		return nil, notFoundOr(err, locationGroupNotFound)
	}
	return &g, nil
}

func (r *PgxLocationGroupRepository) ListLocationGroups(ctx context.Context, companyID int64, filter domain.ListFilter) ([]domain.LocationGroup, int, error) {
	q := newListQuery("company_id", companyID)
	q.addRaw("deleted_at IS NULL")
	if filter.Search != "" {
		q.add("(code ILIKE $%d OR name ILIKE $%d)", containsPattern(filter.Search))
	}
	if filter.IsActive != nil {
		q.add("is_active = $%d", *filter.IsActive)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM location_groups`+q.whereSQL(), q.args...).Scan(&total); err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to count location groups")
	}

	page, args := q.pageSQL(sortOrder(filter, commonSortColumns, "code", "id"), filter)
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+locationGroupColumns+` FROM location_groups`+q.whereSQL()+page, args...)
	if err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to query location groups")
	}
	defer rows.Close()

	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LocationGroup, error) {
		return scanLocationGroup(row)
	})
	if err != nil {
		return nil, 0, apperrors.FromPg(err, "failed to scan location groups")
	}
	return groups, total, nil
}

func (r *PgxLocationGroupRepository) ListMappings(ctx context.Context, groupID int64) ([]domain.LocationMapping, error) {
	query := `SELECT id, location_group_id, country, state, city
		FROM location_group_mappings WHERE location_group_id = $1 ORDER BY id`
	rows, err := r.conn(ctx).Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to query location mappings")
	}
	defer rows.Close()

	mappings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LocationMapping, error) {
		var m domain.LocationMapping
		err := row.Scan(&m.ID, &m.LocationGroupID, &m.Country, &m.State, &m.City)
		return m, err
	})
	if err != nil {
		return nil, apperrors.FromPg(err, "failed to scan location mappings")
	}
	return mappings, nil
}

func (r *PgxLocationGroupRepository) CreateLocationGroup(ctx context.Context, g *domain.LocationGroup) error {
	query := `
		INSERT INTO location_groups (company_id, code, name, description, is_active,
			created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $7)
		RETURNING id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		g.CompanyID, g.Code, g.Name, g.Description, g.IsActive, g.CreatedAt, g.CreatedBy,
	).Scan(&g.ID)
	if err != nil {
		return apperrors.FromPg(err, "failed to create location group")
	}
	g.UpdatedAt = g.CreatedAt
	g.UpdatedBy = g.CreatedBy
	return nil
}

func (r *PgxLocationGroupRepository) UpdateLocationGroup(ctx context.Context, g *domain.LocationGroup) error {
	query := `
		UPDATE location_groups SET name = $3, description = $4, is_active = $5, updated_at = $6, updated_by = $7
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		g.CompanyID, g.ID, g.Name, g.Description, g.IsActive, g.UpdatedAt, g.UpdatedBy,
	)
	if err != nil {
		return apperrors.FromPg(err, "failed to update location group")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(locationGroupNotFound)
	}
	return nil
}

func (r *PgxLocationGroupRepository) SoftDeleteLocationGroup(ctx context.Context, companyID, groupID, userID int64, now time.Time) error {
	query := `
		UPDATE location_groups SET is_active = FALSE, deleted_at = $3, deleted_by = $4, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, companyID, groupID, now, userID)
	if err != nil {
		return apperrors.FromPg(err, "failed to delete location group")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(locationGroupNotFound)
	}
	return nil
}

func (r *PgxLocationGroupRepository) InsertMapping(ctx context.Context, m *domain.LocationMapping) error {
	query := `INSERT INTO location_group_mappings (location_group_id, country, state, city)
		VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.conn(ctx).QueryRow(ctx, query, m.LocationGroupID, m.Country, m.State, m.City).Scan(&m.ID); err != nil {
		return apperrors.FromPg(err, "failed to create location mapping")
	}
	return nil
}

func (r *PgxLocationGroupRepository) UpdateMapping(ctx context.Context, m *domain.LocationMapping) error {
	query := `UPDATE location_group_mappings SET country = $3, state = $4, city = $5
		WHERE location_group_id = $1 AND id = $2`
	tag, err := r.conn(ctx).Exec(ctx, query, m.LocationGroupID, m.ID, m.Country, m.State, m.City)
	if err != nil {
		return apperrors.FromPg(err, "failed to update location mapping")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Location mapping not found")
	}
	return nil
}

func (r *PgxLocationGroupRepository) DeleteMappings(ctx context.Context, groupID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM location_group_mappings WHERE location_group_id = $1 AND id = ANY($2)`, groupID, ids)
	if err != nil {
		return apperrors.FromPg(err, "failed to delete location mappings")
	}
	return nil
}

// PgxCodeSequenceRepository implements portsrepo.CodeSequenceRepository on code_sequences.
type PgxCodeSequenceRepository struct {
	BaseRepository
}

func newPgxCodeSequenceRepository(pool DB) portsrepo.CodeSequenceRepository {
	return &PgxCodeSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// NextValue increments the counter under a row lock. The upsert creates the
// row on first use and takes the lock in the same statement.
func (r *PgxCodeSequenceRepository) NextValue(ctx context.Context, companyID int64, name string) (int64, error) {
	if _, ok := txFromContext(ctx); !ok {
		return 0, apperrors.NewAppError(500, "code sequence requires a transaction", nil)
	}
	query := `
		INSERT INTO code_sequences (company_id, name, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, name) DO UPDATE SET last_value = code_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := r.conn(ctx).QueryRow(ctx, query, companyID, name).Scan(&next); err != nil {
		return 0, apperrors.FromPg(err, "failed to allocate code")
	}
	return next, nil
}
