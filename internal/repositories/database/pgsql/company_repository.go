package pgsql

import (
	"context"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
)

const companyNotFound = "Company not found"

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool DB) portsrepo.CompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepository = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID int64) (*domain.Company, error) {
	query := `
		SELECT id, code, name, legal_name, email, phone, address, country, tax_id, is_active, ` + auditColumns + `
		FROM companies
		WHERE id = $1 AND deleted_at IS NULL;
	`
	var c domain.Company
	dest := []any{&c.ID, &c.Code, &c.Name, &c.LegalName, &c.Email, &c.Phone, &c.Address, &c.Country, &c.TaxID, &c.IsActive}
	if err := r.conn(ctx).QueryRow(ctx, query, companyID).Scan(append(dest, auditDest(&c.AuditFields)...)...); err != nil {
		return nil, notFoundOr(err, companyNotFound)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, c *domain.Company) error {
	query := `
		UPDATE companies SET
			name = $2, legal_name = $3, email = $4, phone = $5, address = $6, country = $7,
			tax_id = $8, updated_at = $9, updated_by = $10
		WHERE id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		c.ID, c.Name, c.LegalName, c.Email, c.Phone, c.Address, c.Country, c.TaxID, c.UpdatedAt, c.UpdatedBy,
	)
	if err != nil {
		return apperrors.FromPg(err, "failed to update company")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(companyNotFound)
	}
	return nil
}

// LockCompany row-locks the company until the surrounding transaction ends.
func (r *PgxCompanyRepository) LockCompany(ctx context.Context, companyID int64) error {
	var id int64
	err := r.conn(ctx).QueryRow(ctx, `SELECT id FROM companies WHERE id = $1 FOR UPDATE`, companyID).Scan(&id)
	if err != nil {
		return notFoundOr(err, companyNotFound)
	}
	return nil
}
