package dto

import "github.com/SscSPs/expense_admin_app/internal/core/domain"

// UpdateCompanyRequest updates the caller's company. Omitted fields are left unchanged.
type UpdateCompanyRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	LegalName *string `json:"legal_name" binding:"omitempty,max=200"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	Address   *string `json:"address" binding:"omitempty,max=500"`
	Country   *string `json:"country" binding:"omitempty,max=100"`
	TaxID     *string `json:"tax_id" binding:"omitempty,max=50"`
}

func (r UpdateCompanyRequest) ToUpdate() domain.CompanyUpdate {
	return domain.CompanyUpdate{
		Name:      r.Name,
		LegalName: r.LegalName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		Country:   r.Country,
		TaxID:     r.TaxID,
	}
}
