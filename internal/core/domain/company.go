package domain

// Company is the tenant root. Every other record is scoped by its ID.
type Company struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	LegalName string `json:"legal_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Country   string `json:"country"`
	TaxID     string `json:"tax_id"`
	IsActive  bool   `json:"is_active"`
	AuditFields
}

// CompanyUpdate is a partial company update.
type CompanyUpdate struct {
	Name      *string
	LegalName *string
	Email     *string
	Phone     *string
	Address   *string
	Country   *string
	TaxID     *string
}

// Apply copies provided fields onto c.
func (u CompanyUpdate) Apply(c *Company) {
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{u.Name, &c.Name},
		{u.LegalName, &c.LegalName},
		{u.Email, &c.Email},
		{u.Phone, &c.Phone},
		{u.Address, &c.Address},
		{u.Country, &c.Country},
		{u.TaxID, &c.TaxID},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}
