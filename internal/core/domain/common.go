package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy int64      `json:"created_by"` // UserID Reference
	UpdatedAt time.Time  `json:"updated_at"`
	UpdatedBy int64      `json:"updated_by"` // UserID Reference
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *int64     `json:"deleted_by,omitempty"`
}

// Actor identifies who performs an operation and on behalf of which company.
// Both values come from the authenticated session.
type Actor struct {
	CompanyID int64
	UserID    int64
}

// SortDirection is either "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListFilter carries the common list parameters shared by every resource.
type ListFilter struct {
	Page     int
	Limit    int
	Search   string
	SortBy   string
	SortDir  SortDirection
	IsActive *bool
}

// Offset returns the row offset for the filter's page.
func (f ListFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// DateOnly truncates t to midnight UTC. Effective dates are compared as calendar days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
