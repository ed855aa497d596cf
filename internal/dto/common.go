package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/utils/pagination"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// IDRequest addresses a single record.
type IDRequest struct {
	ID int64 `json:"id" binding:"required,gt=0"`
}

// ListRequest holds the paging, search and sort parameters shared by list endpoints.
type ListRequest struct {
	Page     int    `json:"page" binding:"omitempty,gte=1"`
	Limit    int    `json:"limit" binding:"omitempty,gte=1,lte=100"`
	Search   string `json:"search" binding:"omitempty,max=100"`
	SortBy   string `json:"sort_by" binding:"omitempty,max=50"`
	SortDir  string `json:"sort_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	IsActive *bool  `json:"is_active"`
}

// ToFilter normalizes the request into a domain.ListFilter.
func (r ListRequest) ToFilter() domain.ListFilter {
	page, limit := pagination.Normalize(r.Page, r.Limit)
	dir := domain.SortAsc
	if strings.EqualFold(r.SortDir, string(domain.SortDesc)) {
		dir = domain.SortDesc
	}
	return domain.ListFilter{
		Page:     page,
		Limit:    limit,
		Search:   strings.TrimSpace(r.Search),
		SortBy:   strings.ToLower(strings.TrimSpace(r.SortBy)),
		SortDir:  dir,
		IsActive: r.IsActive,
	}
}

// ParseDate parses an optional YYYY-MM-DD value. Empty input yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
