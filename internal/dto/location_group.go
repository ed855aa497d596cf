package dto

import "github.com/SscSPs/expense_admin_app/internal/core/domain"

// LocationMappingInput is one geography of a group. A zero ID inserts a new mapping.
type LocationMappingInput struct {
	ID      int64  `json:"id"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
}

// CreateLocationGroupRequest creates a group; its code is generated.
type CreateLocationGroupRequest struct {
	Name        string                 `json:"name" binding:"required,max=200"`
	Description string                 `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool                  `json:"is_active"`
	Mappings    []LocationMappingInput `json:"mappings" binding:"required,min=1"`
}

// UpdateLocationGroupRequest is a partial update; present mappings replace the stored ones.
type UpdateLocationGroupRequest struct {
	ID          int64                  `json:"id" binding:"required,gt=0"`
	Name        *string                `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string                `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool                  `json:"is_active"`
	Mappings    []LocationMappingInput `json:"mappings"`
}

func (r UpdateLocationGroupRequest) ToUpdate() domain.LocationGroupUpdate {
	return domain.LocationGroupUpdate{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
		Mappings:    ToDomainMappings(r.Mappings),
	}
}

// ListLocationGroupsRequest filters the group list. Sortable by code, name, created_at.
type ListLocationGroupsRequest struct {
	ListRequest
}

// ToDomainMappings keeps nil as nil so that absent mappings stay untouched.
func ToDomainMappings(in []LocationMappingInput) []domain.LocationMapping {
	if in == nil {
		return nil
	}
	out := make([]domain.LocationMapping, len(in))
	for i, m := range in {
		out[i] = domain.LocationMapping{ID: m.ID, Country: m.Country, State: m.State, City: m.City}
	}
	return out
}
