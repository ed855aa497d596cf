package dto

import "github.com/SscSPs/expense_admin_app/internal/core/domain"

// CreateMasterRecordRequest creates a branch, division, region or any other
// master-data kind. ParentID applies to kinds with a parent; Level to grades.
type CreateMasterRecordRequest struct {
	Code        string `json:"code" binding:"required,max=50"`
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=500"`
	ParentID    *int64 `json:"parent_id" binding:"omitempty,gt=0"`
	Level       *int   `json:"level" binding:"omitempty,gte=0"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateMasterRecordRequest is a partial master-data update.
type UpdateMasterRecordRequest struct {
	ID          int64   `json:"id" binding:"required,gt=0"`
	Code        *string `json:"code" binding:"omitempty,min=1,max=50"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	ParentID    *int64  `json:"parent_id" binding:"omitempty,gt=0"`
	Level       *int    `json:"level" binding:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpdateMasterRecordRequest) ToUpdate() domain.MasterRecordUpdate {
	return domain.MasterRecordUpdate{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		ParentID:    r.ParentID,
		Level:       r.Level,
		IsActive:    r.IsActive,
	}
}

// ListMasterRecordsRequest filters a master-data list. Sortable by code, name, created_at.
type ListMasterRecordsRequest struct {
	ListRequest
	ParentID *int64 `json:"parent_id" binding:"omitempty,gt=0"`
}

func (r ListMasterRecordsRequest) ToFilter() domain.MasterRecordFilter {
	return domain.MasterRecordFilter{ListFilter: r.ListRequest.ToFilter(), ParentID: r.ParentID}
}
