package services

import (
	"context"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
)

// LocationGroupSvc manages location groups and their mappings.
type LocationGroupSvc interface {
	CreateLocationGroup(ctx context.Context, actor domain.Actor, req dto.CreateLocationGroupRequest) (*domain.LocationGroup, error)
	GetLocationGroup(ctx context.Context, actor domain.Actor, groupID int64) (*domain.LocationGroup, error)
	ListLocationGroups(ctx context.Context, actor domain.Actor, req dto.ListLocationGroupsRequest) ([]domain.LocationGroup, int, error)
	UpdateLocationGroup(ctx context.Context, actor domain.Actor, req dto.UpdateLocationGroupRequest) (*domain.LocationGroup, error)
	DeleteLocationGroup(ctx context.Context, actor domain.Actor, groupID int64) error
}
