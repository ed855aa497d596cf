package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
)

// LocationGroupReader defines read operations for location groups.
type LocationGroupReader interface {
	FindLocationGroupByID(ctx context.Context, companyID, groupID int64) (*domain.LocationGroup, error)
	FindLocationGroupByName(ctx context.Context, companyID int64, name string) (*domain.LocationGroup, error)
	ListLocationGroups(ctx context.Context, companyID int64, filter domain.ListFilter) ([]domain.LocationGroup, int, error)
	ListMappings(ctx context.Context, groupID int64) ([]domain.LocationMapping, error)
}

// LocationGroupWriter defines write operations for location groups and their mappings.
type LocationGroupWriter interface {
	CreateLocationGroup(ctx context.Context, group *domain.LocationGroup) error
	UpdateLocationGroup(ctx context.Context, group *domain.LocationGroup) error
	SoftDeleteLocationGroup(ctx context.Context, companyID, groupID, userID int64, now time.Time) error

	InsertMapping(ctx context.Context, mapping *domain.LocationMapping) error
	UpdateMapping(ctx context.Context, mapping *domain.LocationMapping) error
	DeleteMappings(ctx context.Context, groupID int64, ids []int64) error
}

// LocationGroupRepositoryFacade combines location-group read and write operations.
type LocationGroupRepositoryFacade interface {
	LocationGroupReader
	LocationGroupWriter
}

// CodeSequenceRepository hands out per-company sequential numbers.
type CodeSequenceRepository interface {
	// NextValue locks the (company, name) sequence row, increments it and
	// returns the new value. It must run inside a transaction.
	NextValue(ctx context.Context, companyID int64, name string) (int64, error)
}
