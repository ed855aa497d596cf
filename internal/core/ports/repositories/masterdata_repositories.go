package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
)

// MasterRecordReader defines read operations shared by every master-data kind.
type MasterRecordReader interface {
	FindMasterRecordByID(ctx context.Context, companyID int64, kind domain.MasterKind, id int64) (*domain.MasterRecord, error)
	FindMasterRecordByCode(ctx context.Context, companyID int64, kind domain.MasterKind, code string) (*domain.MasterRecord, error)
	ListMasterRecords(ctx context.Context, companyID int64, kind domain.MasterKind, filter domain.MasterRecordFilter) ([]domain.MasterRecord, int, error)

	// CountActiveChildren counts active, non-deleted records whose parent is parentID.
	CountActiveChildren(ctx context.Context, companyID, parentID int64) (int, error)
}

// MasterRecordWriter defines write operations shared by every master-data kind.
type MasterRecordWriter interface {
	CreateMasterRecord(ctx context.Context, record *domain.MasterRecord) error
	UpdateMasterRecord(ctx context.Context, record *domain.MasterRecord) error
	SoftDeleteMasterRecord(ctx context.Context, companyID int64, kind domain.MasterKind, id, userID int64, now time.Time) error
}

// MasterRecordRepositoryFacade combines master-data read and write operations.
type MasterRecordRepositoryFacade interface {
	MasterRecordReader
	MasterRecordWriter
}
