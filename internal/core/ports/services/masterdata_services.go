package services

import (
	"context"

	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/SscSPs/expense_admin_app/internal/dto"
)

// MasterDataSvc manages every master-data kind through one generic surface.
type MasterDataSvc interface {
	CreateRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.CreateMasterRecordRequest) (*domain.MasterRecord, error)
	GetRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, id int64) (*domain.MasterRecord, error)
	ListRecords(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.ListMasterRecordsRequest) ([]domain.MasterRecord, int, error)
	UpdateRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.UpdateMasterRecordRequest) (*domain.MasterRecord, error)
	DeleteRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, id int64) error
}

// CompanySvc reads and updates the caller's company.
type CompanySvc interface {
	GetCompany(ctx context.Context, actor domain.Actor) (*domain.Company, error)
	UpdateCompany(ctx context.Context, actor domain.Actor, req dto.UpdateCompanyRequest) (*domain.Company, error)
}
