package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_admin_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/dto"
)

// MasterDataService serves every master-data kind. Kind specific rules
// (parent kind, level) come from domain.MasterKindDef.
type MasterDataService struct {
	BaseService
	recordRepo portsrepo.MasterRecordRepositoryFacade
}

func NewMasterDataService(recordRepo portsrepo.MasterRecordRepositoryFacade) *MasterDataService {
	return &MasterDataService{recordRepo: recordRepo}
}

var _ portssvc.MasterDataSvc = (*MasterDataService)(nil)

func lookupKind(kind domain.MasterKind) (domain.MasterKindDef, error) {
	def, ok := domain.LookupMasterKind(kind)
	if !ok {
		return def, apperrors.NewValidationError(fmt.Sprintf("Unknown master data kind %q", kind))
	}
	return def, nil
}

// validateRecord checks the fields and the parent reference of r.
func (s *MasterDataService) validateRecord(ctx context.Context, def domain.MasterKindDef, r *domain.MasterRecord) error {
	if r.Code == "" {
		return apperrors.NewValidationError(def.Label + " code is required")
	}
	if r.Name == "" {
		return apperrors.NewValidationError(def.Label + " name is required")
	}
	if !def.HasLevel {
		r.Level = nil
	}
	if r.ParentID == nil {
		return nil
	}
	if def.ParentKind == "" {
		return apperrors.NewValidationError(def.Label + " does not take a parent")
	}
	if *r.ParentID == r.ID {
		return apperrors.NewValidationError(def.Label + " cannot be its own parent")
	}
	parent, err := s.recordRepo.FindMasterRecordByID(ctx, r.CompanyID, def.ParentKind, *r.ParentID)
	if err != nil {
		if isNotFound(err) {
			parentDef, _ := domain.LookupMasterKind(def.ParentKind)
			return apperrors.NewValidationError("Parent " + strings.ToLower(parentDef.Label) + " not found")
		}
		return err
	}
	if !parent.IsActive {
		return apperrors.NewValidationError("Parent " + parent.Code + " is inactive")
	}
	return nil
}

// ensureCodeFree fails with a conflict when another live record of the kind uses code.
func (s *MasterDataService) ensureCodeFree(ctx context.Context, def domain.MasterKindDef, r *domain.MasterRecord) error {
	existing, err := s.recordRepo.FindMasterRecordByCode(ctx, r.CompanyID, def.Kind, r.Code)
	if err == nil && existing.ID != r.ID {
		return apperrors.NewConflictError(def.Label + " code already exists")
	}
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (s *MasterDataService) CreateRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.CreateMasterRecordRequest) (*domain.MasterRecord, error) {
	def, err := lookupKind(kind)
	if err != nil {
		return nil, err
	}
	ts := now()
	record := &domain.MasterRecord{
		CompanyID:   actor.CompanyID,
		Kind:        kind,
		Code:        domain.NormalizeCode(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		ParentID:    req.ParentID,
		Level:       req.Level,
		IsActive:    boolOr(req.IsActive, true),
		AuditFields: domain.AuditFields{CreatedAt: ts, CreatedBy: actor.UserID, UpdatedAt: ts, UpdatedBy: actor.UserID},
	}
	if err := s.validateRecord(ctx, def, record); err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, def, record); err != nil {
		return nil, err
	}
	if err := s.recordRepo.CreateMasterRecord(ctx, record); err != nil {
		s.logFailure(ctx, err, "Failed to create master record", slog.String("kind", string(kind)))
		return nil, err
	}

	s.LogInfo(ctx, def.Label+" created",
		slog.Int64("id", record.ID),
		slog.String("code", record.Code))
	return record, nil
}

func (s *MasterDataService) GetRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, id int64) (*domain.MasterRecord, error) {
	if _, err := lookupKind(kind); err != nil {
		return nil, err
	}
	record, err := s.recordRepo.FindMasterRecordByID(ctx, actor.CompanyID, kind, id)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find master record", slog.String("kind", string(kind)), slog.Int64("id", id))
		return nil, err
	}
	return record, nil
}

func (s *MasterDataService) ListRecords(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.ListMasterRecordsRequest) ([]domain.MasterRecord, int, error) {
	if _, err := lookupKind(kind); err != nil {
		return nil, 0, err
	}
	records, total, err := s.recordRepo.ListMasterRecords(ctx, actor.CompanyID, kind, req.ToFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list master records", slog.String("kind", string(kind)))
		return nil, 0, err
	}
	if records == nil {
		records = []domain.MasterRecord{}
	}
	return records, total, nil
}

func (s *MasterDataService) UpdateRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, req dto.UpdateMasterRecordRequest) (*domain.MasterRecord, error) {
	def, err := lookupKind(kind)
	if err != nil {
		return nil, err
	}
	record, err := s.recordRepo.FindMasterRecordByID(ctx, actor.CompanyID, kind, req.ID)
	if err != nil {
		return nil, err
	}
	oldCode := record.Code
	req.ToUpdate().Apply(record)
	record.Code = domain.NormalizeCode(record.Code)
	record.Name = strings.TrimSpace(record.Name)
	record.Description = strings.TrimSpace(record.Description)
	record.UpdatedAt = now()
	record.UpdatedBy = actor.UserID

	if err := s.validateRecord(ctx, def, record); err != nil {
		return nil, err
	}
	if record.Code != oldCode {
		if err := s.ensureCodeFree(ctx, def, record); err != nil {
			return nil, err
		}
	}
	if err := s.recordRepo.UpdateMasterRecord(ctx, record); err != nil {
		s.logFailure(ctx, err, "Failed to update master record", slog.String("kind", string(kind)), slog.Int64("id", req.ID))
		return nil, err
	}

	s.LogInfo(ctx, def.Label+" updated", slog.Int64("id", record.ID))
	return record, nil
}

// DeleteRecord soft-deletes a record. Parents with active children stay.
func (s *MasterDataService) DeleteRecord(ctx context.Context, actor domain.Actor, kind domain.MasterKind, id int64) error {
	def, err := lookupKind(kind)
	if err != nil {
		return err
	}
	if _, err := s.recordRepo.FindMasterRecordByID(ctx, actor.CompanyID, kind, id); err != nil {
		return err
	}
	if len(domain.ChildKinds(kind)) > 0 {
		children, err := s.recordRepo.CountActiveChildren(ctx, actor.CompanyID, id)
		if err != nil {
			s.LogError(ctx, err, "Failed to count child records", slog.Int64("id", id))
			return err
		}
		if children > 0 {
			return apperrors.NewValidationError(fmt.Sprintf("Cannot delete %s with %d active child records", strings.ToLower(def.Label), children))
		}
	}
	if err := s.recordRepo.SoftDeleteMasterRecord(ctx, actor.CompanyID, kind, id, actor.UserID, now()); err != nil {
		s.logFailure(ctx, err, "Failed to delete master record", slog.String("kind", string(kind)), slog.Int64("id", id))
		return err
	}

	s.LogInfo(ctx, def.Label+" deleted", slog.Int64("id", id))
	return nil
}

// CompanyService exposes the caller's own company record.
type CompanyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
}

func NewCompanyService(companyRepo portsrepo.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvc = (*CompanyService)(nil)

func (s *CompanyService) GetCompany(ctx context.Context, actor domain.Actor) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, actor.CompanyID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find company", slog.Int64("company_id", actor.CompanyID))
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, actor domain.Actor, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	company, err := s.GetCompany(ctx, actor)
	if err != nil {
		return nil, err
	}
	req.ToUpdate().Apply(company)
	company.Name = strings.TrimSpace(company.Name)
	if company.Name == "" {
		return nil, apperrors.NewValidationError("Company name is required")
	}
	company.UpdatedAt = now()
	company.UpdatedBy = actor.UserID
	if err := s.companyRepo.UpdateCompany(ctx, company); err != nil {
		s.logFailure(ctx, err, "Failed to update company", slog.Int64("company_id", actor.CompanyID))
		return nil, err
	}

	s.LogInfo(ctx, "Company updated", slog.Int64("company_id", company.ID))
	return company, nil
}
