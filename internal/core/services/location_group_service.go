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

// locationGroupSequence names the code_sequences row behind LG-#### codes.
const locationGroupSequence = "location_group"

// LocationGroupService manages location groups and their geographic mappings.
type LocationGroupService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	groupRepo    portsrepo.LocationGroupRepositoryFacade
	sequenceRepo portsrepo.CodeSequenceRepository
}

func NewLocationGroupService(
	txManager portsrepo.TransactionManager,
	groupRepo portsrepo.LocationGroupRepositoryFacade,
	sequenceRepo portsrepo.CodeSequenceRepository,
) *LocationGroupService {
	return &LocationGroupService{
		txManager:    txManager,
		groupRepo:    groupRepo,
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.LocationGroupSvc = (*LocationGroupService)(nil)

// validateMappings trims every mapping and rejects empty countries and repeated geographies.
func validateMappings(mappings []domain.LocationMapping) error {
	if len(mappings) == 0 {
		return apperrors.NewValidationError("At least one location mapping is required")
	}
	seen := make(map[string]bool, len(mappings))
	for i := range mappings {
		m := &mappings[i]
		m.Country = strings.TrimSpace(m.Country)
		m.State = strings.TrimSpace(m.State)
		m.City = strings.TrimSpace(m.City)
		if m.Country == "" {
			return apperrors.NewValidationError(fmt.Sprintf("mappings[%d]: country is required", i))
		}
		if seen[m.Key()] {
			return apperrors.NewValidationError(fmt.Sprintf("mappings[%d]: duplicate location mapping", i))
		}
		seen[m.Key()] = true
	}
	return nil
}

// ensureNameFree rejects a name already used by another live group of the company.
func (s *LocationGroupService) ensureNameFree(ctx context.Context, companyID, selfID int64, name string) error {
	existing, err := s.groupRepo.FindLocationGroupByName(ctx, companyID, name)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewConflictError("Location group name already exists")
	}
	return nil
}

func (s *LocationGroupService) syncMappings(ctx context.Context, group *domain.LocationGroup, mappings []domain.LocationMapping) error {
	for i := range mappings {
		mappings[i].LocationGroupID = group.ID
	}
	existing, err := s.groupRepo.ListMappings(ctx, group.ID)
	if err != nil {
		return err
	}
	if err := reconcile(ctx, existing, mappings, childStore[domain.LocationMapping]{
		label:  "location mapping",
		insert: s.groupRepo.InsertMapping,
		update: s.groupRepo.UpdateMapping,
		remove: func(ctx context.Context, ids []int64) error { return s.groupRepo.DeleteMappings(ctx, group.ID, ids) },
	}); err != nil {
		return err
	}
	group.Mappings, err = s.groupRepo.ListMappings(ctx, group.ID)
	return err
}

// CreateLocationGroup stores a group under the next LG-#### code of the company.
func (s *LocationGroupService) CreateLocationGroup(ctx context.Context, actor domain.Actor, req dto.CreateLocationGroupRequest) (*domain.LocationGroup, error) {
	ts := now()
	group := &domain.LocationGroup{
		CompanyID:   actor.CompanyID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    boolOr(req.IsActive, true),
		AuditFields: domain.AuditFields{CreatedAt: ts, CreatedBy: actor.UserID, UpdatedAt: ts, UpdatedBy: actor.UserID},
	}
	if group.Name == "" {
		return nil, apperrors.NewValidationError("Location group name is required")
	}
	mappings := dto.ToDomainMappings(req.Mappings)
	if firstID(mappings) != 0 {
		return nil, apperrors.NewValidationError("New location groups cannot reference existing mapping ids")
	}
	if err := validateMappings(mappings); err != nil {
		return nil, err
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ensureNameFree(ctx, actor.CompanyID, 0, group.Name); err != nil {
			return err
		}
		next, err := s.sequenceRepo.NextValue(ctx, actor.CompanyID, locationGroupSequence)
		if err != nil {
			return err
		}
		group.Code = domain.FormatLocationGroupCode(next)
		if err := s.groupRepo.CreateLocationGroup(ctx, group); err != nil {
			return err
		}
		return s.syncMappings(ctx, group, mappings)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create location group", slog.String("name", group.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Location group created",
		slog.Int64("location_group_id", group.ID),
		slog.String("code", group.Code))
	return group, nil
}

func (s *LocationGroupService) GetLocationGroup(ctx context.Context, actor domain.Actor, groupID int64) (*domain.LocationGroup, error) {
	group, err := s.groupRepo.FindLocationGroupByID(ctx, actor.CompanyID, groupID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find location group", slog.Int64("location_group_id", groupID))
		return nil, err
	}
	if group.Mappings, err = s.groupRepo.ListMappings(ctx, group.ID); err != nil {
		s.LogError(ctx, err, "Failed to load location mappings", slog.Int64("location_group_id", groupID))
		return nil, err
	}
	return group, nil
}

func (s *LocationGroupService) ListLocationGroups(ctx context.Context, actor domain.Actor, req dto.ListLocationGroupsRequest) ([]domain.LocationGroup, int, error) {
	groups, total, err := s.groupRepo.ListLocationGroups(ctx, actor.CompanyID, req.ToFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to list location groups")
		return nil, 0, err
	}
	if groups == nil {
		groups = []domain.LocationGroup{}
	}
	return groups, total, nil
}

func (s *LocationGroupService) UpdateLocationGroup(ctx context.Context, actor domain.Actor, req dto.UpdateLocationGroupRequest) (*domain.LocationGroup, error) {
	update := req.ToUpdate()
	if update.Mappings != nil {
		if err := validateMappings(update.Mappings); err != nil {
			return nil, err
		}
	}

	var group *domain.LocationGroup
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.groupRepo.FindLocationGroupByID(ctx, actor.CompanyID, req.ID)
		if err != nil {
			return err
		}
		update.Apply(current)
		current.Name = strings.TrimSpace(current.Name)
		current.Description = strings.TrimSpace(current.Description)
		if current.Name == "" {
			return apperrors.NewValidationError("Location group name is required")
		}
		if err := s.ensureNameFree(ctx, actor.CompanyID, current.ID, current.Name); err != nil {
			return err
		}
		current.UpdatedAt = now()
		current.UpdatedBy = actor.UserID
		if err := s.groupRepo.UpdateLocationGroup(ctx, current); err != nil {
			return err
		}
		if update.Mappings != nil {
			if err := s.syncMappings(ctx, current, update.Mappings); err != nil {
				return err
			}
		} else if current.Mappings, err = s.groupRepo.ListMappings(ctx, current.ID); err != nil {
			return err
		}
		group = current
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update location group", slog.Int64("location_group_id", req.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Location group updated", slog.Int64("location_group_id", group.ID))
	return group, nil
}

func (s *LocationGroupService) DeleteLocationGroup(ctx context.Context, actor domain.Actor, groupID int64) error {
	if err := s.groupRepo.SoftDeleteLocationGroup(ctx, actor.CompanyID, groupID, actor.UserID, now()); err != nil {
		s.logFailure(ctx, err, "Failed to delete location group", slog.Int64("location_group_id", groupID))
		return err
	}
	s.LogInfo(ctx, "Location group deleted", slog.Int64("location_group_id", groupID))
	return nil
}
