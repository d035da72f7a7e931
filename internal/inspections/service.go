package inspections

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
)

// ServiceParams groups dependencies for the inspections service.
type ServiceParams struct {
	Repo Repository
}

// Service schedules and progresses property inspections.
type Service struct {
	repo Repository
}

// NewService builds an inspections service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// canTransition encodes the inspection status machine.
func canTransition(from, to enums.InspectionStatus) bool {
	switch from {
	case enums.InspectionStatusScheduled:
		return to == enums.InspectionStatusInProgress || to == enums.InspectionStatusCancelled
	case enums.InspectionStatusInProgress:
		return to == enums.InspectionStatusCompleted || to == enums.InspectionStatusCancelled
	default:
		return false
	}
}

// ScheduleParams books an inspection. TypeID selects an extensive inspection
// type; nil means the standard visit.
type ScheduleParams struct {
	OrganizationID uuid.UUID
	PropertyID     uuid.UUID
	TypeID         *uuid.UUID
	ScheduledFor   time.Time
}

func (s *Service) Schedule(ctx context.Context, params ScheduleParams) (*models.Inspection, error) {
	if params.ScheduledFor.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled time is required")
	}
	property, err := s.repo.FindProperty(ctx, params.PropertyID, params.OrganizationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up property")
	}
	if property == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}
	if params.TypeID != nil {
		typ, err := s.repo.FindInspectionType(ctx, *params.TypeID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up inspection type")
		}
		if typ == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inspection type not found")
		}
		if !typ.Active {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inspection type is not active")
		}
	}

	inspection := &models.Inspection{
		PropertyID:   params.PropertyID,
		TypeID:       params.TypeID,
		ScheduledFor: params.ScheduledFor,
		Status:       enums.InspectionStatusScheduled,
	}
	if err := s.repo.Create(ctx, inspection); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating inspection")
	}
	return inspection, nil
}

// UpdateStatusParams progresses an inspection along its status machine.
type UpdateStatusParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Status         enums.InspectionStatus
	ReportNotes    string
}

func (s *Service) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*models.Inspection, error) {
	if !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inspection status")
	}
	inspection, err := s.Get(ctx, params.ID, params.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !canTransition(inspection.Status, params.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
			WithDetails(map[string]any{"from": inspection.Status, "to": params.Status})
	}

	inspection.Status = params.Status
	if params.ReportNotes != "" {
		inspection.ReportNotes = params.ReportNotes
	}
	if err := s.repo.Update(ctx, inspection); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating inspection")
	}
	return inspection, nil
}

// Reschedule moves a still-scheduled inspection to a new slot.
func (s *Service) Reschedule(ctx context.Context, id, orgID uuid.UUID, scheduledFor time.Time) (*models.Inspection, error) {
	if scheduledFor.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled time is required")
	}
	inspection, err := s.Get(ctx, id, orgID)
	if err != nil {
		return nil, err
	}
	if inspection.Status != enums.InspectionStatusScheduled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only scheduled inspections can be rescheduled")
	}

	inspection.ScheduledFor = scheduledFor
	if err := s.repo.Update(ctx, inspection); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating inspection")
	}
	return inspection, nil
}

func (s *Service) Get(ctx context.Context, id, orgID uuid.UUID) (*models.Inspection, error) {
	inspection, err := s.repo.Find(ctx, id, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up inspection")
	}
	if inspection == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inspection not found")
	}
	return inspection, nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID, orgID uuid.UUID, status *enums.InspectionStatus) ([]models.Inspection, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inspection status")
	}
	property, err := s.repo.FindProperty(ctx, propertyID, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up property")
	}
	if property == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}
	return s.repo.ListByProperty(ctx, propertyID, status)
}
