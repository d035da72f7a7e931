package maintenance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

// ServiceParams groups dependencies for the maintenance service.
type ServiceParams struct {
	Repo Repository
}

// Service manages maintenance requests reported against properties.
type Service struct {
	repo Repository
}

// NewService builds a maintenance service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// canTransition encodes the maintenance status machine. Resolved and
// cancelled are terminal.
func canTransition(from, to enums.MaintenanceStatus) bool {
	switch from {
	case enums.MaintenanceStatusOpen:
		return to == enums.MaintenanceStatusInProgress ||
			to == enums.MaintenanceStatusResolved ||
			to == enums.MaintenanceStatusCancelled
	case enums.MaintenanceStatusInProgress:
		return to == enums.MaintenanceStatusResolved ||
			to == enums.MaintenanceStatusCancelled
	default:
		return false
	}
}

// CreateParams opens a new maintenance request.
type CreateParams struct {
	OrganizationID uuid.UUID
	PropertyID     uuid.UUID
	ReportedBy     string
	Summary        string
	Detail         string
	Priority       enums.MaintenancePriority
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*models.MaintenanceRequest, error) {
	params.ReportedBy = strings.TrimSpace(params.ReportedBy)
	params.Summary = strings.TrimSpace(params.Summary)
	if params.ReportedBy == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reported by is required")
	}
	if params.Summary == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "summary is required")
	}
	if params.Priority == "" {
		params.Priority = enums.MaintenancePriorityMedium
	}
	if !params.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance priority")
	}
	property, err := s.repo.FindProperty(ctx, params.PropertyID, params.OrganizationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up property")
	}
	if property == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}

	request := &models.MaintenanceRequest{
		PropertyID: params.PropertyID,
		ReportedBy: params.ReportedBy,
		Summary:    params.Summary,
		Detail:     params.Detail,
		Priority:   params.Priority,
		Status:     enums.MaintenanceStatusOpen,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating maintenance request")
	}
	return request, nil
}

// UpdateParams amends an open request. Nil fields are left unchanged.
type UpdateParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Summary        *string
	Detail         *string
	Priority       *enums.MaintenancePriority
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (*models.MaintenanceRequest, error) {
	request, err := s.Get(ctx, params.ID, params.OrganizationID)
	if err != nil {
		return nil, err
	}
	if request.Status == enums.MaintenanceStatusResolved || request.Status == enums.MaintenanceStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "closed requests cannot be amended")
	}

	if params.Summary != nil {
		summary := strings.TrimSpace(*params.Summary)
		if summary == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "summary cannot be empty")
		}
		request.Summary = summary
	}
	if params.Detail != nil {
		request.Detail = *params.Detail
	}
	if params.Priority != nil {
		if !params.Priority.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance priority")
		}
		request.Priority = *params.Priority
	}
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating maintenance request")
	}
	return request, nil
}

// Start moves an open request into progress.
func (s *Service) Start(ctx context.Context, id, orgID uuid.UUID) (*models.MaintenanceRequest, error) {
	return s.transition(ctx, id, orgID, enums.MaintenanceStatusInProgress, "")
}

// Resolve closes a request with resolution notes and stamps the resolution
// time.
func (s *Service) Resolve(ctx context.Context, id, orgID uuid.UUID, notes string) (*models.MaintenanceRequest, error) {
	return s.transition(ctx, id, orgID, enums.MaintenanceStatusResolved, notes)
}

// Cancel withdraws a request.
func (s *Service) Cancel(ctx context.Context, id, orgID uuid.UUID) (*models.MaintenanceRequest, error) {
	return s.transition(ctx, id, orgID, enums.MaintenanceStatusCancelled, "")
}

func (s *Service) transition(ctx context.Context, id, orgID uuid.UUID, to enums.MaintenanceStatus, notes string) (*models.MaintenanceRequest, error) {
	request, err := s.Get(ctx, id, orgID)
	if err != nil {
		return nil, err
	}
	if !canTransition(request.Status, to) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
			WithDetails(map[string]any{"from": request.Status, "to": to})
	}

	request.Status = to
	if to == enums.MaintenanceStatusResolved {
		now := time.Now().UTC()
		request.ResolvedAt = &now
		request.ResolutionNotes = notes
	}
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating maintenance request")
	}
	return request, nil
}

func (s *Service) Get(ctx context.Context, id, orgID uuid.UUID) (*models.MaintenanceRequest, error) {
	request, err := s.repo.Find(ctx, id, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up maintenance request")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance request not found")
	}
	return request, nil
}

// ListParams filters the maintenance request list.
type ListParams struct {
	OrganizationID uuid.UUID
	PropertyID     *uuid.UUID
	Status         *enums.MaintenanceStatus
	Priority       *enums.MaintenancePriority
	Limit          int
	Cursor         string
}

// ListResult is a page of maintenance requests.
type ListResult struct {
	Requests   []models.MaintenanceRequest `json:"requests"`
	NextCursor string                      `json:"next_cursor,omitempty"`
}

func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Status != nil && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance status")
	}
	if params.Priority != nil && !params.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid maintenance priority")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	requests, next, err := s.repo.List(ctx, ListQuery{
		OrganizationID: params.OrganizationID,
		PropertyID:     params.PropertyID,
		Status:         params.Status,
		Priority:       params.Priority,
		Limit:          params.Limit,
		Cursor:         cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing maintenance requests")
	}

	result := &ListResult{Requests: requests}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}
