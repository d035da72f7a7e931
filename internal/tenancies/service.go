package tenancies

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
)

// ServiceParams groups dependencies for the tenancies service.
type ServiceParams struct {
	Repo Repository
}

// Service manages tenancy agreements against portfolio properties.
type Service struct {
	repo Repository
}

// NewService builds a tenancies service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

func (s *Service) requireProperty(ctx context.Context, propertyID, orgID uuid.UUID) error {
	property, err := s.repo.FindProperty(ctx, propertyID, orgID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up property")
	}
	if property == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}
	return nil
}

// CreateParams describes a new tenancy.
type CreateParams struct {
	OrganizationID uuid.UUID
	PropertyID     uuid.UUID
	TenantName     string
	TenantEmail    string
	TenantPhone    string
	StartDate      time.Time
	EndDate        *time.Time
	RentMinor      int64
	DepositMinor   int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Tenancy, error) {
	if strings.TrimSpace(params.TenantName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant name is required")
	}
	if params.StartDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date is required")
	}
	if params.EndDate != nil && !params.EndDate.After(params.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
	}
	if params.RentMinor < 0 || params.DepositMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rent and deposit must not be negative")
	}
	if err := s.requireProperty(ctx, params.PropertyID, params.OrganizationID); err != nil {
		return nil, err
	}

	tenancy := &models.Tenancy{
		PropertyID:   params.PropertyID,
		TenantName:   strings.TrimSpace(params.TenantName),
		TenantEmail:  strings.TrimSpace(params.TenantEmail),
		TenantPhone:  strings.TrimSpace(params.TenantPhone),
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		RentMinor:    params.RentMinor,
		DepositMinor: params.DepositMinor,
		Status:       enums.TenancyStatusActive,
	}
	if err := s.repo.Create(ctx, tenancy); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating tenancy")
	}
	return tenancy, nil
}

// UpdateParams carries optional tenancy updates.
type UpdateParams struct {
	TenantName   *string
	TenantEmail  *string
	TenantPhone  *string
	EndDate      *time.Time
	RentMinor    *int64
	DepositMinor *int64
	Status       *enums.TenancyStatus
}

func (s *Service) Update(ctx context.Context, id, orgID uuid.UUID, params UpdateParams) (*models.Tenancy, error) {
	tenancy, err := s.Get(ctx, id, orgID)
	if err != nil {
		return nil, err
	}

	if params.TenantName != nil {
		if strings.TrimSpace(*params.TenantName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant name is required")
		}
		tenancy.TenantName = strings.TrimSpace(*params.TenantName)
	}
	if params.TenantEmail != nil {
		tenancy.TenantEmail = strings.TrimSpace(*params.TenantEmail)
	}
	if params.TenantPhone != nil {
		tenancy.TenantPhone = strings.TrimSpace(*params.TenantPhone)
	}
	if params.EndDate != nil {
		if !params.EndDate.After(tenancy.StartDate) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
		}
		tenancy.EndDate = params.EndDate
	}
	if params.RentMinor != nil {
		if *params.RentMinor < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rent must not be negative")
		}
		tenancy.RentMinor = *params.RentMinor
	}
	if params.DepositMinor != nil {
		if *params.DepositMinor < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "deposit must not be negative")
		}
		tenancy.DepositMinor = *params.DepositMinor
	}
	if params.Status != nil {
		if !params.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tenancy status")
		}
		if tenancy.Status == enums.TenancyStatusEnded && *params.Status != enums.TenancyStatusEnded {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "ended tenancies cannot be reopened")
		}
		tenancy.Status = *params.Status
	}

	if err := s.repo.Update(ctx, tenancy); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating tenancy")
	}
	return tenancy, nil
}

func (s *Service) Get(ctx context.Context, id, orgID uuid.UUID) (*models.Tenancy, error) {
	tenancy, err := s.repo.Find(ctx, id, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up tenancy")
	}
	if tenancy == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tenancy not found")
	}
	return tenancy, nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID, orgID uuid.UUID, status *enums.TenancyStatus) ([]models.Tenancy, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tenancy status")
	}
	if err := s.requireProperty(ctx, propertyID, orgID); err != nil {
		return nil, err
	}
	return s.repo.ListByProperty(ctx, propertyID, status)
}
