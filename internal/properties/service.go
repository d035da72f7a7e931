package properties

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

// ServiceParams groups dependencies for the properties service.
type ServiceParams struct {
	Repo Repository
}

// Service manages an organization's property portfolio.
type Service struct {
	repo Repository
}

// NewService builds a properties service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// CreateParams describes a new property.
type CreateParams struct {
	OrganizationID uuid.UUID
	AddressLine1   string
	AddressLine2   string
	City           string
	Postcode       string
	Type           enums.PropertyType
	Bedrooms       int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Property, error) {
	if strings.TrimSpace(params.AddressLine1) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address line 1 is required")
	}
	if strings.TrimSpace(params.City) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if strings.TrimSpace(params.Postcode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "postcode is required")
	}
	if !params.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid property type")
	}
	if params.Bedrooms < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bedrooms must not be negative")
	}

	property := &models.Property{
		OrganizationID: params.OrganizationID,
		AddressLine1:   strings.TrimSpace(params.AddressLine1),
		AddressLine2:   strings.TrimSpace(params.AddressLine2),
		City:           strings.TrimSpace(params.City),
		Postcode:       strings.TrimSpace(params.Postcode),
		Type:           params.Type,
		Status:         enums.PropertyStatusActive,
		Bedrooms:       params.Bedrooms,
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating property")
	}
	return property, nil
}

// UpdateParams carries optional property updates.
type UpdateParams struct {
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	Postcode     *string
	Type         *enums.PropertyType
	Status       *enums.PropertyStatus
	Bedrooms     *int
}

func (s *Service) Update(ctx context.Context, id, orgID uuid.UUID, params UpdateParams) (*models.Property, error) {
	property, err := s.Get(ctx, id, orgID)
	if err != nil {
		return nil, err
	}

	if params.AddressLine1 != nil {
		if strings.TrimSpace(*params.AddressLine1) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "address line 1 is required")
		}
		property.AddressLine1 = strings.TrimSpace(*params.AddressLine1)
	}
	if params.AddressLine2 != nil {
		property.AddressLine2 = strings.TrimSpace(*params.AddressLine2)
	}
	if params.City != nil {
		if strings.TrimSpace(*params.City) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "city is required")
		}
		property.City = strings.TrimSpace(*params.City)
	}
	if params.Postcode != nil {
		if strings.TrimSpace(*params.Postcode) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "postcode is required")
		}
		property.Postcode = strings.TrimSpace(*params.Postcode)
	}
	if params.Type != nil {
		if !params.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid property type")
		}
		property.Type = *params.Type
	}
	if params.Status != nil {
		if !params.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid property status")
		}
		property.Status = *params.Status
	}
	if params.Bedrooms != nil {
		if *params.Bedrooms < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "bedrooms must not be negative")
		}
		property.Bedrooms = *params.Bedrooms
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating property")
	}
	return property, nil
}

// Archive retires a property without deleting its history.
func (s *Service) Archive(ctx context.Context, id, orgID uuid.UUID) (*models.Property, error) {
	status := enums.PropertyStatusArchived
	return s.Update(ctx, id, orgID, UpdateParams{Status: &status})
}

func (s *Service) Get(ctx context.Context, id, orgID uuid.UUID) (*models.Property, error) {
	property, err := s.repo.Find(ctx, id, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up property")
	}
	if property == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
	}
	return property, nil
}

// ListParams filters the property list for one organization.
type ListParams struct {
	OrganizationID uuid.UUID
	Status         *enums.PropertyStatus
	Type           *enums.PropertyType
	City           *string
	Limit          int
	Cursor         string
}

// ListResult carries a page of properties plus the next cursor.
type ListResult struct {
	Properties []models.Property `json:"properties"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		cursor = parsed
	}

	properties, next, err := s.repo.List(ctx, ListQuery{
		OrganizationID: params.OrganizationID,
		Status:         params.Status,
		Type:           params.Type,
		City:           params.City,
		Limit:          params.Limit,
		Cursor:         cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing properties")
	}

	result := &ListResult{Properties: properties}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}
