package properties

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

type stubRepo struct {
	properties map[uuid.UUID]models.Property
}

func newStubRepo() *stubRepo {
	return &stubRepo{properties: map[uuid.UUID]models.Property{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, property *models.Property) error {
	if property.ID == uuid.Nil {
		property.ID = uuid.New()
	}
	s.properties[property.ID] = *property
	return nil
}

func (s *stubRepo) Update(ctx context.Context, property *models.Property) error {
	s.properties[property.ID] = *property
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.properties, id)
	return nil
}

func (s *stubRepo) Find(ctx context.Context, id, orgID uuid.UUID) (*models.Property, error) {
	property, ok := s.properties[id]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	copied := property
	return &copied, nil
}

func (s *stubRepo) List(ctx context.Context, params ListQuery) ([]models.Property, *pagination.Cursor, error) {
	var out []models.Property
	for _, property := range s.properties {
		if property.OrganizationID != params.OrganizationID {
			continue
		}
		if params.Status != nil && property.Status != *params.Status {
			continue
		}
		out = append(out, property)
	}
	return out, nil, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedProperty(repo *stubRepo, orgID uuid.UUID, status enums.PropertyStatus) uuid.UUID {
	id := uuid.New()
	repo.properties[id] = models.Property{
		ID:             id,
		OrganizationID: orgID,
		AddressLine1:   "12 Harbour Road",
		City:           "Bristol",
		Postcode:       "BS1 4QA",
		Type:           enums.PropertyTypeFlat,
		Status:         status,
	}
	return id
}

func TestCreateDefaultsActiveStatus(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	property, err := svc.Create(context.Background(), CreateParams{
		OrganizationID: uuid.New(),
		AddressLine1:   "  12 Harbour Road  ",
		City:           "Bristol",
		Postcode:       "BS1 4QA",
		Type:           enums.PropertyTypeFlat,
		Bedrooms:       2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if property.Status != enums.PropertyStatusActive {
		t.Fatalf("expected active status, got %s", property.Status)
	}
	if property.AddressLine1 != "12 Harbour Road" {
		t.Fatalf("expected trimmed address, got %q", property.AddressLine1)
	}
}

func TestCreateRejectsInvalidType(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), CreateParams{
		OrganizationID: uuid.New(),
		AddressLine1:   "12 Harbour Road",
		City:           "Bristol",
		Postcode:       "BS1 4QA",
		Type:           enums.PropertyType("castle"),
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetForeignOrgReadsAsNotFound(t *testing.T) {
	repo := newStubRepo()
	id := seedProperty(repo, uuid.New(), enums.PropertyStatusActive)
	svc := newTestService(t, repo)

	_, err := svc.Get(context.Background(), id, uuid.New())
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign org, got %v", err)
	}
}

func TestArchiveSetsArchivedStatus(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	id := seedProperty(repo, orgID, enums.PropertyStatusActive)
	svc := newTestService(t, repo)

	property, err := svc.Archive(context.Background(), id, orgID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if property.Status != enums.PropertyStatusArchived {
		t.Fatalf("expected archived status, got %s", property.Status)
	}
	if stored := repo.properties[id]; stored.Status != enums.PropertyStatusArchived {
		t.Fatalf("expected archive persisted, got %s", stored.Status)
	}
}

func TestUpdateRejectsBlankAddress(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	id := seedProperty(repo, orgID, enums.PropertyStatusActive)
	svc := newTestService(t, repo)

	blank := "   "
	_, err := svc.Update(context.Background(), id, orgID, UpdateParams{AddressLine1: &blank})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListRejectsMalformedCursor(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.List(context.Background(), ListParams{
		OrganizationID: uuid.New(),
		Cursor:         "not-a-cursor",
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
