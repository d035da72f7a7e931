package tenancies

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
)

type stubRepo struct {
	tenancies  map[uuid.UUID]models.Tenancy
	properties map[uuid.UUID]models.Property
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		tenancies:  map[uuid.UUID]models.Tenancy{},
		properties: map[uuid.UUID]models.Property{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, tenancy *models.Tenancy) error {
	if tenancy.ID == uuid.Nil {
		tenancy.ID = uuid.New()
	}
	s.tenancies[tenancy.ID] = *tenancy
	return nil
}

func (s *stubRepo) Update(ctx context.Context, tenancy *models.Tenancy) error {
	s.tenancies[tenancy.ID] = *tenancy
	return nil
}

func (s *stubRepo) Find(ctx context.Context, id, orgID uuid.UUID) (*models.Tenancy, error) {
	tenancy, ok := s.tenancies[id]
	if !ok {
		return nil, nil
	}
	property, ok := s.properties[tenancy.PropertyID]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	copied := tenancy
	return &copied, nil
}

func (s *stubRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID, status *enums.TenancyStatus) ([]models.Tenancy, error) {
	var out []models.Tenancy
	for _, tenancy := range s.tenancies {
		if tenancy.PropertyID != propertyID {
			continue
		}
		if status != nil && tenancy.Status != *status {
			continue
		}
		out = append(out, tenancy)
	}
	return out, nil
}

func (s *stubRepo) FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error) {
	property, ok := s.properties[propertyID]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	copied := property
	return &copied, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedProperty(repo *stubRepo, orgID uuid.UUID) uuid.UUID {
	propertyID := uuid.New()
	repo.properties[propertyID] = models.Property{
		ID:             propertyID,
		OrganizationID: orgID,
	}
	return propertyID
}

func seedTenancy(repo *stubRepo, propertyID uuid.UUID, status enums.TenancyStatus) uuid.UUID {
	id := uuid.New()
	repo.tenancies[id] = models.Tenancy{
		ID:         id,
		PropertyID: propertyID,
		TenantName: "Priya Shah",
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RentMinor:  125000,
		Status:     status,
	}
	return id
}

func TestCreateDefaultsActiveStatus(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	svc := newTestService(t, repo)

	tenancy, err := svc.Create(context.Background(), CreateParams{
		OrganizationID: orgID,
		PropertyID:     propertyID,
		TenantName:     "  Priya Shah  ",
		StartDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		RentMinor:      125000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tenancy.Status != enums.TenancyStatusActive {
		t.Fatalf("expected active status, got %s", tenancy.Status)
	}
	if tenancy.TenantName != "Priya Shah" {
		t.Fatalf("expected trimmed name, got %q", tenancy.TenantName)
	}
}

func TestCreateRejectsForeignProperty(t *testing.T) {
	repo := newStubRepo()
	propertyID := seedProperty(repo, uuid.New())
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), CreateParams{
		OrganizationID: uuid.New(),
		PropertyID:     propertyID,
		TenantName:     "Priya Shah",
		StartDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	svc := newTestService(t, repo)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	_, err := svc.Create(context.Background(), CreateParams{
		OrganizationID: orgID,
		PropertyID:     propertyID,
		TenantName:     "Priya Shah",
		StartDate:      start,
		EndDate:        &end,
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateMovesActiveToEnded(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	id := seedTenancy(repo, propertyID, enums.TenancyStatusActive)
	svc := newTestService(t, repo)

	status := enums.TenancyStatusEnded
	tenancy, err := svc.Update(context.Background(), id, orgID, UpdateParams{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if tenancy.Status != enums.TenancyStatusEnded {
		t.Fatalf("expected ended status, got %s", tenancy.Status)
	}
}

func TestUpdateRejectsReopeningEnded(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	id := seedTenancy(repo, propertyID, enums.TenancyStatusEnded)
	svc := newTestService(t, repo)

	status := enums.TenancyStatusActive
	_, err := svc.Update(context.Background(), id, orgID, UpdateParams{Status: &status})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestGetForeignOrgReadsAsNotFound(t *testing.T) {
	repo := newStubRepo()
	propertyID := seedProperty(repo, uuid.New())
	id := seedTenancy(repo, propertyID, enums.TenancyStatusActive)
	svc := newTestService(t, repo)

	_, err := svc.Get(context.Background(), id, uuid.New())
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign org, got %v", err)
	}
}
