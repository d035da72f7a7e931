package maintenance

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
	requests   map[uuid.UUID]models.MaintenanceRequest
	properties map[uuid.UUID]models.Property
	updates    int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		requests:   map[uuid.UUID]models.MaintenanceRequest{},
		properties: map[uuid.UUID]models.Property{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	s.requests[request.ID] = *request
	return nil
}

func (s *stubRepo) Update(ctx context.Context, request *models.MaintenanceRequest) error {
	s.updates++
	s.requests[request.ID] = *request
	return nil
}

func (s *stubRepo) Find(ctx context.Context, id, orgID uuid.UUID) (*models.MaintenanceRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	property, ok := s.properties[request.PropertyID]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	copied := request
	return &copied, nil
}

func (s *stubRepo) List(ctx context.Context, params ListQuery) ([]models.MaintenanceRequest, *pagination.Cursor, error) {
	var out []models.MaintenanceRequest
	for _, request := range s.requests {
		property, ok := s.properties[request.PropertyID]
		if !ok || property.OrganizationID != params.OrganizationID {
			continue
		}
		if params.Status != nil && request.Status != *params.Status {
			continue
		}
		if params.Priority != nil && request.Priority != *params.Priority {
			continue
		}
		out = append(out, request)
	}
	return out, nil, nil
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

func seedRequest(repo *stubRepo, propertyID uuid.UUID, status enums.MaintenanceStatus) uuid.UUID {
	id := uuid.New()
	repo.requests[id] = models.MaintenanceRequest{
		ID:         id,
		PropertyID: propertyID,
		ReportedBy: "tenant@example.com",
		Summary:    "boiler pressure dropping",
		Priority:   enums.MaintenancePriorityHigh,
		Status:     status,
	}
	return id
}

func TestCreateDefaultsPriorityAndStatus(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	svc := newTestService(t, repo)

	request, err := svc.Create(context.Background(), CreateParams{
		OrganizationID: orgID,
		PropertyID:     propertyID,
		ReportedBy:     "  tenant@example.com  ",
		Summary:        "leaking kitchen tap",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if request.Status != enums.MaintenanceStatusOpen {
		t.Fatalf("expected open status, got %s", request.Status)
	}
	if request.Priority != enums.MaintenancePriorityMedium {
		t.Fatalf("expected medium priority, got %s", request.Priority)
	}
	if request.ReportedBy != "tenant@example.com" {
		t.Fatalf("expected trimmed reporter, got %q", request.ReportedBy)
	}
}

func TestCreateRejectsForeignProperty(t *testing.T) {
	repo := newStubRepo()
	propertyID := seedProperty(repo, uuid.New())
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), CreateParams{
		OrganizationID: uuid.New(),
		PropertyID:     propertyID,
		ReportedBy:     "tenant@example.com",
		Summary:        "broken window latch",
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestResolveStampsResolution(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	id := seedRequest(repo, propertyID, enums.MaintenanceStatusInProgress)
	svc := newTestService(t, repo)

	request, err := svc.Resolve(context.Background(), id, orgID, "replaced pressure valve")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if request.Status != enums.MaintenanceStatusResolved {
		t.Fatalf("expected resolved status, got %s", request.Status)
	}
	if request.ResolvedAt == nil {
		t.Fatal("expected resolved timestamp")
	}
	if request.ResolutionNotes != "replaced pressure valve" {
		t.Fatalf("unexpected resolution notes %q", request.ResolutionNotes)
	}
}

func TestTransitionMatrix(t *testing.T) {
	cases := []struct {
		from    enums.MaintenanceStatus
		to      enums.MaintenanceStatus
		allowed bool
	}{
		{enums.MaintenanceStatusOpen, enums.MaintenanceStatusInProgress, true},
		{enums.MaintenanceStatusOpen, enums.MaintenanceStatusResolved, true},
		{enums.MaintenanceStatusOpen, enums.MaintenanceStatusCancelled, true},
		{enums.MaintenanceStatusInProgress, enums.MaintenanceStatusResolved, true},
		{enums.MaintenanceStatusInProgress, enums.MaintenanceStatusCancelled, true},
		{enums.MaintenanceStatusResolved, enums.MaintenanceStatusCancelled, false},
		{enums.MaintenanceStatusCancelled, enums.MaintenanceStatusInProgress, false},
		{enums.MaintenanceStatusResolved, enums.MaintenanceStatusInProgress, false},
	}
	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestCancelResolvedRequestRefused(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	id := seedRequest(repo, propertyID, enums.MaintenanceStatusResolved)
	svc := newTestService(t, repo)

	_, err := svc.Cancel(context.Background(), id, orgID)
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatal("update should not have been issued")
	}
}

func TestUpdateClosedRequestRefused(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	id := seedRequest(repo, propertyID, enums.MaintenanceStatusCancelled)
	svc := newTestService(t, repo)

	summary := "revised summary"
	_, err := svc.Update(context.Background(), UpdateParams{
		ID:             id,
		OrganizationID: orgID,
		Summary:        &summary,
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestListFiltersByStatusAndPriority(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	seedRequest(repo, propertyID, enums.MaintenanceStatusOpen)
	seedRequest(repo, propertyID, enums.MaintenanceStatusResolved)
	svc := newTestService(t, repo)

	open := enums.MaintenanceStatusOpen
	result, err := svc.List(context.Background(), ListParams{
		OrganizationID: orgID,
		Status:         &open,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result.Requests) != 1 {
		t.Fatalf("expected 1 open request, got %d", len(result.Requests))
	}

	low := enums.MaintenancePriority("critical")
	if _, err := svc.List(context.Background(), ListParams{
		OrganizationID: orgID,
		Priority:       &low,
	}); err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
