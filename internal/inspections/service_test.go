package inspections

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
	inspections map[uuid.UUID]models.Inspection
	properties  map[uuid.UUID]models.Property
	types       map[uuid.UUID]models.InspectionType
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		inspections: map[uuid.UUID]models.Inspection{},
		properties:  map[uuid.UUID]models.Property{},
		types:       map[uuid.UUID]models.InspectionType{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, inspection *models.Inspection) error {
	if inspection.ID == uuid.Nil {
		inspection.ID = uuid.New()
	}
	s.inspections[inspection.ID] = *inspection
	return nil
}

func (s *stubRepo) Update(ctx context.Context, inspection *models.Inspection) error {
	s.inspections[inspection.ID] = *inspection
	return nil
}

func (s *stubRepo) Find(ctx context.Context, id, orgID uuid.UUID) (*models.Inspection, error) {
	inspection, ok := s.inspections[id]
	if !ok {
		return nil, nil
	}
	property, ok := s.properties[inspection.PropertyID]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	copied := inspection
	return &copied, nil
}

func (s *stubRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID, status *enums.InspectionStatus) ([]models.Inspection, error) {
	var out []models.Inspection
	for _, inspection := range s.inspections {
		if inspection.PropertyID != propertyID {
			continue
		}
		if status != nil && inspection.Status != *status {
			continue
		}
		out = append(out, inspection)
	}
	return out, nil
}

func (s *stubRepo) ListOverdueScheduled(ctx context.Context, cutoff time.Time, limit int) ([]models.Inspection, error) {
	return nil, nil
}

func (s *stubRepo) FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error) {
	property, ok := s.properties[propertyID]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	copied := property
	return &copied, nil
}

func (s *stubRepo) FindInspectionType(ctx context.Context, typeID uuid.UUID) (*models.InspectionType, error) {
	typ, ok := s.types[typeID]
	if !ok {
		return nil, nil
	}
	copied := typ
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

func seedInspection(repo *stubRepo, propertyID uuid.UUID, status enums.InspectionStatus) uuid.UUID {
	id := uuid.New()
	repo.inspections[id] = models.Inspection{
		ID:           id,
		PropertyID:   propertyID,
		ScheduledFor: time.Now().Add(48 * time.Hour),
		Status:       status,
	}
	return id
}

func TestScheduleStandardVisit(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	svc := newTestService(t, repo)

	slot := time.Now().Add(72 * time.Hour)
	inspection, err := svc.Schedule(context.Background(), ScheduleParams{
		OrganizationID: orgID,
		PropertyID:     propertyID,
		ScheduledFor:   slot,
	})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if inspection.Status != enums.InspectionStatusScheduled {
		t.Fatalf("expected scheduled status, got %s", inspection.Status)
	}
	if inspection.TypeID != nil {
		t.Fatal("expected standard visit without type")
	}
	if !inspection.ScheduledFor.Equal(slot) {
		t.Fatalf("unexpected slot %s", inspection.ScheduledFor)
	}
}

func TestScheduleRejectsInactiveType(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	typeID := uuid.New()
	repo.types[typeID] = models.InspectionType{ID: typeID, Name: "full survey", Active: false}
	svc := newTestService(t, repo)

	_, err := svc.Schedule(context.Background(), ScheduleParams{
		OrganizationID: orgID,
		PropertyID:     propertyID,
		TypeID:         &typeID,
		ScheduledFor:   time.Now().Add(24 * time.Hour),
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScheduleRejectsForeignProperty(t *testing.T) {
	repo := newStubRepo()
	propertyID := seedProperty(repo, uuid.New())
	svc := newTestService(t, repo)

	_, err := svc.Schedule(context.Background(), ScheduleParams{
		OrganizationID: uuid.New(),
		PropertyID:     propertyID,
		ScheduledFor:   time.Now().Add(24 * time.Hour),
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateStatusRecordsReportNotes(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	id := seedInspection(repo, propertyID, enums.InspectionStatusInProgress)
	svc := newTestService(t, repo)

	inspection, err := svc.UpdateStatus(context.Background(), UpdateStatusParams{
		ID:             id,
		OrganizationID: orgID,
		Status:         enums.InspectionStatusCompleted,
		ReportNotes:    "no defects found",
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if inspection.Status != enums.InspectionStatusCompleted {
		t.Fatalf("expected completed status, got %s", inspection.Status)
	}
	if inspection.ReportNotes != "no defects found" {
		t.Fatalf("unexpected report notes %q", inspection.ReportNotes)
	}
}

func TestUpdateStatusRejectsReopeningCompleted(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	id := seedInspection(repo, propertyID, enums.InspectionStatusCompleted)
	svc := newTestService(t, repo)

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusParams{
		ID:             id,
		OrganizationID: orgID,
		Status:         enums.InspectionStatusInProgress,
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestRescheduleOnlyWhileScheduled(t *testing.T) {
	repo := newStubRepo()
	orgID := uuid.New()
	propertyID := seedProperty(repo, orgID)
	scheduledID := seedInspection(repo, propertyID, enums.InspectionStatusScheduled)
	startedID := seedInspection(repo, propertyID, enums.InspectionStatusInProgress)
	svc := newTestService(t, repo)

	slot := time.Now().Add(96 * time.Hour)
	inspection, err := svc.Reschedule(context.Background(), scheduledID, orgID, slot)
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !inspection.ScheduledFor.Equal(slot) {
		t.Fatalf("unexpected slot %s", inspection.ScheduledFor)
	}

	_, err = svc.Reschedule(context.Background(), startedID, orgID, slot)
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestTransitionMatrix(t *testing.T) {
	cases := []struct {
		from    enums.InspectionStatus
		to      enums.InspectionStatus
		allowed bool
	}{
		{enums.InspectionStatusScheduled, enums.InspectionStatusInProgress, true},
		{enums.InspectionStatusScheduled, enums.InspectionStatusCancelled, true},
		{enums.InspectionStatusScheduled, enums.InspectionStatusCompleted, false},
		{enums.InspectionStatusInProgress, enums.InspectionStatusCompleted, true},
		{enums.InspectionStatusInProgress, enums.InspectionStatusCancelled, true},
		{enums.InspectionStatusCompleted, enums.InspectionStatusInProgress, false},
		{enums.InspectionStatusCancelled, enums.InspectionStatusScheduled, false},
	}
	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
