package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

type stubRepo struct {
	requests   map[uuid.UUID]*models.QuotationRequest
	quotations map[uuid.UUID]*models.Quotation
	activities []models.QuotationActivity
	orgs       map[uuid.UUID]*models.Organization
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		requests:   map[uuid.UUID]*models.QuotationRequest{},
		quotations: map[uuid.UUID]*models.Quotation{},
		orgs:       map[uuid.UUID]*models.Organization{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateRequest(ctx context.Context, request *models.QuotationRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	copied := *request
	s.requests[request.ID] = &copied
	return nil
}

func (s *stubRepo) UpdateRequest(ctx context.Context, request *models.QuotationRequest) error {
	copied := *request
	s.requests[request.ID] = &copied
	return nil
}

func (s *stubRepo) FindRequest(ctx context.Context, id uuid.UUID) (*models.QuotationRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *request
	return &copied, nil
}

func (s *stubRepo) ListRequests(ctx context.Context, params ListRequestsQuery) ([]models.QuotationRequest, *pagination.Cursor, error) {
	var out []models.QuotationRequest
	for _, request := range s.requests {
		if params.Status != nil && request.Status != *params.Status {
			continue
		}
		out = append(out, *request)
	}
	return out, nil, nil
}

func (s *stubRepo) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]models.QuotationRequest, error) {
	var out []models.QuotationRequest
	for _, request := range s.requests {
		if request.Status == enums.QuotationStatusPending && request.CreatedAt.Before(cutoff) {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (s *stubRepo) CreateQuotation(ctx context.Context, quotation *models.Quotation) error {
	if quotation.ID == uuid.Nil {
		quotation.ID = uuid.New()
	}
	copied := *quotation
	s.quotations[quotation.RequestID] = &copied
	return nil
}

func (s *stubRepo) UpdateQuotation(ctx context.Context, quotation *models.Quotation) error {
	copied := *quotation
	s.quotations[quotation.RequestID] = &copied
	return nil
}

func (s *stubRepo) FindQuotationByRequest(ctx context.Context, requestID uuid.UUID) (*models.Quotation, error) {
	quotation, ok := s.quotations[requestID]
	if !ok {
		return nil, nil
	}
	copied := *quotation
	return &copied, nil
}

func (s *stubRepo) AppendActivity(ctx context.Context, activity *models.QuotationActivity) error {
	s.activities = append(s.activities, *activity)
	return nil
}

func (s *stubRepo) ListActivities(ctx context.Context, requestID uuid.UUID) ([]models.QuotationActivity, error) {
	var out []models.QuotationActivity
	for _, activity := range s.activities {
		if activity.RequestID == requestID {
			out = append(out, activity)
		}
	}
	return out, nil
}

func (s *stubRepo) FindOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	org, ok := s.orgs[id]
	if !ok {
		return nil, nil
	}
	copied := *org
	return &copied, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Tx:     stubTxRunner{},
		Logger: logger.New(logger.Options{ServiceName: "quotations-test", Level: zerolog.ErrorLevel}),
	})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func seedRequest(repo *stubRepo, status enums.QuotationStatus) *models.QuotationRequest {
	orgID := uuid.New()
	repo.orgs[orgID] = &models.Organization{ID: orgID, Name: "Acme Lettings", CurrencyCode: "GBP"}
	request := &models.QuotationRequest{
		ID:                   uuid.New(),
		OrganizationID:       orgID,
		Status:               status,
		RequestedInspections: 100,
		BillingPeriod:        enums.BillingPeriodMonthly,
		CurrencyCode:         "GBP",
	}
	repo.requests[request.ID] = request
	return request
}

func TestAssignPendingRequest(t *testing.T) {
	repo := newStubRepo()
	request := seedRequest(repo, enums.QuotationStatusPending)
	svc := newTestService(t, repo)
	adminID := uuid.New()

	updated, err := svc.Assign(context.Background(), request.ID, adminID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AssignedAdminID == nil || *updated.AssignedAdminID != adminID {
		t.Fatal("expected admin to be recorded")
	}
	if updated.Status != enums.QuotationStatusPending {
		t.Fatalf("assignment must not change status, got %s", updated.Status)
	}
	if len(repo.activities) != 1 || repo.activities[0].Type != enums.QuotationActivityAssigned {
		t.Fatalf("expected one assigned activity, got %+v", repo.activities)
	}
}

func TestAssignRejectsNonPending(t *testing.T) {
	for _, status := range []enums.QuotationStatus{
		enums.QuotationStatusQuoted,
		enums.QuotationStatusAccepted,
		enums.QuotationStatusRejected,
		enums.QuotationStatusCancelled,
	} {
		repo := newStubRepo()
		request := seedRequest(repo, status)
		svc := newTestService(t, repo)

		_, err := svc.Assign(context.Background(), request.ID, uuid.New())
		if err == nil {
			t.Fatalf("expected state conflict for %s", status)
		}
		if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict for %s, got %v", status, err)
		}
	}
}

func TestMarkContactedLogsActivity(t *testing.T) {
	repo := newStubRepo()
	request := seedRequest(repo, enums.QuotationStatusPending)
	svc := newTestService(t, repo)

	updated, err := svc.MarkContacted(context.Background(), request.ID, uuid.New(), "left voicemail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Contacted {
		t.Fatal("expected contacted flag set")
	}
	if updated.Status != enums.QuotationStatusPending {
		t.Fatalf("contact must not change status, got %s", updated.Status)
	}
	if len(repo.activities) != 1 || repo.activities[0].Note != "left voicemail" {
		t.Fatalf("expected contacted activity with note, got %+v", repo.activities)
	}
}

func TestCreateQuoteMovesToQuoted(t *testing.T) {
	repo := newStubRepo()
	request := seedRequest(repo, enums.QuotationStatusPending)
	svc := newTestService(t, repo)

	quotation, err := svc.CreateQuote(context.Background(), CreateQuoteParams{
		RequestID:       request.ID,
		ActorID:         uuid.New(),
		PriceMinor:      150000,
		InspectionCount: 100,
		BillingPeriod:   enums.BillingPeriodAnnual,
		InternalNotes:   "margin is thin",
		CustomerNotes:   "volume discount applied",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotation.InternalNotes == quotation.CustomerNotes {
		t.Fatal("note channels must stay separate")
	}
	if repo.requests[request.ID].Status != enums.QuotationStatusQuoted {
		t.Fatalf("expected quoted status, got %s", repo.requests[request.ID].Status)
	}
	if len(repo.activities) != 1 || repo.activities[0].Type != enums.QuotationActivityQuoteCreated {
		t.Fatalf("expected quote_created activity, got %+v", repo.activities)
	}
}

func TestCreateQuoteRequoteReplacesOffer(t *testing.T) {
	repo := newStubRepo()
	request := seedRequest(repo, enums.QuotationStatusQuoted)
	repo.quotations[request.ID] = &models.Quotation{
		ID:              uuid.New(),
		RequestID:       request.ID,
		PriceMinor:      150000,
		InspectionCount: 100,
		BillingPeriod:   enums.BillingPeriodAnnual,
	}
	svc := newTestService(t, repo)

	quotation, err := svc.CreateQuote(context.Background(), CreateQuoteParams{
		RequestID:       request.ID,
		ActorID:         uuid.New(),
		PriceMinor:      140000,
		InspectionCount: 100,
		BillingPeriod:   enums.BillingPeriodAnnual,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotation.PriceMinor != 140000 {
		t.Fatalf("expected replaced price, got %d", quotation.PriceMinor)
	}
	if stored := repo.quotations[request.ID]; stored.PriceMinor != 140000 {
		t.Fatalf("expected stored offer updated, got %d", stored.PriceMinor)
	}
}

func TestCreateQuoteRejectsTerminalRequest(t *testing.T) {
	repo := newStubRepo()
	request := seedRequest(repo, enums.QuotationStatusAccepted)
	svc := newTestService(t, repo)

	_, err := svc.CreateQuote(context.Background(), CreateQuoteParams{
		RequestID:       request.ID,
		ActorID:         uuid.New(),
		PriceMinor:      100,
		InspectionCount: 1,
		BillingPeriod:   enums.BillingPeriodMonthly,
	})
	if err == nil {
		t.Fatal("expected state conflict")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateStatusTransitionMatrix(t *testing.T) {
	cases := []struct {
		from    enums.QuotationStatus
		to      enums.QuotationStatus
		allowed bool
	}{
		{enums.QuotationStatusPending, enums.QuotationStatusCancelled, true},
		{enums.QuotationStatusPending, enums.QuotationStatusAccepted, false},
		{enums.QuotationStatusPending, enums.QuotationStatusRejected, false},
		{enums.QuotationStatusQuoted, enums.QuotationStatusAccepted, true},
		{enums.QuotationStatusQuoted, enums.QuotationStatusRejected, true},
		{enums.QuotationStatusQuoted, enums.QuotationStatusCancelled, true},
		{enums.QuotationStatusQuoted, enums.QuotationStatusPending, false},
		{enums.QuotationStatusAccepted, enums.QuotationStatusCancelled, false},
		{enums.QuotationStatusRejected, enums.QuotationStatusQuoted, false},
		{enums.QuotationStatusCancelled, enums.QuotationStatusQuoted, false},
	}

	for _, tc := range cases {
		repo := newStubRepo()
		request := seedRequest(repo, tc.from)
		svc := newTestService(t, repo)

		_, err := svc.UpdateStatus(context.Background(), UpdateStatusParams{
			RequestID: request.ID,
			ActorID:   uuid.New(),
			Status:    tc.to,
		})
		if tc.allowed {
			if err != nil {
				t.Fatalf("%s -> %s should be allowed, got %v", tc.from, tc.to, err)
			}
			if repo.requests[request.ID].Status != tc.to {
				t.Fatalf("expected status %s, got %s", tc.to, repo.requests[request.ID].Status)
			}
			if len(repo.activities) != 1 || repo.activities[0].Type != enums.QuotationActivityStatusChanged {
				t.Fatalf("expected status_changed activity for %s -> %s", tc.from, tc.to)
			}
		} else {
			if err == nil {
				t.Fatalf("%s -> %s should be refused", tc.from, tc.to)
			}
			if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
				t.Fatalf("expected state conflict for %s -> %s, got %v", tc.from, tc.to, err)
			}
			if len(repo.activities) != 0 {
				t.Fatalf("refused transition must not log activity, got %+v", repo.activities)
			}
		}
	}
}

func TestGetJoinsOrganizationQuoteAndLog(t *testing.T) {
	repo := newStubRepo()
	request := seedRequest(repo, enums.QuotationStatusQuoted)
	repo.quotations[request.ID] = &models.Quotation{
		ID:         uuid.New(),
		RequestID:  request.ID,
		PriceMinor: 99900,
	}
	repo.activities = append(repo.activities, models.QuotationActivity{
		RequestID: request.ID,
		Type:      enums.QuotationActivityQuoteCreated,
	})
	svc := newTestService(t, repo)

	detail, err := svc.Get(context.Background(), request.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Organization.Name != "Acme Lettings" {
		t.Fatalf("expected joined organization, got %+v", detail.Organization)
	}
	if detail.Quotation == nil || detail.Quotation.PriceMinor != 99900 {
		t.Fatalf("expected joined quotation, got %+v", detail.Quotation)
	}
	if len(detail.Activities) != 1 {
		t.Fatalf("expected activity log, got %+v", detail.Activities)
	}
}

func TestCreateRequestValidations(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.CreateRequest(context.Background(), CreateRequestParams{
		OrganizationID:       uuid.New(),
		RequestedInspections: 0,
		BillingPeriod:        enums.BillingPeriodMonthly,
		CurrencyCode:         "GBP",
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.CreateRequest(context.Background(), CreateRequestParams{
		OrganizationID:       uuid.New(),
		RequestedInspections: 10,
		BillingPeriod:        enums.BillingPeriodMonthly,
		CurrencyCode:         "GBP",
	})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown organization, got %v", err)
	}
}

func TestListInvalidCursor(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.List(context.Background(), ListRequestsParams{Cursor: "not-a-cursor"})
	if err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
