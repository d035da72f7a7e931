package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/api/middleware"
	"github.com/propdock/propdock-backend/internal/maintenance"
	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

type stubMaintenanceRepo struct {
	requests   map[uuid.UUID]*models.MaintenanceRequest
	properties map[uuid.UUID]*models.Property
}

func newStubMaintenanceRepo() *stubMaintenanceRepo {
	return &stubMaintenanceRepo{
		requests:   map[uuid.UUID]*models.MaintenanceRequest{},
		properties: map[uuid.UUID]*models.Property{},
	}
}

func (s *stubMaintenanceRepo) WithTx(tx *gorm.DB) maintenance.Repository { return s }

func (s *stubMaintenanceRepo) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	s.requests[request.ID] = request
	return nil
}

func (s *stubMaintenanceRepo) Update(ctx context.Context, request *models.MaintenanceRequest) error {
	s.requests[request.ID] = request
	return nil
}

func (s *stubMaintenanceRepo) Find(ctx context.Context, id, orgID uuid.UUID) (*models.MaintenanceRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	property, ok := s.properties[request.PropertyID]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	copied := *request
	return &copied, nil
}

func (s *stubMaintenanceRepo) List(ctx context.Context, params maintenance.ListQuery) ([]models.MaintenanceRequest, *pagination.Cursor, error) {
	var rows []models.MaintenanceRequest
	for _, request := range s.requests {
		property, ok := s.properties[request.PropertyID]
		if ok && property.OrganizationID == params.OrganizationID {
			rows = append(rows, *request)
		}
	}
	return rows, nil, nil
}

func (s *stubMaintenanceRepo) FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error) {
	property, ok := s.properties[propertyID]
	if !ok || property.OrganizationID != orgID {
		return nil, nil
	}
	return property, nil
}

func newMaintenanceService(t *testing.T, repo maintenance.Repository) *maintenance.Service {
	t.Helper()
	svc, err := maintenance.NewService(maintenance.ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateMaintenanceRequestSuccess(t *testing.T) {
	orgID := uuid.New()
	propertyID := uuid.New()
	repo := newStubMaintenanceRepo()
	repo.properties[propertyID] = &models.Property{ID: propertyID, OrganizationID: orgID}

	body := `{"property_id":"` + propertyID.String() + `","reported_by":"tenant@example.com","summary":"boiler fault","priority":"high"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithOrgID(req.Context(), orgID.String()))

	resp := httptest.NewRecorder()
	CreateMaintenanceRequest(newMaintenanceService(t, repo), testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data models.MaintenanceRequest `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Priority != enums.MaintenancePriorityHigh {
		t.Fatalf("unexpected priority %q", envelope.Data.Priority)
	}
	if envelope.Data.Status != enums.MaintenanceStatusOpen {
		t.Fatalf("unexpected status %q", envelope.Data.Status)
	}
}

func TestCreateMaintenanceRequestMissingOrg(t *testing.T) {
	body := `{"property_id":"` + uuid.NewString() + `","reported_by":"x","summary":"y"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	CreateMaintenanceRequest(newMaintenanceService(t, newStubMaintenanceRepo()), testLogger())(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCreateMaintenanceRequestInvalidPriority(t *testing.T) {
	orgID := uuid.New()
	body := `{"property_id":"` + uuid.NewString() + `","reported_by":"x","summary":"y","priority":"critical"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance-requests", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithOrgID(req.Context(), orgID.String()))

	resp := httptest.NewRecorder()
	CreateMaintenanceRequest(newMaintenanceService(t, newStubMaintenanceRepo()), testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestResolveMaintenanceRequestStateConflict(t *testing.T) {
	orgID := uuid.New()
	propertyID := uuid.New()
	requestID := uuid.New()
	repo := newStubMaintenanceRepo()
	repo.properties[propertyID] = &models.Property{ID: propertyID, OrganizationID: orgID}
	repo.requests[requestID] = &models.MaintenanceRequest{
		ID:         requestID,
		PropertyID: propertyID,
		Status:     enums.MaintenanceStatusCancelled,
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/maintenance-requests/"+requestID.String()+"/resolve", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithOrgID(req.Context(), orgID.String()))
	req = addRouteParam(req, "requestId", requestID.String())

	resp := httptest.NewRecorder()
	ResolveMaintenanceRequest(newMaintenanceService(t, repo), testLogger())(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetMaintenanceRequestNotFound(t *testing.T) {
	orgID := uuid.New()
	requestID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/maintenance-requests/"+requestID.String(), nil)
	req = req.WithContext(middleware.WithOrgID(req.Context(), orgID.String()))
	req = addRouteParam(req, "requestId", requestID.String())

	resp := httptest.NewRecorder()
	GetMaintenanceRequest(newMaintenanceService(t, newStubMaintenanceRepo()), testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
