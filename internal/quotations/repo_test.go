package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
)

func setupQuotationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	requests := `
CREATE TABLE IF NOT EXISTS quotation_requests (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  requested_inspections INTEGER NOT NULL,
  billing_period TEXT NOT NULL,
  currency_code TEXT NOT NULL,
  assigned_admin_id TEXT,
  contacted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	quotes := `
CREATE TABLE IF NOT EXISTS quotations (
  id TEXT PRIMARY KEY,
  request_id TEXT NOT NULL UNIQUE,
  price_minor INTEGER NOT NULL,
  inspection_count INTEGER NOT NULL,
  billing_period TEXT NOT NULL,
  internal_notes TEXT,
  customer_notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	activities := `
CREATE TABLE IF NOT EXISTS quotation_activities (
  id TEXT PRIMARY KEY,
  request_id TEXT NOT NULL,
  type TEXT NOT NULL,
  actor_id TEXT,
  note TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(requests).Error)
	require.NoError(t, db.Exec(quotes).Error)
	require.NoError(t, db.Exec(activities).Error)
	return db
}

func createRequest(t *testing.T, db *gorm.DB, orgID uuid.UUID, status enums.QuotationStatus, created time.Time) *models.QuotationRequest {
	t.Helper()

	request := &models.QuotationRequest{
		ID:                   uuid.New(),
		OrganizationID:       orgID,
		Status:               status,
		RequestedInspections: 40,
		BillingPeriod:        enums.BillingPeriodMonthly,
		CurrencyCode:         "GBP",
		CreatedAt:            created,
		UpdatedAt:            created,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func TestRepositoryListRequests_pagination(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createRequest(t, db, orgID, enums.QuotationStatusPending, base.Add(time.Duration(i)*time.Hour))
	}

	firstPage, cursor, err := repo.ListRequests(ctx, ListRequestsQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, firstPage, 3)
	require.NotNil(t, cursor)
	assert.True(t, firstPage[0].CreatedAt.After(firstPage[2].CreatedAt))

	secondPage, cursor, err := repo.ListRequests(ctx, ListRequestsQuery{Limit: 3, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	assert.Nil(t, cursor)

	seen := map[uuid.UUID]bool{}
	for _, request := range append(firstPage, secondPage...) {
		assert.False(t, seen[request.ID], "request %s returned twice", request.ID)
		seen[request.ID] = true
	}
}

func TestRepositoryListRequests_statusFilter(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	createRequest(t, db, orgID, enums.QuotationStatusPending, base)
	quoted := createRequest(t, db, orgID, enums.QuotationStatusQuoted, base.Add(time.Hour))
	createRequest(t, db, orgID, enums.QuotationStatusRejected, base.Add(2*time.Hour))

	status := enums.QuotationStatusQuoted
	rows, cursor, err := repo.ListRequests(ctx, ListRequestsQuery{Status: &status, Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, cursor)
	assert.Equal(t, quoted.ID, rows[0].ID)
}

func TestRepositoryListStalePending(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	cutoff := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	oldest := createRequest(t, db, orgID, enums.QuotationStatusPending, cutoff.Add(-72*time.Hour))
	newer := createRequest(t, db, orgID, enums.QuotationStatusPending, cutoff.Add(-24*time.Hour))
	createRequest(t, db, orgID, enums.QuotationStatusPending, cutoff.Add(time.Hour))
	createRequest(t, db, orgID, enums.QuotationStatusQuoted, cutoff.Add(-48*time.Hour))

	rows, err := repo.ListStalePending(ctx, cutoff, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, oldest.ID, rows[0].ID)
	assert.Equal(t, newer.ID, rows[1].ID)
}

func TestRepositoryFindRequest_missing(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)

	request, err := repo.FindRequest(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, request)
}

func TestRepositoryQuotationRoundTrip(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	request := createRequest(t, db, uuid.New(), enums.QuotationStatusPending, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	quote := &models.Quotation{
		ID:              uuid.New(),
		RequestID:       request.ID,
		PriceMinor:      89900,
		InspectionCount: 40,
		BillingPeriod:   enums.BillingPeriodAnnual,
		InternalNotes:   "margin floor 20%",
		CustomerNotes:   "includes onboarding",
	}
	require.NoError(t, repo.CreateQuotation(ctx, quote))

	found, err := repo.FindQuotationByRequest(ctx, request.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(89900), found.PriceMinor)
	assert.Equal(t, "includes onboarding", found.CustomerNotes)

	missing, err := repo.FindQuotationByRequest(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
