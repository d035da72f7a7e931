package properties

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

func setupPropertiesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS properties (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  address_line1 TEXT NOT NULL,
  address_line2 TEXT,
  city TEXT NOT NULL,
  postcode TEXT NOT NULL,
  type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  bedrooms INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func createProperty(t *testing.T, db *gorm.DB, orgID uuid.UUID, created time.Time) *models.Property {
	t.Helper()

	property := &models.Property{
		ID:             uuid.New(),
		OrganizationID: orgID,
		AddressLine1:   "12 Harbour Road",
		City:           "Bristol",
		Postcode:       "BS1 4QA",
		Type:           enums.PropertyTypeFlat,
		Status:         enums.PropertyStatusActive,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func TestRepositoryList_pagination(t *testing.T) {
	db := setupPropertiesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createProperty(t, db, orgID, base.Add(time.Duration(i)*time.Hour))
	}

	firstPage, cursor, err := repo.List(ctx, ListQuery{OrganizationID: orgID, Limit: 3})
	require.NoError(t, err)
	require.Len(t, firstPage, 3)
	require.NotNil(t, cursor)

	secondPage, cursor, err := repo.List(ctx, ListQuery{OrganizationID: orgID, Limit: 3, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	assert.Nil(t, cursor)

	seen := map[uuid.UUID]bool{}
	for _, property := range append(firstPage, secondPage...) {
		assert.False(t, seen[property.ID], "property %s returned twice", property.ID)
		seen[property.ID] = true
	}
}

func TestRepositoryList_scopedToOrganization(t *testing.T) {
	db := setupPropertiesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orgID := uuid.New()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	mine := createProperty(t, db, orgID, base)
	createProperty(t, db, uuid.New(), base.Add(time.Hour))

	page, cursor, err := repo.List(ctx, ListQuery{OrganizationID: orgID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, mine.ID, page[0].ID)
	assert.Nil(t, cursor)

	found, err := repo.Find(ctx, mine.ID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}
