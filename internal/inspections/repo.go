package inspections

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
)

// Repository handles inspection persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, inspection *models.Inspection) error
	Update(ctx context.Context, inspection *models.Inspection) error
	Find(ctx context.Context, id, orgID uuid.UUID) (*models.Inspection, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, status *enums.InspectionStatus) ([]models.Inspection, error)
	ListOverdueScheduled(ctx context.Context, cutoff time.Time, limit int) ([]models.Inspection, error)
	FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error)
	FindInspectionType(ctx context.Context, typeID uuid.UUID) (*models.InspectionType, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inspection repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, inspection *models.Inspection) error {
	return r.db.WithContext(ctx).Create(inspection).Error
}

func (r *repository) Update(ctx context.Context, inspection *models.Inspection) error {
	return r.db.WithContext(ctx).Save(inspection).Error
}

func (r *repository) Find(ctx context.Context, id, orgID uuid.UUID) (*models.Inspection, error) {
	var inspection models.Inspection
	if err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = inspections.property_id").
		Where("inspections.id = ? AND properties.organization_id = ?", id, orgID).
		First(&inspection).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &inspection, nil
}

func (r *repository) ListByProperty(ctx context.Context, propertyID uuid.UUID, status *enums.InspectionStatus) ([]models.Inspection, error) {
	query := r.db.WithContext(ctx).Where("property_id = ?", propertyID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var inspections []models.Inspection
	if err := query.Order("scheduled_for DESC").Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

// ListOverdueScheduled returns inspections still marked scheduled whose slot
// passed before the cutoff.
func (r *repository) ListOverdueScheduled(ctx context.Context, cutoff time.Time, limit int) ([]models.Inspection, error) {
	if limit <= 0 {
		limit = 250
	}
	var inspections []models.Inspection
	if err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_for < ?", enums.InspectionStatusScheduled, cutoff).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&inspections).Error; err != nil {
		return nil, err
	}
	return inspections, nil
}

func (r *repository) FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", propertyID, orgID).
		First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &property, nil
}

func (r *repository) FindInspectionType(ctx context.Context, typeID uuid.UUID) (*models.InspectionType, error) {
	var typ models.InspectionType
	if err := r.db.WithContext(ctx).
		Where("id = ?", typeID).
		First(&typ).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &typ, nil
}
