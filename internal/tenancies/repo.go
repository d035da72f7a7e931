package tenancies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
)

// Repository handles tenancy persistence. Reads are scoped through the owning
// property's organization.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tenancy *models.Tenancy) error
	Update(ctx context.Context, tenancy *models.Tenancy) error
	Find(ctx context.Context, id, orgID uuid.UUID) (*models.Tenancy, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID, status *enums.TenancyStatus) ([]models.Tenancy, error)
	FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a tenancy repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, tenancy *models.Tenancy) error {
	return r.db.WithContext(ctx).Create(tenancy).Error
}

func (r *repository) Update(ctx context.Context, tenancy *models.Tenancy) error {
	return r.db.WithContext(ctx).Save(tenancy).Error
}

func (r *repository) Find(ctx context.Context, id, orgID uuid.UUID) (*models.Tenancy, error) {
	var tenancy models.Tenancy
	if err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = tenancies.property_id").
		Where("tenancies.id = ? AND properties.organization_id = ?", id, orgID).
		First(&tenancy).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &tenancy, nil
}

func (r *repository) ListByProperty(ctx context.Context, propertyID uuid.UUID, status *enums.TenancyStatus) ([]models.Tenancy, error) {
	query := r.db.WithContext(ctx).Where("property_id = ?", propertyID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var tenancies []models.Tenancy
	if err := query.Order("start_date DESC").Find(&tenancies).Error; err != nil {
		return nil, err
	}
	return tenancies, nil
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
