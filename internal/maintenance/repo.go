package maintenance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

// Repository handles maintenance request persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.MaintenanceRequest) error
	Update(ctx context.Context, request *models.MaintenanceRequest) error
	Find(ctx context.Context, id, orgID uuid.UUID) (*models.MaintenanceRequest, error)
	List(ctx context.Context, params ListQuery) ([]models.MaintenanceRequest, *pagination.Cursor, error)
	FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error)
}

// ListQuery configures maintenance request list queries.
type ListQuery struct {
	OrganizationID uuid.UUID
	PropertyID     *uuid.UUID
	Status         *enums.MaintenanceStatus
	Priority       *enums.MaintenancePriority
	Limit          int
	Cursor         *pagination.Cursor
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a maintenance repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) Update(ctx context.Context, request *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) Find(ctx context.Context, id, orgID uuid.UUID) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
		Where("maintenance_requests.id = ? AND properties.organization_id = ?", id, orgID).
		First(&request).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) List(ctx context.Context, params ListQuery) ([]models.MaintenanceRequest, *pagination.Cursor, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).
		Model(&models.MaintenanceRequest{}).
		Joins("JOIN properties ON properties.id = maintenance_requests.property_id").
		Where("properties.organization_id = ?", params.OrganizationID)
	if params.PropertyID != nil {
		query = query.Where("maintenance_requests.property_id = ?", *params.PropertyID)
	}
	if params.Status != nil {
		query = query.Where("maintenance_requests.status = ?", *params.Status)
	}
	if params.Priority != nil {
		query = query.Where("maintenance_requests.priority = ?", *params.Priority)
	}
	if params.Cursor != nil {
		query = query.Where("(maintenance_requests.created_at, maintenance_requests.id) < (?, ?)",
			params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var requests []models.MaintenanceRequest
	if err := query.
		Order("maintenance_requests.created_at DESC, maintenance_requests.id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&requests).Error; err != nil {
		return nil, nil, err
	}

	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[limit-1]
		return requests, &pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}, nil
	}

	return requests, nil, nil
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
