package quotations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	"github.com/propdock/propdock-backend/pkg/pagination"
)

// Repository handles quotation persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateRequest(ctx context.Context, request *models.QuotationRequest) error
	UpdateRequest(ctx context.Context, request *models.QuotationRequest) error
	FindRequest(ctx context.Context, id uuid.UUID) (*models.QuotationRequest, error)
	ListRequests(ctx context.Context, params ListRequestsQuery) ([]models.QuotationRequest, *pagination.Cursor, error)
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]models.QuotationRequest, error)
	CreateQuotation(ctx context.Context, quotation *models.Quotation) error
	UpdateQuotation(ctx context.Context, quotation *models.Quotation) error
	FindQuotationByRequest(ctx context.Context, requestID uuid.UUID) (*models.Quotation, error)
	AppendActivity(ctx context.Context, activity *models.QuotationActivity) error
	ListActivities(ctx context.Context, requestID uuid.UUID) ([]models.QuotationActivity, error)
	FindOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// ListRequestsQuery configures quotation request list queries.
type ListRequestsQuery struct {
	Status         *enums.QuotationStatus
	OrganizationID *uuid.UUID
	AssignedTo     *uuid.UUID
	Limit          int
	Cursor         *pagination.Cursor
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a quotations repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateRequest(ctx context.Context, request *models.QuotationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) UpdateRequest(ctx context.Context, request *models.QuotationRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) FindRequest(ctx context.Context, id uuid.UUID) (*models.QuotationRequest, error) {
	var request models.QuotationRequest
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) ListRequests(ctx context.Context, params ListRequestsQuery) ([]models.QuotationRequest, *pagination.Cursor, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.QuotationRequest{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.OrganizationID != nil {
		query = query.Where("organization_id = ?", *params.OrganizationID)
	}
	if params.AssignedTo != nil {
		query = query.Where("assigned_admin_id = ?", *params.AssignedTo)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var requests []models.QuotationRequest
	if err := query.Order("created_at DESC, id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&requests).Error; err != nil {
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

// ListStalePending returns pending requests created before the cutoff,
// oldest first.
func (r *repository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]models.QuotationRequest, error) {
	var requests []models.QuotationRequest
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", enums.QuotationStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) CreateQuotation(ctx context.Context, quotation *models.Quotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

func (r *repository) UpdateQuotation(ctx context.Context, quotation *models.Quotation) error {
	return r.db.WithContext(ctx).Save(quotation).Error
}

func (r *repository) FindQuotationByRequest(ctx context.Context, requestID uuid.UUID) (*models.Quotation, error) {
	var quotation models.Quotation
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&quotation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &quotation, nil
}

func (r *repository) AppendActivity(ctx context.Context, activity *models.QuotationActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repository) ListActivities(ctx context.Context, requestID uuid.UUID) ([]models.QuotationActivity, error) {
	var activities []models.QuotationActivity
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC, id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repository) FindOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}
