package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/propdock/propdock-backend/pkg/db/models"
)

// Repository handles compliance document persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, doc *models.ComplianceDocument) error
	Update(ctx context.Context, doc *models.ComplianceDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id, orgID uuid.UUID) (*models.ComplianceDocument, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.ComplianceDocument, error)
	ListExpiringWithin(ctx context.Context, from, to time.Time, limit int) ([]models.ComplianceDocument, error)
	FindProperty(ctx context.Context, propertyID, orgID uuid.UUID) (*models.Property, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a compliance repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, doc *models.ComplianceDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) Update(ctx context.Context, doc *models.ComplianceDocument) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ComplianceDocument{}, "id = ?", id).Error
}

func (r *repository) Find(ctx context.Context, id, orgID uuid.UUID) (*models.ComplianceDocument, error) {
	var doc models.ComplianceDocument
	if err := r.db.WithContext(ctx).
		Joins("JOIN properties ON properties.id = compliance_documents.property_id").
		Where("compliance_documents.id = ? AND properties.organization_id = ?", id, orgID).
		First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]models.ComplianceDocument, error) {
	var docs []models.ComplianceDocument
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("expiry_date ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// ListExpiringWithin returns documents whose expiry falls inside [from, to).
func (r *repository) ListExpiringWithin(ctx context.Context, from, to time.Time, limit int) ([]models.ComplianceDocument, error) {
	if limit <= 0 {
		limit = 250
	}
	var docs []models.ComplianceDocument
	if err := r.db.WithContext(ctx).
		Where("expiry_date >= ? AND expiry_date < ?", from, to).
		Order("expiry_date ASC").
		Limit(limit).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
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
