package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/enums"
)

// Property is a managed unit inside an organization's portfolio.
type Property struct {
	ID             uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID            `gorm:"column:organization_id;type:uuid;not null;index"`
	AddressLine1   string               `gorm:"column:address_line1;not null"`
	AddressLine2   string               `gorm:"column:address_line2"`
	City           string               `gorm:"column:city;not null"`
	Postcode       string               `gorm:"column:postcode;not null"`
	Type           enums.PropertyType   `gorm:"column:type;type:property_type;not null"`
	Status         enums.PropertyStatus `gorm:"column:status;type:property_status;not null;default:'active'"`
	Bedrooms       int                  `gorm:"column:bedrooms;not null;default:0"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
