package models

import (
	"time"

	"github.com/google/uuid"
)

// InspectionType is an extensive inspection product (more photos, longer
// report) priced per (tier, currency) the same way add-on packs are.
type InspectionType struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	ImageAllowance int       `gorm:"column:image_allowance;not null;default:0"`
	Description    string    `gorm:"column:description"`
	Active         bool      `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// InspectionTypePricing prices one extensive inspection type for one
// (tier, currency) pair.
type InspectionTypePricing struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TypeID       uuid.UUID `gorm:"column:type_id;type:uuid;not null;uniqueIndex:idx_type_pricing_dims"`
	TierID       uuid.UUID `gorm:"column:tier_id;type:uuid;not null;uniqueIndex:idx_type_pricing_dims"`
	CurrencyCode string    `gorm:"column:currency_code;not null;uniqueIndex:idx_type_pricing_dims"`
	PriceMinor   int64     `gorm:"column:price_minor;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
