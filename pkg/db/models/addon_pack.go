package models

import (
	"time"

	"github.com/google/uuid"
)

// AddonPack is a purchasable bundle of extra inspection credits.
type AddonPack struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string    `gorm:"column:name;not null"`
	InspectionQuantity int       `gorm:"column:inspection_quantity;not null"`
	Rank               int       `gorm:"column:rank;not null;default:0"`
	Active             bool      `gorm:"column:active;not null;default:true"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// AddonPackPricing prices one pack for one (tier, currency) pair.
// TotalPackPriceMinor is stored derived state: every write recomputes it from
// the per-inspection price and the pack's inspection quantity.
type AddonPackPricing struct {
	ID                      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PackID                  uuid.UUID `gorm:"column:pack_id;type:uuid;not null;uniqueIndex:idx_pack_pricing_dims"`
	TierID                  uuid.UUID `gorm:"column:tier_id;type:uuid;not null;uniqueIndex:idx_pack_pricing_dims"`
	CurrencyCode            string    `gorm:"column:currency_code;not null;uniqueIndex:idx_pack_pricing_dims"`
	PricePerInspectionMinor int64     `gorm:"column:price_per_inspection_minor;not null"`
	TotalPackPriceMinor     int64     `gorm:"column:total_pack_price_minor;not null"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
