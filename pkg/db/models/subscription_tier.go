package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier is a plan level granting a base allotment of inspections.
// Base prices are stored in the master currency and act as the fallback when
// no TierPricing row exists for a requested currency.
type SubscriptionTier struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name                  string    `gorm:"column:name;not null"`
	Code                  string    `gorm:"column:code;not null;uniqueIndex"`
	Rank                  int       `gorm:"column:rank;not null;default:0"`
	IncludedInspections   int       `gorm:"column:included_inspections;not null;default:0"`
	AnnualDiscountPct     int       `gorm:"column:annual_discount_pct;not null;default:0"`
	BasePriceMonthlyMinor int64     `gorm:"column:base_price_monthly_minor;not null;default:0"`
	BasePriceAnnualMinor  int64     `gorm:"column:base_price_annual_minor;not null;default:0"`
	Active                bool      `gorm:"column:active;not null;default:true"`
	RequiresCustomPricing bool      `gorm:"column:requires_custom_pricing;not null;default:false"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TierPricing overrides a tier's price for one currency. Absence of a row
// means the tier falls back to its master-currency base price.
type TierPricing struct {
	ID                      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TierID                  uuid.UUID `gorm:"column:tier_id;type:uuid;not null;uniqueIndex:idx_tier_pricing_tier_currency"`
	CurrencyCode            string    `gorm:"column:currency_code;not null;uniqueIndex:idx_tier_pricing_tier_currency"`
	PriceMonthlyMinor       int64     `gorm:"column:price_monthly_minor;not null"`
	PriceAnnualMinor        int64     `gorm:"column:price_annual_minor;not null"`
	PricePerInspectionMinor int64     `gorm:"column:price_per_inspection_minor;not null;default:0"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
