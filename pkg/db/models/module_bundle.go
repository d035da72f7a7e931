package models

import (
	"time"

	"github.com/google/uuid"
)

// ModuleBundle is a discounted grouping of modules sold together.
type ModuleBundle struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	DiscountPct int       `gorm:"column:discount_pct;not null;default:0"`
	Description string    `gorm:"column:description"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Modules []Module `gorm:"many2many:bundle_modules;"`
}

// BundlePricing prices one bundle for one currency. The savings figures are
// precomputed by the admin, not derived from constituent module prices.
type BundlePricing struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BundleID            uuid.UUID `gorm:"column:bundle_id;type:uuid;not null;uniqueIndex:idx_bundle_pricing_dims"`
	CurrencyCode        string    `gorm:"column:currency_code;not null;uniqueIndex:idx_bundle_pricing_dims"`
	PriceMonthlyMinor   int64     `gorm:"column:price_monthly_minor;not null"`
	PriceAnnualMinor    int64     `gorm:"column:price_annual_minor;not null"`
	SavingsMonthlyMinor *int64    `gorm:"column:savings_monthly_minor"`
	SavingsAnnualMinor  *int64    `gorm:"column:savings_annual_minor"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
