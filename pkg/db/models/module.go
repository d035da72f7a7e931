package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/enums"
)

// Module is an optional premium feature priced independently of the tier.
type Module struct {
	ID             uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string                   `gorm:"column:name;not null"`
	Key            string                   `gorm:"column:key;not null;uniqueIndex"`
	Availability   enums.ModuleAvailability `gorm:"column:availability;type:module_availability;not null;default:'global'"`
	DefaultEnabled bool                     `gorm:"column:default_enabled;not null;default:false"`
	DisplayOrder   int                      `gorm:"column:display_order;not null;default:0"`
	CreatedAt      time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// ModulePricing prices one module for one currency.
type ModulePricing struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ModuleID          uuid.UUID `gorm:"column:module_id;type:uuid;not null;uniqueIndex:idx_module_pricing_dims"`
	CurrencyCode      string    `gorm:"column:currency_code;not null;uniqueIndex:idx_module_pricing_dims"`
	PriceMonthlyMinor int64     `gorm:"column:price_monthly_minor;not null"`
	PriceAnnualMinor  int64     `gorm:"column:price_annual_minor;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ModuleLimit caps usage of a module dimension (e.g. "active_tenants") with
// an overage price once the included quantity is exhausted.
type ModuleLimit struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ModuleID          uuid.UUID `gorm:"column:module_id;type:uuid;not null;index"`
	LimitType         string    `gorm:"column:limit_type;not null"`
	IncludedQuantity  int       `gorm:"column:included_quantity;not null;default:0"`
	OveragePriceMinor int64     `gorm:"column:overage_price_minor;not null;default:0"`
	OverageCurrency   string    `gorm:"column:overage_currency;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
