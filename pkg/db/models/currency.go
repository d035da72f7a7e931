package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is a sellable denomination. Pricing rows are authoritative per
// currency; ConversionRate to the master currency is informational and never
// applied when resolving a price.
type Currency struct {
	Code           string          `gorm:"column:code;primaryKey"`
	Symbol         string          `gorm:"column:symbol;not null"`
	DefaultRegion  string          `gorm:"column:default_region"`
	ConversionRate decimal.Decimal `gorm:"column:conversion_rate;type:numeric(12,6);not null;default:1"`
	Active         bool            `gorm:"column:active;not null;default:true"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
