package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Organization is a customer account: a letting agency or landlord managing
// a portfolio under one subscription tier and billing currency.
type Organization struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string         `gorm:"column:name;not null"`
	TierID            *uuid.UUID     `gorm:"column:tier_id;type:uuid"`
	CurrencyCode      string         `gorm:"column:currency_code;not null;default:'GBP'"`
	EnabledModuleKeys pq.StringArray `gorm:"column:enabled_module_keys;type:text[];default:ARRAY[]::text[]"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
