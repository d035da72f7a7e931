package models

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceDocument records a statutory certificate for a property
// (gas safety, EICR, EPC, ...). Its valid/expiring/expired status is derived
// from ExpiryDate at read time and never stored.
type ComplianceDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID uuid.UUID `gorm:"column:property_id;type:uuid;not null;index"`
	Category   string    `gorm:"column:category;not null"`
	Reference  string    `gorm:"column:reference"`
	IssueDate  time.Time `gorm:"column:issue_date;not null"`
	ExpiryDate time.Time `gorm:"column:expiry_date;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
