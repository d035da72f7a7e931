package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/enums"
)

// Tenancy links tenants to a property for a fixed term.
type Tenancy struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID    uuid.UUID           `gorm:"column:property_id;type:uuid;not null;index"`
	TenantName    string              `gorm:"column:tenant_name;not null"`
	TenantEmail   string              `gorm:"column:tenant_email"`
	TenantPhone   string              `gorm:"column:tenant_phone"`
	StartDate     time.Time           `gorm:"column:start_date;not null"`
	EndDate       *time.Time          `gorm:"column:end_date"`
	RentMinor     int64               `gorm:"column:rent_minor;not null;default:0"`
	DepositMinor  int64               `gorm:"column:deposit_minor;not null;default:0"`
	Status        enums.TenancyStatus `gorm:"column:status;type:tenancy_status;not null;default:'active'"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
