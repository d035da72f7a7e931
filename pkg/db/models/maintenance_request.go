package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/enums"
)

// MaintenanceRequest is a reported fault against a property.
type MaintenanceRequest struct {
	ID              uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID      uuid.UUID                 `gorm:"column:property_id;type:uuid;not null;index"`
	ReportedBy      string                    `gorm:"column:reported_by;not null"`
	Summary         string                    `gorm:"column:summary;not null"`
	Detail          string                    `gorm:"column:detail"`
	Priority        enums.MaintenancePriority `gorm:"column:priority;type:maintenance_priority;not null;default:'medium'"`
	Status          enums.MaintenanceStatus   `gorm:"column:status;type:maintenance_status;not null;default:'open'"`
	ResolutionNotes string                    `gorm:"column:resolution_notes"`
	ResolvedAt      *time.Time                `gorm:"column:resolved_at"`
	CreatedAt       time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
