package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/enums"
)

// Inspection is a scheduled visit to a property. TypeID is set when the
// booking uses an extensive inspection type instead of the standard visit.
type Inspection struct {
	ID           uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID   uuid.UUID              `gorm:"column:property_id;type:uuid;not null;index"`
	TypeID       *uuid.UUID             `gorm:"column:type_id;type:uuid"`
	ScheduledFor time.Time              `gorm:"column:scheduled_for;not null"`
	Status       enums.InspectionStatus `gorm:"column:status;type:inspection_status;not null;default:'scheduled'"`
	ReportNotes  string                 `gorm:"column:report_notes"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
