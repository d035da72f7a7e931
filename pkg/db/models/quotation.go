package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/enums"
)

// QuotationRequest is an organization's ask for custom pricing. Status moves
// forward only: pending -> quoted -> accepted/rejected/cancelled.
type QuotationRequest struct {
	ID                   uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID       uuid.UUID             `gorm:"column:organization_id;type:uuid;not null;index"`
	Status               enums.QuotationStatus `gorm:"column:status;type:quotation_status;not null;default:'pending'"`
	RequestedInspections int                   `gorm:"column:requested_inspections;not null"`
	BillingPeriod        enums.BillingPeriod   `gorm:"column:billing_period;type:billing_period;not null"`
	CurrencyCode         string                `gorm:"column:currency_code;not null"`
	AssignedAdminID      *uuid.UUID            `gorm:"column:assigned_admin_id;type:uuid"`
	Contacted            bool                  `gorm:"column:contacted;not null;default:false"`
	CreatedAt            time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// Quotation is the admin-authored offer attached to a request. InternalNotes
// stay inside the company; CustomerNotes are shown to the paying customer.
// The two channels must never be conflated.
type Quotation struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RequestID       uuid.UUID           `gorm:"column:request_id;type:uuid;not null;uniqueIndex"`
	PriceMinor      int64               `gorm:"column:price_minor;not null"`
	InspectionCount int                 `gorm:"column:inspection_count;not null"`
	BillingPeriod   enums.BillingPeriod `gorm:"column:billing_period;type:billing_period;not null"`
	InternalNotes   string              `gorm:"column:internal_notes"`
	CustomerNotes   string              `gorm:"column:customer_notes"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// QuotationActivity is an append-only log entry. Rows are inserted once and
// never rewritten.
type QuotationActivity struct {
	ID        uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RequestID uuid.UUID                   `gorm:"column:request_id;type:uuid;not null;index"`
	Type      enums.QuotationActivityType `gorm:"column:type;type:quotation_activity_type;not null"`
	ActorID   *uuid.UUID                  `gorm:"column:actor_id;type:uuid"`
	Note      string                      `gorm:"column:note"`
	CreatedAt time.Time                   `gorm:"column:created_at;autoCreateTime"`
}
