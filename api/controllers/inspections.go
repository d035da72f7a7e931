package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/api/responses"
	"github.com/propdock/propdock-backend/api/validators"
	"github.com/propdock/propdock-backend/internal/inspections"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
)

type scheduleInspectionRequest struct {
	PropertyID   string    `json:"property_id" validate:"required,uuid"`
	TypeID       *string   `json:"type_id,omitempty" validate:"omitempty,uuid"`
	ScheduledFor time.Time `json:"scheduled_for" validate:"required"`
}

func ScheduleInspection(svc *inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload scheduleInspectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		propertyID, err := parseUUIDField(payload.PropertyID, "property_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var typeID *uuid.UUID
		if payload.TypeID != nil {
			parsed, err := parseUUIDField(*payload.TypeID, "type_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			typeID = &parsed
		}

		inspection, err := svc.Schedule(r.Context(), inspections.ScheduleParams{
			OrganizationID: orgID,
			PropertyID:     propertyID,
			TypeID:         typeID,
			ScheduledFor:   payload.ScheduledFor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, inspection)
	}
}

func GetInspection(svc *inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inspectionID, err := parseUUIDParam(r, "inspectionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inspection, err := svc.Get(r.Context(), inspectionID, orgID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, inspection)
	}
}

type updateInspectionStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	ReportNotes string `json:"report_notes,omitempty"`
}

func UpdateInspectionStatus(svc *inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inspectionID, err := parseUUIDParam(r, "inspectionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateInspectionStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseInspectionStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inspection status"))
			return
		}

		inspection, err := svc.UpdateStatus(r.Context(), inspections.UpdateStatusParams{
			ID:             inspectionID,
			OrganizationID: orgID,
			Status:         status,
			ReportNotes:    payload.ReportNotes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, inspection)
	}
}

type rescheduleInspectionRequest struct {
	ScheduledFor time.Time `json:"scheduled_for" validate:"required"`
}

func RescheduleInspection(svc *inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inspectionID, err := parseUUIDParam(r, "inspectionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload rescheduleInspectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inspection, err := svc.Reschedule(r.Context(), inspectionID, orgID, payload.ScheduledFor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, inspection)
	}
}

func ListPropertyInspections(svc *inspections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		propertyID, err := parseUUIDParam(r, "propertyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var status *enums.InspectionStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseInspectionStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			status = &parsed
		}

		rows, err := svc.ListByProperty(r.Context(), propertyID, orgID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
