package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/propdock/propdock-backend/api/responses"
	"github.com/propdock/propdock-backend/api/validators"
	"github.com/propdock/propdock-backend/internal/tenancies"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
)

type createTenancyRequest struct {
	PropertyID   string     `json:"property_id" validate:"required,uuid"`
	TenantName   string     `json:"tenant_name" validate:"required"`
	TenantEmail  string     `json:"tenant_email" validate:"required,email"`
	TenantPhone  string     `json:"tenant_phone,omitempty"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	RentMinor    int64      `json:"rent_minor" validate:"required,min=1"`
	DepositMinor int64      `json:"deposit_minor" validate:"min=0"`
}

func CreateTenancy(svc *tenancies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createTenancyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		propertyID, err := parseUUIDField(payload.PropertyID, "property_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenancy, err := svc.Create(r.Context(), tenancies.CreateParams{
			OrganizationID: orgID,
			PropertyID:     propertyID,
			TenantName:     payload.TenantName,
			TenantEmail:    payload.TenantEmail,
			TenantPhone:    payload.TenantPhone,
			StartDate:      payload.StartDate,
			EndDate:        payload.EndDate,
			RentMinor:      payload.RentMinor,
			DepositMinor:   payload.DepositMinor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tenancy)
	}
}

func GetTenancy(svc *tenancies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tenancyID, err := parseUUIDParam(r, "tenancyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tenancy, err := svc.Get(r.Context(), tenancyID, orgID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tenancy)
	}
}

type updateTenancyRequest struct {
	TenantName   *string    `json:"tenant_name,omitempty"`
	TenantEmail  *string    `json:"tenant_email,omitempty" validate:"omitempty,email"`
	TenantPhone  *string    `json:"tenant_phone,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	RentMinor    *int64     `json:"rent_minor,omitempty" validate:"omitempty,min=1"`
	DepositMinor *int64     `json:"deposit_minor,omitempty" validate:"omitempty,min=0"`
	Status       *string    `json:"status,omitempty"`
}

func UpdateTenancy(svc *tenancies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tenancyID, err := parseUUIDParam(r, "tenancyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateTenancyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := tenancies.UpdateParams{
			TenantName:   payload.TenantName,
			TenantEmail:  payload.TenantEmail,
			TenantPhone:  payload.TenantPhone,
			EndDate:      payload.EndDate,
			RentMinor:    payload.RentMinor,
			DepositMinor: payload.DepositMinor,
		}
		if payload.Status != nil {
			status, err := enums.ParseTenancyStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenancy status"))
				return
			}
			params.Status = &status
		}

		tenancy, err := svc.Update(r.Context(), tenancyID, orgID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tenancy)
	}
}

func ListPropertyTenancies(svc *tenancies.Service, logg *logger.Logger) http.HandlerFunc {
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
		var status *enums.TenancyStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseTenancyStatus(raw)
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
