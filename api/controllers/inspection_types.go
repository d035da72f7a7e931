package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/propdock/propdock-backend/api/responses"
	"github.com/propdock/propdock-backend/api/validators"
	"github.com/propdock/propdock-backend/internal/pricing"
	"github.com/propdock/propdock-backend/pkg/logger"
)

func AdminListInspectionTypes(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.ListInspectionTypes(r.Context(), queryBool(r, "active_only"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types)
	}
}

type createInspectionTypeRequest struct {
	Name           string `json:"name" validate:"required"`
	ImageAllowance int    `json:"image_allowance" validate:"min=0"`
	Description    string `json:"description,omitempty"`
	Active         bool   `json:"active"`
}

func AdminCreateInspectionType(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createInspectionTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		typ, err := svc.CreateInspectionType(r.Context(), pricing.CreateInspectionTypeParams{
			Name:           payload.Name,
			ImageAllowance: payload.ImageAllowance,
			Description:    payload.Description,
			Active:         payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, typ)
	}
}

type updateInspectionTypeRequest struct {
	Name           *string `json:"name,omitempty"`
	ImageAllowance *int    `json:"image_allowance,omitempty" validate:"omitempty,min=0"`
	Description    *string `json:"description,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

func AdminUpdateInspectionType(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeID, err := parseUUIDParam(r, "typeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateInspectionTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		typ, err := svc.UpdateInspectionType(r.Context(), typeID, pricing.UpdateInspectionTypeParams{
			Name:           payload.Name,
			ImageAllowance: payload.ImageAllowance,
			Description:    payload.Description,
			Active:         payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, typ)
	}
}

func AdminDeleteInspectionType(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeID, err := parseUUIDParam(r, "typeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteInspectionType(r.Context(), typeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": typeID.String()})
	}
}

type setInspectionTypePricingRequest struct {
	PriceMinor int64 `json:"price_minor" validate:"min=0"`
}

func AdminSetInspectionTypePricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeID, err := parseUUIDParam(r, "typeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload setInspectionTypePricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.SetInspectionTypePricing(r.Context(), pricing.SetInspectionTypePricingParams{
			TypeID:       typeID,
			TierID:       tierID,
			CurrencyCode: strings.TrimSpace(chi.URLParam(r, "currencyCode")),
			PriceMinor:   payload.PriceMinor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdminDeleteInspectionTypePricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeID, err := parseUUIDParam(r, "typeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "currencyCode"))
		if err := svc.DeleteInspectionTypePricing(r.Context(), typeID, tierID, code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": code})
	}
}
