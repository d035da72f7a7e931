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

func AdminListTiers(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tiers, err := svc.ListTiers(r.Context(), queryBool(r, "active_only"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tiers)
	}
}

type createTierRequest struct {
	Name                  string `json:"name" validate:"required"`
	Code                  string `json:"code" validate:"required"`
	Rank                  int    `json:"rank" validate:"min=0"`
	IncludedInspections   int    `json:"included_inspections" validate:"min=0"`
	AnnualDiscountPct     int    `json:"annual_discount_pct" validate:"min=0,max=100"`
	BasePriceMonthlyMinor int64  `json:"base_price_monthly_minor" validate:"min=0"`
	BasePriceAnnualMinor  int64  `json:"base_price_annual_minor" validate:"min=0"`
	Active                bool   `json:"active"`
	RequiresCustomPricing bool   `json:"requires_custom_pricing"`
}

func AdminCreateTier(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createTierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := svc.CreateTier(r.Context(), pricing.CreateTierParams{
			Name:                  payload.Name,
			Code:                  payload.Code,
			Rank:                  payload.Rank,
			IncludedInspections:   payload.IncludedInspections,
			AnnualDiscountPct:     payload.AnnualDiscountPct,
			BasePriceMonthlyMinor: payload.BasePriceMonthlyMinor,
			BasePriceAnnualMinor:  payload.BasePriceAnnualMinor,
			Active:                payload.Active,
			RequiresCustomPricing: payload.RequiresCustomPricing,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tier)
	}
}

type updateTierRequest struct {
	Name                  *string `json:"name,omitempty"`
	Rank                  *int    `json:"rank,omitempty" validate:"omitempty,min=0"`
	IncludedInspections   *int    `json:"included_inspections,omitempty" validate:"omitempty,min=0"`
	AnnualDiscountPct     *int    `json:"annual_discount_pct,omitempty" validate:"omitempty,min=0,max=100"`
	BasePriceMonthlyMinor *int64  `json:"base_price_monthly_minor,omitempty" validate:"omitempty,min=0"`
	BasePriceAnnualMinor  *int64  `json:"base_price_annual_minor,omitempty" validate:"omitempty,min=0"`
	Active                *bool   `json:"active,omitempty"`
	RequiresCustomPricing *bool   `json:"requires_custom_pricing,omitempty"`
}

func AdminUpdateTier(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateTierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tier, err := svc.UpdateTier(r.Context(), tierID, pricing.UpdateTierParams{
			Name:                  payload.Name,
			Rank:                  payload.Rank,
			IncludedInspections:   payload.IncludedInspections,
			AnnualDiscountPct:     payload.AnnualDiscountPct,
			BasePriceMonthlyMinor: payload.BasePriceMonthlyMinor,
			BasePriceAnnualMinor:  payload.BasePriceAnnualMinor,
			Active:                payload.Active,
			RequiresCustomPricing: payload.RequiresCustomPricing,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tier)
	}
}

func AdminDeleteTier(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteTier(r.Context(), tierID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": tierID.String()})
	}
}

func AdminListTierPricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListTierPricing(r.Context(), tierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

type setTierPricingRequest struct {
	PriceMonthlyMinor       int64 `json:"price_monthly_minor" validate:"min=0"`
	PriceAnnualMinor        int64 `json:"price_annual_minor" validate:"min=0"`
	PricePerInspectionMinor int64 `json:"price_per_inspection_minor" validate:"min=0"`
}

func AdminSetTierPricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload setTierPricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.SetTierPricing(r.Context(), pricing.SetTierPricingParams{
			TierID:                  tierID,
			CurrencyCode:            strings.TrimSpace(chi.URLParam(r, "currencyCode")),
			PriceMonthlyMinor:       payload.PriceMonthlyMinor,
			PriceAnnualMinor:        payload.PriceAnnualMinor,
			PricePerInspectionMinor: payload.PricePerInspectionMinor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdminDeleteTierPricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "currencyCode"))
		if err := svc.DeleteTierPricing(r.Context(), tierID, code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": code})
	}
}
