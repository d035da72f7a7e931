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

func AdminListBundles(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundles, err := svc.ListBundles(r.Context(), queryBool(r, "active_only"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bundles)
	}
}

func AdminGetBundle(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundleID, err := parseUUIDParam(r, "bundleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bundle, err := svc.GetBundle(r.Context(), bundleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bundle)
	}
}

type createBundleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	DiscountPct int    `json:"discount_pct" validate:"min=0,max=100"`
	Active      bool   `json:"active"`
}

func AdminCreateBundle(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBundleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bundle, err := svc.CreateBundle(r.Context(), pricing.CreateBundleParams{
			Name:        payload.Name,
			Description: payload.Description,
			DiscountPct: payload.DiscountPct,
			Active:      payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bundle)
	}
}

type updateBundleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DiscountPct *int    `json:"discount_pct,omitempty" validate:"omitempty,min=0,max=100"`
	Active      *bool   `json:"active,omitempty"`
}

func AdminUpdateBundle(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundleID, err := parseUUIDParam(r, "bundleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateBundleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bundle, err := svc.UpdateBundle(r.Context(), bundleID, pricing.UpdateBundleParams{
			Name:        payload.Name,
			Description: payload.Description,
			DiscountPct: payload.DiscountPct,
			Active:      payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bundle)
	}
}

func AdminDeleteBundle(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundleID, err := parseUUIDParam(r, "bundleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteBundle(r.Context(), bundleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": bundleID.String()})
	}
}

func AdminAttachBundleModule(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundleID, err := parseUUIDParam(r, "bundleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.AttachBundleModule(r.Context(), bundleID, moduleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"attached": moduleID.String()})
	}
}

func AdminDetachBundleModule(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundleID, err := parseUUIDParam(r, "bundleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DetachBundleModule(r.Context(), bundleID, moduleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"detached": moduleID.String()})
	}
}

type setBundlePricingRequest struct {
	PriceMonthlyMinor   int64  `json:"price_monthly_minor" validate:"min=0"`
	PriceAnnualMinor    int64  `json:"price_annual_minor" validate:"min=0"`
	SavingsMonthlyMinor *int64 `json:"savings_monthly_minor,omitempty" validate:"omitempty,min=0"`
	SavingsAnnualMinor  *int64 `json:"savings_annual_minor,omitempty" validate:"omitempty,min=0"`
}

func AdminSetBundlePricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundleID, err := parseUUIDParam(r, "bundleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload setBundlePricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.SetBundlePricing(r.Context(), pricing.SetBundlePricingParams{
			BundleID:            bundleID,
			CurrencyCode:        strings.TrimSpace(chi.URLParam(r, "currencyCode")),
			PriceMonthlyMinor:   payload.PriceMonthlyMinor,
			PriceAnnualMinor:    payload.PriceAnnualMinor,
			SavingsMonthlyMinor: payload.SavingsMonthlyMinor,
			SavingsAnnualMinor:  payload.SavingsAnnualMinor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdminDeleteBundlePricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundleID, err := parseUUIDParam(r, "bundleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "currencyCode"))
		if err := svc.DeleteBundlePricing(r.Context(), bundleID, code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": code})
	}
}
