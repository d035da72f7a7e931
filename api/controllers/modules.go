package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/propdock/propdock-backend/api/responses"
	"github.com/propdock/propdock-backend/api/validators"
	"github.com/propdock/propdock-backend/internal/pricing"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
)

func AdminListModules(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		modules, err := svc.ListModules(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, modules)
	}
}

type createModuleRequest struct {
	Name           string `json:"name" validate:"required"`
	Key            string `json:"key" validate:"required"`
	Availability   string `json:"availability" validate:"required"`
	DefaultEnabled bool   `json:"default_enabled"`
	DisplayOrder   int    `json:"display_order" validate:"min=0"`
}

func AdminCreateModule(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createModuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		availability, err := enums.ParseModuleAvailability(strings.TrimSpace(payload.Availability))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid availability"))
			return
		}

		module, err := svc.CreateModule(r.Context(), pricing.CreateModuleParams{
			Name:           payload.Name,
			Key:            payload.Key,
			Availability:   availability,
			DefaultEnabled: payload.DefaultEnabled,
			DisplayOrder:   payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, module)
	}
}

type updateModuleRequest struct {
	Name           *string `json:"name,omitempty"`
	Availability   *string `json:"availability,omitempty"`
	DefaultEnabled *bool   `json:"default_enabled,omitempty"`
	DisplayOrder   *int    `json:"display_order,omitempty" validate:"omitempty,min=0"`
}

func AdminUpdateModule(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateModuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pricing.UpdateModuleParams{
			Name:           payload.Name,
			DefaultEnabled: payload.DefaultEnabled,
			DisplayOrder:   payload.DisplayOrder,
		}
		if payload.Availability != nil {
			availability, err := enums.ParseModuleAvailability(strings.TrimSpace(*payload.Availability))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid availability"))
				return
			}
			params.Availability = &availability
		}

		module, err := svc.UpdateModule(r.Context(), moduleID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, module)
	}
}

func AdminDeleteModule(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteModule(r.Context(), moduleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": moduleID.String()})
	}
}

type setModulePricingRequest struct {
	PriceMonthlyMinor int64 `json:"price_monthly_minor" validate:"min=0"`
	PriceAnnualMinor  int64 `json:"price_annual_minor" validate:"min=0"`
}

func AdminSetModulePricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload setModulePricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.SetModulePricing(r.Context(), pricing.SetModulePricingParams{
			ModuleID:          moduleID,
			CurrencyCode:      strings.TrimSpace(chi.URLParam(r, "currencyCode")),
			PriceMonthlyMinor: payload.PriceMonthlyMinor,
			PriceAnnualMinor:  payload.PriceAnnualMinor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdminDeleteModulePricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "currencyCode"))
		if err := svc.DeleteModulePricing(r.Context(), moduleID, code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": code})
	}
}

func AdminListModuleLimits(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limits, err := svc.ListModuleLimits(r.Context(), moduleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, limits)
	}
}

type createModuleLimitRequest struct {
	LimitType         string `json:"limit_type" validate:"required"`
	IncludedQuantity  int    `json:"included_quantity" validate:"min=0"`
	OveragePriceMinor int64  `json:"overage_price_minor" validate:"min=0"`
	OverageCurrency   string `json:"overage_currency" validate:"required,len=3"`
}

func AdminCreateModuleLimit(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := parseUUIDParam(r, "moduleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload createModuleLimitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := svc.CreateModuleLimit(r.Context(), pricing.SetModuleLimitParams{
			ModuleID:          moduleID,
			LimitType:         payload.LimitType,
			IncludedQuantity:  payload.IncludedQuantity,
			OveragePriceMinor: payload.OveragePriceMinor,
			OverageCurrency:   payload.OverageCurrency,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, limit)
	}
}

type updateModuleLimitRequest struct {
	IncludedQuantity  *int    `json:"included_quantity,omitempty" validate:"omitempty,min=0"`
	OveragePriceMinor *int64  `json:"overage_price_minor,omitempty" validate:"omitempty,min=0"`
	OverageCurrency   *string `json:"overage_currency,omitempty" validate:"omitempty,len=3"`
}

func AdminUpdateModuleLimit(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limitID, err := parseUUIDParam(r, "limitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateModuleLimitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := svc.UpdateModuleLimit(r.Context(), limitID, pricing.UpdateModuleLimitParams{
			IncludedQuantity:  payload.IncludedQuantity,
			OveragePriceMinor: payload.OveragePriceMinor,
			OverageCurrency:   payload.OverageCurrency,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, limit)
	}
}

func AdminDeleteModuleLimit(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limitID, err := parseUUIDParam(r, "limitId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteModuleLimit(r.Context(), limitID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": limitID.String()})
	}
}
