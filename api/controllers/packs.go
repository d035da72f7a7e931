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

func AdminListPacks(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packs, err := svc.ListPacks(r.Context(), queryBool(r, "active_only"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, packs)
	}
}

type createPackRequest struct {
	Name               string `json:"name" validate:"required"`
	InspectionQuantity int    `json:"inspection_quantity" validate:"required,min=1"`
	Rank               int    `json:"rank" validate:"min=0"`
	Active             bool   `json:"active"`
}

func AdminCreatePack(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPackRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pack, err := svc.CreatePack(r.Context(), pricing.CreatePackParams{
			Name:               payload.Name,
			InspectionQuantity: payload.InspectionQuantity,
			Rank:               payload.Rank,
			Active:             payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, pack)
	}
}

type updatePackRequest struct {
	Name               *string `json:"name,omitempty"`
	InspectionQuantity *int    `json:"inspection_quantity,omitempty" validate:"omitempty,min=1"`
	Rank               *int    `json:"rank,omitempty" validate:"omitempty,min=0"`
	Active             *bool   `json:"active,omitempty"`
}

func AdminUpdatePack(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packID, err := parseUUIDParam(r, "packId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updatePackRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pack, err := svc.UpdatePack(r.Context(), packID, pricing.UpdatePackParams{
			Name:               payload.Name,
			InspectionQuantity: payload.InspectionQuantity,
			Rank:               payload.Rank,
			Active:             payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pack)
	}
}

func AdminDeletePack(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packID, err := parseUUIDParam(r, "packId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePack(r.Context(), packID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": packID.String()})
	}
}

type setPackPricingRequest struct {
	PricePerInspectionMinor int64 `json:"price_per_inspection_minor" validate:"min=0"`
}

// AdminSetPackPricing stores a per-tier, per-currency unit price. The pack
// total is derived server side from the pack's inspection quantity.
func AdminSetPackPricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packID, err := parseUUIDParam(r, "packId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tierID, err := parseUUIDParam(r, "tierId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload setPackPricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.SetPackPricing(r.Context(), pricing.SetPackPricingParams{
			PackID:                  packID,
			TierID:                  tierID,
			CurrencyCode:            strings.TrimSpace(chi.URLParam(r, "currencyCode")),
			PricePerInspectionMinor: payload.PricePerInspectionMinor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func AdminDeletePackPricing(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		packID, err := parseUUIDParam(r, "packId")
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
		if err := svc.DeletePackPricing(r.Context(), packID, tierID, code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": code})
	}
}
