package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/propdock/propdock-backend/api/responses"
	"github.com/propdock/propdock-backend/api/validators"
	"github.com/propdock/propdock-backend/internal/pricing"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
)

// AdminListCurrencies returns every configured billing currency.
func AdminListCurrencies(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currencies, err := svc.ListCurrencies(r.Context(), queryBool(r, "active_only"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, currencies)
	}
}

type createCurrencyRequest struct {
	Code           string `json:"code" validate:"required,len=3"`
	Symbol         string `json:"symbol" validate:"required"`
	DefaultRegion  string `json:"default_region,omitempty"`
	ConversionRate string `json:"conversion_rate" validate:"required"`
	Active         bool   `json:"active"`
}

func AdminCreateCurrency(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCurrencyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(payload.ConversionRate))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conversion rate"))
			return
		}

		currency, err := svc.CreateCurrency(r.Context(), pricing.CreateCurrencyParams{
			Code:           payload.Code,
			Symbol:         payload.Symbol,
			DefaultRegion:  payload.DefaultRegion,
			ConversionRate: rate,
			Active:         payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, currency)
	}
}

type updateCurrencyRequest struct {
	Symbol         *string `json:"symbol,omitempty"`
	DefaultRegion  *string `json:"default_region,omitempty"`
	ConversionRate *string `json:"conversion_rate,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

func AdminUpdateCurrency(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "currencyCode"))
		var payload updateCurrencyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pricing.UpdateCurrencyParams{
			Symbol:        payload.Symbol,
			DefaultRegion: payload.DefaultRegion,
			Active:        payload.Active,
		}
		if payload.ConversionRate != nil {
			rate, err := decimal.NewFromString(strings.TrimSpace(*payload.ConversionRate))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conversion rate"))
				return
			}
			params.ConversionRate = &rate
		}

		currency, err := svc.UpdateCurrency(r.Context(), code, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, currency)
	}
}

func AdminDeleteCurrency(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(chi.URLParam(r, "currencyCode"))
		if err := svc.DeleteCurrency(r.Context(), code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": code})
	}
}
