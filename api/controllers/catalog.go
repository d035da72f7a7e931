package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/api/responses"
	"github.com/propdock/propdock-backend/internal/pricing"
	"github.com/propdock/propdock-backend/pkg/db/models"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
)

// OrganizationFinder resolves the billing currency for the catalog surface.
// The quotations repository satisfies it.
type OrganizationFinder interface {
	FindOrganization(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// AdminPreviewCatalog resolves the full pricing tree for any currency without
// touching the cache, so staff can inspect drafts before publishing.
func AdminPreviewCatalog(svc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(r.URL.Query().Get("currency"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "currency query parameter is required"))
			return
		}
		catalog, err := svc.PreviewCatalog(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog)
	}
}

// Catalog serves the active pricing tree in the calling organization's currency.
func Catalog(svc *pricing.Service, orgs OrganizationFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, err := orgIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		org, err := orgs.FindOrganization(r.Context(), orgID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if org == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "organization not found"))
			return
		}
		catalog, err := svc.GetCatalog(r.Context(), org.CurrencyCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog)
	}
}
