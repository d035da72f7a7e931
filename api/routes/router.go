package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propdock/propdock-backend/api/controllers"
	"github.com/propdock/propdock-backend/api/middleware"
	"github.com/propdock/propdock-backend/internal/compliance"
	"github.com/propdock/propdock-backend/internal/inspections"
	"github.com/propdock/propdock-backend/internal/maintenance"
	"github.com/propdock/propdock-backend/internal/pricing"
	"github.com/propdock/propdock-backend/internal/properties"
	"github.com/propdock/propdock-backend/internal/quotations"
	"github.com/propdock/propdock-backend/internal/tenancies"
	"github.com/propdock/propdock-backend/pkg/config"
	"github.com/propdock/propdock-backend/pkg/db"
	"github.com/propdock/propdock-backend/pkg/enums"
	"github.com/propdock/propdock-backend/pkg/logger"
	"github.com/propdock/propdock-backend/pkg/redis"
)

// NewRouter wires every HTTP surface: health probes, the staff pricing
// console under /api/admin/v1, and the organization portal under /api/v1.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	pricingService *pricing.Service,
	quotationsService *quotations.Service,
	propertiesService *properties.Service,
	tenanciesService *tenancies.Service,
	inspectionsService *inspections.Service,
	complianceService *compliance.Service,
	maintenanceService *maintenance.Service,
	organizations controllers.OrganizationFinder,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.ActorRoleAdmin.String(), logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/currencies", func(r chi.Router) {
			r.Get("/", controllers.AdminListCurrencies(pricingService, logg))
			r.Post("/", controllers.AdminCreateCurrency(pricingService, logg))
			r.Put("/{currencyCode}", controllers.AdminUpdateCurrency(pricingService, logg))
			r.Delete("/{currencyCode}", controllers.AdminDeleteCurrency(pricingService, logg))
		})

		r.Route("/tiers", func(r chi.Router) {
			r.Get("/", controllers.AdminListTiers(pricingService, logg))
			r.Post("/", controllers.AdminCreateTier(pricingService, logg))
			r.Put("/{tierId}", controllers.AdminUpdateTier(pricingService, logg))
			r.Delete("/{tierId}", controllers.AdminDeleteTier(pricingService, logg))
			r.Get("/{tierId}/pricing", controllers.AdminListTierPricing(pricingService, logg))
			r.Put("/{tierId}/pricing/{currencyCode}", controllers.AdminSetTierPricing(pricingService, logg))
			r.Delete("/{tierId}/pricing/{currencyCode}", controllers.AdminDeleteTierPricing(pricingService, logg))
		})

		r.Route("/packs", func(r chi.Router) {
			r.Get("/", controllers.AdminListPacks(pricingService, logg))
			r.Post("/", controllers.AdminCreatePack(pricingService, logg))
			r.Put("/{packId}", controllers.AdminUpdatePack(pricingService, logg))
			r.Delete("/{packId}", controllers.AdminDeletePack(pricingService, logg))
			r.Put("/{packId}/pricing/{tierId}/{currencyCode}", controllers.AdminSetPackPricing(pricingService, logg))
			r.Delete("/{packId}/pricing/{tierId}/{currencyCode}", controllers.AdminDeletePackPricing(pricingService, logg))
		})

		r.Route("/inspection-types", func(r chi.Router) {
			r.Get("/", controllers.AdminListInspectionTypes(pricingService, logg))
			r.Post("/", controllers.AdminCreateInspectionType(pricingService, logg))
			r.Put("/{typeId}", controllers.AdminUpdateInspectionType(pricingService, logg))
			r.Delete("/{typeId}", controllers.AdminDeleteInspectionType(pricingService, logg))
			r.Put("/{typeId}/pricing/{tierId}/{currencyCode}", controllers.AdminSetInspectionTypePricing(pricingService, logg))
			r.Delete("/{typeId}/pricing/{tierId}/{currencyCode}", controllers.AdminDeleteInspectionTypePricing(pricingService, logg))
		})

		r.Route("/modules", func(r chi.Router) {
			r.Get("/", controllers.AdminListModules(pricingService, logg))
			r.Post("/", controllers.AdminCreateModule(pricingService, logg))
			r.Put("/{moduleId}", controllers.AdminUpdateModule(pricingService, logg))
			r.Delete("/{moduleId}", controllers.AdminDeleteModule(pricingService, logg))
			r.Put("/{moduleId}/pricing/{currencyCode}", controllers.AdminSetModulePricing(pricingService, logg))
			r.Delete("/{moduleId}/pricing/{currencyCode}", controllers.AdminDeleteModulePricing(pricingService, logg))
			r.Get("/{moduleId}/limits", controllers.AdminListModuleLimits(pricingService, logg))
			r.Post("/{moduleId}/limits", controllers.AdminCreateModuleLimit(pricingService, logg))
		})

		r.Put("/module-limits/{limitId}", controllers.AdminUpdateModuleLimit(pricingService, logg))
		r.Delete("/module-limits/{limitId}", controllers.AdminDeleteModuleLimit(pricingService, logg))

		r.Route("/bundles", func(r chi.Router) {
			r.Get("/", controllers.AdminListBundles(pricingService, logg))
			r.Post("/", controllers.AdminCreateBundle(pricingService, logg))
			r.Get("/{bundleId}", controllers.AdminGetBundle(pricingService, logg))
			r.Put("/{bundleId}", controllers.AdminUpdateBundle(pricingService, logg))
			r.Delete("/{bundleId}", controllers.AdminDeleteBundle(pricingService, logg))
			r.Post("/{bundleId}/modules/{moduleId}", controllers.AdminAttachBundleModule(pricingService, logg))
			r.Delete("/{bundleId}/modules/{moduleId}", controllers.AdminDetachBundleModule(pricingService, logg))
			r.Put("/{bundleId}/pricing/{currencyCode}", controllers.AdminSetBundlePricing(pricingService, logg))
			r.Delete("/{bundleId}/pricing/{currencyCode}", controllers.AdminDeleteBundlePricing(pricingService, logg))
		})

		r.Get("/pricing/preview", controllers.AdminPreviewCatalog(pricingService, logg))

		r.Route("/quotation-requests", func(r chi.Router) {
			r.Get("/", controllers.AdminListQuotationRequests(quotationsService, logg))
			r.Get("/{requestId}", controllers.AdminGetQuotationRequest(quotationsService, logg))
			r.Post("/{requestId}/assign", controllers.AdminAssignQuotationRequest(quotationsService, logg))
			r.Post("/{requestId}/contacted", controllers.AdminMarkQuotationContacted(quotationsService, logg))
			r.Post("/{requestId}/quote", controllers.AdminCreateQuote(quotationsService, logg))
			r.Post("/{requestId}/status", controllers.AdminUpdateQuotationStatus(quotationsService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/pricing/catalog", controllers.Catalog(pricingService, organizations, logg))

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", controllers.ListProperties(propertiesService, logg))
			r.Post("/", controllers.CreateProperty(propertiesService, logg))
			r.Get("/{propertyId}", controllers.GetProperty(propertiesService, logg))
			r.Put("/{propertyId}", controllers.UpdateProperty(propertiesService, logg))
			r.Delete("/{propertyId}", controllers.ArchiveProperty(propertiesService, logg))
			r.Get("/{propertyId}/tenancies", controllers.ListPropertyTenancies(tenanciesService, logg))
			r.Get("/{propertyId}/inspections", controllers.ListPropertyInspections(inspectionsService, logg))
			r.Get("/{propertyId}/compliance-documents", controllers.ListPropertyComplianceDocuments(complianceService, logg))
		})

		r.Route("/tenancies", func(r chi.Router) {
			r.Post("/", controllers.CreateTenancy(tenanciesService, logg))
			r.Get("/{tenancyId}", controllers.GetTenancy(tenanciesService, logg))
			r.Put("/{tenancyId}", controllers.UpdateTenancy(tenanciesService, logg))
		})

		r.Route("/inspections", func(r chi.Router) {
			r.Post("/", controllers.ScheduleInspection(inspectionsService, logg))
			r.Get("/{inspectionId}", controllers.GetInspection(inspectionsService, logg))
			r.Post("/{inspectionId}/status", controllers.UpdateInspectionStatus(inspectionsService, logg))
			r.Post("/{inspectionId}/reschedule", controllers.RescheduleInspection(inspectionsService, logg))
		})

		r.Route("/compliance-documents", func(r chi.Router) {
			r.Post("/", controllers.CreateComplianceDocument(complianceService, logg))
			r.Get("/{documentId}", controllers.GetComplianceDocument(complianceService, logg))
			r.Put("/{documentId}", controllers.UpdateComplianceDocument(complianceService, logg))
			r.Delete("/{documentId}", controllers.DeleteComplianceDocument(complianceService, logg))
		})

		r.Route("/maintenance-requests", func(r chi.Router) {
			r.Get("/", controllers.ListMaintenanceRequests(maintenanceService, logg))
			r.Post("/", controllers.CreateMaintenanceRequest(maintenanceService, logg))
			r.Get("/{requestId}", controllers.GetMaintenanceRequest(maintenanceService, logg))
			r.Put("/{requestId}", controllers.UpdateMaintenanceRequest(maintenanceService, logg))
			r.Post("/{requestId}/start", controllers.StartMaintenanceRequest(maintenanceService, logg))
			r.Post("/{requestId}/resolve", controllers.ResolveMaintenanceRequest(maintenanceService, logg))
			r.Post("/{requestId}/cancel", controllers.CancelMaintenanceRequest(maintenanceService, logg))
		})

		r.Route("/quotation-requests", func(r chi.Router) {
			quotePolicy := middleware.NewRateLimitPolicy(
				"quote",
				cfg.RateLimit.QuoteWindow,
				cfg.RateLimit.QuoteIPLimit,
				cfg.RateLimit.QuoteOrgLimit,
			)
			r.Use(middleware.RateLimit(quotePolicy, redisClient, logg))
			r.Post("/", controllers.CreateQuotationRequest(quotationsService, logg))
		})
	})

	return r
}
