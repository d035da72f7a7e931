package pricing

import (
	"time"

	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/money"
)

// CatalogData holds the raw rows a catalog for one currency is built from.
type CatalogData struct {
	Currency              models.Currency
	Tiers                 []models.SubscriptionTier
	TierPricing           []models.TierPricing
	Packs                 []models.AddonPack
	PackPricing           []models.AddonPackPricing
	InspectionTypes       []models.InspectionType
	InspectionTypePricing []models.InspectionTypePricing
	Modules               []models.Module
	ModulePricing         []models.ModulePricing
	ModuleLimits          []models.ModuleLimit
	Bundles               []models.ModuleBundle
	BundlePricing         []models.BundlePricing
}

// Catalog is the resolved pricing tree for one currency. Entries with no
// pricing row for the currency are absent rather than zero-priced; tiers are
// always present because their base price acts as the fallback.
type Catalog struct {
	CurrencyCode string          `json:"currency_code"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Tiers        []CatalogTier   `json:"tiers"`
	Modules      []CatalogModule `json:"modules"`
	Bundles      []CatalogBundle `json:"bundles"`
}

type CatalogTier struct {
	ID                    uuid.UUID               `json:"id"`
	Name                  string                  `json:"name"`
	Code                  string                  `json:"code"`
	Rank                  int                     `json:"rank"`
	IncludedInspections   int                     `json:"included_inspections"`
	AnnualDiscountPct     int                     `json:"annual_discount_pct"`
	RequiresCustomPricing bool                    `json:"requires_custom_pricing"`
	Price                 TierPrice               `json:"price"`
	PriceMonthly          string                  `json:"price_monthly"`
	PriceAnnual           string                  `json:"price_annual"`
	Packs                 []CatalogPack           `json:"packs"`
	InspectionTypes       []CatalogInspectionType `json:"inspection_types"`
}

type CatalogPack struct {
	ID                      uuid.UUID `json:"id"`
	Name                    string    `json:"name"`
	InspectionQuantity      int       `json:"inspection_quantity"`
	PricePerInspectionMinor int64     `json:"price_per_inspection_minor"`
	TotalPackPriceMinor     int64     `json:"total_pack_price_minor"`
	PricePerInspection      string    `json:"price_per_inspection"`
	TotalPackPrice          string    `json:"total_pack_price"`
}

type CatalogInspectionType struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ImageAllowance int       `json:"image_allowance"`
	PriceMinor     int64     `json:"price_minor"`
	Price          string    `json:"price"`
}

type CatalogModule struct {
	ID                uuid.UUID            `json:"id"`
	Name              string               `json:"name"`
	Key               string               `json:"key"`
	PriceMonthlyMinor int64                `json:"price_monthly_minor"`
	PriceAnnualMinor  int64                `json:"price_annual_minor"`
	PriceMonthly      string               `json:"price_monthly"`
	PriceAnnual       string               `json:"price_annual"`
	Limits            []CatalogModuleLimit `json:"limits"`
}

type CatalogModuleLimit struct {
	ID                uuid.UUID `json:"id"`
	LimitType         string    `json:"limit_type"`
	IncludedQuantity  int       `json:"included_quantity"`
	OveragePriceMinor int64     `json:"overage_price_minor"`
	OveragePrice      string    `json:"overage_price"`
}

type CatalogBundle struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	DiscountPct         int       `json:"discount_pct"`
	ModuleKeys          []string  `json:"module_keys"`
	PriceMonthlyMinor   int64     `json:"price_monthly_minor"`
	PriceAnnualMinor    int64     `json:"price_annual_minor"`
	PriceMonthly        string    `json:"price_monthly"`
	PriceAnnual         string    `json:"price_annual"`
	SavingsMonthlyMinor *int64    `json:"savings_monthly_minor,omitempty"`
	SavingsAnnualMinor  *int64    `json:"savings_annual_minor,omitempty"`
}

// BuildCatalog resolves the raw rows into the customer-facing tree for one
// currency. Pure so the join logic is testable without a database.
func BuildCatalog(data CatalogData, masterCurrency string, now time.Time) *Catalog {
	code := data.Currency.Code
	catalog := &Catalog{
		CurrencyCode: code,
		GeneratedAt:  now.UTC(),
		Tiers:        make([]CatalogTier, 0, len(data.Tiers)),
		Modules:      make([]CatalogModule, 0, len(data.Modules)),
		Bundles:      make([]CatalogBundle, 0, len(data.Bundles)),
	}

	for _, tier := range data.Tiers {
		price := ResolveTierPrice(tier, data.TierPricing, code, masterCurrency)
		view := CatalogTier{
			ID:                    tier.ID,
			Name:                  tier.Name,
			Code:                  tier.Code,
			Rank:                  tier.Rank,
			IncludedInspections:   tier.IncludedInspections,
			AnnualDiscountPct:     tier.AnnualDiscountPct,
			RequiresCustomPricing: tier.RequiresCustomPricing,
			Price:                 price,
			PriceMonthly:          money.Format(price.PriceMonthlyMinor, price.CurrencyCode),
			PriceAnnual:           money.Format(price.PriceAnnualMinor, price.CurrencyCode),
			Packs:                 make([]CatalogPack, 0, len(data.Packs)),
			InspectionTypes:       make([]CatalogInspectionType, 0, len(data.InspectionTypes)),
		}

		for _, pack := range data.Packs {
			row, ok := ResolvePackPrice(data.PackPricing, pack.ID, tier.ID, code)
			if !ok {
				continue
			}
			view.Packs = append(view.Packs, CatalogPack{
				ID:                      pack.ID,
				Name:                    pack.Name,
				InspectionQuantity:      pack.InspectionQuantity,
				PricePerInspectionMinor: row.PricePerInspectionMinor,
				TotalPackPriceMinor:     row.TotalPackPriceMinor,
				PricePerInspection:      money.Format(row.PricePerInspectionMinor, code),
				TotalPackPrice:          money.Format(row.TotalPackPriceMinor, code),
			})
		}

		for _, typ := range data.InspectionTypes {
			row, ok := ResolveInspectionTypePrice(data.InspectionTypePricing, typ.ID, tier.ID, code)
			if !ok {
				continue
			}
			view.InspectionTypes = append(view.InspectionTypes, CatalogInspectionType{
				ID:             typ.ID,
				Name:           typ.Name,
				ImageAllowance: typ.ImageAllowance,
				PriceMinor:     row.PriceMinor,
				Price:          money.Format(row.PriceMinor, code),
			})
		}

		catalog.Tiers = append(catalog.Tiers, view)
	}

	for _, module := range data.Modules {
		row, ok := ResolveModulePrice(data.ModulePricing, module.ID, code)
		if !ok {
			continue
		}
		view := CatalogModule{
			ID:                module.ID,
			Name:              module.Name,
			Key:               module.Key,
			PriceMonthlyMinor: row.PriceMonthlyMinor,
			PriceAnnualMinor:  row.PriceAnnualMinor,
			PriceMonthly:      money.Format(row.PriceMonthlyMinor, code),
			PriceAnnual:       money.Format(row.PriceAnnualMinor, code),
			Limits:            make([]CatalogModuleLimit, 0),
		}
		for _, limit := range data.ModuleLimits {
			if limit.ModuleID != module.ID || limit.OverageCurrency != code {
				continue
			}
			view.Limits = append(view.Limits, CatalogModuleLimit{
				ID:                limit.ID,
				LimitType:         limit.LimitType,
				IncludedQuantity:  limit.IncludedQuantity,
				OveragePriceMinor: limit.OveragePriceMinor,
				OveragePrice:      money.Format(limit.OveragePriceMinor, code),
			})
		}
		catalog.Modules = append(catalog.Modules, view)
	}

	for _, bundle := range data.Bundles {
		row, ok := ResolveBundlePrice(data.BundlePricing, bundle.ID, code)
		if !ok {
			continue
		}
		keys := make([]string, 0, len(bundle.Modules))
		for _, module := range bundle.Modules {
			keys = append(keys, module.Key)
		}
		catalog.Bundles = append(catalog.Bundles, CatalogBundle{
			ID:                  bundle.ID,
			Name:                bundle.Name,
			Description:         bundle.Description,
			DiscountPct:         bundle.DiscountPct,
			ModuleKeys:          keys,
			PriceMonthlyMinor:   row.PriceMonthlyMinor,
			PriceAnnualMinor:    row.PriceAnnualMinor,
			PriceMonthly:        money.Format(row.PriceMonthlyMinor, code),
			PriceAnnual:         money.Format(row.PriceAnnualMinor, code),
			SavingsMonthlyMinor: row.SavingsMonthlyMinor,
			SavingsAnnualMinor:  row.SavingsAnnualMinor,
		})
	}

	return catalog
}
