package pricing

import (
	"github.com/google/uuid"

	"github.com/propdock/propdock-backend/pkg/db/models"
)

// TierPrice is the resolved price of a tier in one currency. When no pricing
// row exists for the requested currency the tier's base price is returned
// unconverted and Fallback is set; conversion rates are never applied.
type TierPrice struct {
	CurrencyCode            string `json:"currency_code"`
	PriceMonthlyMinor       int64  `json:"price_monthly_minor"`
	PriceAnnualMinor        int64  `json:"price_annual_minor"`
	PricePerInspectionMinor int64  `json:"price_per_inspection_minor"`
	Fallback                bool   `json:"fallback"`
}

// ResolveTierPrice returns the tier's price in the requested currency, falling
// back to the master-currency base price when no row matches.
func ResolveTierPrice(tier models.SubscriptionTier, rows []models.TierPricing, currencyCode, masterCurrency string) TierPrice {
	for _, row := range rows {
		if row.TierID == tier.ID && row.CurrencyCode == currencyCode {
			return TierPrice{
				CurrencyCode:            currencyCode,
				PriceMonthlyMinor:       row.PriceMonthlyMinor,
				PriceAnnualMinor:        row.PriceAnnualMinor,
				PricePerInspectionMinor: row.PricePerInspectionMinor,
			}
		}
	}
	return TierPrice{
		CurrencyCode:      masterCurrency,
		PriceMonthlyMinor: tier.BasePriceMonthlyMinor,
		PriceAnnualMinor:  tier.BasePriceAnnualMinor,
		Fallback:          true,
	}
}

// ResolvePackPrice looks up the pricing row for a (pack, tier, currency)
// triple. A missing row means the pack is not priced for that combination and
// must be omitted from any customer-facing view, never shown at zero.
func ResolvePackPrice(rows []models.AddonPackPricing, packID, tierID uuid.UUID, currencyCode string) (models.AddonPackPricing, bool) {
	for _, row := range rows {
		if row.PackID == packID && row.TierID == tierID && row.CurrencyCode == currencyCode {
			return row, true
		}
	}
	return models.AddonPackPricing{}, false
}

// ResolveInspectionTypePrice looks up the pricing row for a
// (type, tier, currency) triple, with the same omission semantics as packs.
func ResolveInspectionTypePrice(rows []models.InspectionTypePricing, typeID, tierID uuid.UUID, currencyCode string) (models.InspectionTypePricing, bool) {
	for _, row := range rows {
		if row.TypeID == typeID && row.TierID == tierID && row.CurrencyCode == currencyCode {
			return row, true
		}
	}
	return models.InspectionTypePricing{}, false
}

// ResolveModulePrice looks up the pricing row for a (module, currency) pair.
func ResolveModulePrice(rows []models.ModulePricing, moduleID uuid.UUID, currencyCode string) (models.ModulePricing, bool) {
	for _, row := range rows {
		if row.ModuleID == moduleID && row.CurrencyCode == currencyCode {
			return row, true
		}
	}
	return models.ModulePricing{}, false
}

// ResolveBundlePrice looks up the pricing row for a (bundle, currency) pair.
func ResolveBundlePrice(rows []models.BundlePricing, bundleID uuid.UUID, currencyCode string) (models.BundlePricing, bool) {
	for _, row := range rows {
		if row.BundleID == bundleID && row.CurrencyCode == currencyCode {
			return row, true
		}
	}
	return models.BundlePricing{}, false
}
