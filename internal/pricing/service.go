package pricing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propdock/propdock-backend/pkg/db/models"
	"github.com/propdock/propdock-backend/pkg/enums"
	pkgerrors "github.com/propdock/propdock-backend/pkg/errors"
	"github.com/propdock/propdock-backend/pkg/logger"
	"github.com/propdock/propdock-backend/pkg/money"
)

// ServiceParams groups dependencies for the pricing service.
type ServiceParams struct {
	Repo           Repository
	Cache          CatalogCache
	Logger         *logger.Logger
	MasterCurrency string
}

// Service owns the pricing catalog: currencies, tiers, add-on packs,
// extensive inspection types, modules and bundles, plus the resolved
// per-currency catalog reads.
type Service struct {
	repo           Repository
	cache          CatalogCache
	logg           *logger.Logger
	masterCurrency string
}

// NewService builds a pricing service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	master := normalizeCurrencyCode(params.MasterCurrency)
	if master == "" {
		return nil, errors.New("master currency is required")
	}
	return &Service{
		repo:           params.Repo,
		cache:          params.Cache,
		logg:           params.Logger,
		masterCurrency: master,
	}, nil
}

func normalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (s *Service) invalidate(ctx context.Context, currencyCodes ...string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, currencyCodes...)
}

// requireActiveCurrency resolves a currency code that pricing rows may be
// written against.
func (s *Service) requireActiveCurrency(ctx context.Context, code string) (*models.Currency, error) {
	normalized := normalizeCurrencyCode(code)
	if !validCurrencyCode(normalized) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code must be a 3-letter ISO code")
	}
	currency, err := s.repo.FindCurrency(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up currency")
	}
	if currency == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown currency "+normalized)
	}
	if !currency.Active {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency "+normalized+" is not active")
	}
	return currency, nil
}

func (s *Service) requireTier(ctx context.Context, id uuid.UUID) (*models.SubscriptionTier, error) {
	tier, err := s.repo.FindTier(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up tier")
	}
	if tier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tier not found")
	}
	return tier, nil
}

// --- currencies ---

// CreateCurrencyParams configures a new sellable currency.
type CreateCurrencyParams struct {
	Code           string
	Symbol         string
	DefaultRegion  string
	ConversionRate decimal.Decimal
	Active         bool
}

func (s *Service) CreateCurrency(ctx context.Context, params CreateCurrencyParams) (*models.Currency, error) {
	code := normalizeCurrencyCode(params.Code)
	if !validCurrencyCode(code) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code must be a 3-letter ISO code")
	}
	if strings.TrimSpace(params.Symbol) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency symbol is required")
	}
	if params.ConversionRate.IsNegative() || params.ConversionRate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "conversion rate must be positive")
	}

	existing, err := s.repo.FindCurrency(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up currency")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "currency "+code+" already exists")
	}

	currency := &models.Currency{
		Code:           code,
		Symbol:         strings.TrimSpace(params.Symbol),
		DefaultRegion:  strings.TrimSpace(params.DefaultRegion),
		ConversionRate: params.ConversionRate,
		Active:         params.Active,
	}
	if err := s.repo.CreateCurrency(ctx, currency); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating currency")
	}
	return currency, nil
}

// UpdateCurrencyParams carries optional currency updates.
type UpdateCurrencyParams struct {
	Symbol         *string
	DefaultRegion  *string
	ConversionRate *decimal.Decimal
	Active         *bool
}

func (s *Service) UpdateCurrency(ctx context.Context, code string, params UpdateCurrencyParams) (*models.Currency, error) {
	currency, err := s.repo.FindCurrency(ctx, normalizeCurrencyCode(code))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up currency")
	}
	if currency == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
	}

	if params.Symbol != nil {
		if strings.TrimSpace(*params.Symbol) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency symbol is required")
		}
		currency.Symbol = strings.TrimSpace(*params.Symbol)
	}
	if params.DefaultRegion != nil {
		currency.DefaultRegion = strings.TrimSpace(*params.DefaultRegion)
	}
	if params.ConversionRate != nil {
		if params.ConversionRate.IsNegative() || params.ConversionRate.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "conversion rate must be positive")
		}
		currency.ConversionRate = *params.ConversionRate
	}
	if params.Active != nil {
		currency.Active = *params.Active
	}

	if err := s.repo.UpdateCurrency(ctx, currency); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating currency")
	}
	s.invalidate(ctx, currency.Code)
	return currency, nil
}

// DeleteCurrency removes a currency that no pricing row references. Deletion
// is refused while references remain so stored prices never dangle.
func (s *Service) DeleteCurrency(ctx context.Context, code string) error {
	normalized := normalizeCurrencyCode(code)
	currency, err := s.repo.FindCurrency(ctx, normalized)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up currency")
	}
	if currency == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
	}

	refs, err := s.repo.CountPricingRowsForCurrency(ctx, normalized)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting currency references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "currency is referenced by pricing rows").
			WithDetails(map[string]any{"currency_code": normalized, "pricing_rows": refs})
	}

	if err := s.repo.DeleteCurrency(ctx, normalized); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting currency")
	}
	s.invalidate(ctx, normalized)
	return nil
}

func (s *Service) ListCurrencies(ctx context.Context, activeOnly bool) ([]models.Currency, error) {
	return s.repo.ListCurrencies(ctx, activeOnly)
}

// --- subscription tiers ---

// CreateTierParams configures a new subscription tier. Base prices are in the
// master currency.
type CreateTierParams struct {
	Name                  string
	Code                  string
	Rank                  int
	IncludedInspections   int
	AnnualDiscountPct     int
	BasePriceMonthlyMinor int64
	BasePriceAnnualMinor  int64
	Active                bool
	RequiresCustomPricing bool
}

func (s *Service) CreateTier(ctx context.Context, params CreateTierParams) (*models.SubscriptionTier, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier name is required")
	}
	if strings.TrimSpace(params.Code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier code is required")
	}
	if params.BasePriceMonthlyMinor < 0 || params.BasePriceAnnualMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base prices must not be negative")
	}
	if params.AnnualDiscountPct < 0 || params.AnnualDiscountPct > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "annual discount must be between 0 and 100")
	}

	tier := &models.SubscriptionTier{
		Name:                  strings.TrimSpace(params.Name),
		Code:                  strings.TrimSpace(params.Code),
		Rank:                  params.Rank,
		IncludedInspections:   params.IncludedInspections,
		AnnualDiscountPct:     params.AnnualDiscountPct,
		BasePriceMonthlyMinor: params.BasePriceMonthlyMinor,
		BasePriceAnnualMinor:  params.BasePriceAnnualMinor,
		Active:                params.Active,
		RequiresCustomPricing: params.RequiresCustomPricing,
	}
	if err := s.repo.CreateTier(ctx, tier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating tier")
	}
	s.invalidateAll(ctx)
	return tier, nil
}

// UpdateTierParams carries optional tier updates.
type UpdateTierParams struct {
	Name                  *string
	Rank                  *int
	IncludedInspections   *int
	AnnualDiscountPct     *int
	BasePriceMonthlyMinor *int64
	BasePriceAnnualMinor  *int64
	Active                *bool
	RequiresCustomPricing *bool
}

func (s *Service) UpdateTier(ctx context.Context, id uuid.UUID, params UpdateTierParams) (*models.SubscriptionTier, error) {
	tier, err := s.requireTier(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tier name is required")
		}
		tier.Name = strings.TrimSpace(*params.Name)
	}
	if params.Rank != nil {
		tier.Rank = *params.Rank
	}
	if params.IncludedInspections != nil {
		tier.IncludedInspections = *params.IncludedInspections
	}
	if params.AnnualDiscountPct != nil {
		if *params.AnnualDiscountPct < 0 || *params.AnnualDiscountPct > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "annual discount must be between 0 and 100")
		}
		tier.AnnualDiscountPct = *params.AnnualDiscountPct
	}
	if params.BasePriceMonthlyMinor != nil {
		if *params.BasePriceMonthlyMinor < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base prices must not be negative")
		}
		tier.BasePriceMonthlyMinor = *params.BasePriceMonthlyMinor
	}
	if params.BasePriceAnnualMinor != nil {
		if *params.BasePriceAnnualMinor < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base prices must not be negative")
		}
		tier.BasePriceAnnualMinor = *params.BasePriceAnnualMinor
	}
	if params.Active != nil {
		tier.Active = *params.Active
	}
	if params.RequiresCustomPricing != nil {
		tier.RequiresCustomPricing = *params.RequiresCustomPricing
	}

	if err := s.repo.UpdateTier(ctx, tier); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating tier")
	}
	s.invalidateAll(ctx)
	return tier, nil
}

func (s *Service) DeleteTier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.requireTier(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTier(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting tier")
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *Service) ListTiers(ctx context.Context, activeOnly bool) ([]models.SubscriptionTier, error) {
	return s.repo.ListTiers(ctx, activeOnly)
}

func (s *Service) GetTier(ctx context.Context, id uuid.UUID) (*models.SubscriptionTier, error) {
	return s.requireTier(ctx, id)
}

// SetTierPricingParams prices a tier in one currency, overriding the base
// price fallback for that currency.
type SetTierPricingParams struct {
	TierID                  uuid.UUID
	CurrencyCode            string
	PriceMonthlyMinor       int64
	PriceAnnualMinor        int64
	PricePerInspectionMinor int64
}

func (s *Service) SetTierPricing(ctx context.Context, params SetTierPricingParams) (*models.TierPricing, error) {
	if params.PriceMonthlyMinor < 0 || params.PriceAnnualMinor < 0 || params.PricePerInspectionMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}
	if _, err := s.requireTier(ctx, params.TierID); err != nil {
		return nil, err
	}
	currency, err := s.requireActiveCurrency(ctx, params.CurrencyCode)
	if err != nil {
		return nil, err
	}

	row := &models.TierPricing{
		TierID:                  params.TierID,
		CurrencyCode:            currency.Code,
		PriceMonthlyMinor:       params.PriceMonthlyMinor,
		PriceAnnualMinor:        params.PriceAnnualMinor,
		PricePerInspectionMinor: params.PricePerInspectionMinor,
	}
	if err := s.repo.UpsertTierPricing(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving tier pricing")
	}
	s.invalidate(ctx, currency.Code)
	return row, nil
}

func (s *Service) DeleteTierPricing(ctx context.Context, tierID uuid.UUID, currencyCode string) error {
	if _, err := s.requireTier(ctx, tierID); err != nil {
		return err
	}
	code := normalizeCurrencyCode(currencyCode)
	if err := s.repo.DeleteTierPricing(ctx, tierID, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting tier pricing")
	}
	s.invalidate(ctx, code)
	return nil
}

func (s *Service) ListTierPricing(ctx context.Context, tierID uuid.UUID) ([]models.TierPricing, error) {
	if _, err := s.requireTier(ctx, tierID); err != nil {
		return nil, err
	}
	return s.repo.ListTierPricing(ctx, tierID)
}

// --- add-on packs ---

// CreatePackParams configures a new add-on inspection pack.
type CreatePackParams struct {
	Name               string
	InspectionQuantity int
	Rank               int
	Active             bool
}

func (s *Service) CreatePack(ctx context.Context, params CreatePackParams) (*models.AddonPack, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pack name is required")
	}
	if params.InspectionQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inspection quantity must be positive")
	}

	pack := &models.AddonPack{
		Name:               strings.TrimSpace(params.Name),
		InspectionQuantity: params.InspectionQuantity,
		Rank:               params.Rank,
		Active:             params.Active,
	}
	if err := s.repo.CreatePack(ctx, pack); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating pack")
	}
	return pack, nil
}

// UpdatePackParams carries optional pack updates. Changing the inspection
// quantity re-derives the stored total on every pricing row of the pack.
type UpdatePackParams struct {
	Name               *string
	InspectionQuantity *int
	Rank               *int
	Active             *bool
}

func (s *Service) UpdatePack(ctx context.Context, id uuid.UUID, params UpdatePackParams) (*models.AddonPack, error) {
	pack, err := s.repo.FindPack(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up pack")
	}
	if pack == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pack not found")
	}

	quantityChanged := false
	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pack name is required")
		}
		pack.Name = strings.TrimSpace(*params.Name)
	}
	if params.InspectionQuantity != nil {
		if *params.InspectionQuantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inspection quantity must be positive")
		}
		quantityChanged = pack.InspectionQuantity != *params.InspectionQuantity
		pack.InspectionQuantity = *params.InspectionQuantity
	}
	if params.Rank != nil {
		pack.Rank = *params.Rank
	}
	if params.Active != nil {
		pack.Active = *params.Active
	}

	if err := s.repo.UpdatePack(ctx, pack); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating pack")
	}
	if quantityChanged {
		if err := s.repo.RecomputePackTotals(ctx, pack.ID, pack.InspectionQuantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recomputing pack totals")
		}
	}
	s.invalidatePackCurrencies(ctx, pack.ID)
	return pack, nil
}

func (s *Service) DeletePack(ctx context.Context, id uuid.UUID) error {
	pack, err := s.repo.FindPack(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up pack")
	}
	if pack == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "pack not found")
	}

	refs, err := s.repo.CountPackPricingRows(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting pack pricing rows")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "pack is referenced by pricing rows").
			WithDetails(map[string]any{"pack_id": id, "pricing_rows": refs})
	}

	s.invalidatePackCurrencies(ctx, id)
	if err := s.repo.DeletePack(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting pack")
	}
	return nil
}

func (s *Service) ListPacks(ctx context.Context, activeOnly bool) ([]models.AddonPack, error) {
	return s.repo.ListPacks(ctx, activeOnly)
}

// SetPackPricingParams prices a pack for one (tier, currency) pair. The total
// is always derived here, never accepted from the caller.
type SetPackPricingParams struct {
	PackID                  uuid.UUID
	TierID                  uuid.UUID
	CurrencyCode            string
	PricePerInspectionMinor int64
}

func (s *Service) SetPackPricing(ctx context.Context, params SetPackPricingParams) (*models.AddonPackPricing, error) {
	if params.PricePerInspectionMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price per inspection must not be negative")
	}
	pack, err := s.repo.FindPack(ctx, params.PackID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up pack")
	}
	if pack == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pack not found")
	}
	if _, err := s.requireTier(ctx, params.TierID); err != nil {
		return nil, err
	}
	currency, err := s.requireActiveCurrency(ctx, params.CurrencyCode)
	if err != nil {
		return nil, err
	}

	row := &models.AddonPackPricing{
		PackID:                  params.PackID,
		TierID:                  params.TierID,
		CurrencyCode:            currency.Code,
		PricePerInspectionMinor: params.PricePerInspectionMinor,
		TotalPackPriceMinor:     money.PackTotal(params.PricePerInspectionMinor, pack.InspectionQuantity),
	}
	if err := s.repo.UpsertPackPricing(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving pack pricing")
	}
	s.invalidate(ctx, currency.Code)
	return row, nil
}

func (s *Service) DeletePackPricing(ctx context.Context, packID, tierID uuid.UUID, currencyCode string) error {
	code := normalizeCurrencyCode(currencyCode)
	if err := s.repo.DeletePackPricing(ctx, packID, tierID, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting pack pricing")
	}
	s.invalidate(ctx, code)
	return nil
}

func (s *Service) invalidatePackCurrencies(ctx context.Context, packID uuid.UUID) {
	rows, err := s.repo.ListPackPricing(ctx, packID)
	if err != nil {
		s.logg.Warn(ctx, "listing pack pricing for invalidation failed: "+err.Error())
		return
	}
	seen := map[string]bool{}
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		if !seen[row.CurrencyCode] {
			seen[row.CurrencyCode] = true
			codes = append(codes, row.CurrencyCode)
		}
	}
	if len(codes) > 0 {
		s.invalidate(ctx, codes...)
	}
}

// invalidateAll drops the cached catalog for every known currency. Used when
// a write affects rows across currencies, e.g. tier base price changes.
func (s *Service) invalidateAll(ctx context.Context) {
	if s.cache == nil {
		return
	}
	currencies, err := s.repo.ListCurrencies(ctx, false)
	if err != nil {
		s.logg.Warn(ctx, "listing currencies for invalidation failed: "+err.Error())
		return
	}
	codes := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		codes = append(codes, currency.Code)
	}
	if len(codes) > 0 {
		s.invalidate(ctx, codes...)
	}
}

// --- extensive inspection types ---

type CreateInspectionTypeParams struct {
	Name           string
	ImageAllowance int
	Description    string
	Active         bool
}

func (s *Service) CreateInspectionType(ctx context.Context, params CreateInspectionTypeParams) (*models.InspectionType, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inspection type name is required")
	}
	if params.ImageAllowance < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image allowance must not be negative")
	}

	typ := &models.InspectionType{
		Name:           strings.TrimSpace(params.Name),
		ImageAllowance: params.ImageAllowance,
		Description:    params.Description,
		Active:         params.Active,
	}
	if err := s.repo.CreateInspectionType(ctx, typ); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating inspection type")
	}
	return typ, nil
}

type UpdateInspectionTypeParams struct {
	Name           *string
	ImageAllowance *int
	Description    *string
	Active         *bool
}

func (s *Service) UpdateInspectionType(ctx context.Context, id uuid.UUID, params UpdateInspectionTypeParams) (*models.InspectionType, error) {
	typ, err := s.repo.FindInspectionType(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up inspection type")
	}
	if typ == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inspection type not found")
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inspection type name is required")
		}
		typ.Name = strings.TrimSpace(*params.Name)
	}
	if params.ImageAllowance != nil {
		if *params.ImageAllowance < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "image allowance must not be negative")
		}
		typ.ImageAllowance = *params.ImageAllowance
	}
	if params.Description != nil {
		typ.Description = *params.Description
	}
	if params.Active != nil {
		typ.Active = *params.Active
	}

	if err := s.repo.UpdateInspectionType(ctx, typ); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating inspection type")
	}
	s.invalidateAll(ctx)
	return typ, nil
}

func (s *Service) DeleteInspectionType(ctx context.Context, id uuid.UUID) error {
	typ, err := s.repo.FindInspectionType(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up inspection type")
	}
	if typ == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inspection type not found")
	}
	if err := s.repo.DeleteInspectionType(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting inspection type")
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *Service) ListInspectionTypes(ctx context.Context, activeOnly bool) ([]models.InspectionType, error) {
	return s.repo.ListInspectionTypes(ctx, activeOnly)
}

type SetInspectionTypePricingParams struct {
	TypeID       uuid.UUID
	TierID       uuid.UUID
	CurrencyCode string
	PriceMinor   int64
}

func (s *Service) SetInspectionTypePricing(ctx context.Context, params SetInspectionTypePricingParams) (*models.InspectionTypePricing, error) {
	if params.PriceMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	typ, err := s.repo.FindInspectionType(ctx, params.TypeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up inspection type")
	}
	if typ == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inspection type not found")
	}
	if _, err := s.requireTier(ctx, params.TierID); err != nil {
		return nil, err
	}
	currency, err := s.requireActiveCurrency(ctx, params.CurrencyCode)
	if err != nil {
		return nil, err
	}

	row := &models.InspectionTypePricing{
		TypeID:       params.TypeID,
		TierID:       params.TierID,
		CurrencyCode: currency.Code,
		PriceMinor:   params.PriceMinor,
	}
	if err := s.repo.UpsertInspectionTypePricing(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving inspection type pricing")
	}
	s.invalidate(ctx, currency.Code)
	return row, nil
}

func (s *Service) DeleteInspectionTypePricing(ctx context.Context, typeID, tierID uuid.UUID, currencyCode string) error {
	code := normalizeCurrencyCode(currencyCode)
	if err := s.repo.DeleteInspectionTypePricing(ctx, typeID, tierID, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting inspection type pricing")
	}
	s.invalidate(ctx, code)
	return nil
}

// --- modules ---

type CreateModuleParams struct {
	Name           string
	Key            string
	Availability   enums.ModuleAvailability
	DefaultEnabled bool
	DisplayOrder   int
}

func (s *Service) CreateModule(ctx context.Context, params CreateModuleParams) (*models.Module, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "module name is required")
	}
	if strings.TrimSpace(params.Key) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "module key is required")
	}
	if !params.Availability.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid module availability")
	}

	module := &models.Module{
		Name:           strings.TrimSpace(params.Name),
		Key:            strings.TrimSpace(params.Key),
		Availability:   params.Availability,
		DefaultEnabled: params.DefaultEnabled,
		DisplayOrder:   params.DisplayOrder,
	}
	if err := s.repo.CreateModule(ctx, module); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating module")
	}
	return module, nil
}

type UpdateModuleParams struct {
	Name           *string
	Availability   *enums.ModuleAvailability
	DefaultEnabled *bool
	DisplayOrder   *int
}

func (s *Service) UpdateModule(ctx context.Context, id uuid.UUID, params UpdateModuleParams) (*models.Module, error) {
	module, err := s.repo.FindModule(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module")
	}
	if module == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "module name is required")
		}
		module.Name = strings.TrimSpace(*params.Name)
	}
	if params.Availability != nil {
		if !params.Availability.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid module availability")
		}
		module.Availability = *params.Availability
	}
	if params.DefaultEnabled != nil {
		module.DefaultEnabled = *params.DefaultEnabled
	}
	if params.DisplayOrder != nil {
		module.DisplayOrder = *params.DisplayOrder
	}

	if err := s.repo.UpdateModule(ctx, module); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating module")
	}
	s.invalidateAll(ctx)
	return module, nil
}

func (s *Service) DeleteModule(ctx context.Context, id uuid.UUID) error {
	module, err := s.repo.FindModule(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module")
	}
	if module == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
	}
	if err := s.repo.DeleteModule(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting module")
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *Service) ListModules(ctx context.Context) ([]models.Module, error) {
	return s.repo.ListModules(ctx)
}

type SetModulePricingParams struct {
	ModuleID          uuid.UUID
	CurrencyCode      string
	PriceMonthlyMinor int64
	PriceAnnualMinor  int64
}

func (s *Service) SetModulePricing(ctx context.Context, params SetModulePricingParams) (*models.ModulePricing, error) {
	if params.PriceMonthlyMinor < 0 || params.PriceAnnualMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}
	module, err := s.repo.FindModule(ctx, params.ModuleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module")
	}
	if module == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
	}
	currency, err := s.requireActiveCurrency(ctx, params.CurrencyCode)
	if err != nil {
		return nil, err
	}

	row := &models.ModulePricing{
		ModuleID:          params.ModuleID,
		CurrencyCode:      currency.Code,
		PriceMonthlyMinor: params.PriceMonthlyMinor,
		PriceAnnualMinor:  params.PriceAnnualMinor,
	}
	if err := s.repo.UpsertModulePricing(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving module pricing")
	}
	s.invalidate(ctx, currency.Code)
	return row, nil
}

func (s *Service) DeleteModulePricing(ctx context.Context, moduleID uuid.UUID, currencyCode string) error {
	code := normalizeCurrencyCode(currencyCode)
	if err := s.repo.DeleteModulePricing(ctx, moduleID, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting module pricing")
	}
	s.invalidate(ctx, code)
	return nil
}

// SetModuleLimitParams caps one usage dimension of a module.
type SetModuleLimitParams struct {
	ModuleID          uuid.UUID
	LimitType         string
	IncludedQuantity  int
	OveragePriceMinor int64
	OverageCurrency   string
}

func (s *Service) CreateModuleLimit(ctx context.Context, params SetModuleLimitParams) (*models.ModuleLimit, error) {
	if strings.TrimSpace(params.LimitType) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit type is required")
	}
	if params.IncludedQuantity < 0 || params.OveragePriceMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit quantities and prices must not be negative")
	}
	module, err := s.repo.FindModule(ctx, params.ModuleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module")
	}
	if module == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
	}
	currency, err := s.requireActiveCurrency(ctx, params.OverageCurrency)
	if err != nil {
		return nil, err
	}

	limit := &models.ModuleLimit{
		ModuleID:          params.ModuleID,
		LimitType:         strings.TrimSpace(params.LimitType),
		IncludedQuantity:  params.IncludedQuantity,
		OveragePriceMinor: params.OveragePriceMinor,
		OverageCurrency:   currency.Code,
	}
	if err := s.repo.CreateModuleLimit(ctx, limit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating module limit")
	}
	s.invalidate(ctx, currency.Code)
	return limit, nil
}

// UpdateModuleLimitParams carries optional module limit updates.
type UpdateModuleLimitParams struct {
	IncludedQuantity  *int
	OveragePriceMinor *int64
	OverageCurrency   *string
}

func (s *Service) UpdateModuleLimit(ctx context.Context, id uuid.UUID, params UpdateModuleLimitParams) (*models.ModuleLimit, error) {
	limit, err := s.repo.FindModuleLimit(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module limit")
	}
	if limit == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "module limit not found")
	}

	previousCurrency := limit.OverageCurrency
	if params.IncludedQuantity != nil {
		if *params.IncludedQuantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "included quantity must not be negative")
		}
		limit.IncludedQuantity = *params.IncludedQuantity
	}
	if params.OveragePriceMinor != nil {
		if *params.OveragePriceMinor < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "overage price must not be negative")
		}
		limit.OveragePriceMinor = *params.OveragePriceMinor
	}
	if params.OverageCurrency != nil {
		currency, err := s.requireActiveCurrency(ctx, *params.OverageCurrency)
		if err != nil {
			return nil, err
		}
		limit.OverageCurrency = currency.Code
	}

	if err := s.repo.UpdateModuleLimit(ctx, limit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating module limit")
	}
	s.invalidate(ctx, previousCurrency, limit.OverageCurrency)
	return limit, nil
}

func (s *Service) DeleteModuleLimit(ctx context.Context, id uuid.UUID) error {
	limit, err := s.repo.FindModuleLimit(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module limit")
	}
	if limit == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "module limit not found")
	}
	if err := s.repo.DeleteModuleLimit(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting module limit")
	}
	s.invalidate(ctx, limit.OverageCurrency)
	return nil
}

func (s *Service) ListModuleLimits(ctx context.Context, moduleID uuid.UUID) ([]models.ModuleLimit, error) {
	module, err := s.repo.FindModule(ctx, moduleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module")
	}
	if module == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
	}
	return s.repo.ListModuleLimits(ctx, moduleID)
}

// --- bundles ---

type CreateBundleParams struct {
	Name        string
	Description string
	DiscountPct int
	Active      bool
}

func (s *Service) CreateBundle(ctx context.Context, params CreateBundleParams) (*models.ModuleBundle, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bundle name is required")
	}
	if params.DiscountPct < 0 || params.DiscountPct > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}

	bundle := &models.ModuleBundle{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		DiscountPct: params.DiscountPct,
		Active:      params.Active,
	}
	if err := s.repo.CreateBundle(ctx, bundle); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating bundle")
	}
	return bundle, nil
}

type UpdateBundleParams struct {
	Name        *string
	Description *string
	DiscountPct *int
	Active      *bool
}

func (s *Service) UpdateBundle(ctx context.Context, id uuid.UUID, params UpdateBundleParams) (*models.ModuleBundle, error) {
	bundle, err := s.repo.FindBundle(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up bundle")
	}
	if bundle == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bundle not found")
	}

	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "bundle name is required")
		}
		bundle.Name = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		bundle.Description = *params.Description
	}
	if params.DiscountPct != nil {
		if *params.DiscountPct < 0 || *params.DiscountPct > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
		}
		bundle.DiscountPct = *params.DiscountPct
	}
	if params.Active != nil {
		bundle.Active = *params.Active
	}

	if err := s.repo.UpdateBundle(ctx, bundle); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating bundle")
	}
	s.invalidateAll(ctx)
	return bundle, nil
}

func (s *Service) DeleteBundle(ctx context.Context, id uuid.UUID) error {
	bundle, err := s.repo.FindBundle(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up bundle")
	}
	if bundle == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "bundle not found")
	}
	if err := s.repo.DeleteBundle(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting bundle")
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *Service) ListBundles(ctx context.Context, activeOnly bool) ([]models.ModuleBundle, error) {
	return s.repo.ListBundles(ctx, activeOnly)
}

func (s *Service) GetBundle(ctx context.Context, id uuid.UUID) (*models.ModuleBundle, error) {
	bundle, err := s.repo.FindBundle(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up bundle")
	}
	if bundle == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bundle not found")
	}
	return bundle, nil
}

func (s *Service) AttachBundleModule(ctx context.Context, bundleID, moduleID uuid.UUID) error {
	if _, err := s.GetBundle(ctx, bundleID); err != nil {
		return err
	}
	module, err := s.repo.FindModule(ctx, moduleID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up module")
	}
	if module == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
	}
	if err := s.repo.AttachBundleModule(ctx, bundleID, moduleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attaching module to bundle")
	}
	s.invalidateAll(ctx)
	return nil
}

func (s *Service) DetachBundleModule(ctx context.Context, bundleID, moduleID uuid.UUID) error {
	if _, err := s.GetBundle(ctx, bundleID); err != nil {
		return err
	}
	if err := s.repo.DetachBundleModule(ctx, bundleID, moduleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "detaching module from bundle")
	}
	s.invalidateAll(ctx)
	return nil
}

// SetBundlePricingParams prices a bundle in one currency. Savings figures are
// display values set by the admin, not derived.
type SetBundlePricingParams struct {
	BundleID            uuid.UUID
	CurrencyCode        string
	PriceMonthlyMinor   int64
	PriceAnnualMinor    int64
	SavingsMonthlyMinor *int64
	SavingsAnnualMinor  *int64
}

func (s *Service) SetBundlePricing(ctx context.Context, params SetBundlePricingParams) (*models.BundlePricing, error) {
	if params.PriceMonthlyMinor < 0 || params.PriceAnnualMinor < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}
	if _, err := s.GetBundle(ctx, params.BundleID); err != nil {
		return nil, err
	}
	currency, err := s.requireActiveCurrency(ctx, params.CurrencyCode)
	if err != nil {
		return nil, err
	}

	row := &models.BundlePricing{
		BundleID:            params.BundleID,
		CurrencyCode:        currency.Code,
		PriceMonthlyMinor:   params.PriceMonthlyMinor,
		PriceAnnualMinor:    params.PriceAnnualMinor,
		SavingsMonthlyMinor: params.SavingsMonthlyMinor,
		SavingsAnnualMinor:  params.SavingsAnnualMinor,
	}
	if err := s.repo.UpsertBundlePricing(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving bundle pricing")
	}
	s.invalidate(ctx, currency.Code)
	return row, nil
}

func (s *Service) DeleteBundlePricing(ctx context.Context, bundleID uuid.UUID, currencyCode string) error {
	code := normalizeCurrencyCode(currencyCode)
	if err := s.repo.DeleteBundlePricing(ctx, bundleID, code); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting bundle pricing")
	}
	s.invalidate(ctx, code)
	return nil
}

// --- catalog reads ---

// GetCatalog returns the active-only resolved pricing tree for one currency,
// served from cache when present.
func (s *Service) GetCatalog(ctx context.Context, currencyCode string) (*Catalog, error) {
	code := normalizeCurrencyCode(currencyCode)
	if !validCurrencyCode(code) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code must be a 3-letter ISO code")
	}

	if s.cache != nil {
		if catalog, ok := s.cache.Get(ctx, code); ok {
			return catalog, nil
		}
	}

	currency, err := s.repo.FindCurrency(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up currency")
	}
	if currency == nil || !currency.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
	}

	data, err := s.repo.LoadCatalogData(ctx, *currency, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog data")
	}
	catalog := BuildCatalog(*data, s.masterCurrency, time.Now())
	if s.cache != nil {
		s.cache.Set(ctx, catalog)
	}
	return catalog, nil
}

// PreviewCatalog resolves the full pricing tree for one currency, including
// inactive entries, always from the database. Admin-only.
func (s *Service) PreviewCatalog(ctx context.Context, currencyCode string) (*Catalog, error) {
	code := normalizeCurrencyCode(currencyCode)
	if !validCurrencyCode(code) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "currency code must be a 3-letter ISO code")
	}
	currency, err := s.repo.FindCurrency(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up currency")
	}
	if currency == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "currency not found")
	}

	data, err := s.repo.LoadCatalogData(ctx, *currency, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading catalog data")
	}
	return BuildCatalog(*data, s.masterCurrency, time.Now()), nil
}
