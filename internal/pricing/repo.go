package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propdock/propdock-backend/pkg/db/models"
)

// Repository handles pricing catalog persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCurrency(ctx context.Context, currency *models.Currency) error
	UpdateCurrency(ctx context.Context, currency *models.Currency) error
	DeleteCurrency(ctx context.Context, code string) error
	ListCurrencies(ctx context.Context, activeOnly bool) ([]models.Currency, error)
	FindCurrency(ctx context.Context, code string) (*models.Currency, error)
	CountPricingRowsForCurrency(ctx context.Context, code string) (int64, error)

	CreateTier(ctx context.Context, tier *models.SubscriptionTier) error
	UpdateTier(ctx context.Context, tier *models.SubscriptionTier) error
	DeleteTier(ctx context.Context, id uuid.UUID) error
	ListTiers(ctx context.Context, activeOnly bool) ([]models.SubscriptionTier, error)
	FindTier(ctx context.Context, id uuid.UUID) (*models.SubscriptionTier, error)
	UpsertTierPricing(ctx context.Context, row *models.TierPricing) error
	DeleteTierPricing(ctx context.Context, tierID uuid.UUID, currencyCode string) error
	ListTierPricing(ctx context.Context, tierID uuid.UUID) ([]models.TierPricing, error)

	CreatePack(ctx context.Context, pack *models.AddonPack) error
	UpdatePack(ctx context.Context, pack *models.AddonPack) error
	DeletePack(ctx context.Context, id uuid.UUID) error
	CountPackPricingRows(ctx context.Context, packID uuid.UUID) (int64, error)
	ListPacks(ctx context.Context, activeOnly bool) ([]models.AddonPack, error)
	FindPack(ctx context.Context, id uuid.UUID) (*models.AddonPack, error)
	UpsertPackPricing(ctx context.Context, row *models.AddonPackPricing) error
	DeletePackPricing(ctx context.Context, packID, tierID uuid.UUID, currencyCode string) error
	ListPackPricing(ctx context.Context, packID uuid.UUID) ([]models.AddonPackPricing, error)
	RecomputePackTotals(ctx context.Context, packID uuid.UUID, inspectionQuantity int) error

	CreateInspectionType(ctx context.Context, typ *models.InspectionType) error
	UpdateInspectionType(ctx context.Context, typ *models.InspectionType) error
	DeleteInspectionType(ctx context.Context, id uuid.UUID) error
	ListInspectionTypes(ctx context.Context, activeOnly bool) ([]models.InspectionType, error)
	FindInspectionType(ctx context.Context, id uuid.UUID) (*models.InspectionType, error)
	UpsertInspectionTypePricing(ctx context.Context, row *models.InspectionTypePricing) error
	DeleteInspectionTypePricing(ctx context.Context, typeID, tierID uuid.UUID, currencyCode string) error

	CreateModule(ctx context.Context, module *models.Module) error
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModule(ctx context.Context, id uuid.UUID) error
	ListModules(ctx context.Context) ([]models.Module, error)
	FindModule(ctx context.Context, id uuid.UUID) (*models.Module, error)
	UpsertModulePricing(ctx context.Context, row *models.ModulePricing) error
	DeleteModulePricing(ctx context.Context, moduleID uuid.UUID, currencyCode string) error
	CreateModuleLimit(ctx context.Context, limit *models.ModuleLimit) error
	UpdateModuleLimit(ctx context.Context, limit *models.ModuleLimit) error
	DeleteModuleLimit(ctx context.Context, id uuid.UUID) error
	FindModuleLimit(ctx context.Context, id uuid.UUID) (*models.ModuleLimit, error)
	ListModuleLimits(ctx context.Context, moduleID uuid.UUID) ([]models.ModuleLimit, error)

	CreateBundle(ctx context.Context, bundle *models.ModuleBundle) error
	UpdateBundle(ctx context.Context, bundle *models.ModuleBundle) error
	DeleteBundle(ctx context.Context, id uuid.UUID) error
	ListBundles(ctx context.Context, activeOnly bool) ([]models.ModuleBundle, error)
	FindBundle(ctx context.Context, id uuid.UUID) (*models.ModuleBundle, error)
	AttachBundleModule(ctx context.Context, bundleID, moduleID uuid.UUID) error
	DetachBundleModule(ctx context.Context, bundleID, moduleID uuid.UUID) error
	UpsertBundlePricing(ctx context.Context, row *models.BundlePricing) error
	DeleteBundlePricing(ctx context.Context, bundleID uuid.UUID, currencyCode string) error

	LoadCatalogData(ctx context.Context, currency models.Currency, activeOnly bool) (*CatalogData, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a pricing repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCurrency(ctx context.Context, currency *models.Currency) error {
	return r.db.WithContext(ctx).Create(currency).Error
}

func (r *repository) UpdateCurrency(ctx context.Context, currency *models.Currency) error {
	return r.db.WithContext(ctx).Save(currency).Error
}

func (r *repository) DeleteCurrency(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Delete(&models.Currency{}, "code = ?", code).Error
}

func (r *repository) ListCurrencies(ctx context.Context, activeOnly bool) ([]models.Currency, error) {
	query := r.db.WithContext(ctx).Model(&models.Currency{})
	if activeOnly {
		query = query.Where("active")
	}
	var currencies []models.Currency
	if err := query.Order("code ASC").Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

func (r *repository) FindCurrency(ctx context.Context, code string) (*models.Currency, error) {
	if code == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var currency models.Currency
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&currency).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &currency, nil
}

// CountPricingRowsForCurrency totals every pricing row referencing the
// currency. A nonzero count blocks currency deletion.
func (r *repository) CountPricingRowsForCurrency(ctx context.Context, code string) (int64, error) {
	var total int64
	counts := []struct {
		model any
		where string
	}{
		{&models.TierPricing{}, "currency_code = ?"},
		{&models.AddonPackPricing{}, "currency_code = ?"},
		{&models.InspectionTypePricing{}, "currency_code = ?"},
		{&models.ModulePricing{}, "currency_code = ?"},
		{&models.BundlePricing{}, "currency_code = ?"},
		{&models.ModuleLimit{}, "overage_currency = ?"},
	}
	for _, c := range counts {
		var n int64
		if err := r.db.WithContext(ctx).Model(c.model).Where(c.where, code).Count(&n).Error; err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r *repository) CreateTier(ctx context.Context, tier *models.SubscriptionTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

func (r *repository) UpdateTier(ctx context.Context, tier *models.SubscriptionTier) error {
	return r.db.WithContext(ctx).Save(tier).Error
}

func (r *repository) DeleteTier(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SubscriptionTier{}, "id = ?", id).Error
}

func (r *repository) ListTiers(ctx context.Context, activeOnly bool) ([]models.SubscriptionTier, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionTier{})
	if activeOnly {
		query = query.Where("active")
	}
	var tiers []models.SubscriptionTier
	if err := query.Order("rank ASC, name ASC").Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) FindTier(ctx context.Context, id uuid.UUID) (*models.SubscriptionTier, error) {
	var tier models.SubscriptionTier
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tier).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

func (r *repository) UpsertTierPricing(ctx context.Context, row *models.TierPricing) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tier_id"}, {Name: "currency_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price_monthly_minor", "price_annual_minor", "price_per_inspection_minor", "updated_at",
		}),
	}).Create(row).Error
}

func (r *repository) DeleteTierPricing(ctx context.Context, tierID uuid.UUID, currencyCode string) error {
	return r.db.WithContext(ctx).
		Delete(&models.TierPricing{}, "tier_id = ? AND currency_code = ?", tierID, currencyCode).Error
}

func (r *repository) ListTierPricing(ctx context.Context, tierID uuid.UUID) ([]models.TierPricing, error) {
	var rows []models.TierPricing
	if err := r.db.WithContext(ctx).
		Where("tier_id = ?", tierID).
		Order("currency_code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CreatePack(ctx context.Context, pack *models.AddonPack) error {
	return r.db.WithContext(ctx).Create(pack).Error
}

func (r *repository) UpdatePack(ctx context.Context, pack *models.AddonPack) error {
	return r.db.WithContext(ctx).Save(pack).Error
}

func (r *repository) DeletePack(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AddonPack{}, "id = ?", id).Error
}

func (r *repository) CountPackPricingRows(ctx context.Context, packID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AddonPackPricing{}).
		Where("pack_id = ?", packID).
		Count(&count).Error
	return count, err
}

func (r *repository) ListPacks(ctx context.Context, activeOnly bool) ([]models.AddonPack, error) {
	query := r.db.WithContext(ctx).Model(&models.AddonPack{})
	if activeOnly {
		query = query.Where("active")
	}
	var packs []models.AddonPack
	if err := query.Order("rank ASC, inspection_quantity ASC").Find(&packs).Error; err != nil {
		return nil, err
	}
	return packs, nil
}

func (r *repository) FindPack(ctx context.Context, id uuid.UUID) (*models.AddonPack, error) {
	var pack models.AddonPack
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pack).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &pack, nil
}

func (r *repository) UpsertPackPricing(ctx context.Context, row *models.AddonPackPricing) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pack_id"}, {Name: "tier_id"}, {Name: "currency_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price_per_inspection_minor", "total_pack_price_minor", "updated_at",
		}),
	}).Create(row).Error
}

func (r *repository) DeletePackPricing(ctx context.Context, packID, tierID uuid.UUID, currencyCode string) error {
	return r.db.WithContext(ctx).
		Delete(&models.AddonPackPricing{},
			"pack_id = ? AND tier_id = ? AND currency_code = ?", packID, tierID, currencyCode).Error
}

func (r *repository) ListPackPricing(ctx context.Context, packID uuid.UUID) ([]models.AddonPackPricing, error) {
	var rows []models.AddonPackPricing
	if err := r.db.WithContext(ctx).
		Where("pack_id = ?", packID).
		Order("currency_code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RecomputePackTotals re-derives the stored total on every pricing row of a
// pack after its inspection quantity changed.
func (r *repository) RecomputePackTotals(ctx context.Context, packID uuid.UUID, inspectionQuantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.AddonPackPricing{}).
		Where("pack_id = ?", packID).
		Update("total_pack_price_minor", gorm.Expr("price_per_inspection_minor * ?", inspectionQuantity)).Error
}

func (r *repository) CreateInspectionType(ctx context.Context, typ *models.InspectionType) error {
	return r.db.WithContext(ctx).Create(typ).Error
}

func (r *repository) UpdateInspectionType(ctx context.Context, typ *models.InspectionType) error {
	return r.db.WithContext(ctx).Save(typ).Error
}

func (r *repository) DeleteInspectionType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InspectionTypePricing{}, "type_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InspectionType{}, "id = ?", id).Error
	})
}

func (r *repository) ListInspectionTypes(ctx context.Context, activeOnly bool) ([]models.InspectionType, error) {
	query := r.db.WithContext(ctx).Model(&models.InspectionType{})
	if activeOnly {
		query = query.Where("active")
	}
	var types []models.InspectionType
	if err := query.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repository) FindInspectionType(ctx context.Context, id uuid.UUID) (*models.InspectionType, error) {
	var typ models.InspectionType
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&typ).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &typ, nil
}

func (r *repository) UpsertInspectionTypePricing(ctx context.Context, row *models.InspectionTypePricing) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type_id"}, {Name: "tier_id"}, {Name: "currency_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_minor", "updated_at"}),
	}).Create(row).Error
}

func (r *repository) DeleteInspectionTypePricing(ctx context.Context, typeID, tierID uuid.UUID, currencyCode string) error {
	return r.db.WithContext(ctx).
		Delete(&models.InspectionTypePricing{},
			"type_id = ? AND tier_id = ? AND currency_code = ?", typeID, tierID, currencyCode).Error
}

func (r *repository) CreateModule(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *repository) UpdateModule(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Save(module).Error
}

func (r *repository) DeleteModule(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ModulePricing{}, "module_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ModuleLimit{}, "module_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM bundle_modules WHERE module_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Module{}, "id = ?", id).Error
	})
}

func (r *repository) ListModules(ctx context.Context) ([]models.Module, error) {
	var modules []models.Module
	if err := r.db.WithContext(ctx).
		Order("display_order ASC, name ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *repository) FindModule(ctx context.Context, id uuid.UUID) (*models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&module).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &module, nil
}

func (r *repository) UpsertModulePricing(ctx context.Context, row *models.ModulePricing) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "module_id"}, {Name: "currency_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_monthly_minor", "price_annual_minor", "updated_at"}),
	}).Create(row).Error
}

func (r *repository) DeleteModulePricing(ctx context.Context, moduleID uuid.UUID, currencyCode string) error {
	return r.db.WithContext(ctx).
		Delete(&models.ModulePricing{}, "module_id = ? AND currency_code = ?", moduleID, currencyCode).Error
}

func (r *repository) CreateModuleLimit(ctx context.Context, limit *models.ModuleLimit) error {
	return r.db.WithContext(ctx).Create(limit).Error
}

func (r *repository) UpdateModuleLimit(ctx context.Context, limit *models.ModuleLimit) error {
	return r.db.WithContext(ctx).Save(limit).Error
}

func (r *repository) DeleteModuleLimit(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ModuleLimit{}, "id = ?", id).Error
}

func (r *repository) FindModuleLimit(ctx context.Context, id uuid.UUID) (*models.ModuleLimit, error) {
	var limit models.ModuleLimit
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&limit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &limit, nil
}

func (r *repository) ListModuleLimits(ctx context.Context, moduleID uuid.UUID) ([]models.ModuleLimit, error) {
	var limits []models.ModuleLimit
	if err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("limit_type ASC").
		Find(&limits).Error; err != nil {
		return nil, err
	}
	return limits, nil
}

func (r *repository) CreateBundle(ctx context.Context, bundle *models.ModuleBundle) error {
	return r.db.WithContext(ctx).Create(bundle).Error
}

func (r *repository) UpdateBundle(ctx context.Context, bundle *models.ModuleBundle) error {
	return r.db.WithContext(ctx).Omit("Modules").Save(bundle).Error
}

func (r *repository) DeleteBundle(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BundlePricing{}, "bundle_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM bundle_modules WHERE module_bundle_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ModuleBundle{}, "id = ?", id).Error
	})
}

func (r *repository) ListBundles(ctx context.Context, activeOnly bool) ([]models.ModuleBundle, error) {
	query := r.db.WithContext(ctx).Model(&models.ModuleBundle{}).Preload("Modules")
	if activeOnly {
		query = query.Where("active")
	}
	var bundles []models.ModuleBundle
	if err := query.Order("name ASC").Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

func (r *repository) FindBundle(ctx context.Context, id uuid.UUID) (*models.ModuleBundle, error) {
	var bundle models.ModuleBundle
	if err := r.db.WithContext(ctx).
		Preload("Modules").
		Where("id = ?", id).
		First(&bundle).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bundle, nil
}

func (r *repository) AttachBundleModule(ctx context.Context, bundleID, moduleID uuid.UUID) error {
	bundle := models.ModuleBundle{ID: bundleID}
	return r.db.WithContext(ctx).
		Model(&bundle).
		Association("Modules").
		Append(&models.Module{ID: moduleID})
}

func (r *repository) DetachBundleModule(ctx context.Context, bundleID, moduleID uuid.UUID) error {
	bundle := models.ModuleBundle{ID: bundleID}
	return r.db.WithContext(ctx).
		Model(&bundle).
		Association("Modules").
		Delete(&models.Module{ID: moduleID})
}

func (r *repository) UpsertBundlePricing(ctx context.Context, row *models.BundlePricing) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bundle_id"}, {Name: "currency_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price_monthly_minor", "price_annual_minor",
			"savings_monthly_minor", "savings_annual_minor", "updated_at",
		}),
	}).Create(row).Error
}

func (r *repository) DeleteBundlePricing(ctx context.Context, bundleID uuid.UUID, currencyCode string) error {
	return r.db.WithContext(ctx).
		Delete(&models.BundlePricing{}, "bundle_id = ? AND currency_code = ?", bundleID, currencyCode).Error
}

// LoadCatalogData fetches every row needed to build the catalog for one
// currency. Pricing rows are filtered by currency server side; tiers keep all
// their rows so the fallback decision stays in the resolver.
func (r *repository) LoadCatalogData(ctx context.Context, currency models.Currency, activeOnly bool) (*CatalogData, error) {
	data := &CatalogData{Currency: currency}

	var err error
	if data.Tiers, err = r.ListTiers(ctx, activeOnly); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("currency_code = ?", currency.Code).
		Find(&data.TierPricing).Error; err != nil {
		return nil, err
	}
	if data.Packs, err = r.ListPacks(ctx, activeOnly); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("currency_code = ?", currency.Code).
		Find(&data.PackPricing).Error; err != nil {
		return nil, err
	}
	if data.InspectionTypes, err = r.ListInspectionTypes(ctx, activeOnly); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("currency_code = ?", currency.Code).
		Find(&data.InspectionTypePricing).Error; err != nil {
		return nil, err
	}
	if data.Modules, err = r.ListModules(ctx); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("currency_code = ?", currency.Code).
		Find(&data.ModulePricing).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("overage_currency = ?", currency.Code).
		Find(&data.ModuleLimits).Error; err != nil {
		return nil, err
	}
	if data.Bundles, err = r.ListBundles(ctx, activeOnly); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("currency_code = ?", currency.Code).
		Find(&data.BundlePricing).Error; err != nil {
		return nil, err
	}

	return data, nil
}
