package tiers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// Repository persists price tiers and keeps the owning product's
// has_price_tiers flag in step with them.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListByProduct returns the product's tiers ordered by min_quantity.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("min_quantity ASC").
		Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

// TiersForProduct satisfies Reader.
func (r *Repository) TiersForProduct(ctx context.Context, productID uuid.UUID) ([]models.PriceTier, error) {
	return r.ListByProduct(ctx, productID)
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PriceTier, error) {
	var tier models.PriceTier
	if err := r.db.WithContext(ctx).First(&tier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tier, nil
}

// FindProduct loads the tier owner without associations.
func (r *Repository) FindProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) Create(ctx context.Context, tier *models.PriceTier) error {
	return r.db.WithContext(ctx).Create(tier).Error
}

// Update writes the range and pricing columns, clearing nullable ones when nil.
func (r *Repository) Update(ctx context.Context, tier *models.PriceTier) error {
	return r.db.WithContext(ctx).
		Model(tier).
		Select("min_quantity", "max_quantity", "price", "discount_percentage", "updated_at").
		Updates(tier).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PriceTier{}).Error
}

// ReplaceForProduct swaps the product's whole tier set.
func (r *Repository) ReplaceForProduct(ctx context.Context, productID uuid.UUID, tiers []models.PriceTier) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.PriceTier{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	for i := range tiers {
		tiers[i].ProductID = productID
	}
	return tx.Create(&tiers).Error
}

// SyncProductFlag sets has_price_tiers to whether any tier remains and
// returns the new value.
func (r *Repository) SyncProductFlag(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PriceTier{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	hasTiers := count > 0
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("has_price_tiers", hasTiers).Error; err != nil {
		return false, err
	}
	return hasTiers, nil
}
