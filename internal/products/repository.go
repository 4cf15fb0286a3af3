package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// Repository reads products for pricing and the storefront.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads an active product with its category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
