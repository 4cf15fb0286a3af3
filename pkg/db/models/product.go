package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a storefront listing as the pricing and cart code reads it.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CategoryID    *uuid.UUID       `gorm:"column:category_id;type:uuid" json:"category_id,omitempty"`
	Name          string           `gorm:"column:name;not null" json:"name"`
	Slug          string           `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description   *string          `gorm:"column:description" json:"description,omitempty"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	ComparePrice  *decimal.Decimal `gorm:"column:compare_price;type:numeric(12,2)" json:"compare_price,omitempty"`
	StockQuantity int              `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	HasPriceTiers bool             `gorm:"column:has_price_tiers;not null;default:false" json:"has_price_tiers"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Category      *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PriceTiers    []PriceTier      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"price_tiers,omitempty"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
