package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceTier is a quantity range with its own unit price. A nil MaxQuantity
// means the range is open above; a nil DiscountPercentage is derived from
// the product's base price when needed.
type PriceTier struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID          uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	MinQuantity        int              `gorm:"column:min_quantity;not null" json:"min_quantity"`
	MaxQuantity        *int             `gorm:"column:max_quantity" json:"max_quantity"`
	Price              decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	DiscountPercentage *decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2)" json:"discount_percentage"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PriceTier) TableName() string { return "price_tiers" }

func (t *PriceTier) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
