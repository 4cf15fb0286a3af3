package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one cart line. AppliedPrice is the unit price snapshotted when
// the line was added or last recalculated; nil means the product's current
// price applies.
type CartItem struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID        `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_items_user_product" json:"user_id"`
	ProductID    uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_user_product" json:"product_id"`
	Quantity     int              `gorm:"column:quantity;not null" json:"quantity"`
	AppliedPrice *decimal.Decimal `gorm:"column:applied_price;type:numeric(12,2)" json:"applied_price,omitempty"`
	Product      *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CartItem) TableName() string { return "cart_items" }

func (c *CartItem) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// All lists the models owned by this service, in dependency order.
func All() []any {
	return []any{&Category{}, &Product{}, &PriceTier{}, &CartItem{}}
}
