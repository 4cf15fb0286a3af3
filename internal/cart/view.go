package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/internal/pricing"
	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// LineView is a cart line with its effective unit price.
type LineView struct {
	ID                 uuid.UUID        `json:"id"`
	ProductID          uuid.UUID        `json:"product_id"`
	ProductName        string           `json:"product_name"`
	ProductSlug        string           `json:"product_slug"`
	Quantity           int              `json:"quantity"`
	BasePrice          decimal.Decimal  `json:"base_price"`
	AppliedPrice       *decimal.Decimal `json:"applied_price"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	LineTotal          decimal.Decimal  `json:"line_total"`
	FormattedUnitPrice string           `json:"formatted_unit_price"`
	FormattedLineTotal string           `json:"formatted_line_total"`
	HasPriceTiers      bool             `json:"has_price_tiers"`
	StockQuantity      int              `json:"stock_quantity"`
}

// CartView is the user's cart as displayed.
type CartView struct {
	Items             []LineView      `json:"items"`
	ItemCount         int             `json:"item_count"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Savings           decimal.Decimal `json:"savings"`
	FormattedSubtotal string          `json:"formatted_subtotal"`
}

// RecalculateResult summarises a bulk price refresh.
type RecalculateResult struct {
	Checked int       `json:"checked"`
	Updated int       `json:"updated"`
	Failed  int       `json:"failed"`
	Cart    *CartView `json:"cart"`
}

// EffectivePrice is the snapshotted applied price, or the product's current
// price when none was stored.
func EffectivePrice(item models.CartItem) decimal.Decimal {
	if item.AppliedPrice != nil {
		return *item.AppliedPrice
	}
	if item.Product != nil {
		return item.Product.Price
	}
	return decimal.Zero
}

func newLineView(item models.CartItem) LineView {
	unit := EffectivePrice(item)
	total := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
	view := LineView{
		ID:                 item.ID,
		ProductID:          item.ProductID,
		Quantity:           item.Quantity,
		AppliedPrice:       item.AppliedPrice,
		UnitPrice:          unit,
		LineTotal:          total,
		FormattedUnitPrice: pricing.FormatPrice(unit),
		FormattedLineTotal: pricing.FormatPrice(total),
	}
	if p := item.Product; p != nil {
		view.ProductName = p.Name
		view.ProductSlug = p.Slug
		view.BasePrice = p.Price
		view.HasPriceTiers = p.HasPriceTiers
		view.StockQuantity = p.StockQuantity
	}
	return view
}

func newCartView(items []models.CartItem) *CartView {
	view := &CartView{
		Items:    make([]LineView, 0, len(items)),
		Subtotal: decimal.Zero,
		Savings:  decimal.Zero,
	}
	for _, item := range items {
		line := newLineView(item)
		view.Items = append(view.Items, line)
		view.ItemCount += line.Quantity
		view.Subtotal = view.Subtotal.Add(line.LineTotal)
		if saved := line.BasePrice.Sub(line.UnitPrice); saved.IsPositive() {
			view.Savings = view.Savings.Add(saved.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	view.FormattedSubtotal = pricing.FormatPrice(view.Subtotal)
	return view
}
