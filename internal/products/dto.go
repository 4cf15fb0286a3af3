package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/internal/pricing"
	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// ProductDTO represents the storefront product payload.
type ProductDTO struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Description    *string          `json:"description,omitempty"`
	Price          decimal.Decimal  `json:"price"`
	FormattedPrice string           `json:"formatted_price"`
	ComparePrice   *decimal.Decimal `json:"compare_price,omitempty"`
	StockQuantity  int              `json:"stock_quantity"`
	HasPriceTiers  bool             `json:"has_price_tiers"`
	Category       *CategoryDTO     `json:"category,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// TierDTO is a price tier with its display strings.
type TierDTO struct {
	ID                 uuid.UUID       `json:"id"`
	MinQuantity        int             `json:"min_quantity"`
	MaxQuantity        *int            `json:"max_quantity"`
	Price              decimal.Decimal `json:"price"`
	FormattedPrice     string          `json:"formatted_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Display            string          `json:"display"`
	Badge              string          `json:"badge"`
}

// TierListDTO is the tier table shown on a product page.
type TierListDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	BasePrice   decimal.Decimal `json:"base_price"`
	LowestPrice decimal.Decimal `json:"lowest_price"`
	PriceRange  string          `json:"price_range"`
	Tiers       []TierDTO       `json:"tiers"`
	Degraded    bool            `json:"degraded,omitempty"`
}

// QuoteDTO is the resolved price for a quantity of one product.
type QuoteDTO struct {
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	LineTotal          decimal.Decimal `json:"line_total"`
	Savings            decimal.Decimal `json:"savings"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	FormattedUnitPrice string          `json:"formatted_unit_price"`
	FormattedTotal     string          `json:"formatted_total"`
	AppliedTier        *TierDTO        `json:"applied_tier"`
	TierListDTO
}

func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:             product.ID,
		Name:           product.Name,
		Slug:           product.Slug,
		Description:    product.Description,
		Price:          product.Price,
		FormattedPrice: pricing.FormatPrice(product.Price),
		ComparePrice:   product.ComparePrice,
		StockQuantity:  product.StockQuantity,
		HasPriceTiers:  product.HasPriceTiers,
		UpdatedAt:      product.UpdatedAt,
	}
	if product.Category != nil {
		dto.Category = &CategoryDTO{
			ID:   product.Category.ID,
			Name: product.Category.Name,
			Slug: product.Category.Slug,
		}
	}
	return dto
}

func newTierDTO(tier models.PriceTier, basePrice decimal.Decimal) TierDTO {
	return TierDTO{
		ID:                 tier.ID,
		MinQuantity:        tier.MinQuantity,
		MaxQuantity:        tier.MaxQuantity,
		Price:              tier.Price,
		FormattedPrice:     pricing.FormatPrice(tier.Price),
		DiscountPercentage: pricing.DiscountPercentageForQuantity(basePrice, []models.PriceTier{tier}, tier.MinQuantity),
		Display:            pricing.FormatTierDisplay(tier),
		Badge:              pricing.TierBadgeText(tier, basePrice),
	}
}

func newTierListDTO(product *models.Product, tiers []models.PriceTier, degraded bool) TierListDTO {
	list := TierListDTO{
		ProductID:   product.ID,
		BasePrice:   product.Price,
		LowestPrice: pricing.LowestPrice(tiers, product.Price),
		PriceRange:  pricing.FormatPriceRange(tiers, product.Price),
		Tiers:       make([]TierDTO, 0, len(tiers)),
		Degraded:    degraded,
	}
	for _, tier := range tiers {
		list.Tiers = append(list.Tiers, newTierDTO(tier, product.Price))
	}
	return list
}
