package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

var hundred = decimal.NewFromInt(100)

// TierForQuantity returns the tier whose range contains qty, or nil. When
// ranges overlap the tier with the highest applicable min quantity wins.
func TierForQuantity(tiers []models.PriceTier, qty int) *models.PriceTier {
	if qty <= 0 || len(tiers) == 0 {
		return nil
	}
	var selected *models.PriceTier
	for _, tier := range sortedTiers(tiers) {
		if tier.MinQuantity <= qty && (tier.MaxQuantity == nil || *tier.MaxQuantity >= qty) {
			copy := tier
			selected = &copy
		}
	}
	return selected
}

// CalculatePriceByQuantity resolves the unit price for qty. Without a
// matching tier the base price is returned unchanged with zero savings.
func CalculatePriceByQuantity(basePrice decimal.Decimal, tiers []models.PriceTier, qty int) PriceResult {
	tier := TierForQuantity(tiers, qty)
	if tier == nil {
		return PriceResult{
			Price:              basePrice,
			Savings:            decimal.Zero,
			OriginalPrice:      basePrice,
			DiscountPercentage: decimal.Zero,
		}
	}

	savings := basePrice.Sub(tier.Price).Mul(decimal.NewFromInt(int64(qty)))
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	return PriceResult{
		Price:              tier.Price,
		Tier:               tier,
		Savings:            savings,
		OriginalPrice:      basePrice,
		DiscountPercentage: tierDiscount(*tier, basePrice),
	}
}

// LowestPrice is the minimum of the base price and every tier price.
func LowestPrice(tiers []models.PriceTier, basePrice decimal.Decimal) decimal.Decimal {
	lowest := basePrice
	for _, tier := range tiers {
		if tier.Price.LessThan(lowest) {
			lowest = tier.Price
		}
	}
	return lowest
}

// HasPriceTiers reports whether tier lookup should be attempted for product.
func HasPriceTiers(product *models.Product) bool {
	return product != nil && product.HasPriceTiers
}

func SavingsForQuantity(basePrice decimal.Decimal, tiers []models.PriceTier, qty int) decimal.Decimal {
	return CalculatePriceByQuantity(basePrice, tiers, qty).Savings
}

func DiscountPercentageForQuantity(basePrice decimal.Decimal, tiers []models.PriceTier, qty int) decimal.Decimal {
	return CalculatePriceByQuantity(basePrice, tiers, qty).DiscountPercentage
}

// ValidateTiers is the lightweight single-pass check used where warnings are
// not wanted: field sanity per tier and overlap between neighbours.
func ValidateTiers(tiers []models.PriceTier) TierCheckResult {
	var errs []string
	sorted := sortedTiers(tiers)
	for i, tier := range sorted {
		if tier.MinQuantity < 1 {
			errs = append(errs, fmt.Sprintf("Tier %d: minimum quantity must be at least 1", i+1))
		}
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			errs = append(errs, fmt.Sprintf("Tier %d: maximum quantity must not be less than minimum quantity", i+1))
		}
		if !tier.Price.IsPositive() {
			errs = append(errs, fmt.Sprintf("Tier %d: price must be greater than 0", i+1))
		}
		if i+1 < len(sorted) && overlapsNext(tier, sorted[i+1]) {
			errs = append(errs, fmt.Sprintf("Tier %d and tier %d overlap", i+1, i+2))
		}
	}
	return checkResult(errs)
}

// tierDiscount is the stored percentage when present, otherwise derived from
// base and tier price. Never negative.
func tierDiscount(tier models.PriceTier, basePrice decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch {
	case tier.DiscountPercentage != nil:
		discount = *tier.DiscountPercentage
	case basePrice.IsPositive():
		discount = basePrice.Sub(tier.Price).Div(basePrice).Mul(hundred).Round(2)
	default:
		return decimal.Zero
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// overlapsNext reports whether current reaches into next, assuming
// current.MinQuantity <= next.MinQuantity.
func overlapsNext(current, next models.PriceTier) bool {
	if current.MaxQuantity == nil {
		return true
	}
	return *current.MaxQuantity >= next.MinQuantity
}

func sortedTiers(tiers []models.PriceTier) []models.PriceTier {
	out := make([]models.PriceTier, len(tiers))
	copy(out, tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinQuantity < out[j].MinQuantity
	})
	return out
}
