package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₺"

// FormatPrice renders an amount the way the storefront shows lira:
// ₺1.250,50 (dot thousands separator, comma decimals).
func FormatPrice(amount decimal.Decimal) string {
	fixed := amount.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + CurrencySymbol + groupThousands(whole) + "," + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPriceRange renders "from – to" pricing for a product card. It reads
// the first and last tier of the sorted set rather than the global min/max,
// so callers that need the true lowest price should use LowestPrice.
func FormatPriceRange(tiers []models.PriceTier, basePrice decimal.Decimal) string {
	if len(tiers) == 0 {
		return FormatPrice(basePrice)
	}
	sorted := sortedTiers(tiers)
	first := sorted[0].Price
	last := sorted[len(sorted)-1].Price
	if first.Equal(last) {
		return FormatPrice(last)
	}
	return FormatPrice(last) + " – " + FormatPrice(basePrice)
}

// FormatTierDisplay renders a tier's quantity range, e.g. "10-49 adet" or "50+ adet".
func FormatTierDisplay(tier models.PriceTier) string {
	return rangeLabel(tier) + " adet"
}

// TierBadgeText renders the badge shown next to a tier: the rounded discount,
// or a generic wholesale label when the tier is not cheaper than base.
func TierBadgeText(tier models.PriceTier, basePrice decimal.Decimal) string {
	discount := tierDiscount(tier, basePrice)
	if !discount.IsPositive() {
		return "Toptan fiyat"
	}
	return fmt.Sprintf("%%%s indirim", discount.Round(0).String())
}

func rangeLabel(tier models.PriceTier) string {
	if tier.MaxQuantity == nil {
		return fmt.Sprintf("%d+", tier.MinQuantity)
	}
	if *tier.MaxQuantity == tier.MinQuantity {
		return fmt.Sprintf("%d", tier.MinQuantity)
	}
	return fmt.Sprintf("%d-%d", tier.MinQuantity, *tier.MaxQuantity)
}
