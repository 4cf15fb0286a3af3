package pricing

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

const (
	msgMinQuantity = "Minimum quantity must be at least 1"
	msgMaxQuantity = "Maximum quantity must be greater than or equal to minimum quantity"
	msgPrice       = "Price must be greater than 0"
	msgDiscount    = "Discount percentage must be between 0 and 100"
	msgPriceRange  = "Price must be between 0.01 and 9999999999.99"
	msgPriceScale  = "Price cannot have more than 2 decimal places"
	msgQuantityMax = "Quantity cannot exceed 2147483647"

	// MaxQuantity is the largest quantity a tier bound or stock count can
	// hold; the columns are Postgres integers.
	MaxQuantity = math.MaxInt32
)

// Prices are stored as numeric(12,2).
var (
	minPrice = decimal.New(1, -2)
	maxPrice = decimal.RequireFromString("9999999999.99")
)

// SanitizeTierData coerces form input into a tier. It never fails: an
// unparseable or zero min quantity becomes 1, an unparseable price becomes
// 0, and unparseable optional fields become nil.
func SanitizeTierData(raw RawTierInput) models.PriceTier {
	tier := models.PriceTier{MinQuantity: 1, Price: decimal.Zero}
	if n, ok := raw.MinQuantity.Int(); ok && n != 0 {
		tier.MinQuantity = n
	}
	if !raw.MaxQuantity.IsEmpty() {
		if n, ok := raw.MaxQuantity.Int(); ok {
			tier.MaxQuantity = &n
		}
	}
	if d, ok := raw.Price.Decimal(); ok {
		tier.Price = d
	}
	if !raw.DiscountPercentage.IsEmpty() {
		if d, ok := raw.DiscountPercentage.Decimal(); ok {
			tier.DiscountPercentage = &d
		}
	}
	return tier
}

// ValidateSingleTier checks one tier's fields without looking at its
// neighbours.
func ValidateSingleTier(tier models.PriceTier) TierCheckResult {
	return checkResult(tierFieldErrors(tier))
}

func tierFieldErrors(tier models.PriceTier) []string {
	var errs []string
	if tier.MinQuantity < 1 {
		errs = append(errs, msgMinQuantity)
	}
	if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
		errs = append(errs, msgMaxQuantity)
	}
	if tier.MinQuantity > MaxQuantity || (tier.MaxQuantity != nil && *tier.MaxQuantity > MaxQuantity) {
		errs = append(errs, msgQuantityMax)
	}
	if msg := priceError(tier.Price, msgPrice); msg != "" {
		errs = append(errs, msg)
	}
	if d := tier.DiscountPercentage; d != nil && (d.IsNegative() || d.GreaterThan(hundred)) {
		errs = append(errs, msgDiscount)
	}
	return errs
}

// CheckTierOverlap compares a candidate range with the tiers already stored
// for the product. An existing tier with the candidate's own ID is skipped
// so edits do not collide with themselves.
func CheckTierOverlap(candidate models.PriceTier, existing []models.PriceTier) OverlapResult {
	result := OverlapResult{ConflictingTiers: []models.PriceTier{}, Errors: []string{}}
	for _, tier := range existing {
		if candidate.ID != uuid.Nil && tier.ID == candidate.ID {
			continue
		}
		if !rangesOverlap(candidate, tier) {
			continue
		}
		result.HasOverlap = true
		result.ConflictingTiers = append(result.ConflictingTiers, tier)

		label := rangeLabel(tier)
		startInside := inRange(candidate.MinQuantity, tier)
		endInside := candidate.MaxQuantity != nil && inRange(*candidate.MaxQuantity, tier)
		if startInside {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Minimum quantity %d falls within the existing tier %s", candidate.MinQuantity, label))
		}
		if endInside {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Maximum quantity %d falls within the existing tier %s", *candidate.MaxQuantity, label))
		}
		if !startInside && !endInside {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Range %s covers the existing tier %s", rangeLabel(candidate), label))
		}
	}
	return result
}

// ValidatePriceTiers runs the full check over a product's tier set. Field
// problems and overlaps are errors; gaps, a first tier above 1 and a bounded
// top tier are warnings and never affect IsValid.
func ValidatePriceTiers(tiers []models.PriceTier) ValidationResult {
	result := ValidationResult{Errors: []string{}, Warnings: []string{}}
	sorted := sortedTiers(tiers)

	for i, tier := range sorted {
		for _, msg := range tierFieldErrors(tier) {
			result.Errors = append(result.Errors, fmt.Sprintf("Tier %d: %s", i+1, msg))
		}
	}

	for i := 0; i+1 < len(sorted); i++ {
		current, next := sorted[i], sorted[i+1]
		if overlapsNext(current, next) {
			result.Errors = append(result.Errors, fmt.Sprintf("Tier %d (%s) overlaps tier %d (%s)",
				i+1, rangeLabel(current), i+2, rangeLabel(next)))
			continue
		}
		if *current.MaxQuantity+1 < next.MinQuantity {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Quantities %d-%d are not covered by any tier",
				*current.MaxQuantity+1, next.MinQuantity-1))
		}
	}

	if len(sorted) > 0 {
		if first := sorted[0]; first.MinQuantity > 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("First tier starts at %d; smaller quantities use the base price", first.MinQuantity))
		}
		if last := sorted[len(sorted)-1]; last.MaxQuantity != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Last tier ends at %d; larger quantities use the base price", *last.MaxQuantity))
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// ValidateProductData checks the required product form fields.
func ValidateProductData(raw RawProductInput) TierCheckResult {
	var errs []string
	if strings.TrimSpace(raw.Name) == "" {
		errs = append(errs, "Product name is required")
	}
	price, ok := raw.Price.Decimal()
	if !ok {
		errs = append(errs, msgPrice)
	} else if msg := priceError(price, msgPrice); msg != "" {
		errs = append(errs, msg)
	}
	if !raw.StockQuantity.IsEmpty() {
		n, ok := raw.StockQuantity.Int()
		switch {
		case !ok || n < 0:
			errs = append(errs, "Stock quantity cannot be negative")
		case n > MaxQuantity:
			errs = append(errs, msgQuantityMax)
		}
	}
	if !raw.ComparePrice.IsEmpty() {
		const msgCompare = "Compare price must be greater than 0"
		compare, ok := raw.ComparePrice.Decimal()
		if !ok {
			errs = append(errs, msgCompare)
		} else if msg := priceError(compare, msgCompare); msg != "" {
			errs = append(errs, msg)
		}
	}
	return checkResult(errs)
}

// ValidateQuantity checks a requested quantity against available stock.
func ValidateQuantity(qty, stock int) TierCheckResult {
	var errs []string
	if qty < 1 {
		errs = append(errs, "Quantity must be at least 1")
	} else if qty > stock {
		errs = append(errs, fmt.Sprintf("Only %d left in stock", stock))
	}
	return checkResult(errs)
}

// priceError returns the first problem storing d as a price would hit, or
// "" when it fits.
func priceError(d decimal.Decimal, notPositive string) string {
	switch {
	case !d.IsPositive():
		return notPositive
	case d.LessThan(minPrice) || d.GreaterThan(maxPrice):
		return msgPriceRange
	case !d.Equal(d.Truncate(2)):
		return msgPriceScale
	}
	return ""
}

func rangesOverlap(a, b models.PriceTier) bool {
	if a.MaxQuantity != nil && *a.MaxQuantity < b.MinQuantity {
		return false
	}
	if b.MaxQuantity != nil && a.MinQuantity > *b.MaxQuantity {
		return false
	}
	return true
}

func inRange(qty int, tier models.PriceTier) bool {
	return qty >= tier.MinQuantity && (tier.MaxQuantity == nil || qty <= *tier.MaxQuantity)
}
