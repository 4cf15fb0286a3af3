// Package pricing resolves quantity-based tier prices and validates tier
// configurations. Everything here is pure: no I/O, no logging, and no
// function returns an error or panics for well-shaped input.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

// PriceResult is the outcome of resolving a unit price for a quantity.
type PriceResult struct {
	Price              decimal.Decimal   `json:"price"`
	Tier               *models.PriceTier `json:"tier"`
	Savings            decimal.Decimal   `json:"savings"`
	OriginalPrice      decimal.Decimal   `json:"original_price"`
	DiscountPercentage decimal.Decimal   `json:"discount_percentage"`
}

// LineTotal is the unit price times quantity.
func (r PriceResult) LineTotal(qty int) decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(qty)))
}

// TierCheckResult reports field-level problems for a single tier or input.
type TierCheckResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidationResult reports problems across a whole tier set. Warnings never
// affect IsValid.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OverlapResult lists the existing tiers a candidate range collides with.
type OverlapResult struct {
	HasOverlap       bool               `json:"has_overlap"`
	ConflictingTiers []models.PriceTier `json:"conflicting_tiers"`
	Errors           []string           `json:"errors"`
}

func checkResult(errs []string) TierCheckResult {
	if errs == nil {
		errs = []string{}
	}
	return TierCheckResult{IsValid: len(errs) == 0, Errors: errs}
}
