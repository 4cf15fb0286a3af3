package pricing

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yukselticaret/trendyshop-backend/pkg/db/models"
)

func TestCheckTierOverlap(t *testing.T) {
	t.Parallel()

	existing := []models.PriceTier{tier(t, 1, intPtr(9), "100")}

	res := CheckTierOverlap(models.PriceTier{MinQuantity: 5, MaxQuantity: intPtr(15)}, existing)
	if !res.HasOverlap {
		t.Fatal("expected overlap for 5-15 against 1-9")
	}
	if len(res.ConflictingTiers) != 1 || res.ConflictingTiers[0].ID != existing[0].ID {
		t.Fatalf("unexpected conflicts: %+v", res.ConflictingTiers)
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Minimum quantity 5") {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	res = CheckTierOverlap(models.PriceTier{MinQuantity: 10, MaxQuantity: intPtr(20)}, existing)
	if res.HasOverlap || len(res.Errors) != 0 || len(res.ConflictingTiers) != 0 {
		t.Fatalf("expected adjacent tier to pass, got %+v", res)
	}
}

func TestCheckTierOverlapMessages(t *testing.T) {
	t.Parallel()

	existing := []models.PriceTier{tier(t, 10, intPtr(20), "90")}

	res := CheckTierOverlap(models.PriceTier{MinQuantity: 12, MaxQuantity: intPtr(18)}, existing)
	if len(res.Errors) != 2 {
		t.Fatalf("expected start and end messages, got %v", res.Errors)
	}

	res = CheckTierOverlap(models.PriceTier{MinQuantity: 1, MaxQuantity: intPtr(15)}, existing)
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Maximum quantity 15") {
		t.Fatalf("expected end message, got %v", res.Errors)
	}

	res = CheckTierOverlap(models.PriceTier{MinQuantity: 5}, existing)
	if !res.HasOverlap || len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "5+ covers") {
		t.Fatalf("expected enveloping message, got %v", res.Errors)
	}
}

func TestCheckTierOverlapUnboundedExisting(t *testing.T) {
	t.Parallel()

	existing := []models.PriceTier{tier(t, 50, nil, "80")}
	res := CheckTierOverlap(models.PriceTier{MinQuantity: 100, MaxQuantity: intPtr(200)}, existing)
	if !res.HasOverlap || len(res.Errors) != 2 {
		t.Fatalf("expected both ends inside 50+, got %+v", res)
	}
	res = CheckTierOverlap(models.PriceTier{MinQuantity: 10, MaxQuantity: intPtr(49)}, existing)
	if res.HasOverlap {
		t.Fatalf("expected no overlap below 50, got %+v", res)
	}
}

func TestCheckTierOverlapSkipsSelf(t *testing.T) {
	t.Parallel()

	existing := []models.PriceTier{tier(t, 1, intPtr(9), "100"), tier(t, 10, nil, "90")}
	edited := existing[0]
	edited.MaxQuantity = intPtr(8)

	if res := CheckTierOverlap(edited, existing); res.HasOverlap {
		t.Fatalf("tier must not conflict with itself: %+v", res)
	}

	edited.MaxQuantity = intPtr(12)
	if res := CheckTierOverlap(edited, existing); !res.HasOverlap || res.ConflictingTiers[0].ID != existing[1].ID {
		t.Fatalf("expected conflict with the next tier, got %+v", res)
	}
}

func TestValidatePriceTiersGapIsWarning(t *testing.T) {
	t.Parallel()

	tiers := []models.PriceTier{
		tier(t, 10, nil, "80"),
		tier(t, 1, intPtr(5), "100"),
	}
	res := ValidatePriceTiers(tiers)
	if !res.IsValid || len(res.Errors) != 0 {
		t.Fatalf("expected valid set, got %+v", res)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "Quantities 6-9 are not covered by any tier" {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestValidatePriceTiersOverlapIsError(t *testing.T) {
	t.Parallel()

	tiers := []models.PriceTier{
		tier(t, 1, intPtr(10), "100"),
		tier(t, 10, nil, "80"),
	}
	res := ValidatePriceTiers(tiers)
	if res.IsValid || len(res.Errors) != 1 {
		t.Fatalf("expected single overlap error, got %+v", res)
	}
	if !strings.Contains(res.Errors[0], "overlaps") {
		t.Fatalf("unexpected error: %q", res.Errors[0])
	}
}

func TestValidatePriceTiersFieldErrors(t *testing.T) {
	t.Parallel()

	over := decimal.NewFromInt(120)
	bad := tier(t, 5, intPtr(3), "0")
	bad.DiscountPercentage = &over

	res := ValidatePriceTiers([]models.PriceTier{tier(t, 0, intPtr(2), "100"), bad})
	if res.IsValid {
		t.Fatal("expected invalid set")
	}
	want := []string{
		"Tier 1: " + msgMinQuantity,
		"Tier 2: " + msgMaxQuantity,
		"Tier 2: " + msgPrice,
		"Tier 2: " + msgDiscount,
	}
	if len(res.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), res.Errors)
	}
	for i := range want {
		if res.Errors[i] != want[i] {
			t.Fatalf("error %d: expected %q, got %q", i, want[i], res.Errors[i])
		}
	}
}

func TestValidatePriceTiersEdgeWarnings(t *testing.T) {
	t.Parallel()

	tiers := []models.PriceTier{
		tier(t, 5, intPtr(9), "100"),
		tier(t, 10, intPtr(49), "90"),
	}
	res := ValidatePriceTiers(tiers)
	if !res.IsValid {
		t.Fatalf("warnings must not invalidate: %+v", res)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected first-tier and last-tier warnings, got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "starts at 5") || !strings.Contains(res.Warnings[1], "ends at 49") {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestValidatePriceTiersEmpty(t *testing.T) {
	t.Parallel()

	res := ValidatePriceTiers(nil)
	if !res.IsValid || res.Errors == nil || res.Warnings == nil {
		t.Fatalf("expected valid result with empty lists, got %+v", res)
	}
	body, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"is_valid":true,"errors":[],"warnings":[]}` {
		t.Fatalf("unexpected json %s", body)
	}
}

func TestValidateSingleTier(t *testing.T) {
	t.Parallel()

	if res := ValidateSingleTier(tier(t, 1, intPtr(9), "100")); !res.IsValid || len(res.Errors) != 0 {
		t.Fatalf("expected valid tier, got %+v", res)
	}
	res := ValidateSingleTier(models.PriceTier{MinQuantity: -1, Price: decimal.NewFromInt(-5)})
	if res.IsValid || len(res.Errors) != 2 {
		t.Fatalf("expected min and price errors, got %+v", res)
	}
}

func TestSanitizeTierDataMalformed(t *testing.T) {
	t.Parallel()

	got := SanitizeTierData(RawTierInput{
		MinQuantity: FormString("abc"),
		Price:       FormString(""),
	})
	if got.MinQuantity != 1 {
		t.Fatalf("expected min quantity 1, got %d", got.MinQuantity)
	}
	if got.MaxQuantity != nil {
		t.Fatalf("expected nil max quantity, got %d", *got.MaxQuantity)
	}
	if !got.Price.IsZero() {
		t.Fatalf("expected zero price, got %s", got.Price)
	}
	if got.DiscountPercentage != nil {
		t.Fatalf("expected nil discount, got %s", got.DiscountPercentage)
	}
	if got.ID != uuid.Nil {
		t.Fatalf("sanitize must not assign an id")
	}
}

func TestSanitizeTierDataParsesLeadingNumbers(t *testing.T) {
	t.Parallel()

	got := SanitizeTierData(RawTierInput{
		MinQuantity:        FormString(" 10 adet"),
		MaxQuantity:        FormString("49.7"),
		Price:              FormString("89,90"),
		DiscountPercentage: FormString("10.5%"),
	})
	if got.MinQuantity != 10 {
		t.Fatalf("expected min 10, got %d", got.MinQuantity)
	}
	if got.MaxQuantity == nil || *got.MaxQuantity != 49 {
		t.Fatalf("expected max 49, got %v", got.MaxQuantity)
	}
	if !got.Price.Equal(dec(t, "89.90")) {
		t.Fatalf("expected price 89.90, got %s", got.Price)
	}
	if got.DiscountPercentage == nil || !got.DiscountPercentage.Equal(dec(t, "10.5")) {
		t.Fatalf("expected discount 10.5, got %v", got.DiscountPercentage)
	}
}

func TestSanitizeThenValidateRoundTrip(t *testing.T) {
	t.Parallel()

	var raw RawTierInput
	body := `{"min_quantity":"10","max_quantity":49,"price":"90.00","discount_percentage":null}`
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	res := ValidateSingleTier(SanitizeTierData(raw))
	if !res.IsValid || len(res.Errors) != 0 {
		t.Fatalf("expected sanitized tier to validate, got %+v", res)
	}
}

func TestValidateProductData(t *testing.T) {
	t.Parallel()

	ok := RawProductInput{Name: "Pamuk Tişört", Price: FormString("149,90"), StockQuantity: FormNumber(12)}
	if res := ValidateProductData(ok); !res.IsValid {
		t.Fatalf("expected valid product, got %v", res.Errors)
	}

	bad := RawProductInput{
		Name:          "  ",
		Price:         FormString("abc"),
		StockQuantity: FormString("-1"),
		ComparePrice:  FormString("0"),
	}
	res := ValidateProductData(bad)
	if res.IsValid || len(res.Errors) != 4 {
		t.Fatalf("expected four errors, got %v", res.Errors)
	}
}

func TestValidateSingleTierBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tier models.PriceTier
		want string
	}{
		{name: "price below a kurus", tier: models.PriceTier{MinQuantity: 1, Price: dec(t, "0.001")}, want: msgPriceRange},
		{name: "price above column range", tier: models.PriceTier{MinQuantity: 1, Price: dec(t, "10000000000")}, want: msgPriceRange},
		{name: "price with three decimals", tier: models.PriceTier{MinQuantity: 1, Price: dec(t, "89.999")}, want: msgPriceScale},
		{name: "min above int32", tier: models.PriceTier{MinQuantity: MaxQuantity + 1, Price: dec(t, "10")}, want: msgQuantityMax},
		{name: "max above int32", tier: models.PriceTier{MinQuantity: 1, MaxQuantity: intPtr(MaxQuantity + 1), Price: dec(t, "10")}, want: msgQuantityMax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateSingleTier(tc.tier)
			if res.IsValid || len(res.Errors) != 1 || res.Errors[0] != tc.want {
				t.Fatalf("expected [%s], got %+v", tc.want, res)
			}
		})
	}

	edges := []models.PriceTier{
		{MinQuantity: 1, Price: dec(t, "0.01")},
		{MinQuantity: 1, MaxQuantity: intPtr(MaxQuantity), Price: dec(t, "9999999999.99")},
		{MinQuantity: MaxQuantity, Price: dec(t, "12.50")},
	}
	for _, edge := range edges {
		if res := ValidateSingleTier(edge); !res.IsValid {
			t.Fatalf("expected %+v to validate, got %v", edge, res.Errors)
		}
	}
}

func TestSanitizeTierDataIgnoresExponent(t *testing.T) {
	t.Parallel()

	got := SanitizeTierData(RawTierInput{MinQuantity: FormString("1"), Price: FormString("1e40000000")})
	if !got.Price.Equal(dec(t, "1")) {
		t.Fatalf("expected exponent to be dropped, got %s", got.Price)
	}
	if got.Price.Exponent() != 0 {
		t.Fatalf("expected plain integer price, got exponent %d", got.Price.Exponent())
	}
	if res := ValidateSingleTier(got); !res.IsValid {
		t.Fatalf("expected sanitized tier to validate, got %v", res.Errors)
	}
}

func TestValidateProductDataBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  RawProductInput
		want string
	}{
		{name: "price below a kurus", raw: RawProductInput{Name: "Kupa", Price: FormString("0.004")}, want: msgPriceRange},
		{name: "price too large", raw: RawProductInput{Name: "Kupa", Price: FormString("12345678901")}, want: msgPriceRange},
		{name: "price scale", raw: RawProductInput{Name: "Kupa", Price: FormString("12,345")}, want: msgPriceScale},
		{name: "compare price scale", raw: RawProductInput{Name: "Kupa", Price: FormString("10"), ComparePrice: FormString("12.001")}, want: msgPriceScale},
		{name: "stock above int32", raw: RawProductInput{Name: "Kupa", Price: FormString("10"), StockQuantity: FormString("2147483648")}, want: msgQuantityMax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateProductData(tc.raw)
			if res.IsValid || len(res.Errors) != 1 || res.Errors[0] != tc.want {
				t.Fatalf("expected [%s], got %+v", tc.want, res)
			}
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	t.Parallel()

	if res := ValidateQuantity(3, 10); !res.IsValid {
		t.Fatalf("expected valid quantity, got %v", res.Errors)
	}
	if res := ValidateQuantity(0, 10); res.IsValid {
		t.Fatal("expected zero quantity to fail")
	}
	res := ValidateQuantity(11, 10)
	if res.IsValid || res.Errors[0] != "Only 10 left in stock" {
		t.Fatalf("unexpected stock result: %+v", res)
	}
}
