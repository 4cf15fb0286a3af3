package pricing

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormValue is a field exactly as a form or loosely typed JSON body posts
// it. Strings, numbers and null all decode; nothing is interpreted until a
// sanitize step parses it.
type FormValue struct {
	raw string
	set bool
}

// FormString wraps a posted string.
func FormString(s string) FormValue {
	return FormValue{raw: s, set: true}
}

// FormNumber wraps an already numeric value.
func FormNumber(n float64) FormValue {
	return FormValue{raw: strconv.FormatFloat(n, 'f', -1, 64), set: true}
}

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = FormValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*v = FormValue{}
			return nil
		}
		*v = FormString(s)
		return nil
	}
	*v = FormValue{raw: string(data), set: true}
	return nil
}

func (v FormValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.raw)
}

func (v FormValue) String() string { return v.raw }

// IsEmpty reports a missing, null or blank value.
func (v FormValue) IsEmpty() bool {
	return !v.set || strings.TrimSpace(v.raw) == ""
}

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)
)

// Int parses the leading integer of the value ("12abc" is 12, "1.9" is 1).
func (v FormValue) Int() (int, bool) {
	match := leadingInt.FindString(strings.TrimSpace(v.raw))
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Decimal parses the leading decimal number of the value. A comma is read
// as the decimal separator when the value has no dot, so "12,50" is 12.50.
// Exponents are not read: "1e5" is 1.
func (v FormValue) Decimal() (decimal.Decimal, bool) {
	s := strings.TrimSpace(v.raw)
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	match := leadingFloat.FindString(s)
	if match == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// RawTierInput is a tier as submitted by the admin form, before sanitizing.
type RawTierInput struct {
	MinQuantity        FormValue `json:"min_quantity"`
	MaxQuantity        FormValue `json:"max_quantity"`
	Price              FormValue `json:"price"`
	DiscountPercentage FormValue `json:"discount_percentage"`
}

// RawProductInput is the product form as submitted.
type RawProductInput struct {
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Price         FormValue `json:"price"`
	ComparePrice  FormValue `json:"compare_price"`
	StockQuantity FormValue `json:"stock_quantity"`
}
