package pricing

import (
	"encoding/json"
	"testing"
)

func TestFormValueUnmarshal(t *testing.T) {
	t.Parallel()

	var payload struct {
		A FormValue `json:"a"`
		B FormValue `json:"b"`
		C FormValue `json:"c"`
		D FormValue `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12","b":7.5,"c":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A.String() != "12" || payload.A.IsEmpty() {
		t.Fatalf("unexpected a: %+v", payload.A)
	}
	if d, ok := payload.B.Decimal(); !ok || d.String() != "7.5" {
		t.Fatalf("unexpected b: %v %v", d, ok)
	}
	if !payload.C.IsEmpty() || !payload.D.IsEmpty() {
		t.Fatal("null and missing values must be empty")
	}
}

func TestFormValueParsing(t *testing.T) {
	t.Parallel()

	ints := map[string]struct {
		want int
		ok   bool
	}{
		"42":    {42, true},
		" -3 ":  {-3, true},
		"1.9":   {1, true},
		"7kg":   {7, true},
		"abc":   {0, false},
		"":      {0, false},
		"+5":    {5, true},
		"1e3":   {1, true},
		"x12":   {0, false},
		"  08 ": {8, true},
	}
	for in, want := range ints {
		got, ok := FormString(in).Int()
		if got != want.want || ok != want.ok {
			t.Fatalf("Int(%q) = %d,%v want %d,%v", in, got, ok, want.want, want.ok)
		}
	}

	decimals := map[string]string{
		"12.50":      "12.5",
		"12,50":      "12.5",
		".5":         "0.5",
		"1e2":        "1",
		"1e40000000": "1",
		"3.2 TL":     "3.2",
		"1.250,5":    "1.25",
	}
	for in, want := range decimals {
		got, ok := FormString(in).Decimal()
		if !ok || got.String() != want {
			t.Fatalf("Decimal(%q) = %s,%v want %s", in, got, ok, want)
		}
	}
	if _, ok := FormString("TL").Decimal(); ok {
		t.Fatal("expected non numeric value to fail")
	}
}
