package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
)

type addItemBody struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

func TestDecodeJSONBodyValidatesFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"`+uuid.NewString()+`","quantity":0}`))
	var body addItemBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok || details["quantity"] == "" {
		t.Fatalf("expected quantity detail, got %#v", pkgerrors.As(err).Details())
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity":1,"price":"1"}`))
	var body addItemBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	cases := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{query: "", want: 1},
		{query: "quantity=25", want: 25},
		{query: "quantity=abc", wantErr: true},
		{query: "quantity=0", wantErr: true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		got, err := ParseQueryInt(req, "quantity", 1, 1, 9999)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.query)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %d, %v", tc.query, got, err)
		}
	}
}

func TestPathUUID(t *testing.T) {
	id := uuid.New()
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("productId", id.String())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := PathUUID(req, "productId", "product id")
	if err != nil || got != id {
		t.Fatalf("got %s, %v", got, err)
	}

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("productId", "nope")
	if _, err := PathUUID(req, "productId", "product id"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
