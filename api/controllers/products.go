package controllers

import (
	"net/http"

	"github.com/yukselticaret/trendyshop-backend/api/responses"
	"github.com/yukselticaret/trendyshop-backend/api/validators"
	product "github.com/yukselticaret/trendyshop-backend/internal/products"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

// ProductDetail returns a single active product.
func ProductDetail(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, dto)
	}
}

// ProductTiers returns the product's tier table with display strings.
func ProductTiers(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.ListTiers(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, dto)
	}
}

// ProductQuote resolves the unit price for ?quantity=N (default 1).
func ProductQuote(svc product.Service, maxQty int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.PathUUID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		qty, err := validators.ParseQueryInt(r, "quantity", 1, 1, maxQty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), productID, qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, quote)
	}
}
