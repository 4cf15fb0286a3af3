package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/yukselticaret/trendyshop-backend/api/middleware"
	"github.com/yukselticaret/trendyshop-backend/api/responses"
	"github.com/yukselticaret/trendyshop-backend/api/validators"
	cartsvc "github.com/yukselticaret/trendyshop-backend/internal/cart"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// quantity 0 removes the line, so the field is a pointer to tell it apart
// from a missing value.
type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// CartFetch returns the caller's cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := cartUser(w, r, svc, logg)
		if !ok {
			return
		}

		view, err := svc.GetCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// CartAddItem adds a product to the cart, merging with an existing line.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := cartUser(w, r, svc, logg)
		if !ok {
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddToCart(r.Context(), userID, payload.ProductID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(r.Context(), w, http.StatusCreated, view)
	}
}

// CartUpdateItem changes a line's quantity without repricing it.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := cartUser(w, r, svc, logg)
		if !ok {
			return
		}

		itemID, err := validators.PathUUID(r, "itemId", "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateQuantity(r.Context(), userID, itemID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := cartUser(w, r, svc, logg)
		if !ok {
			return
		}

		itemID, err := validators.PathUUID(r, "itemId", "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), userID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, view)
	}
}

// CartRecalculate refreshes applied prices for every tiered line.
func CartRecalculate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := cartUser(w, r, svc, logg)
		if !ok {
			return
		}

		result, err := svc.RecalculateCartPrices(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, result)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := cartUser(w, r, svc, logg)
		if !ok {
			return
		}

		if err := svc.ClearCart(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, map[string]string{"status": "cleared"})
	}
}

func cartUser(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (uuid.UUID, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return uuid.Nil, false
	}
	userID, ok := middleware.UserUUIDFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
		return uuid.Nil, false
	}
	return userID, true
}
