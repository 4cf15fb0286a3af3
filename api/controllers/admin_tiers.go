package controllers

import (
	"net/http"

	"github.com/yukselticaret/trendyshop-backend/api/responses"
	"github.com/yukselticaret/trendyshop-backend/api/validators"
	"github.com/yukselticaret/trendyshop-backend/internal/pricing"
	"github.com/yukselticaret/trendyshop-backend/internal/tiers"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

// tier sets are edited by hand in the admin panel; anything larger is a client bug.
type tierSetRequest struct {
	Tiers []pricing.RawTierInput `json:"tiers" validate:"max=50"`
}

func AdminListTiers(svc tiers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !tierServiceReady(w, r, svc, logg) {
			return
		}

		productID, err := validators.PathUUID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListTiers(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, list)
	}
}

// AdminCreateTier adds one tier after field and overlap checks.
func AdminCreateTier(svc tiers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !tierServiceReady(w, r, svc, logg) {
			return
		}

		productID, err := validators.PathUUID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload pricing.RawTierInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateTier(r.Context(), productID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(r.Context(), w, http.StatusCreated, result)
	}
}

// AdminReplaceTiers swaps the product's whole tier set.
func AdminReplaceTiers(svc tiers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !tierServiceReady(w, r, svc, logg) {
			return
		}

		productID, err := validators.PathUUID(r, "productId", "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tierSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ReplaceTiers(r.Context(), productID, payload.Tiers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, result)
	}
}

func AdminUpdateTier(svc tiers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !tierServiceReady(w, r, svc, logg) {
			return
		}

		tierID, err := validators.PathUUID(r, "tierId", "tier id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload pricing.RawTierInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateTier(r.Context(), tierID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, result)
	}
}

func AdminDeleteTier(svc tiers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !tierServiceReady(w, r, svc, logg) {
			return
		}

		tierID, err := validators.PathUUID(r, "tierId", "tier id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DeleteTier(r.Context(), tierID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(r.Context(), w, result)
	}
}

// AdminValidateTiers runs the full set validation without saving, so the
// form can show errors and warnings while the admin edits.
func AdminValidateTiers(svc tiers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !tierServiceReady(w, r, svc, logg) {
			return
		}

		var payload tierSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(r.Context(), w, svc.ValidateTiers(payload.Tiers))
	}
}

func tierServiceReady(w http.ResponseWriter, r *http.Request, svc tiers.Service, logg *logger.Logger) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tier service unavailable"))
		return false
	}
	return true
}
