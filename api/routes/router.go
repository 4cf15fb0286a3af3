package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yukselticaret/trendyshop-backend/api/controllers"
	"github.com/yukselticaret/trendyshop-backend/api/middleware"
	"github.com/yukselticaret/trendyshop-backend/internal/cart"
	product "github.com/yukselticaret/trendyshop-backend/internal/products"
	"github.com/yukselticaret/trendyshop-backend/internal/tiers"
	"github.com/yukselticaret/trendyshop-backend/pkg/config"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

// NewRouter mounts every HTTP route. readiness names the dependencies
// /health/ready pings; metrics may be nil to leave /metrics unmounted.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	metrics http.Handler,
	productService product.Service,
	cartService cart.Service,
	tierService tiers.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Notices(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products/{productId}", func(r chi.Router) {
			r.Get("/", controllers.ProductDetail(productService, logg))
			r.Get("/tiers", controllers.ProductTiers(productService, logg))
			r.Get("/price", controllers.ProductQuote(productService, cfg.Pricing.MaxCartQty, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Supabase, logg))
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(cartService, logg))
			r.Post("/recalculate", controllers.CartRecalculate(cartService, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Supabase, logg))
		r.Use(middleware.RequireRole(cfg.Supabase.AdminRole, logg))
		r.Get("/ping", controllers.AdminPing())
		r.Route("/v1", func(r chi.Router) {
			r.Route("/products/{productId}/tiers", func(r chi.Router) {
				r.Get("/", controllers.AdminListTiers(tierService, logg))
				r.Post("/", controllers.AdminCreateTier(tierService, logg))
				r.Put("/", controllers.AdminReplaceTiers(tierService, logg))
			})
			r.Route("/tiers", func(r chi.Router) {
				r.Post("/validate", controllers.AdminValidateTiers(tierService, logg))
				r.Patch("/{tierId}", controllers.AdminUpdateTier(tierService, logg))
				r.Delete("/{tierId}", controllers.AdminDeleteTier(tierService, logg))
			})
		})
	})

	return r
}
