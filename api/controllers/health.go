package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/yukselticaret/trendyshop-backend/api/responses"
	"github.com/yukselticaret/trendyshop-backend/pkg/config"
	pkgerrors "github.com/yukselticaret/trendyshop-backend/pkg/errors"
	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TrendyShop-Env", cfg.App.Env)
		responses.WriteSuccess(r.Context(), w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every configured dependency. Nil pingers are skipped so
// optional dependencies such as redis can stay unwired.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TrendyShop-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		failed := []string{}
		for name, dep := range deps {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = append(failed, name)
				if logg != nil {
					logg.Error(logg.WithField(r.Context(), "dependency", name), "health.ready.failed", err)
				}
				continue
			}
			checks[name] = "up"
		}

		if len(failed) > 0 {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(map[string]any{
				"checks": checks,
			}))
			return
		}
		responses.WriteSuccess(r.Context(), w, map[string]any{"status": "ready", "checks": checks})
	}
}
