package controllers

import (
	"net/http"

	"github.com/bdevries/parceldesk-backend/api/responses"
	"github.com/bdevries/parceldesk-backend/pkg/config"
	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
	"github.com/bdevries/parceldesk-backend/pkg/redis"
)

const envHeader = "X-ParcelDesk-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the lookup cache when one is wired; without a cache the
// service is ready as soon as it serves.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup cache unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
