package controllers

import (
	"net/http"

	"github.com/mvillagranc/mesaboard-backend/api/responses"
	"github.com/mvillagranc/mesaboard-backend/pkg/config"
	pkgerrors "github.com/mvillagranc/mesaboard-backend/pkg/errors"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
	pkgredis "github.com/mvillagranc/mesaboard-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mesaboard-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, redis pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mesaboard-Env", cfg.App.Env)
		if redis != nil {
			if err := redis.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
