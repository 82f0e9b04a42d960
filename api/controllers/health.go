package controllers

import (
	"fmt"
	"net/http"

	"go.uber.org/multierr"

	"github.com/solvitek/quoteline-backend/api/responses"
	"github.com/solvitek/quoteline-backend/pkg/config"
	"github.com/solvitek/quoteline-backend/pkg/db"
	pkgerrors "github.com/solvitek/quoteline-backend/pkg/errors"
	"github.com/solvitek/quoteline-backend/pkg/logger"
	"github.com/solvitek/quoteline-backend/pkg/redis"
)

const envHeader = "X-Quoteline-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every backing dependency answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx := r.Context()

		var combined error
		if database == nil {
			combined = multierr.Append(combined, fmt.Errorf("database not configured"))
		} else if err := database.Ping(ctx); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("database: %w", err))
		}
		if cache == nil {
			combined = multierr.Append(combined, fmt.Errorf("redis not configured"))
		} else if err := cache.Ping(ctx); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("redis: %w", err))
		}

		if combined != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
