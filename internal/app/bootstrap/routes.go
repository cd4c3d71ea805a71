// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	environmentfeature "github.com/dalemusser/frontenv/internal/app/features/environment"
	healthfeature "github.com/dalemusser/frontenv/internal/app/features/health"
	environmentsstore "github.com/dalemusser/frontenv/internal/app/store/environments"
	"github.com/dalemusser/frontenv/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// activeRecordName labels the active descriptor in logs and ETags. It is
// never written to the store.
const activeRecordName = "active"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. The active descriptor is fixed here for the life
// of the process.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	active, err := environmentsstore.NewRecord(activeRecordName, appCfg.Environment)
	if err != nil {
		logger.Error("active environment rejected", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()
	if appCfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, string(appCfg.Target), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Environment descriptors. Named lookups reach the store, so they are
	// rate limited per client; the active descriptor is served from memory.
	var mws []func(http.Handler) http.Handler
	if appCfg.RateLimitPerMinute > 0 {
		limiter := ratelimit.New(appCfg.RateLimitPerMinute, time.Minute)
		mws = append(mws, limiter.Middleware)
	}
	envHandler := environmentfeature.NewHandler(active, deps.Environments, logger)
	r.Get("/environment.json", envHandler.ServeActive)
	r.Head("/environment.json", envHandler.ServeActive)
	r.Mount("/environments", environmentfeature.Routes(envHandler, mws...))

	logger.Info("serving environment",
		zap.String("target", string(appCfg.Target)),
		zap.String("revision", active.Revision))

	return r, nil
}
