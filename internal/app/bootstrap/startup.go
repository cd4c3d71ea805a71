// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/frontenv/internal/app/system/timeouts"
	"github.com/dalemusser/frontenv/internal/domain/environment"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after DB connections and schema
// setup are complete, but before the HTTP handler is built. It publishes
// the built-in variants.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if !appCfg.PublishVariants {
		return nil
	}
	return publishVariants(ctx, deps, logger)
}

// applyTimeouts installs the configured timeouts. It runs before the first
// database call.
func applyTimeouts(appCfg AppConfig, logger *zap.Logger) {
	timeouts.Configure(sanitizeTimeouts(appCfg.Timeouts))
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("ping", cur.Ping),
		zap.Duration("short", cur.Short),
		zap.Duration("startup", cur.Startup))
}

// publishVariants stores each built-in variant under its target name.
func publishVariants(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Startup())
	defer cancel()

	for _, target := range environment.Targets() {
		env, err := environment.ForTarget(target)
		if err != nil {
			return err
		}
		rec, err := deps.Environments.Publish(ctx, string(target), env)
		if err != nil {
			return fmt.Errorf("publish %s: %w", target, err)
		}
		logger.Info("published environment variant",
			zap.String("name", rec.Name),
			zap.String("revision", rec.Revision))
	}
	return nil
}
