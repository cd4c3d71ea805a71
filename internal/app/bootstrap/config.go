// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/frontenv/internal/app/system/timeouts"
	"github.com/dalemusser/frontenv/internal/domain/environment"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for frontenv.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: target, api_server_url, etc.
//   - Environment variables: FRONTENV_TARGET, FRONTENV_API_SERVER_URL, etc.
//   - Command-line flags: --target, --api_server_url, etc.
//
// Descriptor keys left blank inherit the value of the target variant.
var appConfigKeys = []config.AppKey{
	{Name: "target", Default: "development", Desc: "Build variant: 'development' or 'production'"},

	// Descriptor overrides
	{Name: "production", Default: "", Desc: "Override the production flag (true/false; blank inherits)"},
	{Name: "api_server_url", Default: "", Desc: "Override the API base URL"},
	{Name: "auth0_url", Default: "", Desc: "Override the Auth0 tenant prefix (e.g. dev-abc.us)"},
	{Name: "auth0_audience", Default: "", Desc: "Override the Auth0 API audience"},
	{Name: "auth0_client_id", Default: "", Desc: "Override the Auth0 client id"},
	{Name: "auth0_callback_url", Default: "", Desc: "Override the Auth0 callback URL"},

	// Descriptor store
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank keeps descriptors in memory)"},
	{Name: "mongo_database", Default: "frontenv", Desc: "MongoDB database name"},
	{Name: "publish_variants", Default: true, Desc: "Publish the built-in variants under their target names"},

	// Rate limiting
	{Name: "rate_limit_per_minute", Default: 120, Desc: "Requests per minute per client IP on /environments (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Take the client IP from X-Forwarded-For/X-Real-IP (enable only behind a trusted proxy)"},

	// Timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health check ping timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single read/write timeout"},
	{Name: "timeout_startup", Default: "30s", Desc: "Schema setup and seeding timeout"},
}

// rawAppConfig is the string-level view of the app keys before resolution.
type rawAppConfig struct {
	Target           string
	Production       string
	APIServerURL     string
	Auth0URL         string
	Auth0Audience    string
	Auth0ClientID    string
	Auth0CallbackURL string
	MongoURI         string
	MongoDatabase    string
	PublishVariants  bool
	RateLimit        int
	TrustProxy       bool
	Timeouts         timeouts.Config
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// FRONTENV_* environment variables and flags, merged with precedence
// flags > env > files > defaults. The target variant and overrides are then
// resolved into the active descriptor.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FRONTENV", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	raw := rawAppConfig{
		Target:           appValues.String("target"),
		Production:       appValues.String("production"),
		APIServerURL:     appValues.String("api_server_url"),
		Auth0URL:         appValues.String("auth0_url"),
		Auth0Audience:    appValues.String("auth0_audience"),
		Auth0ClientID:    appValues.String("auth0_client_id"),
		Auth0CallbackURL: appValues.String("auth0_callback_url"),
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		PublishVariants:  appValues.Bool("publish_variants"),
		RateLimit:        appValues.Int("rate_limit_per_minute"),
		TrustProxy:       appValues.Bool("trust_proxy_headers"),
		Timeouts: timeouts.Config{
			Ping:    appValues.Duration("timeout_ping", timeouts.DefaultPing),
			Short:   appValues.Duration("timeout_short", timeouts.DefaultShort),
			Startup: appValues.Duration("timeout_startup", timeouts.DefaultStartup),
		},
	}

	appCfg, err := buildAppConfig(raw)
	if err != nil {
		logger.Error("environment config could not be resolved", zap.Error(err))
		return nil, AppConfig{}, err
	}

	logger.Info("resolved environment",
		zap.String("target", string(appCfg.Target)),
		zap.Bool("production", appCfg.Environment.Production),
		zap.String("api_server_url", appCfg.Environment.APIServerURL),
		zap.String("auth0_domain", appCfg.Environment.Auth0.Domain()),
		zap.Bool("mongo", appCfg.UsesMongo()))

	return coreCfg, appCfg, nil
}

// buildAppConfig resolves the target variant and applies overrides.
// It fails only on values that cannot be parsed; descriptor invariants are
// checked by ValidateConfig.
func buildAppConfig(raw rawAppConfig) (AppConfig, error) {
	target, err := environment.ParseTarget(raw.Target)
	if err != nil {
		return AppConfig{}, fmt.Errorf("target: %w", err)
	}
	base, err := environment.ForTarget(target)
	if err != nil {
		return AppConfig{}, err
	}

	overrides := environment.Overrides{
		APIServerURL:     raw.APIServerURL,
		Auth0URL:         raw.Auth0URL,
		Auth0Audience:    raw.Auth0Audience,
		Auth0ClientID:    raw.Auth0ClientID,
		Auth0CallbackURL: raw.Auth0CallbackURL,
	}
	if s := strings.TrimSpace(raw.Production); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return AppConfig{}, fmt.Errorf("production: %q is not a boolean", raw.Production)
		}
		overrides.Production = &b
	}

	if raw.RateLimit < 0 {
		return AppConfig{}, fmt.Errorf("rate_limit_per_minute: must not be negative, got %d", raw.RateLimit)
	}

	dbName := strings.TrimSpace(raw.MongoDatabase)
	if dbName == "" {
		dbName = "frontenv"
	}

	return AppConfig{
		Target:             target,
		Environment:        base.WithOverrides(overrides),
		MongoURI:           strings.TrimSpace(raw.MongoURI),
		MongoDatabase:      dbName,
		PublishVariants:    raw.PublishVariants,
		RateLimitPerMinute: raw.RateLimit,
		TrustProxyHeaders:  raw.TrustProxy,
		Timeouts:           raw.Timeouts,
	}, nil
}

// ValidateConfig performs app-specific config validation.
//
// The active descriptor must satisfy every descriptor invariant before the
// server starts; a malformed Mongo URI is rejected before connecting.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := appCfg.Environment.Validate(); err != nil {
		logger.Error("invalid environment descriptor", zap.Error(err))
		return err
	}

	if appCfg.UsesMongo() {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	if coreCfg != nil && coreCfg.Env == "prod" && !appCfg.Environment.Production {
		logger.Warn("serving a non-production descriptor from a prod deployment",
			zap.String("target", string(appCfg.Target)))
	}

	return nil
}

// minTimeout guards against config values too small to be useful.
const minTimeout = 100 * time.Millisecond

func sanitizeTimeouts(cfg timeouts.Config) timeouts.Config {
	if cfg.Ping < minTimeout {
		cfg.Ping = 0
	}
	if cfg.Short < minTimeout {
		cfg.Short = 0
	}
	if cfg.Startup < minTimeout {
		cfg.Startup = 0
	}
	return cfg
}
