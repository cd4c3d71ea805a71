// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"github.com/dalemusser/frontenv/internal/app/system/timeouts"
	"github.com/dalemusser/frontenv/internal/domain/environment"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, logging and CORS. AppConfig holds
// the resolved environment descriptor and the settings of the store that
// publishes named descriptors.
type AppConfig struct {
	// Target is the build variant the active descriptor starts from.
	Target environment.Target
	// Environment is the active descriptor: the Target variant with any
	// configured overrides applied. Validated in ValidateConfig.
	Environment environment.Environment

	// MongoDB connection configuration. A blank MongoURI keeps published
	// descriptors in memory.
	MongoURI      string
	MongoDatabase string

	// PublishVariants registers the built-in variants under their target
	// names at startup.
	PublishVariants bool

	// RateLimitPerMinute caps requests per client IP on /environments.
	// Zero disables limiting.
	RateLimitPerMinute int
	// TrustProxyHeaders rewrites RemoteAddr from forwarding headers before
	// any route runs. Leave it off unless a proxy strips client-supplied
	// values.
	TrustProxyHeaders bool

	Timeouts timeouts.Config
}

// UsesMongo reports whether descriptors are persisted in MongoDB.
func (c AppConfig) UsesMongo() bool {
	return c.MongoURI != ""
}
