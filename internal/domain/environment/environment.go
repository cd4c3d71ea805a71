// internal/domain/environment/environment.go
package environment

import "strings"

// Environment is the front-end environment descriptor: build mode, API base
// URL, and the Auth0 settings the client needs at bootstrap.
//
// It is a plain value. Functions in this package hand out copies, so a holder
// can never change what another holder sees.
type Environment struct {
	Production   bool   `bson:"production" json:"production"`
	APIServerURL string `bson:"api_server_url" json:"apiServerUrl"`
	Auth0        Auth0  `bson:"auth0" json:"auth0"`
}

// Auth0 holds the identity-provider settings of an Environment.
type Auth0 struct {
	URL         string `bson:"url" json:"url"`                  // tenant domain prefix, e.g. "dev-abc.us"
	Audience    string `bson:"audience" json:"audience"`        // API identifier tokens are issued for
	ClientID    string `bson:"client_id" json:"clientId"`       // public client id of the SPA
	CallbackURL string `bson:"callback_url" json:"callbackURL"` // where Auth0 redirects after login
}

// auth0Host is appended to the tenant prefix to form the tenant domain.
const auth0Host = "auth0.com"

// Domain returns the full tenant domain, e.g. "dev-abc.us.auth0.com".
func (a Auth0) Domain() string {
	prefix := strings.TrimSuffix(strings.TrimSpace(a.URL), ".")
	if prefix == "" {
		return ""
	}
	return prefix + "." + auth0Host
}

// Overrides replaces individual fields of an Environment. Empty strings and a
// nil Production leave the corresponding field unchanged.
type Overrides struct {
	Production       *bool
	APIServerURL     string
	Auth0URL         string
	Auth0Audience    string
	Auth0ClientID    string
	Auth0CallbackURL string
}

// IsZero reports whether the overrides change nothing.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// WithOverrides returns a copy of e with the non-empty overrides applied.
func (e Environment) WithOverrides(o Overrides) Environment {
	out := e
	if o.Production != nil {
		out.Production = *o.Production
	}
	if v := strings.TrimSpace(o.APIServerURL); v != "" {
		out.APIServerURL = v
	}
	if v := strings.TrimSpace(o.Auth0URL); v != "" {
		out.Auth0.URL = v
	}
	if v := strings.TrimSpace(o.Auth0Audience); v != "" {
		out.Auth0.Audience = v
	}
	if v := strings.TrimSpace(o.Auth0ClientID); v != "" {
		out.Auth0.ClientID = v
	}
	if v := strings.TrimSpace(o.Auth0CallbackURL); v != "" {
		out.Auth0.CallbackURL = v
	}
	return out
}
