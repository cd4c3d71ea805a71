package environment_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/frontenv/internal/domain/environment"
)

func TestOAuth2Config(t *testing.T) {
	env := environment.Development()
	cfg := env.OAuth2Config()

	if cfg.ClientID != env.Auth0.ClientID {
		t.Errorf("ClientID: got %q, want %q", cfg.ClientID, env.Auth0.ClientID)
	}
	if cfg.ClientSecret != "" {
		t.Error("expected no client secret for the SPA client")
	}
	if cfg.RedirectURL != "http://localhost:8100" {
		t.Errorf("RedirectURL: got %q", cfg.RedirectURL)
	}
	if cfg.Endpoint.TokenURL != "https://dev-5lzfargwj11n1quu.us.auth0.com/oauth/token" {
		t.Errorf("TokenURL: got %q", cfg.Endpoint.TokenURL)
	}

	authURL := cfg.AuthCodeURL("state-123", env.AudienceParam())
	if !strings.HasPrefix(authURL, "https://dev-5lzfargwj11n1quu.us.auth0.com/authorize?") {
		t.Fatalf("AuthCodeURL: unexpected prefix %q", authURL)
	}
	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("parse AuthCodeURL: %v", err)
	}
	q := u.Query()
	if q.Get("audience") != "test" {
		t.Errorf("audience: got %q, want %q", q.Get("audience"), "test")
	}
	if q.Get("client_id") != env.Auth0.ClientID {
		t.Errorf("client_id: got %q", q.Get("client_id"))
	}
	if q.Get("state") != "state-123" {
		t.Errorf("state: got %q", q.Get("state"))
	}
}
