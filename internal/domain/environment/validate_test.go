package environment_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dalemusser/frontenv/internal/domain/environment"
)

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*environment.Environment)
		field  string
	}{
		{"empty api url", func(e *environment.Environment) { e.APIServerURL = "" }, "apiServerUrl"},
		{"relative api url", func(e *environment.Environment) { e.APIServerURL = "/api" }, "apiServerUrl"},
		{"ftp api url", func(e *environment.Environment) { e.APIServerURL = "ftp://host" }, "apiServerUrl"},
		{"hostless api url", func(e *environment.Environment) { e.APIServerURL = "http://" }, "apiServerUrl"},
		{"empty tenant", func(e *environment.Environment) { e.Auth0.URL = "  " }, "auth0.url"},
		{"tenant as url", func(e *environment.Environment) { e.Auth0.URL = "https://x.auth0.com" }, "auth0.url"},
		{"tenant with space", func(e *environment.Environment) { e.Auth0.URL = "dev abc.us" }, "auth0.url"},
		{"tenant with padding", func(e *environment.Environment) { e.Auth0.URL = " dev-abc.us" }, "auth0.url"},
		{"empty audience", func(e *environment.Environment) { e.Auth0.Audience = "" }, "auth0.audience"},
		{"empty client id", func(e *environment.Environment) { e.Auth0.ClientID = "" }, "auth0.clientId"},
		{"bad callback", func(e *environment.Environment) { e.Auth0.CallbackURL = "localhost:8100" }, "auth0.callbackURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := environment.Development()
			tt.mutate(&env)

			err := env.Validate()
			var verr *environment.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !verr.Has(tt.field) {
				t.Errorf("expected problem on %s, got %v", tt.field, verr)
			}
			if len(verr.Problems) != 1 {
				t.Errorf("expected exactly one problem, got %d: %v", len(verr.Problems), verr)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	err := environment.Environment{}.Validate()
	var verr *environment.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Problems) != 5 {
		t.Errorf("expected 5 problems for an empty descriptor, got %d: %v", len(verr.Problems), verr)
	}
	if !strings.HasPrefix(err.Error(), "invalid environment: apiServerUrl: is required") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
