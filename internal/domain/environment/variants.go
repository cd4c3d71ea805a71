// internal/domain/environment/variants.go
package environment

import (
	"errors"
	"fmt"
	"strings"
)

// Target names a build variant of the descriptor.
type Target string

const (
	TargetDevelopment Target = "development"
	TargetProduction  Target = "production"
)

// ErrUnknownTarget is returned for target names that have no variant.
var ErrUnknownTarget = errors.New("unknown environment target")

// Targets lists the built-in variants in a stable order.
func Targets() []Target {
	return []Target{TargetDevelopment, TargetProduction}
}

// ParseTarget accepts the long and short spellings of each target,
// case-insensitively.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return TargetDevelopment, nil
	case "production", "prod":
		return TargetProduction, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// ForTarget returns a fresh copy of the variant for t.
func ForTarget(t Target) (Environment, error) {
	switch t {
	case TargetDevelopment:
		return Development(), nil
	case TargetProduction:
		return Production(), nil
	}
	return Environment{}, fmt.Errorf("%w: %q", ErrUnknownTarget, string(t))
}

// Development is the local build: the Flask API on 127.0.0.1:5000 and the
// Ionic dev server on localhost:8100.
func Development() Environment {
	return Environment{
		Production:   false,
		APIServerURL: "http://127.0.0.1:5000",
		Auth0: Auth0{
			URL:         "dev-5lzfargwj11n1quu.us",
			Audience:    "test",
			ClientID:    "P0VebM7uPsk4eJewUKE6eiiUnim9gqMP",
			CallbackURL: "http://localhost:8100",
		},
	}
}

// Production shares the Auth0 tenant with Development and differs only in
// build mode and the deployed URLs.
func Production() Environment {
	env := Development()
	env.Production = true
	env.APIServerURL = "https://api.coffeeshop.example"
	env.Auth0.CallbackURL = "https://coffeeshop.example"
	return env
}
