// internal/domain/environment/validate.go
package environment

import (
	"net/url"
	"strings"
	"unicode"
)

// FieldError describes one invalid field, addressed by its JSON path.
type FieldError struct {
	Field   string
	Problem string
}

func (f FieldError) String() string {
	return f.Field + ": " + f.Problem
}

// ValidationError collects every problem found in a descriptor.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return "invalid environment: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the problems.
func (e *ValidationError) Has(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}

// Validate checks that every field is present and that both URLs are
// absolute http(s) URLs. It returns a *ValidationError or nil.
func (e Environment) Validate() error {
	var problems []FieldError
	add := func(field, problem string) {
		problems = append(problems, FieldError{Field: field, Problem: problem})
	}

	checkURL := func(field, raw string) {
		if strings.TrimSpace(raw) == "" {
			add(field, "is required")
			return
		}
		if err := checkAbsoluteURL(raw); err != "" {
			add(field, err)
		}
	}

	checkURL("apiServerUrl", e.APIServerURL)
	if strings.TrimSpace(e.Auth0.URL) == "" {
		add("auth0.url", "is required")
	} else if strings.ContainsAny(e.Auth0.URL, "/:") {
		add("auth0.url", "must be a bare tenant prefix, not a URL")
	} else if strings.IndexFunc(e.Auth0.URL, unicode.IsSpace) >= 0 {
		add("auth0.url", "must not contain whitespace")
	}
	if strings.TrimSpace(e.Auth0.Audience) == "" {
		add("auth0.audience", "is required")
	}
	if strings.TrimSpace(e.Auth0.ClientID) == "" {
		add("auth0.clientId", "is required")
	}
	checkURL("auth0.callbackURL", e.Auth0.CallbackURL)

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkAbsoluteURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "is not a valid URL"
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must use http or https"
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}
