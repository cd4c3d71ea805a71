// internal/domain/environment/oauth.go
package environment

import "golang.org/x/oauth2"

// OAuth2Config maps the Auth0 block onto an oauth2.Config for consumers that
// drive the authorization-code flow. The SPA client has no secret.
func (e Environment) OAuth2Config() *oauth2.Config {
	base := "https://" + e.Auth0.Domain()
	return &oauth2.Config{
		ClientID:    e.Auth0.ClientID,
		RedirectURL: e.Auth0.CallbackURL,
		Scopes:      []string{"openid", "profile", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  base + "/authorize",
			TokenURL: base + "/oauth/token",
		},
	}
}

// AudienceParam is the extra authorize parameter Auth0 needs to issue an
// access token for the API audience.
func (e Environment) AudienceParam() oauth2.AuthCodeOption {
	return oauth2.SetAuthURLParam("audience", e.Auth0.Audience)
}
