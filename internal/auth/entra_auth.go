package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// Scopes requested from the identity provider.
var Scopes = []string{"User.Read"}

// UserInfo is the subset of the Graph /me profile kept in the session.
type UserInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Provider wraps the OAuth2 authorization-code flow against Entra ID.
type Provider struct {
	Config     *oauth2.Config
	GraphMeURL string
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		Config: &oauth2.Config{
			ClientID:     cfg.EntraClientID,
			ClientSecret: cfg.EntraClientSecret,
			Endpoint:     microsoft.AzureADEndpoint(cfg.EntraTenant),
			RedirectURL:  cfg.EntraRedirectURI,
			Scopes:       Scopes,
		},
		GraphMeURL: cfg.GraphMeURL,
	}
}

// AuthURL returns the login URL for the given anti-forgery state.
func (p *Provider) AuthURL(state string) string {
	return p.Config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades an authorization code for a token and loads the user's
// profile with it.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, *UserInfo, error) {
	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, apperrors.External(apperrors.CodeUpstream, "Login failed", fmt.Errorf("exchange code: %w", err))
	}

	user, err := p.fetchUser(ctx, tok)
	if err != nil {
		return nil, nil, apperrors.External(apperrors.CodeUpstream, "Login failed", err)
	}
	return tok, user, nil
}

func (p *Provider) fetchUser(ctx context.Context, tok *oauth2.Token) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.GraphMeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := p.Config.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile endpoint returned status: %d", resp.StatusCode)
	}

	var user UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("profile has no id")
	}
	return &user, nil
}
