package oidc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/internal/ports"
	"golang.org/x/oauth2"
)

// newDiscoveryServer serves a discovery document whose issuer is the server itself.
func newDiscoveryServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(DiscoveryDocument{
			Issuer:                srv.URL,
			AuthorizationEndpoint: "https://idp.example.com/auth",
			TokenEndpoint:         srv.URL + "/token",
			UserinfoEndpoint:      "https://idp.example.com/userinfo",
			JwksURI:               "https://idp.example.com/jwks",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(discoveryURL string) ProviderConfig {
	return ProviderConfig{
		ClientID:     "admin-panel",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/auth/sso/callback",
		Scope:        "openid profile email groups",
		DiscoveryURL: discoveryURL,
	}
}

func createTestProvider(t *testing.T) *Provider {
	t.Helper()
	srv := newDiscoveryServer(t)
	p, err := NewProvider(context.Background(), testConfig(srv.URL))
	require.NoError(t, err)
	return p
}

func TestNewProvider_Success(t *testing.T) {
	p := createTestProvider(t)
	assert.Equal(t, "https://idp.example.com/auth", p.config.Endpoint.AuthURL)
	assert.Equal(t, []string{"openid", "profile", "email", "groups"}, p.config.Scopes)

	var _ ports.AuthProvider = p
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	base := testConfig("http://example.com")
	tests := []struct {
		name   string
		mutate func(*ProviderConfig)
		errMsg string
	}{
		{"missing client ID", func(c *ProviderConfig) { c.ClientID = "" }, "client ID is required"},
		{"missing client secret", func(c *ProviderConfig) { c.ClientSecret = "" }, "client secret is required"},
		{"missing redirect URL", func(c *ProviderConfig) { c.RedirectURL = "" }, "redirect URL is required"},
		{"missing discovery URL", func(c *ProviderConfig) { c.DiscoveryURL = "" }, "discovery URL is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			_, err := NewProvider(context.Background(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProvider_Begin(t *testing.T) {
	p := createTestProvider(t)

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)
	assert.Len(t, state, 32)
	assert.Len(t, nonce, 32)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, nonce, u.Query().Get("nonce"))
	assert.Equal(t, "admin-panel", u.Query().Get("client_id"))

	_, _, _, err = p.Begin(context.Background(), ports.BeginInput{})
	assert.Error(t, err)
}

func TestProvider_Exchange_ValidationErrors(t *testing.T) {
	p := createTestProvider(t)
	ctx := context.Background()

	_, err := p.Exchange(ctx, ports.ExchangeInput{State: "s", Nonce: "n"})
	assert.ErrorContains(t, err, "authorization code is required")
	_, err = p.Exchange(ctx, ports.ExchangeInput{Code: "c", Nonce: "n"})
	assert.ErrorContains(t, err, "state is required")
	_, err = p.Exchange(ctx, ports.ExchangeInput{Code: "c", State: "s"})
	assert.ErrorContains(t, err, "nonce is required")
}

func TestProvider_Exchange_TokenEndpointFailure(t *testing.T) {
	p := createTestProvider(t)

	_, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange code for token")
}

func TestGenerateRandomString(t *testing.T) {
	a, err := generateRandomString(16)
	require.NoError(t, err)
	b, err := generateRandomString(16)
	require.NoError(t, err)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)

	empty, err := generateRandomString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetIDTokenFromToken(t *testing.T) {
	tok := (&oauth2.Token{}).WithExtra(map[string]any{"id_token": "abc.def.ghi"})
	idTok, err := getIDTokenFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", idTok)

	_, err = getIDTokenFromToken((&oauth2.Token{}).WithExtra(map[string]any{"x": "y"}))
	assert.ErrorContains(t, err, "missing id_token")

	_, err = getIDTokenFromToken(nil)
	assert.ErrorContains(t, err, "nil token")
}

func TestSSOClaims_StandardShape(t *testing.T) {
	f := ssoClaims{
		Sub:               "sub-1",
		PreferredUsername: "jdoe",
		Email:             "jdoe@example.com",
		GivenName:         "Jane",
		FamilyName:        "Doe",
		Groups:            []string{"panel-admins"},
	}.fields()
	assert.Equal(t, "jdoe", f.userID)
	assert.Equal(t, "jdoe@example.com", f.email)
	assert.Equal(t, "Jane", f.givenName)
	assert.Equal(t, []string{"panel-admins"}, f.groups)
}

func TestSSOClaims_ADShape(t *testing.T) {
	f := ssoClaims{
		Sub:            "sub-123",
		SamAccountName: "sammy",
		FirstName:      "First",
		LastName:       "Last",
		Mail:           "mail@example.com",
		MemberOf:       []string{"CN=Panel-Editors,OU=Groups,DC=corp,DC=example,DC=com"},
	}.fields()
	assert.Equal(t, "sammy", f.userID)
	assert.Equal(t, "mail@example.com", f.email)
	assert.Equal(t, "Last", f.familyName)
	assert.Len(t, f.groups, 1)
}

func TestIDFields_FillMissing(t *testing.T) {
	f := idFields{userID: "keep", groups: []string{"x"}}
	f.fillMissing(idFields{userID: "other", email: "e@example.com", givenName: "G", groups: []string{"y"}})
	assert.Equal(t, "keep", f.userID)
	assert.Equal(t, "e@example.com", f.email)
	assert.Equal(t, "G", f.givenName)
	assert.Equal(t, []string{"x"}, f.groups)
}
