package devauth

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/internal/ports"
)

var _ ports.AuthProvider = (*Provider)(nil)

func TestProvider_BeginAndExchange(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	prov, err := NewProvider(Config{
		UserID:    "dev-user",
		Email:     "dev@example.com",
		FirstName: "Dev",
		LastName:  "User",
		Groups:    []string{"panel-editors"},
		Clock:     clock,
	})
	require.NoError(t, err)

	authURL, state, nonce, err := prov.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)
	assert.Len(t, state, 24)
	assert.Len(t, nonce, 24)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, CallbackPath, u.Path)
	assert.Equal(t, state, u.Query().Get("state"))
	assert.Equal(t, "dev", u.Query().Get("code"))

	id, err := prov.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce})
	require.NoError(t, err)
	assert.Equal(t, "dev-user", id.UserID)
	assert.Equal(t, "Dev User", id.DisplayName())
	assert.Equal(t, []string{"panel-editors"}, id.Groups)
	assert.Equal(t, clock.Now().Add(8*time.Hour), id.ExpiresAt)
}

func TestProvider_ExchangeRequiresCode(t *testing.T) {
	prov, err := NewProvider(Config{UserID: "u", Email: "u@example.com"})
	require.NoError(t, err)

	_, err = prov.Exchange(context.Background(), ports.ExchangeInput{})
	assert.ErrorContains(t, err, "authorization code is required")
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Config{Email: "x@example.com"})
	assert.ErrorContains(t, err, "UserID is required")

	_, err = NewProvider(Config{UserID: "x"})
	assert.ErrorContains(t, err, "Email is required")
}
