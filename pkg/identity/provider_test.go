package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProviderValidate(t *testing.T) {
	provider := NewStaticProvider()
	provider.AddSession("tok_staff", Session{
		UserID:             "user_1",
		OrganizationID:     "org_1",
		OrganizationRole:   "staff",
		OrganizationSlug:   "north-clinic",
		OrganizationStatus: OrganizationActive,
	})

	session, err := provider.Validate(context.Background(), "tok_staff")
	require.NoError(t, err)
	assert.Equal(t, "user_1", session.UserID)
	assert.Equal(t, "org_1", session.OrganizationID)
	assert.True(t, session.HasOrganization())
}

func TestStaticProviderUnknownToken(t *testing.T) {
	provider := NewStaticProvider()

	_, err := provider.Validate(context.Background(), "tok_forged")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestStaticProviderExpiredSession(t *testing.T) {
	provider := NewStaticProvider()
	provider.AddSession("tok_old", Session{
		UserID:    "user_1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err := provider.Validate(context.Background(), "tok_old")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestStaticProviderHonorsContext(t *testing.T) {
	provider := NewStaticProvider()
	provider.AddSession("tok_ok", Session{UserID: "user_1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Validate(ctx, "tok_ok")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidSession), "cancellation is not a rejection")
}

func TestStaticProviderRemoveSession(t *testing.T) {
	provider := NewStaticProvider()
	provider.AddSession("tok_revoked", Session{UserID: "user_1"})
	provider.RemoveSession("tok_revoked")

	_, err := provider.Validate(context.Background(), "tok_revoked")
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestSessionHasOrganization(t *testing.T) {
	withOrg := Session{UserID: "user_1", OrganizationID: "org_1"}
	assert.True(t, withOrg.HasOrganization())

	withoutOrg := Session{UserID: "user_1"}
	assert.False(t, withoutOrg.HasOrganization())
}

func TestNewOIDCProviderRequiresConfig(t *testing.T) {
	_, err := NewOIDCProvider(context.Background(), OIDCConfig{ClientID: "dashboard"})
	assert.Error(t, err, "missing issuer should fail")

	_, err = NewOIDCProvider(context.Background(), OIDCConfig{IssuerURL: "https://auth.example.com"})
	assert.Error(t, err, "missing client ID should fail")
}
