package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCProvider validates session tokens against an OpenID Connect issuer.
// Signed ID tokens are verified locally against the issuer's published
// keys; opaque access tokens fall back to the userinfo endpoint.
// Organization membership travels in custom claims set by the identity
// service when the user selects an organization.
type OIDCProvider struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// OIDCConfig configures the OIDC provider
type OIDCConfig struct {
	IssuerURL string
	ClientID  string
}

// NewOIDCProvider discovers the issuer and builds a token verifier
func NewOIDCProvider(ctx context.Context, config OIDCConfig) (*OIDCProvider, error) {
	if config.IssuerURL == "" {
		return nil, fmt.Errorf("issuer URL is required")
	}
	if config.ClientID == "" {
		return nil, fmt.Errorf("client ID is required")
	}

	provider, err := oidc.NewProvider(ctx, config.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: config.ClientID})

	return &OIDCProvider{provider: provider, verifier: verifier}, nil
}

// sessionClaims are the custom claims the identity service embeds in the
// ID token and the userinfo response alongside the standard set.
type sessionClaims struct {
	OrganizationID     string `json:"org_id"`
	OrganizationName   string `json:"org_name"`
	OrganizationRole   string `json:"org_role"`
	OrganizationSlug   string `json:"org_slug"`
	OrganizationStatus string `json:"org_status"`
}

// Validate verifies the token and extracts the organization membership
// claims. JWT session tokens are checked locally (signature, issuer,
// audience, expiry); anything that does not parse as a JWT is tried as an
// opaque access token against the userinfo endpoint.
func (p *OIDCProvider) Validate(ctx context.Context, token string) (*Session, error) {
	idToken, err := p.verifier.Verify(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if looksLikeJWT(token) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
		}
		return p.validateOpaque(ctx, token)
	}

	var claims sessionClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: failed to parse claims: %v", ErrInvalidSession, err)
	}

	return buildSession(idToken.Subject, claims, idToken.Expiry)
}

// validateOpaque resolves an opaque access token through the userinfo
// endpoint. The issuer authenticates the token; we only map the claims.
func (p *OIDCProvider) validateOpaque(ctx context.Context, token string) (*Session, error) {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	userInfo, err := p.provider.UserInfo(ctx, source)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	var claims sessionClaims
	if err := userInfo.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: failed to parse userinfo claims: %v", ErrInvalidSession, err)
	}

	// Userinfo answers carry no expiry; the issuer revokes opaque tokens
	// on its side.
	return buildSession(userInfo.Subject, claims, time.Time{})
}

func buildSession(subject string, claims sessionClaims, expiry time.Time) (*Session, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidSession)
	}

	session := &Session{
		UserID:           subject,
		OrganizationID:   claims.OrganizationID,
		OrganizationName: claims.OrganizationName,
		OrganizationRole: strings.ToLower(claims.OrganizationRole),
		OrganizationSlug: claims.OrganizationSlug,
		ExpiresAt:        expiry,
	}
	if claims.OrganizationStatus != "" {
		session.OrganizationStatus = OrganizationStatus(strings.ToLower(claims.OrganizationStatus))
	} else if session.OrganizationID != "" {
		// Tokens minted before the status claim existed imply active.
		session.OrganizationStatus = OrganizationActive
	}

	return session, nil
}

func looksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}
