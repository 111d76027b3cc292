// Package identity validates session tokens against the identity provider
// and yields the caller's organization membership.
//
// # Overview
//
// The edge gateway hands each inbound session token to a Provider, which
// answers with a Session: the stable user ID plus the active organization
// membership (organization ID, role, slug, status) embedded in the token by
// the upstream identity service. Validation is the only networked step on
// the hot path, so callers bound it with a context deadline; a timeout is a
// failed validation, never an allow.
//
// Two implementations exist: OIDCProvider verifies JWT session tokens
// against an OpenID Connect issuer's published signing keys, falling back
// to the userinfo endpoint for opaque access tokens, and StaticProvider
// maps fixed tokens to sessions for development and tests.
package identity
