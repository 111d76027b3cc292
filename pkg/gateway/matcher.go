package gateway

import (
	"strings"
)

// defaultPublicPrefixes are always served without authentication
var defaultPublicPrefixes = []string{
	"/sign-in",
	"/sign-up",
	"/api/webhooks/",
	"/api/health",
	"/favicon.ico",
}

// defaultOrgExemptPrefixes are protected routes reachable by authenticated
// users who have not yet joined or selected an organization
var defaultOrgExemptPrefixes = []string{
	"/organization-selection",
	"/onboarding",
	"/api/user/",
}

// RouteMatcher classifies request paths. Prefix misses are implicitly
// protected and org-required; there is no way to opt a route out by
// forgetting it.
type RouteMatcher struct {
	public    []string
	orgExempt []string
}

// NewRouteMatcher builds a matcher from the built-in lists plus extra
// public prefixes from configuration.
func NewRouteMatcher(extraPublic []string) *RouteMatcher {
	public := append(append([]string{}, defaultPublicPrefixes...), extraPublic...)
	return &RouteMatcher{
		public:    public,
		orgExempt: defaultOrgExemptPrefixes,
	}
}

// IsPublic reports whether the path is served without authentication
func (m *RouteMatcher) IsPublic(path string) bool {
	return matchesPrefix(m.public, path)
}

// RequiresOrganization reports whether an authenticated caller on this
// path must also carry an organization membership.
func (m *RouteMatcher) RequiresOrganization(path string) bool {
	return !matchesPrefix(m.orgExempt, path)
}

func matchesPrefix(prefixes []string, path string) bool {
	for _, prefix := range prefixes {
		p := strings.TrimSuffix(prefix, "/")
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
