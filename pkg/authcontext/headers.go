package authcontext

import (
	"net/http"

	"github.com/routiq/orggate/pkg/identity"
)

// Propagation headers written by the gateway after successful resolution.
// Inbound occurrences are stripped before resolution, so downstream reads
// are always gateway-written values.
const (
	HeaderUserID             = "X-Auth-User-Id"
	HeaderOrganizationID     = "X-Auth-Organization-Id"
	HeaderOrganizationName   = "X-Auth-Organization-Name"
	HeaderOrganizationSlug   = "X-Auth-Organization-Slug"
	HeaderOrganizationRole   = "X-Auth-Organization-Role"
	HeaderOrganizationStatus = "X-Auth-Organization-Status"
)

// PropagationHeaders lists every trusted propagation header
func PropagationHeaders() []string {
	return []string{
		HeaderUserID,
		HeaderOrganizationID,
		HeaderOrganizationName,
		HeaderOrganizationSlug,
		HeaderOrganizationRole,
		HeaderOrganizationStatus,
	}
}

// StripHeaders removes every propagation header from the request. The
// gateway calls this on each inbound request before validation so a caller
// cannot forge organization context.
func StripHeaders(r *http.Request) {
	for _, h := range PropagationHeaders() {
		r.Header.Del(h)
	}
}

// InjectSession writes the validated session onto the request as
// propagation headers. Only called after full, successful resolution.
func InjectSession(r *http.Request, session *identity.Session) {
	r.Header.Set(HeaderUserID, session.UserID)
	if session.HasOrganization() {
		r.Header.Set(HeaderOrganizationID, session.OrganizationID)
		r.Header.Set(HeaderOrganizationName, session.OrganizationName)
		r.Header.Set(HeaderOrganizationSlug, session.OrganizationSlug)
		r.Header.Set(HeaderOrganizationRole, session.OrganizationRole)
		r.Header.Set(HeaderOrganizationStatus, string(session.OrganizationStatus))
	}
}

// fromHeaders reads the propagation headers into a raw, unvalidated view.
// Role parsing happens in the guards, where an unknown role is a hard error.
type rawContext struct {
	userID             string
	organizationID     string
	organizationName   string
	organizationSlug   string
	organizationRole   string
	organizationStatus string
}

func fromHeaders(r *http.Request) rawContext {
	return rawContext{
		userID:             r.Header.Get(HeaderUserID),
		organizationID:     r.Header.Get(HeaderOrganizationID),
		organizationName:   r.Header.Get(HeaderOrganizationName),
		organizationSlug:   r.Header.Get(HeaderOrganizationSlug),
		organizationRole:   r.Header.Get(HeaderOrganizationRole),
		organizationStatus: r.Header.Get(HeaderOrganizationStatus),
	}
}
