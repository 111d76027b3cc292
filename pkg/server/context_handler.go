package server

import (
	"net/http"

	"github.com/routiq/orggate/pkg/authcontext"
	"github.com/routiq/orggate/pkg/httputil"
	"github.com/routiq/orggate/pkg/rbac"
)

// contextResponse is the wire shape the client mirror consumes
type contextResponse struct {
	UserID             string   `json:"userId"`
	OrganizationID     string   `json:"organizationId"`
	OrganizationName   string   `json:"organizationName"`
	OrganizationSlug   string   `json:"organizationSlug"`
	UserRole           string   `json:"userRole"`
	UserStatus         string   `json:"userStatus"`
	OrganizationStatus string   `json:"organizationStatus"`
	Permissions        []string `json:"permissions"`
}

// organizationContext answers the caller's resolved context. The guard
// guarantees a complete context; anything missing here is a defect.
func (s *Server) organizationContext(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authcontext.FromContext(r.Context())
	if !ok {
		httputil.WriteInternalError(w)
		return
	}

	perms, err := rbac.RolePermissions(authCtx.Role)
	if err != nil {
		s.logger.WithError(err).WithField("role", string(authCtx.Role)).Error("context resolution hit an undeclared role")
		httputil.WriteInternalError(w)
		return
	}
	permStrings := make([]string, len(perms))
	for i, p := range perms {
		permStrings[i] = string(p)
	}

	httputil.SetNoStore(w)
	httputil.WriteData(w, http.StatusOK, contextResponse{
		UserID:             authCtx.UserID,
		OrganizationID:     authCtx.OrganizationID,
		OrganizationName:   authCtx.OrganizationName,
		OrganizationSlug:   authCtx.OrganizationSlug,
		UserRole:           string(authCtx.Role),
		UserStatus:         "active",
		OrganizationStatus: string(authCtx.OrganizationStatus),
		Permissions:        permStrings,
	})
}
