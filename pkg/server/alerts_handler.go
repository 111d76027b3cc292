package server

import (
	"errors"
	"net/http"

	"github.com/routiq/orggate/pkg/authcontext"
	"github.com/routiq/orggate/pkg/billing"
	"github.com/routiq/orggate/pkg/httputil"
)

// alertsResponse wraps the composed alerts
type alertsResponse struct {
	Alerts []billing.Alert `json:"alerts"`
}

// billingAlerts composes the caller's billing alerts. The composer owns
// the permission check; this handler only maps its answers to HTTP.
func (s *Server) billingAlerts(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := authcontext.FromContext(r.Context())
	if !ok {
		httputil.WriteInternalError(w)
		return
	}

	data, err := s.billingProvider.BillingData(r.Context(), authCtx.OrganizationID)
	if err != nil {
		s.logger.WithError(err).WithField("organization_id", authCtx.OrganizationID).Error("billing provider failure")
		httputil.WriteInternalError(w)
		return
	}

	alerts, err := s.composer.ComposeForRole(authCtx.Role, data)
	if err != nil {
		if errors.Is(err, billing.ErrPermissionDenied) {
			httputil.WriteInsufficientPermissions(w)
			return
		}
		s.logger.WithError(err).WithField("role", string(authCtx.Role)).Error("alert composition failed")
		httputil.WriteInternalError(w)
		return
	}

	if alerts == nil {
		alerts = []billing.Alert{}
	}

	httputil.SetNoStore(w)
	httputil.WriteData(w, http.StatusOK, alertsResponse{Alerts: alerts})
}
