package authcontext

import (
	"net/http"

	"github.com/routiq/orggate/pkg/audit"
	"github.com/routiq/orggate/pkg/httputil"
	"github.com/routiq/orggate/pkg/observability"
	"github.com/routiq/orggate/pkg/rbac"
)

// Guards wraps protected handlers with authorization checks. All guards
// answer before invoking the handler when the required context is missing,
// and handlers invoked by a guard always see a complete context.
type Guards struct {
	logger   *observability.Logger
	metrics  *observability.Metrics
	recorder *audit.Recorder
}

// NewGuards creates the guard set. recorder may be nil to disable audit.
func NewGuards(logger *observability.Logger, metrics *observability.Metrics, recorder *audit.Recorder) *Guards {
	return &Guards{logger: logger, metrics: metrics, recorder: recorder}
}

// buildContext turns raw propagation headers into a typed context. A set
// organization with an undeclared role is a configuration defect, not a
// downgrade to least privilege.
func buildContext(raw rawContext) (*AuthorizationContext, error) {
	authCtx := &AuthorizationContext{
		UserID:           raw.userID,
		OrganizationID:   raw.organizationID,
		OrganizationName: raw.organizationName,
		OrganizationSlug: raw.organizationSlug,
	}
	if raw.organizationID != "" {
		role, err := rbac.ParseRole(raw.organizationRole)
		if err != nil {
			return nil, err
		}
		authCtx.Role = role
		authCtx.OrganizationStatus = OrgStatus(raw.organizationStatus)
		if authCtx.OrganizationStatus == "" {
			authCtx.OrganizationStatus = OrgActive
		}
	}
	return authCtx, nil
}

// RequireAuth rejects with 401 MISSING_AUTH when no user identity was
// propagated. The handler runs with the typed context for the caller.
func (g *Guards) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := fromHeaders(r)
		if raw.userID == "" {
			g.reject(r, "require_auth", httputil.CodeMissingAuth, raw)
			httputil.WriteMissingAuth(w)
			return
		}

		authCtx, err := buildContext(raw)
		if err != nil {
			g.configDefect(w, r, "require_auth", raw, err)
			return
		}

		g.record(r, "require_auth", audit.OutcomeAllowed, authCtx, "")
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), authCtx)))
	})
}

// RequireOrganization rejects with 403 MISSING_ORGANIZATION when the
// caller has no organization and 403 ORGANIZATION_INACTIVE when it is
// suspended. Pending organizations pass; handlers read the status off the
// context to degrade individual features.
func (g *Guards) RequireOrganization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := fromHeaders(r)
		if raw.userID == "" {
			g.reject(r, "require_organization", httputil.CodeMissingAuth, raw)
			httputil.WriteMissingAuth(w)
			return
		}
		if raw.organizationID == "" {
			g.reject(r, "require_organization", httputil.CodeMissingOrganization, raw)
			httputil.WriteMissingOrganization(w)
			return
		}

		authCtx, err := buildContext(raw)
		if err != nil {
			g.configDefect(w, r, "require_organization", raw, err)
			return
		}

		if authCtx.OrganizationStatus == OrgSuspended {
			g.reject(r, "require_organization", httputil.CodeOrganizationInactive, raw)
			httputil.WriteErrorCode(w, http.StatusForbidden, httputil.CodeOrganizationInactive, "Organization is not active")
			return
		}

		g.record(r, "require_organization", audit.OutcomeAllowed, authCtx, "")
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), authCtx)))
	})
}

// RequirePermission additionally consults the permission engine for the
// caller's role. Lacking the permission is a 403 INSUFFICIENT_PERMISSIONS;
// an undeclared role is a 500.
func (g *Guards) RequirePermission(perm rbac.Permission, next http.Handler) http.Handler {
	return g.RequireOrganization(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authCtx, _ := FromContext(r.Context())

		allowed, err := rbac.HasPermission(authCtx.Role, perm)
		if err != nil {
			g.configDefect(w, r, "require_permission", rawContext{
				userID:           authCtx.UserID,
				organizationID:   authCtx.OrganizationID,
				organizationRole: string(authCtx.Role),
			}, err)
			return
		}
		if !allowed {
			g.record(r, string(perm), audit.OutcomeDenied, authCtx, "role lacks permission")
			g.metrics.GuardRejectionsTotal.WithLabelValues("require_permission", httputil.CodeInsufficientPermissions).Inc()
			httputil.WriteInsufficientPermissions(w)
			return
		}

		g.record(r, string(perm), audit.OutcomeAllowed, authCtx, "")
		next.ServeHTTP(w, r)
	}))
}

func (g *Guards) reject(r *http.Request, guard, code string, raw rawContext) {
	g.metrics.GuardRejectionsTotal.WithLabelValues(guard, code).Inc()
	g.record(r, guard, audit.OutcomeDenied, &AuthorizationContext{
		UserID:         raw.userID,
		OrganizationID: raw.organizationID,
		Role:           rbac.Role(raw.organizationRole),
	}, code)
}

func (g *Guards) configDefect(w http.ResponseWriter, r *http.Request, guard string, raw rawContext, err error) {
	g.logger.WithError(err).WithFields(map[string]interface{}{
		"guard":   guard,
		"user_id": raw.userID,
		"role":    raw.organizationRole,
	}).Error("authorization context resolution failed")
	g.metrics.GuardRejectionsTotal.WithLabelValues(guard, httputil.CodeInternalError).Inc()
	g.record(r, guard, audit.OutcomeError, &AuthorizationContext{
		UserID:         raw.userID,
		OrganizationID: raw.organizationID,
		Role:           rbac.Role(raw.organizationRole),
	}, err.Error())
	httputil.WriteInternalError(w)
}

func (g *Guards) record(r *http.Request, action string, outcome audit.Outcome, authCtx *AuthorizationContext, detail string) {
	if g.recorder == nil {
		return
	}
	g.recorder.Record(audit.Event{
		Action:         action,
		Outcome:        outcome,
		UserID:         authCtx.UserID,
		OrganizationID: authCtx.OrganizationID,
		Role:           string(authCtx.Role),
		SourceAddress:  httputil.ClientIP(r),
		Method:         r.Method,
		Path:           r.URL.Path,
		RequestID:      observability.GetRequestID(r.Context()),
		Detail:         detail,
	})
}
