package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/routiq/orggate/pkg/authcontext"
	"github.com/routiq/orggate/pkg/httputil"
	"github.com/routiq/orggate/pkg/identity"
	"github.com/routiq/orggate/pkg/observability"
)

// Gateway resolves caller identity at the edge and guards every
// non-public route.
type Gateway struct {
	provider identity.Provider
	matcher  *RouteMatcher

	signInURL         string
	orgSelectionURL   string
	validationTimeout time.Duration

	logger  *observability.Logger
	metrics *observability.Metrics
}

// Options configures the gateway
type Options struct {
	Provider identity.Provider
	Matcher  *RouteMatcher

	// SignInURL receives unauthenticated browser navigation
	SignInURL string

	// OrgSelectionURL receives authenticated browsers without an organization
	OrgSelectionURL string

	// ValidationTimeout bounds each provider call. A timeout is a rejection.
	ValidationTimeout time.Duration

	Logger  *observability.Logger
	Metrics *observability.Metrics
}

// New creates a gateway
func New(opts Options) *Gateway {
	if opts.Matcher == nil {
		opts.Matcher = NewRouteMatcher(nil)
	}
	if opts.SignInURL == "" {
		opts.SignInURL = "/sign-in"
	}
	if opts.OrgSelectionURL == "" {
		opts.OrgSelectionURL = "/organization-selection"
	}
	if opts.ValidationTimeout <= 0 {
		opts.ValidationTimeout = 3 * time.Second
	}
	return &Gateway{
		provider:          opts.Provider,
		matcher:           opts.Matcher,
		signInURL:         opts.SignInURL,
		orgSelectionURL:   opts.OrgSelectionURL,
		validationTimeout: opts.ValidationTimeout,
		logger:            opts.Logger,
		metrics:           opts.Metrics,
	}
}

// Middleware is the edge authentication layer. It must be mounted outside
// every route except the health/metrics listener.
func (g *Gateway) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The propagation headers are ours alone. Drop whatever the caller
		// sent before anything else looks at the request.
		authcontext.StripHeaders(r)

		defer func() {
			if rec := recover(); rec != nil {
				g.logger.WithFields(map[string]interface{}{
					"panic": rec,
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("gateway panic recovered")
				g.decide("error", httputil.CodeMiddlewareError, r)
				httputil.WriteMiddlewareError(w)
			}
		}()

		if g.matcher.IsPublic(r.URL.Path) {
			g.decide("allowed", "public", r)
			next.ServeHTTP(w, r)
			return
		}

		token := httputil.BearerToken(r)
		if token == "" {
			g.rejectUnauthenticated(w, r)
			return
		}

		session, err := g.validate(r.Context(), token)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidSession) || errors.Is(err, context.DeadlineExceeded) {
				g.rejectUnauthenticated(w, r)
				return
			}
			g.logger.WithError(err).WithField("path", r.URL.Path).Error("identity provider failure")
			g.decide("error", httputil.CodeMiddlewareError, r)
			httputil.WriteMiddlewareError(w)
			return
		}

		if g.matcher.RequiresOrganization(r.URL.Path) && !session.HasOrganization() {
			g.decide("rejected", httputil.CodeMissingOrganization, r)
			if httputil.AcceptsJSON(r) {
				httputil.WriteMissingOrganization(w)
			} else {
				http.Redirect(w, r, g.orgSelectionURL, http.StatusFound)
			}
			return
		}

		authcontext.InjectSession(r, session)
		g.decide("allowed", "authenticated", r)
		next.ServeHTTP(w, r)
	})
}

// validate calls the provider under the configured deadline and records
// the round-trip in the validation metrics.
func (g *Gateway) validate(ctx context.Context, token string) (*identity.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, g.validationTimeout)
	defer cancel()

	start := time.Now()
	session, err := g.provider.Validate(ctx, token)
	elapsed := time.Since(start).Seconds()

	switch {
	case err == nil:
		g.metrics.ProviderValidationDuration.WithLabelValues("ok").Observe(elapsed)
	case errors.Is(err, identity.ErrInvalidSession):
		g.metrics.ProviderValidationDuration.WithLabelValues("invalid").Observe(elapsed)
	default:
		g.metrics.ProviderValidationDuration.WithLabelValues("error").Observe(elapsed)
		g.metrics.ProviderValidationErrors.Inc()
	}

	return session, err
}

// rejectUnauthenticated answers callers with no usable identity: JSON 401
// for API and XHR traffic, a sign-in redirect for browser navigation.
func (g *Gateway) rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	g.decide("rejected", httputil.CodeAuthRequired, r)
	if httputil.AcceptsJSON(r) {
		httputil.WriteAuthRequired(w)
		return
	}
	redirect := g.signInURL + "?redirect_url=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (g *Gateway) decide(outcome, code string, r *http.Request) {
	g.metrics.GateDecisionsTotal.WithLabelValues(outcome, code).Inc()
	g.logger.WithFields(map[string]interface{}{
		"outcome": outcome,
		"code":    code,
		"method":  r.Method,
		"path":    r.URL.Path,
	}).Debug("gate decision")
}
