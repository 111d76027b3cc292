package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/routiq/orggate/pkg/authcontext"
	"github.com/routiq/orggate/pkg/billing"
	"github.com/routiq/orggate/pkg/httputil"
	"github.com/routiq/orggate/pkg/observability"
)

// Server hosts the gate's application endpoints
type Server struct {
	router *mux.Router

	guards          *authcontext.Guards
	composer        *billing.Composer
	billingProvider billing.Provider

	logger  *observability.Logger
	metrics *observability.Metrics
}

// Options configures the server
type Options struct {
	Guards          *authcontext.Guards
	Composer        *billing.Composer
	BillingProvider billing.Provider
	Logger          *observability.Logger
	Metrics         *observability.Metrics
}

// New creates the server and mounts its routes
func New(opts Options) *Server {
	s := &Server{
		router:          mux.NewRouter(),
		guards:          opts.Guards,
		composer:        opts.Composer,
		billingProvider: opts.BillingProvider,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/health", s.health).Methods("GET")
	s.router.Handle("/api/organization/context",
		s.guards.RequireOrganization(http.HandlerFunc(s.organizationContext))).Methods("GET")
	s.router.Handle("/api/billing/alerts",
		s.guards.RequireOrganization(http.HandlerFunc(s.billingAlerts))).Methods("GET")
}

// Router exposes the route table for mounting behind the gateway
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, map[string]string{"status": "healthy"})
}
