package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/routiq/orggate/pkg/audit"
	"github.com/routiq/orggate/pkg/authcontext"
	"github.com/routiq/orggate/pkg/billing"
	"github.com/routiq/orggate/pkg/config"
	"github.com/routiq/orggate/pkg/gateway"
	"github.com/routiq/orggate/pkg/httputil"
	"github.com/routiq/orggate/pkg/identity"
	"github.com/routiq/orggate/pkg/observability"
	"github.com/routiq/orggate/pkg/server"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.WithField("version", version).Info("starting orggate")

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	recorder, err := buildAuditRecorder(cfg, logger, metrics)
	if err != nil {
		logger.WithError(err).Error("failed to initialize audit recorder")
		os.Exit(1)
	}

	provider, err := buildIdentityProvider(cfg, logger)
	if err != nil {
		logger.WithError(err).Error("failed to initialize identity provider")
		os.Exit(1)
	}

	billingProvider, err := buildBillingProvider(cfg)
	if err != nil {
		logger.WithError(err).Error("failed to initialize billing provider")
		os.Exit(1)
	}

	guards := authcontext.NewGuards(logger, metrics, recorder)
	composer := billing.NewComposer(metrics)

	appServer := server.New(server.Options{
		Guards:          guards,
		Composer:        composer,
		BillingProvider: billingProvider,
		Logger:          logger,
		Metrics:         metrics,
	})

	gw := gateway.New(gateway.Options{
		Provider:          provider,
		Matcher:           gateway.NewRouteMatcher(cfg.Gateway.PublicRoutes),
		SignInURL:         cfg.Gateway.SignInURL,
		ValidationTimeout: cfg.Identity.ValidationTimeout,
		Logger:            logger,
		Metrics:           metrics,
	})

	chain := httputil.Chain(
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(logger),
		httputil.RecoveryMiddleware(logger),
		gw.Middleware,
	)

	appHTTP := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      chain(appServer),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthHTTP := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler:      healthRouter(cfg, registry),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("addr", appHTTP.Addr).Info("application server listening")
		if err := appHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("application server failed")
			os.Exit(1)
		}
	}()

	go func() {
		logger.WithField("addr", healthHTTP.Addr).Info("health server listening")
		if err := healthHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("health server failed")
			os.Exit(1)
		}
	}()

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, appHTTP, healthHTTP)
	shutdown.RegisterShutdownFunc(recorder.Shutdown)

	if err := shutdown.WaitForShutdown(); err != nil {
		os.Exit(1)
	}
}

func buildAuditRecorder(cfg *config.Config, logger *observability.Logger, metrics *observability.Metrics) (*audit.Recorder, error) {
	var sink audit.Sink
	switch {
	case !cfg.Audit.Enabled:
		sink = audit.NewNopSink()
	case cfg.Audit.FilePath != "":
		fileSink, err := audit.NewFileSink(cfg.Audit.FilePath)
		if err != nil {
			return nil, err
		}
		sink = fileSink
	default:
		sink = audit.NewWriterSink(os.Stdout)
	}
	return audit.NewRecorder(sink, logger, metrics, cfg.Audit.QueueSize), nil
}

func buildIdentityProvider(cfg *config.Config, logger *observability.Logger) (identity.Provider, error) {
	switch cfg.Identity.Provider {
	case "oidc":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return identity.NewOIDCProvider(ctx, identity.OIDCConfig{
			IssuerURL: cfg.Identity.IssuerURL,
			ClientID:  cfg.Identity.ClientID,
		})
	case "static":
		logger.Warn("using the static identity provider; development only")
		return identity.NewStaticProvider(), nil
	default:
		return nil, fmt.Errorf("unknown identity provider: %s", cfg.Identity.Provider)
	}
}

func buildBillingProvider(cfg *config.Config) (billing.Provider, error) {
	switch cfg.Billing.Provider {
	case "static":
		return billing.NewStaticProvider(cfg.Billing.FixturePath)
	default:
		return billing.NewNopProvider(), nil
	}
}

func healthRouter(cfg *config.Config, registry *prometheus.Registry) http.Handler {
	checker := observability.NewHealthChecker(version)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", checker.Liveness).Methods("GET")
	router.HandleFunc("/readyz", checker.Readiness).Methods("GET")
	if cfg.Observability.MetricsEnabled {
		router.Handle("/metrics", observability.Handler(registry)).Methods("GET")
	}
	return router
}
