// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	ORGGATE_HOST="0.0.0.0"
//	ORGGATE_PORT="8080"
//	ORGGATE_HEALTH_PORT="9090"
//	ORGGATE_READ_TIMEOUT="15s"
//	ORGGATE_WRITE_TIMEOUT="15s"
//	ORGGATE_SHUTDOWN_TIMEOUT="30s"
//
// Identity provider settings:
//
//	ORGGATE_IDENTITY_PROVIDER="oidc"  # oidc, static
//	ORGGATE_OIDC_ISSUER_URL="https://auth.example.com"
//	ORGGATE_OIDC_CLIENT_ID="dashboard"
//	ORGGATE_VALIDATION_TIMEOUT="3s"
//
// Gateway settings:
//
//	ORGGATE_SIGN_IN_URL="/sign-in"
//	ORGGATE_PUBLIC_ROUTES="/pricing,/docs"
//
// Audit settings:
//
//	ORGGATE_AUDIT_ENABLED="true"
//	ORGGATE_AUDIT_FILE="/var/log/orggate/audit.jsonl"
//	ORGGATE_AUDIT_QUEUE_SIZE="1024"
//
// Billing settings:
//
//	ORGGATE_BILLING_PROVIDER="static"  # static, none
//	ORGGATE_BILLING_FIXTURE="/etc/orggate/billing.json"
//
// Observability settings:
//
//	ORGGATE_LOG_LEVEL="info"  # debug, info, warn, error
//	ORGGATE_METRICS_ENABLED="true"
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
package config
