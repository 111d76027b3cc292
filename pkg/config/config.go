package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/routiq/orggate/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Identity IdentityConfig
	Gateway  GatewayConfig
	Audit    AuditConfig
	Billing  BillingConfig

	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// IdentityConfig holds identity provider settings
type IdentityConfig struct {
	// Provider selects the session validator: "oidc" or "static" (dev/test only)
	Provider string

	// OIDC settings
	IssuerURL string
	ClientID  string

	// ValidationTimeout bounds each provider round-trip. A timeout counts as
	// a failed validation, never as an allow.
	ValidationTimeout time.Duration
}

// GatewayConfig holds edge middleware settings
type GatewayConfig struct {
	// SignInURL is where unauthenticated browser navigation is redirected
	SignInURL string

	// PublicRoutes are prefixes served without authentication, in addition
	// to the built-in allow-list (sign-in, webhooks, health)
	PublicRoutes []string
}

// AuditConfig holds audit recorder settings
type AuditConfig struct {
	// Enabled turns the recorder on. When off, events are discarded.
	Enabled bool

	// FilePath appends audit events as JSON lines. Empty means stdout.
	FilePath string

	// QueueSize bounds the async event queue; events beyond it are dropped
	// rather than blocking request handling.
	QueueSize int
}

// BillingConfig holds billing provider settings
type BillingConfig struct {
	// Provider selects the subscription source: "static" (fixture file) or "none"
	Provider string

	// FixturePath is the JSON fixture for the static provider
	FixturePath string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("ORGGATE_HOST", "0.0.0.0"),
			Port:            getEnv("ORGGATE_PORT", "8080"),
			ReadTimeout:     getEnvDuration("ORGGATE_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("ORGGATE_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("ORGGATE_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("ORGGATE_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthPort:      getEnv("ORGGATE_HEALTH_PORT", "9090"),
		},
		Identity: IdentityConfig{
			Provider:          getEnv("ORGGATE_IDENTITY_PROVIDER", "oidc"),
			IssuerURL:         getEnv("ORGGATE_OIDC_ISSUER_URL", ""),
			ClientID:          getEnv("ORGGATE_OIDC_CLIENT_ID", ""),
			ValidationTimeout: getEnvDuration("ORGGATE_VALIDATION_TIMEOUT", 3*time.Second),
		},
		Gateway: GatewayConfig{
			SignInURL:    getEnv("ORGGATE_SIGN_IN_URL", "/sign-in"),
			PublicRoutes: getEnvList("ORGGATE_PUBLIC_ROUTES"),
		},
		Audit: AuditConfig{
			Enabled:   getEnvBool("ORGGATE_AUDIT_ENABLED", true),
			FilePath:  getEnv("ORGGATE_AUDIT_FILE", ""),
			QueueSize: getEnvInt("ORGGATE_AUDIT_QUEUE_SIZE", 1024),
		},
		Billing: BillingConfig{
			Provider:    getEnv("ORGGATE_BILLING_PROVIDER", "none"),
			FixturePath: getEnv("ORGGATE_BILLING_FIXTURE", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:       observability.ParseLogLevel(strings.ToLower(getEnv("ORGGATE_LOG_LEVEL", "info"))),
			MetricsEnabled: getEnvBool("ORGGATE_METRICS_ENABLED", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	switch c.Identity.Provider {
	case "oidc":
		if c.Identity.IssuerURL == "" {
			return fmt.Errorf("OIDC issuer URL is required for the oidc provider")
		}
		if c.Identity.ClientID == "" {
			return fmt.Errorf("OIDC client ID is required for the oidc provider")
		}
	case "static":
		// No further settings. Static sessions are for development only.
	default:
		return fmt.Errorf("invalid identity provider: %s (must be oidc or static)", c.Identity.Provider)
	}

	if c.Identity.ValidationTimeout <= 0 {
		return fmt.Errorf("validation timeout must be positive")
	}
	if c.Gateway.SignInURL == "" {
		return fmt.Errorf("sign-in URL is required")
	}
	for _, route := range c.Gateway.PublicRoutes {
		if !strings.HasPrefix(route, "/") {
			return fmt.Errorf("public route must start with /: %s", route)
		}
	}

	if c.Audit.Enabled && c.Audit.QueueSize <= 0 {
		return fmt.Errorf("audit queue size must be positive")
	}

	switch c.Billing.Provider {
	case "none":
	case "static":
		if c.Billing.FixturePath == "" {
			return fmt.Errorf("billing fixture path is required for the static provider")
		}
	default:
		return fmt.Errorf("invalid billing provider: %s (must be static or none)", c.Billing.Provider)
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable as a slice
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
