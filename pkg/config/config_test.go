package config

import (
	"os"
	"testing"
	"time"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "5s")
	defer os.Unsetenv("TEST_DURATION")

	if got := getEnvDuration("TEST_DURATION", time.Second); got != 5*time.Second {
		t.Errorf("getEnvDuration() = %v, want 5s", got)
	}
	if got := getEnvDuration("TEST_DURATION_NOT_SET", time.Second); got != time.Second {
		t.Errorf("getEnvDuration() default = %v, want 1s", got)
	}

	os.Setenv("TEST_DURATION_BAD", "soon")
	defer os.Unsetenv("TEST_DURATION_BAD")
	if got := getEnvDuration("TEST_DURATION_BAD", time.Second); got != time.Second {
		t.Errorf("invalid duration should fall back to default, got %v", got)
	}
}

func TestGetEnvList(t *testing.T) {
	os.Setenv("TEST_LIST", "/pricing, /docs ,,")
	defer os.Unsetenv("TEST_LIST")

	got := getEnvList("TEST_LIST")
	if len(got) != 2 || got[0] != "/pricing" || got[1] != "/docs" {
		t.Errorf("getEnvList() = %v", got)
	}
	if got := getEnvList("TEST_LIST_NOT_SET"); got != nil {
		t.Errorf("unset list should be nil, got %v", got)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Setenv("ORGGATE_IDENTITY_PROVIDER", "static")
	defer os.Unsetenv("ORGGATE_IDENTITY_PROVIDER")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s", cfg.Server.Port)
	}
	if cfg.Server.HealthPort != "9090" {
		t.Errorf("default health port = %s", cfg.Server.HealthPort)
	}
	if cfg.Identity.ValidationTimeout != 3*time.Second {
		t.Errorf("default validation timeout = %v", cfg.Identity.ValidationTimeout)
	}
	if cfg.Gateway.SignInURL != "/sign-in" {
		t.Errorf("default sign-in URL = %s", cfg.Gateway.SignInURL)
	}
	if !cfg.Audit.Enabled || cfg.Audit.QueueSize != 1024 {
		t.Errorf("audit defaults = %+v", cfg.Audit)
	}
}

func TestLoadConfigOIDCRequiresIssuer(t *testing.T) {
	// Default provider is oidc with no issuer configured.
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when OIDC issuer is missing")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080", HealthPort: "9090"},
			Identity: IdentityConfig{
				Provider:          "static",
				ValidationTimeout: 3 * time.Second,
			},
			Gateway: GatewayConfig{SignInURL: "/sign-in"},
			Audit:   AuditConfig{Enabled: true, QueueSize: 64},
			Billing: BillingConfig{Provider: "none"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"same ports", func(c *Config) { c.Server.HealthPort = c.Server.Port }},
		{"unknown identity provider", func(c *Config) { c.Identity.Provider = "saml" }},
		{"zero validation timeout", func(c *Config) { c.Identity.ValidationTimeout = 0 }},
		{"relative public route", func(c *Config) { c.Gateway.PublicRoutes = []string{"pricing"} }},
		{"zero audit queue", func(c *Config) { c.Audit.QueueSize = 0 }},
		{"static billing without fixture", func(c *Config) { c.Billing.Provider = "static" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
