package config

import (
	"strings"
	"testing"
)

func validConfig(env, secret string) *Config {
	return &Config{
		App: AppConfig{Env: env},
		Auth: AuthConfig{
			JWTSecret:      secret,
			LoginPath:      "/login",
			ProtectedPaths: []string{"/dashboard/*"},
		},
	}
}

func TestValidate_DevelopmentAllowsDefaultSecret(t *testing.T) {
	if err := validConfig("development", DefaultJWTSecret).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_ProductionSecretRules(t *testing.T) {
	cases := map[string]string{
		"empty":   "",
		"default": DefaultJWTSecret,
		"short":   "too-short-secret",
	}
	for name, secret := range cases {
		t.Run(name, func(t *testing.T) {
			if err := validConfig("production", secret).Validate(); err == nil {
				t.Fatalf("expected error for %s secret", name)
			}
		})
	}

	strong := strings.Repeat("k", MinSecretBytes)
	if err := validConfig("production", strong).Validate(); err != nil {
		t.Fatalf("Validate strong secret: %v", err)
	}
}

func TestValidate_RequiresProtectedPaths(t *testing.T) {
	cfg := validConfig("development", DefaultJWTSecret)
	cfg.Auth.ProtectedPaths = nil
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without protected paths")
	}
}

func TestValidate_RejectsMalformedProtectedPath(t *testing.T) {
	for _, pattern := range []string{"/dashboard/[*", "dashboard/*"} {
		cfg := validConfig("development", DefaultJWTSecret)
		cfg.Auth.ProtectedPaths = []string{"/account/*", pattern}
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for pattern %q", pattern)
		}
	}
}

func TestLoad_RejectsMalformedProtectedPathEnv(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_PROTECTED_PATHS", "/dashboard/[*")

	if _, err := Load(); err == nil {
		t.Fatalf("expected Load to fail with a malformed protected path")
	}
}

func TestValidate_RejectsUnknownTracingExporter(t *testing.T) {
	cfg := validConfig("development", DefaultJWTSecret)
	cfg.Tracing.Exporter = "jaeger"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown exporter")
	}
}

func TestLoad_ReadsEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("AUTH_JWT_SECRET", strings.Repeat("s", 40))
	t.Setenv("AUTH_PROTECTED_PATHS", "/dashboard/*, /account/*")
	t.Setenv("AUTH_REDIRECT_WITH_RETURN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Auth.ProtectedPaths; len(got) != 2 || got[1] != "/account/*" {
		t.Fatalf("unexpected protected paths: %v", got)
	}
	if !cfg.Auth.RedirectWithReturn {
		t.Fatalf("expected redirect with return enabled")
	}
	if cfg.Auth.CookieName != "session_token" {
		t.Fatalf("unexpected cookie name: %s", cfg.Auth.CookieName)
	}
}

func TestLoad_RejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected Load to fail with default secret in production")
	}
}
