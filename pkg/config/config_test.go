package config

import (
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTERMINAL_APP_ENV", "dev")
	t.Setenv("POSTERMINAL_APP_PORT", "8080")
	t.Setenv("POSTERMINAL_CART_SERVICE_URL", "http://localhost:8001")
	t.Setenv("POSTERMINAL_CATALOG_SERVICE_URL", "http://localhost:8002")
	t.Setenv("POSTERMINAL_ORDER_SERVICE_URL", "http://localhost:8003")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.TerminalID != "local" {
		t.Errorf("expected default terminal id, got %q", cfg.App.TerminalID)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("expected default log level, got %q", cfg.App.LogLevel)
	}
	if cfg.Upstream.RequestTimeout != 15*time.Second {
		t.Errorf("expected default upstream timeout, got %s", cfg.Upstream.RequestTimeout)
	}
	if cfg.Checkout.SubmitTimeout != 30*time.Second {
		t.Errorf("expected default submit timeout, got %s", cfg.Checkout.SubmitTimeout)
	}
	if cfg.Checkout.DefaultPaymentMethod != "cash" {
		t.Errorf("expected default payment method, got %q", cfg.Checkout.DefaultPaymentMethod)
	}
}

func TestLoadFailsWithoutRequiredVars(t *testing.T) {
	setRequired(t)
	// t.Setenv registered the restore; drop the var for this test only
	os.Unsetenv("POSTERMINAL_APP_PORT")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing port")
	}
}

func TestLoadRejectsNonHTTPUpstream(t *testing.T) {
	setRequired(t)
	t.Setenv("POSTERMINAL_ORDER_SERVICE_URL", "localhost:8003")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for URL without scheme")
	}
}

func TestEnvChecks(t *testing.T) {
	app := AppConfig{Env: "DEV"}
	if !app.IsDev() || app.IsProd() {
		t.Fatal("env matching must be case-insensitive")
	}
	app.Env = "prod"
	if app.IsDev() || !app.IsProd() {
		t.Fatal("prod env misclassified")
	}
}
