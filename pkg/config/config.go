package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POSTERMINAL_APP_ENV" required:"true"`
	Port         string `envconfig:"POSTERMINAL_APP_PORT" required:"true"`
	TerminalID   string `envconfig:"POSTERMINAL_TERMINAL_ID" default:"local"`
	LogLevel     string `envconfig:"POSTERMINAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POSTERMINAL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig locates the remote services the terminal mirrors.
type UpstreamConfig struct {
	CartServiceURL    string        `envconfig:"POSTERMINAL_CART_SERVICE_URL" required:"true"`
	CatalogServiceURL string        `envconfig:"POSTERMINAL_CATALOG_SERVICE_URL" required:"true"`
	OrderServiceURL   string        `envconfig:"POSTERMINAL_ORDER_SERVICE_URL" required:"true"`
	RequestTimeout    time.Duration `envconfig:"POSTERMINAL_UPSTREAM_TIMEOUT" default:"15s"`
}

type CheckoutConfig struct {
	SubmitTimeout        time.Duration `envconfig:"POSTERMINAL_CHECKOUT_SUBMIT_TIMEOUT" default:"30s"`
	DefaultPaymentMethod string        `envconfig:"POSTERMINAL_DEFAULT_PAYMENT_METHOD" default:"cash"`
}

func (u *UpstreamConfig) validate() error {
	for name, raw := range map[string]string{
		"POSTERMINAL_CART_SERVICE_URL":    u.CartServiceURL,
		"POSTERMINAL_CATALOG_SERVICE_URL": u.CatalogServiceURL,
		"POSTERMINAL_ORDER_SERVICE_URL":   u.OrderServiceURL,
	} {
		parsed, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
		}
	}
	if u.RequestTimeout <= 0 {
		return fmt.Errorf("POSTERMINAL_UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}
