package config

import (
	"flag"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is loaded once at startup
// and only read afterwards.
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`
	AppTitle   string `env:"APP_TITLE" envDefault:"Document Chat"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Azure OpenAI and Azure AI Search
	OpenAICfg OpenAIConfig `envPrefix:"AZURE_OPENAI_"`
	SearchCfg SearchConfig `envPrefix:"AZURE_SEARCH_"`

	// Prompt placed in front of every conversation
	SystemPrompt string `env:"SYSTEM_PROMPT,notEmpty"`

	// Exchange journal, disabled when DatabaseURL is empty
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	RateLimitCfg RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type OpenAIConfig struct {
	HTTPClientConfig
	Endpoint            string `env:"ENDPOINT,notEmpty"`
	GPTDeployment       string `env:"GPT_DEPLOYMENT,notEmpty"`
	EmbeddingDeployment string `env:"EMBEDDING_DEPLOYMENT,notEmpty"`
	APIVersion          string `env:"API_VERSION" envDefault:"2024-02-01"`
	// APIKey switches authentication from managed identity to a static key.
	APIKey string `env:"API_KEY"`
}

type SearchConfig struct {
	URL       string `env:"URL,notEmpty"`
	IndexName string `env:"INDEX_NAME,notEmpty"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"30s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
}

// RateLimitConfig limits chat requests per client address. PerMinute == 0 disables it.
// TrustedProxies lists CIDRs whose X-Forwarded-For is believed; any other
// peer is limited by its own address.
type RateLimitConfig struct {
	PerMinute      int      `env:"PER_MINUTE" envDefault:"0"`
	Burst          int      `env:"BURST" envDefault:"5"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address is a single host prefix.
func (c RateLimitConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if addr, err := netip.ParseAddr(raw); err == nil {
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}

		p, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		prefixes = append(prefixes, p.Masked())
	}

	return prefixes, nil
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Missing env files are fine: in containers variables are set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if err := validateServiceURL(cfg.OpenAICfg.Endpoint); err != nil {
		errors = append(errors, fmt.Sprintf("AZURE_OPENAI_ENDPOINT %v", err))
	}

	if err := validateServiceURL(cfg.SearchCfg.URL); err != nil {
		errors = append(errors, fmt.Sprintf("AZURE_SEARCH_URL %v", err))
	}

	if cfg.RateLimitCfg.PerMinute < 0 || cfg.RateLimitCfg.PerMinute > 6000 {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_PER_MINUTE must be between 0 and 6000, got %d", cfg.RateLimitCfg.PerMinute))
	}

	if cfg.RateLimitCfg.PerMinute > 0 && (cfg.RateLimitCfg.Burst < 1 || cfg.RateLimitCfg.Burst > 100) {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_BURST must be between 1 and 100, got %d", cfg.RateLimitCfg.Burst))
	}

	if _, err := cfg.RateLimitCfg.TrustedProxyPrefixes(); err != nil {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_TRUSTED_PROXIES %v", err))
	}

	if cfg.DatabaseURL != "" {
		if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
			errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
		}

		if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
			errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func validateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("is not a valid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("must be an http(s) URL, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host, got %q", raw)
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
