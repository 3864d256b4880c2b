package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://contoso.openai.azure.com/")
	t.Setenv("AZURE_OPENAI_GPT_DEPLOYMENT", "gpt-4o")
	t.Setenv("AZURE_OPENAI_EMBEDDING_DEPLOYMENT", "text-embedding-3-small")
	t.Setenv("AZURE_SEARCH_URL", "https://contoso.search.windows.net")
	t.Setenv("AZURE_SEARCH_INDEX_NAME", "docs")
	t.Setenv("SYSTEM_PROMPT", "You answer from the indexed documents only.")
}

func TestParse_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "Document Chat", cfg.AppTitle)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gpt-4o", cfg.OpenAICfg.GPTDeployment)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAICfg.EmbeddingDeployment)
	assert.Equal(t, "2024-02-01", cfg.OpenAICfg.APIVersion)
	assert.Equal(t, 60*time.Second, cfg.OpenAICfg.RequestTimeout)
	assert.Equal(t, "docs", cfg.SearchCfg.IndexName)
	assert.Empty(t, cfg.OpenAICfg.APIKey)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Zero(t, cfg.RateLimitCfg.PerMinute)
	assert.False(t, cfg.EnableMocks)
}

func TestParse_MissingRequiredSettings(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "openai endpoint", unset: "AZURE_OPENAI_ENDPOINT"},
		{name: "gpt deployment", unset: "AZURE_OPENAI_GPT_DEPLOYMENT"},
		{name: "embedding deployment", unset: "AZURE_OPENAI_EMBEDDING_DEPLOYMENT"},
		{name: "search url", unset: "AZURE_SEARCH_URL"},
		{name: "search index", unset: "AZURE_SEARCH_INDEX_NAME"},
		{name: "system prompt", unset: "SYSTEM_PROMPT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.unset)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			OpenAICfg:    OpenAIConfig{Endpoint: "https://contoso.openai.azure.com"},
			SearchCfg:    SearchConfig{URL: "https://contoso.search.windows.net", IndexName: "docs"},
			RateLimitCfg: RateLimitConfig{PerMinute: 0, Burst: 5},
			DBMaxConns:   10,
			DBMinConns:   1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "endpoint without scheme",
			mutate:  func(c *Config) { c.OpenAICfg.Endpoint = "contoso.openai.azure.com" },
			wantErr: "AZURE_OPENAI_ENDPOINT",
		},
		{
			name:    "search url without host",
			mutate:  func(c *Config) { c.SearchCfg.URL = "https://" },
			wantErr: "AZURE_SEARCH_URL",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.RateLimitCfg.PerMinute = -1 },
			wantErr: "RATE_LIMIT_PER_MINUTE",
		},
		{
			name: "zero burst with limiter enabled",
			mutate: func(c *Config) {
				c.RateLimitCfg.PerMinute = 30
				c.RateLimitCfg.Burst = 0
			},
			wantErr: "RATE_LIMIT_BURST",
		},
		{
			name:    "bad trusted proxy",
			mutate:  func(c *Config) { c.RateLimitCfg.TrustedProxies = []string{"10.0.0.0/33"} },
			wantErr: "RATE_LIMIT_TRUSTED_PROXIES",
		},
		{
			name: "db pool checked only with database url",
			mutate: func(c *Config) {
				c.DBMaxConns = 0
			},
		},
		{
			name: "db min above max",
			mutate: func(c *Config) {
				c.DatabaseURL = "postgres://localhost/chat"
				c.DBMinConns = 20
			},
			wantErr: "DB_MIN_CONNS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRateLimitConfig_TrustedProxyPrefixes(t *testing.T) {
	t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10,2001:db8::/32")
	setRequiredEnv(t)

	cfg, err := parse()
	require.NoError(t, err)

	prefixes, err := cfg.RateLimitCfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "192.0.2.10/32", prefixes[1].String())
	assert.Equal(t, "2001:db8::/32", prefixes[2].String())
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
