package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
  readTimeout: 20
database:
  driver: postgres
  host: db.internal
  username: ledger
  password: from-file
  database: credit_exchange
  isolationLevel: serializable
  slowQueryThreshold: 150
auth:
  signingKey: 0123456789abcdef0123456789abcdef
  tokenTTL: 30
ledger:
  maxTokensPerExchange: 100
  conflictRetryDelay: 40
cors:
  allowedOrigins:
    - https://app.example.com
`

func withConfigDir(t *testing.T, files map[string]string) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}

	oldPaths, oldDotEnv := ConfigPaths, DotEnvPaths
	ConfigPaths = []string{dir}
	DotEnvPaths = []string{filepath.Join(dir, ".env")}
	t.Cleanup(func() {
		ConfigPaths, DotEnvPaths = oldPaths, oldDotEnv
	})
}

func TestLoadConfigFromFile(t *testing.T) {
	withConfigDir(t, map[string]string{"test.yaml": testYAML})
	t.Setenv("CX_ENV", "TEST")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout, "default applies")
	assert.Equal(t, "serializable", cfg.Database.IsolationLevel)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 150*time.Millisecond, cfg.Database.SlowQueryThreshold)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 100, cfg.Ledger.MaxTokensPerExchange)
	assert.Equal(t, 40*time.Millisecond, cfg.Ledger.ConflictRetryDelay)
	assert.Equal(t, 500, cfg.Ledger.IngestBatchSize)
	assert.Equal(t, time.Minute, cfg.Cache.DailyCodeTTL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, Validate(cfg))
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	withConfigDir(t, map[string]string{"test.yaml": testYAML})
	t.Setenv("CX_ENV", "test")
	t.Setenv("CX_DB_PASSWORD", "from-env")
	t.Setenv("CX_DB_PORT", "6543")
	t.Setenv("CX_REDIS_ENABLED", "true")
	t.Setenv("CX_LEDGER_MAX_TOKENS_PER_EXCHANGE", "20")
	t.Setenv("CX_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 20, cfg.Ledger.MaxTokensPerExchange)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigMalformedIntegerOverride(t *testing.T) {
	withConfigDir(t, map[string]string{"test.yaml": testYAML})
	t.Setenv("CX_ENV", "test")
	t.Setenv("CX_DB_RETRY_ATTEMPTS", "three")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CX_DB_RETRY_ATTEMPTS")
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	withConfigDir(t, nil)
	t.Setenv("CX_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "read committed", cfg.Database.IsolationLevel)
	assert.Equal(t, 3, cfg.Ledger.ConflictRetryAttempts)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfigDotEnv(t *testing.T) {
	withConfigDir(t, map[string]string{
		"test.yaml": testYAML,
		".env":      "CX_AUTH_ISSUER=dotenv-issuer\n",
	})
	t.Setenv("CX_ENV", "test")
	// restore whatever godotenv sets once the test ends
	t.Setenv("CX_AUTH_ISSUER", "")
	require.NoError(t, os.Unsetenv("CX_AUTH_ISSUER"))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-issuer", cfg.Auth.Issuer)
}
