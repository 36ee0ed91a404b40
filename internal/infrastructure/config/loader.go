package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "CX"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

var errNoDotEnv = errors.New("no .env file found in search paths")

// stringOverrides maps explicit environment variables to config keys
var stringOverrides = map[string]string{
	"CX_DB_HOST":            "database.host",
	"CX_DB_PORT":            "database.port",
	"CX_DB_USERNAME":        "database.username",
	"CX_DB_PASSWORD":        "database.password",
	"CX_DB_NAME":            "database.database",
	"CX_DB_SSL_MODE":        "database.sslMode",
	"CX_DB_DRIVER":          "database.driver",
	"CX_DB_ISOLATION_LEVEL": "database.isolationLevel",
	"CX_SERVER_HOST":        "server.host",
	"CX_SERVER_PORT":        "server.port",
	"CX_LOGGER_LEVEL":       "logger.level",
	"CX_AUTH_SIGNING_KEY":   "auth.signingKey",
	"CX_AUTH_ISSUER":        "auth.issuer",
	"CX_REDIS_ADDR":         "redis.addr",
	"CX_REDIS_PASSWORD":     "redis.password",
	"CX_REDIS_ENABLED":      "redis.enabled",
	"CX_ADMIN_USERNAME":     "admin.seedUsername",
	"CX_ADMIN_EMAIL":        "admin.seedEmail",
}

// intOverrides maps environment variables carrying plain integers to config keys.
// Duration keys take the unit documented on their struct field.
var intOverrides = map[string]string{
	"CX_DB_MAX_OPEN_CONNS":               "database.maxOpenConns",
	"CX_DB_MAX_IDLE_CONNS":               "database.maxIdleConns",
	"CX_DB_CONN_MAX_LIFETIME_MINUTES":    "database.connMaxLifetime",
	"CX_DB_CONN_MAX_IDLE_TIME_MINUTES":   "database.connMaxIdleTime",
	"CX_DB_QUERY_TIMEOUT_SECONDS":        "database.queryTimeout",
	"CX_DB_SLOW_QUERY_MS":                "database.slowQueryThreshold",
	"CX_DB_RETRY_ATTEMPTS":               "database.retryAttempts",
	"CX_DB_RETRY_DELAY_SECONDS":          "database.retryDelay",
	"CX_AUTH_TOKEN_TTL_MINUTES":          "auth.tokenTTL",
	"CX_CACHE_DAILY_CODE_TTL_SECONDS":    "cache.dailyCodeTTL",
	"CX_LEDGER_MAX_TOKENS_PER_EXCHANGE":  "ledger.maxTokensPerExchange",
	"CX_LEDGER_CONFLICT_RETRY_ATTEMPTS":  "ledger.conflictRetryAttempts",
	"CX_LEDGER_CONFLICT_RETRY_DELAY_MS":  "ledger.conflictRetryDelay",
	"CX_LEDGER_INGEST_BATCH_SIZE":        "ledger.ingestBatchSize",
	"CX_SERVER_SHUTDOWN_TIMEOUT_SECONDS": "server.shutdownTimeout",
	"CX_SERVER_MAX_UPLOAD_BYTES":         "server.maxUploadBytes",
	"CX_REDIS_DB":                        "redis.db",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil && !errors.Is(err, errNoDotEnv) {
		fmt.Fprintln(os.Stderr, "Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// defaults plus environment are enough to run
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := processEnvOverrides(v); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found. Existing variables are not overwritten.
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return errNoDotEnv
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 15)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)
	v.SetDefault("server.maxUploadBytes", 32<<20)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.isolationLevel", "read committed")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30)
	v.SetDefault("database.connMaxIdleTime", 15)
	v.SetDefault("database.queryTimeout", 5)
	v.SetDefault("database.slowQueryThreshold", 200)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.reportingMaxConns", 4)
	v.SetDefault("database.autoMigrate", true)

	v.SetDefault("logger.level", "info")

	v.SetDefault("auth.issuer", "credit-exchange")
	v.SetDefault("auth.tokenTTL", 60)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.keyPrefix", "cx:")

	v.SetDefault("cache.dailyCodeTTL", 60)

	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("cors.maxAge", 43200)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("ledger.maxTokensPerExchange", 200)
	v.SetDefault("ledger.conflictRetryAttempts", 3)
	v.SetDefault("ledger.conflictRetryDelay", 20)
	v.SetDefault("ledger.ingestBatchSize", 500)
	v.SetDefault("ledger.enforceAccountExpiry", false)

	v.SetDefault("admin.seedUsername", "admin")
	v.SetDefault("admin.seedEmail", "admin@example.com")
}

// getEnvironment determines the environment from CX_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv("CX_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides makes the explicit environment variables win over the config file
func processEnvOverrides(v *viper.Viper) error {
	for name, key := range stringOverrides {
		if val := os.Getenv(name); val != "" {
			v.Set(key, val)
		}
	}

	for name, key := range intOverrides {
		val, ok, err := getEnvInt(name)
		if err != nil {
			return err
		}
		if ok {
			v.Set(key, val)
		}
	}

	if origins := os.Getenv("CX_CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		v.Set("cors.allowedOrigins", parts)
	}
	return nil
}

// getEnvInt reads an integer environment variable. A malformed value is an error.
func getEnvInt(name string) (int, bool, error) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return 0, false, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, false, fmt.Errorf("environment variable %s must be an integer: %w", name, err)
	}
	return val, true, nil
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.SlowQueryThreshold = time.Duration(config.Database.SlowQueryThreshold) * time.Millisecond
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Minute
	config.Cache.DailyCodeTTL = time.Duration(config.Cache.DailyCodeTTL) * time.Second
	config.CORS.MaxAge = time.Duration(config.CORS.MaxAge) * time.Second
	config.Ledger.ConflictRetryDelay = time.Duration(config.Ledger.ConflictRetryDelay) * time.Millisecond
}
