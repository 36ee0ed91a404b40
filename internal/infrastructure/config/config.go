package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Cache       CacheConfig    `mapstructure:"cache"`
	CORS        CORSConfig     `mapstructure:"cors"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
	Ledger      LedgerConfig   `mapstructure:"ledger"`
	Admin       AdminConfig    `mapstructure:"admin"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	MaxUploadBytes    int64         `mapstructure:"maxUploadBytes"`
}

// DatabaseConfig contains ledger store settings. Driver is postgres or memory.
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"sslMode"`
	IsolationLevel     string        `mapstructure:"isolationLevel"`
	MaxOpenConns       int           `mapstructure:"maxOpenConns"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"`    // minutes
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"`    // minutes
	QueryTimeout       time.Duration `mapstructure:"queryTimeout"`       // seconds
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"` // milliseconds
	RetryAttempts      int           `mapstructure:"retryAttempts"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"` // seconds
	LogLevel           string        `mapstructure:"logLevel"`
	ReportingMaxConns  int32         `mapstructure:"reportingMaxConns"`
	AutoMigrate        bool          `mapstructure:"autoMigrate"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig contains bearer token settings
type AuthConfig struct {
	SigningKey string        `mapstructure:"signingKey"`
	Issuer     string        `mapstructure:"issuer"`
	TokenTTL   time.Duration `mapstructure:"tokenTTL"` // minutes
}

// RedisConfig contains the optional redis cache connection
type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

// CacheConfig contains read-through cache settings
type CacheConfig struct {
	DailyCodeTTL time.Duration `mapstructure:"dailyCodeTTL"` // seconds
}

// CORSConfig contains cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	MaxAge         time.Duration `mapstructure:"maxAge"` // seconds
}

// MetricsConfig contains prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LedgerConfig contains exchange and conflict handling settings
type LedgerConfig struct {
	MaxTokensPerExchange  int           `mapstructure:"maxTokensPerExchange"`
	ConflictRetryAttempts int           `mapstructure:"conflictRetryAttempts"`
	ConflictRetryDelay    time.Duration `mapstructure:"conflictRetryDelay"` // milliseconds
	IngestBatchSize       int           `mapstructure:"ingestBatchSize"`
	EnforceAccountExpiry  bool          `mapstructure:"enforceAccountExpiry"`
}

// AdminConfig describes the administrator seeded at startup
type AdminConfig struct {
	SeedUsername string `mapstructure:"seedUsername"`
	SeedEmail    string `mapstructure:"seedEmail"`
}
