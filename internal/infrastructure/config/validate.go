package config

import (
	"fmt"
	"strings"
	"time"
)

const minSigningKeyLength = 32

// Validate ensures all required configuration values are present. Every missing
// key is listed in the returned error.
func Validate(cfg *Config) error {
	var missingConfigs []string

	switch cfg.Environment {
	case "":
		missingConfigs = append(missingConfigs, "environment")
	case Development, Production, Test:
	default:
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, Development, Production, Test)
	}

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	switch cfg.Database.Driver {
	case "":
		missingConfigs = append(missingConfigs, "database.driver")
	case "memory":
	case "postgres":
		if cfg.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or CX_DB_HOST environment variable)")
		}
		if cfg.Database.Port == 0 {
			missingConfigs = append(missingConfigs, "database.port (or CX_DB_PORT environment variable)")
		}
		if cfg.Database.Username == "" {
			missingConfigs = append(missingConfigs, "database.username (or CX_DB_USERNAME environment variable)")
		}
		if cfg.Database.Password == "" {
			missingConfigs = append(missingConfigs, "database.password (or CX_DB_PASSWORD environment variable)")
		}
		if cfg.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database (or CX_DB_NAME environment variable)")
		}
		if cfg.Database.QueryTimeout == 0 {
			missingConfigs = append(missingConfigs, "database.queryTimeout")
		}
	default:
		return fmt.Errorf("invalid database driver: %s, must be postgres or memory", cfg.Database.Driver)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if cfg.Auth.SigningKey == "" {
		missingConfigs = append(missingConfigs, "auth.signingKey (or CX_AUTH_SIGNING_KEY environment variable)")
	} else if len(cfg.Auth.SigningKey) < minSigningKeyLength {
		return fmt.Errorf("auth.signingKey must be at least %d bytes", minSigningKeyLength)
	}
	if cfg.Auth.TokenTTL == 0 {
		missingConfigs = append(missingConfigs, "auth.tokenTTL")
	}

	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		missingConfigs = append(missingConfigs, "redis.addr (or CX_REDIS_ADDR environment variable)")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		missingConfigs = append(missingConfigs, "metrics.path")
	}

	if cfg.Ledger.MaxTokensPerExchange <= 0 {
		missingConfigs = append(missingConfigs, "ledger.maxTokensPerExchange")
	}
	if cfg.Ledger.ConflictRetryAttempts <= 0 {
		missingConfigs = append(missingConfigs, "ledger.conflictRetryAttempts")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}
	return nil
}

// ProductionWarnings lists settings that are legal but unsafe in production
func ProductionWarnings(cfg *Config) []string {
	if cfg.Environment != Production {
		return nil
	}

	var warnings []string
	if cfg.Database.Driver == "memory" {
		warnings = append(warnings, "database.driver memory keeps the ledger in process memory only")
	}
	switch strings.ToLower(cfg.Database.SSLMode) {
	case "require", "verify-ca", "verify-full":
	default:
		if cfg.Database.Driver == "postgres" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
	}
	if cfg.Server.ReadTimeout < 5*time.Second {
		warnings = append(warnings, "server.readTimeout is too low for production")
	}
	if cfg.Server.WriteTimeout < 5*time.Second {
		warnings = append(warnings, "server.writeTimeout is too low for production")
	}
	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" {
			warnings = append(warnings, "cors.allowedOrigins allows every origin")
			break
		}
	}
	return warnings
}
