package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/time"
)

// TestDBManager provides utilities for testing against a real PostgreSQL
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager creates a test database manager.
// The test is skipped unless TEST_DB_HOST is set.
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set; skipping PostgreSQL integration test")
	}

	timeProvider := timeprovider.NewRealTimeProvider()

	config := DefaultConfig()
	config.Host = host
	config.Port = getEnvIntOrDefault("TEST_DB_PORT", 5432)
	config.Username = getEnvOrDefault("TEST_DB_USERNAME", "postgres")
	config.Password = getEnvOrDefault("TEST_DB_PASSWORD", "postgres")
	config.Database = getEnvOrDefault("TEST_DB_DATABASE", "credit_exchange_test")
	config.SSLMode = getEnvOrDefault("TEST_DB_SSL_MODE", "disable")
	config.MaxOpenConns = 20
	config.MaxIdleConns = 5
	config.QueryTimeout = 5 * time.Second
	config.LogLevel = "silent"
	config.RetryAttempts = 1

	return &TestDBManager{
		Manager:      NewManager(config, logger, timeProvider),
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// Connect connects to the test database and registers cleanup
func (m *TestDBManager) Connect(t *testing.T) {
	t.Helper()

	if _, err := m.Manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})
}

// SetupTestDB recreates the schema from the embedded migrations
func (m *TestDBManager) SetupTestDB(t *testing.T) {
	t.Helper()

	sqlDB, err := m.Manager.SQLDB()
	if err != nil {
		t.Fatalf("Failed to get database connection: %v", err)
	}

	migrator := migration.NewMigrationManager(sqlDB, m.Logger)
	if err := migrator.Reset(context.Background()); err != nil {
		t.Fatalf("Failed to reset schema: %v", err)
	}
	if err := migrator.Up(context.Background()); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
}

// TruncateAllTables empties every ledger table and restarts the sequences
func (m *TestDBManager) TruncateAllTables(t *testing.T) {
	t.Helper()

	err := m.Manager.DB().Exec(`TRUNCATE TABLE transaction_records, inventory_items, redeemable_keys,
		daily_codes, accounts RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// CreateTestAccount inserts an active user account with the given balance and a matching ledger row
func (m *TestDBManager) CreateTestAccount(t *testing.T, username string, balance int64) uint64 {
	t.Helper()

	db := m.Manager.DB()
	now := m.TimeProvider.Now()

	account := model.Account{
		Username:       username,
		Email:          username + "@example.com",
		Role:           "user",
		IsActive:       true,
		RequestBalance: balance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	if balance != 0 {
		record := model.TransactionRecord{
			AccountID:   account.ID,
			Delta:       balance,
			Description: "Initial balance",
			CreatedAt:   now,
		}
		if err := db.Create(&record).Error; err != nil {
			t.Fatalf("Failed to create initial ledger row: %v", err)
		}
	}

	return account.ID
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
