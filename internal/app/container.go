// Package app assembles the ledger from configuration: store, cache, metrics,
// use cases and token manager. The HTTP server and the operator CLI share it.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/admin"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/exchange"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/redemption"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/usecase/unitofwork"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/reporting"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/statestore"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/config"
)

// Container holds the wired ledger
type Container struct {
	Config       *config.Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
	Registry     *prometheus.Registry
	Metrics      coreport.MetricsRecorder

	UnitOfWork persistence.UnitOfWork
	Reports    persistence.ReportRepository
	Cache      coreport.StateStore
	Runner     *unitofwork.Runner

	Accounts   usecase.AccountUseCase
	Admin      usecase.AdminUseCase
	Exchange   usecase.ExchangeUseCase
	Redemption usecase.RedemptionUseCase

	// Tokens is nil when no signing key is configured
	Tokens *auth.TokenManager
	// Ping checks the ledger store; nil for the memory driver
	Ping func(ctx context.Context) error

	closers []func() error
}

// New wires the ledger described by cfg. Close releases everything it opened.
func New(ctx context.Context, cfg *config.Config, logger coreport.Logger, timeProvider coreport.TimeProvider) (*Container, error) {
	c := &Container{
		Config:       cfg,
		Logger:       logger,
		TimeProvider: timeProvider,
		Registry:     prometheus.NewRegistry(),
	}

	if cfg.Metrics.Enabled {
		c.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		c.Metrics = metrics.NewPrometheusRecorder(c.Registry)
	} else {
		c.Metrics = metrics.NewNoopRecorder()
	}

	if err := c.openStore(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.openCache(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	retry := unitofwork.DefaultRetryConfig()
	if cfg.Ledger.ConflictRetryAttempts > 0 {
		retry.MaxAttempts = cfg.Ledger.ConflictRetryAttempts
	}
	if cfg.Ledger.ConflictRetryDelay > 0 {
		retry.BaseInterval = coreport.Duration(cfg.Ledger.ConflictRetryDelay)
	}
	c.Runner = unitofwork.NewRunner(c.UnitOfWork, retry, timeProvider, logger, c.Metrics)

	c.Accounts = account.NewAccountUseCase(c.Runner, c.Reports, c.Cache, account.Config{
		DailyCodeTTL: cfg.Cache.DailyCodeTTL,
	}, timeProvider, logger)
	c.Admin = admin.NewAdminService(c.Runner, c.Reports, c.Cache, admin.Config{
		IngestBatchSize: cfg.Ledger.IngestBatchSize,
	}, nil, timeProvider, logger)
	c.Exchange = exchange.NewExchangeService(c.Runner, exchange.Config{
		MaxTokensPerExchange: cfg.Ledger.MaxTokensPerExchange,
		EnforceAccountExpiry: cfg.Ledger.EnforceAccountExpiry,
	}, timeProvider, logger, c.Metrics)
	c.Redemption = redemption.NewRedemptionService(c.Runner, timeProvider, logger, c.Metrics)

	if cfg.Auth.SigningKey != "" {
		tokens, err := auth.NewTokenManager(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL, timeProvider)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Tokens = tokens
	}

	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	dbConfig := database.NewConfigFromAppConfig(c.Config)
	if err := dbConfig.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	if dbConfig.Driver == database.DriverMemory {
		store := memory.NewStore()
		c.UnitOfWork = memory.NewUnitOfWork(store)
		c.Reports = memory.NewReportRepository(store)
		c.Logger.Warn("Using the in-memory ledger store; data is lost on exit", nil)
		return nil
	}

	manager := database.NewManager(dbConfig, c.Logger, c.TimeProvider)
	if _, err := manager.Connect(ctx); err != nil {
		return err
	}
	c.closers = append(c.closers, manager.Close)
	c.Ping = manager.Ping

	if c.Config.Database.AutoMigrate {
		sqlDB, err := manager.SQLDB()
		if err != nil {
			return err
		}
		if err := migration.NewMigrationManager(sqlDB, c.Logger).Up(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	uow, err := manager.CreateUnitOfWork()
	if err != nil {
		return err
	}
	c.UnitOfWork = uow

	pool, err := reporting.New(ctx, dbConfig.URL(), c.Config.Database.ReportingMaxConns)
	if err != nil {
		return fmt.Errorf("failed to open reporting pool: %w", err)
	}
	c.closers = append(c.closers, func() error {
		pool.Close()
		return nil
	})
	collector := database.NewMetricsCollector(c.Logger, c.TimeProvider, dbConfig.SlowQueryThreshold)
	c.Reports = reporting.NewReportRepository(pool, collector, c.Logger)

	if c.Config.Metrics.Enabled {
		if err := manager.RegisterMetrics(c.Registry); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) openCache(ctx context.Context) error {
	if !c.Config.Redis.Enabled {
		c.Cache = statestore.NewMemoryStateStore(c.TimeProvider)
		return nil
	}

	client, err := statestore.NewRedisClient(ctx, statestore.RedisConfig{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err != nil {
		return err
	}
	c.closers = append(c.closers, client.Close)
	c.Cache = statestore.NewRedisStateStore(client, c.Config.Redis.KeyPrefix)
	return nil
}

// SeedAdmin creates the configured administrator when absent
func (c *Container) SeedAdmin(ctx context.Context) error {
	return migration.CreateDefaultAccounts(ctx, c.Accounts, migration.SeedAdmin{
		Username: c.Config.Admin.SeedUsername,
		Email:    c.Config.Admin.SeedEmail,
	})
}

// Close releases connections in reverse order of opening
func (c *Container) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}
