package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/migrations"
)

// goose keeps its base FS, dialect and logger in package state
var gooseMu sync.Mutex

// MigrationManager applies the embedded SQL migrations with goose
type MigrationManager struct {
	db     *sql.DB
	owned  bool
	logger coreport.Logger
}

// NewMigrationManager creates a migration manager over an existing pool
func NewMigrationManager(db *sql.DB, logger coreport.Logger) *MigrationManager {
	return &MigrationManager{db: db, logger: logger}
}

// OpenMigrationManager opens a dedicated pgx connection for dsn. Close releases it.
func OpenMigrationManager(dsn string, logger coreport.Logger) (*MigrationManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}
	return &MigrationManager{db: db, owned: true, logger: logger}, nil
}

// Close closes the connection opened by OpenMigrationManager
func (m *MigrationManager) Close() error {
	if !m.owned {
		return nil
	}
	return m.db.Close()
}

func (m *MigrationManager) withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&gooseLogger{logger: m.logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return fn()
}

// Up applies every pending migration
func (m *MigrationManager) Up(ctx context.Context) error {
	m.logger.Info("Starting database migrations", nil)

	err := m.withGoose(func() error {
		return goose.UpContext(ctx, m.db, ".")
	})
	if err != nil {
		m.logger.Error("Failed to apply migrations", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": version,
	})
	return nil
}

// Down rolls back the most recent migration
func (m *MigrationManager) Down(ctx context.Context) error {
	err := m.withGoose(func() error {
		return goose.DownContext(ctx, m.db, ".")
	})
	if err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	return nil
}

// Reset rolls back every migration
func (m *MigrationManager) Reset(ctx context.Context) error {
	err := m.withGoose(func() error {
		return goose.ResetContext(ctx, m.db, ".")
	})
	if err != nil {
		return fmt.Errorf("reset migrations: %w", err)
	}
	return nil
}

// Status logs the applied state of every migration
func (m *MigrationManager) Status(ctx context.Context) error {
	return m.withGoose(func() error {
		return goose.StatusContext(ctx, m.db, ".")
	})
}

// Version returns the current schema version
func (m *MigrationManager) Version(ctx context.Context) (int64, error) {
	var version int64
	err := m.withGoose(func() error {
		var err error
		version, err = goose.GetDBVersionContext(ctx, m.db)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// gooseLogger routes goose output through the core logger
type gooseLogger struct {
	logger coreport.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), map[string]any{"source": "goose"})
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), map[string]any{"source": "goose"})
}
