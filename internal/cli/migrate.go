package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/database/migration"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the ledger schema",
	Long:  `Apply or roll back the embedded goose migrations against the configured postgres database.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrations(cmd, func(m *migration.MigrationManager) error {
			if err := m.Up(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrations(cmd, func(m *migration.MigrationManager) error {
			if err := m.Down(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "rolled back one migration")
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Log the state of every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrations(cmd, func(m *migration.MigrationManager) error {
			return m.Status(cmd.Context())
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrations(cmd, func(m *migration.MigrationManager) error {
			version, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
			return nil
		})
	},
}

var errMigrationsNeedPostgres = errors.New("migrations require database.driver postgres")

func withMigrations(cmd *cobra.Command, fn func(m *migration.MigrationManager) error) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Flush()

	dbConfig := database.NewConfigFromAppConfig(rt.cfg)
	if dbConfig.Driver != database.DriverPostgres {
		return errMigrationsNeedPostgres
	}
	if err := dbConfig.Validate(); err != nil {
		return err
	}

	m, err := migration.OpenMigrationManager(dbConfig.DSN(), rt.logger)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
