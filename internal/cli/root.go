// Package cli implements ledgerctl, the operator command line for the credit
// exchange ledger.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-exchange/internal/app"
	coreport "github.com/amirhossein-jamali/credit-exchange/internal/domain/port/core"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/credit-exchange/internal/infrastructure/config"
)

// runtime is what every command needs before touching the store
type runtime struct {
	cfg          *config.Config
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// loadRuntime and openContainer are swapped out in tests
var (
	loadRuntime = func() (*runtime, error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		log := logger.NewZapLogger(cfg.Environment == config.Production)
		log.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
		return &runtime{cfg: cfg, logger: log, timeProvider: timeadapter.NewRealTimeProvider()}, nil
	}

	openContainer = func(ctx context.Context, rt *runtime) (*app.Container, error) {
		return app.New(ctx, rt.cfg, rt.logger, rt.timeProvider)
	}
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the credit exchange ledger",
	Long: `ledgerctl runs migrations, seeds accounts, mints keys, loads token
inventory and audits the ledger. It reads the same configuration as the API
server: configs/<CX_ENV>.yaml, .env and CX_* environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// withContainer opens the ledger for the duration of fn
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.logger.Flush()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := openContainer(ctx, rt)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, c)
}
