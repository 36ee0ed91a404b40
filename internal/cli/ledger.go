package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-exchange/internal/app"
)

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerVerifyCmd)
	ledgerCmd.AddCommand(ledgerStatsCmd)
	ledgerCmd.AddCommand(dailyCodeCmd)

	ledgerVerifyCmd.Flags().IntP("limit", "l", 100, "Maximum discrepancies to report")
	dailyCodeCmd.Flags().Uint64P("admin-id", "a", 0, "Account id recorded as the setter")
	_ = dailyCodeCmd.MarkFlagRequired("admin-id")
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Audit the ledger and set the daily code",
}

// ErrLedgerDiscrepancy is returned by ledger verify when any account is off
var ErrLedgerDiscrepancy = errors.New("ledger discrepancies found")

var ledgerVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every balance against the sum of its transaction records",
	Args:  cobra.NoArgs,
	RunE:  runLedgerVerify,
}

func runLedgerVerify(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		found, err := c.Reports.LedgerDiscrepancies(ctx, limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(found) == 0 {
			fmt.Fprintln(out, "ledger consistent")
			return nil
		}
		for _, d := range found {
			fmt.Fprintf(out, "account %d: balance %d, ledger sum %d\n", d.AccountID, d.Balance, d.LedgerSum)
		}
		return fmt.Errorf("%w: %d accounts", ErrLedgerDiscrepancy, len(found))
	})
}

var ledgerStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print account and inventory totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			stats, err := c.Admin.Stats(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "accounts: %d\n", stats.Accounts)
			fmt.Fprintf(out, "total balance: %d\n", stats.TotalBalance)
			fmt.Fprintf(out, "available keys: %d\n", stats.AvailableKeys)
			fmt.Fprintf(out, "available tokens: %d\n", stats.AvailableTokens)
			return nil
		})
	},
}

var dailyCodeCmd = &cobra.Command{
	Use:   "daily-code CODE",
	Short: "Replace the daily code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adminID, _ := cmd.Flags().GetUint64("admin-id")
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			dc, err := c.Admin.SetDailyCode(ctx, adminID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "daily code set to %s\n", dc.Code)
			return nil
		})
	},
}
