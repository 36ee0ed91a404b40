package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-exchange/internal/app"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
)

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsCreateCmd)
	accountsCmd.AddCommand(accountsShowCmd)
	accountsCmd.AddCommand(accountsAdjustBalanceCmd)
	accountsCmd.AddCommand(accountsAdjustExpiryCmd)
	accountsCmd.AddCommand(accountsSetActiveCmd)

	accountsCreateCmd.Flags().StringP("email", "e", "", "Account email address")
	accountsCreateCmd.Flags().StringP("role", "r", string(entity.RoleUser), "Account role: user or admin")
	accountsAdjustBalanceCmd.Flags().StringP("reason", "m", "", "Reason recorded in the ledger")
	accountsAdjustExpiryCmd.Flags().StringP("reason", "m", "", "Reason recorded in the ledger")
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Create and administer accounts",
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create USERNAME",
	Short: "Create an account with a zero balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsCreate,
}

func runAccountsCreate(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	roleName, _ := cmd.Flags().GetString("role")
	role, err := entity.ParseRole(roleName)
	if err != nil {
		return err
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		account, err := c.Accounts.CreateAccount(ctx, args[0], email, role)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created account %d (%s, %s)\n", account.ID, account.Username, account.Role)
		return nil
	})
}

var accountsShowCmd = &cobra.Command{
	Use:   "show ACCOUNT_ID",
	Short: "Show balance, expiry and totals for an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsShow,
}

func runAccountsShow(cmd *cobra.Command, args []string) error {
	accountID, err := parseAccountID(args[0])
	if err != nil {
		return err
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		details, err := c.Admin.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		a := details.Account
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "account %d %s <%s>\n", a.ID, a.Username, a.Email)
		fmt.Fprintf(out, "  role: %s  active: %t\n", a.Role, a.IsActive)
		fmt.Fprintf(out, "  balance: %d\n", a.RequestBalance())
		fmt.Fprintf(out, "  expiry: %s\n", details.ExpiryState)
		fmt.Fprintf(out, "  earned: %d  spent: %d  records: %d\n",
			details.Totals.TotalEarned, details.Totals.TotalSpent, details.Totals.TransactionCount)
		return nil
	})
}

var accountsAdjustBalanceCmd = &cobra.Command{
	Use:   "adjust-balance ACCOUNT_ID DELTA",
	Short: "Add or remove credits without a floor",
	Long:  `Apply DELTA to the balance and record it. Pass "--" before a negative DELTA.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsAdjustBalance,
}

func runAccountsAdjustBalance(cmd *cobra.Command, args []string) error {
	accountID, err := parseAccountID(args[0])
	if err != nil {
		return err
	}
	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: delta %q is not an integer", errs.ErrInvalidAmount, args[1])
	}
	reason, _ := cmd.Flags().GetString("reason")

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		balance, err := c.Admin.AdjustBalance(ctx, accountID, delta, reason)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "account %d balance is now %d\n", accountID, balance)
		return nil
	})
}

var accountsAdjustExpiryCmd = &cobra.Command{
	Use:   "adjust-expiry ACCOUNT_ID DAYS",
	Short: "Extend or shorten account access by whole days",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsAdjustExpiry,
}

func runAccountsAdjustExpiry(cmd *cobra.Command, args []string) error {
	accountID, err := parseAccountID(args[0])
	if err != nil {
		return err
	}
	days, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: days %q is not an integer", errs.ErrInvalidAmount, args[1])
	}
	reason, _ := cmd.Flags().GetString("reason")

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		expiry, err := c.Admin.AdjustExpiry(ctx, accountID, days, reason)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "account %d expires at %s\n", accountID, expiry.UTC().Format("2006-01-02T15:04:05Z"))
		return nil
	})
}

var accountsSetActiveCmd = &cobra.Command{
	Use:   "set-active ACCOUNT_ID true|false",
	Short: "Activate or deactivate an account",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsSetActive,
}

func runAccountsSetActive(cmd *cobra.Command, args []string) error {
	accountID, err := parseAccountID(args[0])
	if err != nil {
		return err
	}
	active, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("%w: %q is not a boolean", errs.ErrInvalidInput, args[1])
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		if err := c.Admin.SetAccountActive(ctx, accountID, active); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "account %d active: %t\n", accountID, active)
		return nil
	})
}

func parseAccountID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: account id %q", errs.ErrInvalidInput, raw)
	}
	return id, nil
}
