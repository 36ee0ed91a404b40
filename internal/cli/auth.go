package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-exchange/internal/app"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authTokenCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Issue bearer tokens for local testing",
}

var errNoSigningKey = errors.New("auth.signingKey is not configured")

var authTokenCmd = &cobra.Command{
	Use:   "token ACCOUNT_ID",
	Short: "Print a bearer token for an existing account",
	Long: `Print a signed bearer token carrying the account's current role and
active flag. The API accepts it until auth.tokenTTL elapses.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthToken,
}

func runAuthToken(cmd *cobra.Command, args []string) error {
	accountID, err := parseAccountID(args[0])
	if err != nil {
		return err
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		if c.Tokens == nil {
			return errNoSigningKey
		}
		details, err := c.Admin.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}
		token, expiresAt, err := c.Tokens.Issue(entity.Principal{
			AccountID: details.Account.ID,
			Role:      details.Account.Role,
			IsActive:  details.Account.IsActive,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.UTC().Format("2006-01-02T15:04:05Z"))
		return nil
	})
}
