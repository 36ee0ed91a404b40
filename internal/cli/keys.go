package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-exchange/internal/app"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysMintCmd)

	keysMintCmd.Flags().Int64P("credits", "c", 0, "Credits granted on redemption")
	keysMintCmd.Flags().IntP("days", "d", 0, "Days until the key expires, 0 for never")
	keysMintCmd.Flags().StringP("description", "D", "", "Free-text description")
	keysMintCmd.Flags().StringP("value", "v", "", "Custom key value in VIP-XXXXXX-XXXXXX form")
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage redeemable keys",
}

var keysMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a redeemable key",
	Long: `Mint a single-use key worth --credits. Without --value a random
VIP-XXXXXX-XXXXXX value is generated.`,
	Args: cobra.NoArgs,
	RunE: runKeysMint,
}

func runKeysMint(cmd *cobra.Command, _ []string) error {
	credits, _ := cmd.Flags().GetInt64("credits")
	days, _ := cmd.Flags().GetInt("days")
	description, _ := cmd.Flags().GetString("description")
	value, _ := cmd.Flags().GetString("value")

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		key, err := c.Admin.MintKey(ctx, usecase.MintKeyRequest{
			CreditAmount: credits,
			DurationDays: days,
			Description:  description,
			CustomValue:  value,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), key.Value)
		return nil
	})
}
