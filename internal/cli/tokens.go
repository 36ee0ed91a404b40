package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/credit-exchange/internal/app"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/entity"
	errs "github.com/amirhossein-jamali/credit-exchange/internal/domain/error"
	"github.com/amirhossein-jamali/credit-exchange/internal/domain/port/usecase"
)

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.AddCommand(tokensGenerateCmd)
	tokensCmd.AddCommand(tokensIngestCmd)

	tokensGenerateCmd.Flags().IntP("count", "n", 10, "Number of token values to print")
	tokensIngestCmd.Flags().StringP("file", "f", "", "File with one token value per line")
	tokensIngestCmd.Flags().IntP("expires-in-days", "e", 0, "Days until the ingested tokens expire, 0 for never")
	_ = tokensIngestCmd.MarkFlagRequired("file")
}

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Generate and load exchangeable token inventory",
}

var tokensGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print random token values, one per line",
	Long:  `Print TOK- values suitable for "tokens ingest". Nothing is written to the ledger.`,
	Args:  cobra.NoArgs,
	RunE:  runTokensGenerate,
}

func runTokensGenerate(cmd *cobra.Command, _ []string) error {
	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		return fmt.Errorf("%w: count must be positive", errs.ErrInvalidAmount)
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	for range count {
		value, err := entity.GenerateTokenValue(nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
	}
	return out.Flush()
}

var tokensIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load token values from a file into the inventory",
	Long: `Load one value per line into the inventory. Blank lines are skipped and
values already present are ignored.`,
	Args: cobra.NoArgs,
	RunE: runTokensIngest,
}

func runTokensIngest(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	expiresInDays, _ := cmd.Flags().GetInt("expires-in-days")

	lines, err := readLines(path)
	if err != nil {
		return err
	}

	return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
		attempted, err := c.Admin.IngestInventory(ctx, usecase.IngestRequest{
			Lines:         lines,
			ExpiresInDays: expiresInDays,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ingested %d values from %s\n", attempted, path)
		return nil
	})
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}
