package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/gbacareza/bpi-statement-parser/internal/batch"
	"github.com/gbacareza/bpi-statement-parser/internal/export"
	"github.com/gbacareza/bpi-statement-parser/pkg/config"
)

func newBatchCommand(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var (
		since       string
		dir         string
		accountsCSV string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every statement PDF in the statement folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = cfg.StatementDir
			}
			if accountsCSV == "" {
				accountsCSV = cfg.AccountsCSV
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			var cutoff time.Time
			if since != "" {
				var err error
				cutoff, err = time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since date %q: %w", since, err)
				}
			}

			parser, finalizer, err := newPipeline(cfg, logger, accountsCSV)
			if err != nil {
				return err
			}

			processor := batch.NewProcessor(parser, finalizer,
				export.NewWriter(outDir, export.WithLogger(logger)),
				batch.WithPdftotext(cfg.PdftotextBin),
				batch.WithLogger(logger))

			result, err := processor.Run(cmd.Context(), dir, cutoff)
			if err != nil {
				return err
			}

			if len(result.Failed) > 0 {
				for _, f := range result.Failed {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed: %s: %v\n", f.File, f.Err)
				}
			}
			for _, p := range result.Outputs {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if len(result.Processed) == 0 {
				return fmt.Errorf("no statements found in %s", dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "only process statements dated on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&dir, "dir", "", "statement folder (overrides STATEMENT_DIR)")
	cmd.Flags().StringVar(&accountsCSV, "accounts", "", "chart-of-accounts CSV (overrides ACCOUNTS_CSV)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides OUTPUT_DIR)")

	return cmd
}
