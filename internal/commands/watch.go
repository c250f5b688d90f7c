package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gbacareza/bpi-statement-parser/internal/batch"
	"github.com/gbacareza/bpi-statement-parser/internal/export"
	"github.com/gbacareza/bpi-statement-parser/pkg/config"
)

func newWatchCommand(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var (
		schedule    string
		since       string
		dir         string
		accountsCSV string
		outDir      string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the statement folder and process new statements on a schedule",
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

			scheduler := batch.NewScheduler(processor, dir, cutoff, logger)
			if err := scheduler.Start(schedule); err != nil {
				return fmt.Errorf("starting schedule %q: %w", schedule, err)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			<-quit

			<-scheduler.Stop().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "*/15 * * * *", "cron schedule for folder rescans")
	cmd.Flags().StringVar(&since, "since", "", "only process statements dated on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&dir, "dir", "", "statement folder (overrides STATEMENT_DIR)")
	cmd.Flags().StringVar(&accountsCSV, "accounts", "", "chart-of-accounts CSV (overrides ACCOUNTS_CSV)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides OUTPUT_DIR)")

	return cmd
}
