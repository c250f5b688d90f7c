// Package commands defines the bpiparse CLI surface.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gbacareza/bpi-statement-parser/internal/accounts"
	"github.com/gbacareza/bpi-statement-parser/internal/finalize"
	"github.com/gbacareza/bpi-statement-parser/internal/ledger"
	"github.com/gbacareza/bpi-statement-parser/internal/statement"
	"github.com/gbacareza/bpi-statement-parser/pkg/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bpiparse",
		Short: "Parse BPI credit card statements into ledger import files",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newParseCommand(cfg, logger))
	rootCmd.AddCommand(newBatchCommand(cfg, logger))
	rootCmd.AddCommand(newWatchCommand(cfg, logger))

	return rootCmd
}

// newPipeline assembles the classification and finalization stages shared by
// every subcommand. The chart of accounts is optional; without it the
// keyword and fuzzy-account layers are weaker and no suggestions are made.
func newPipeline(cfg *config.Config, logger *slog.Logger, accountsCSV string) (*statement.Parser, *finalize.Finalizer, error) {
	parserOpts := []statement.Option{
		statement.WithLogger(logger),
		statement.WithHomeCurrency(cfg.HomeCurrency),
	}
	if cfg.HolderName != "" {
		parserOpts = append(parserOpts, statement.WithHolderName(cfg.HolderName))
	}
	parser := statement.NewParser(parserOpts...)

	mapperOpts := []ledger.MapperOption{ledger.WithMapperLogger(logger)}
	finalizerOpts := []finalize.Option{
		finalize.WithLogger(logger),
		finalize.WithHomeCurrency(cfg.HomeCurrency),
	}

	if accountsCSV != "" {
		chart, err := accounts.LoadChartFile(accountsCSV)
		if err != nil {
			return nil, nil, fmt.Errorf("loading chart of accounts: %w", err)
		}
		logger.Info("chart of accounts loaded",
			slog.String("path", accountsCSV),
			slog.Int("accounts", chart.Len()))
		mapperOpts = append(mapperOpts, ledger.WithChart(chart))

		index, err := ledger.NewSuggestIndex(chart.All())
		if err != nil {
			return nil, nil, fmt.Errorf("building suggestion index: %w", err)
		}
		finalizerOpts = append(finalizerOpts, finalize.WithSuggestions(index))
	}

	mapper := ledger.NewMapper(mapperOpts...)
	finalizer := finalize.New(mapper, finalizerOpts...)
	return parser, finalizer, nil
}
