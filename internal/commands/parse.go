package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/gbacareza/bpi-statement-parser/internal/export"
	"github.com/gbacareza/bpi-statement-parser/internal/extract"
	"github.com/gbacareza/bpi-statement-parser/internal/finalize"
	"github.com/gbacareza/bpi-statement-parser/internal/statement"
	"github.com/gbacareza/bpi-statement-parser/pkg/config"
)

var statementNameRe = regexp.MustCompile(`(?i)^Statement BPI Master (\d{4}-\d{2}-\d{2})\.(pdf|txt)$`)

func newParseCommand(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	var (
		statementDate string
		accountsCSV   string
		outDir        string
		holder        string
	)

	cmd := &cobra.Command{
		Use:   "parse <statement.pdf|statement.txt>",
		Short: "Parse a single statement and write import files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if holder != "" {
				cfg.HolderName = holder
			}
			if accountsCSV == "" {
				accountsCSV = cfg.AccountsCSV
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			parseCtx, err := resolveStatementDate(path, statementDate)
			if err != nil {
				return err
			}

			parser, finalizer, err := newPipeline(cfg, logger, accountsCSV)
			if err != nil {
				return err
			}

			return runParse(cmd, path, parseCtx, parser, finalizer,
				export.NewWriter(outDir, export.WithLogger(logger)), cfg.PdftotextBin, logger)
		},
	}

	cmd.Flags().StringVar(&statementDate, "statement-date", "", "statement date (YYYY-MM-DD); inferred from the filename when omitted")
	cmd.Flags().StringVar(&accountsCSV, "accounts", "", "chart-of-accounts CSV (overrides ACCOUNTS_CSV)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (overrides OUTPUT_DIR)")
	cmd.Flags().StringVar(&holder, "holder", "", "account holder name to skip as boilerplate")

	return cmd
}

func runParse(cmd *cobra.Command, path string, parseCtx statement.Context,
	parser *statement.Parser, finalizer *finalize.Finalizer,
	writer *export.Writer, pdftotextBin string, logger *slog.Logger) error {

	extractor := extract.ForFile(path, pdftotextBin)
	text, err := extractor.Extract(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("extracting %s: %w", filepath.Base(path), err)
	}

	res := parser.Parse(text, parseCtx)
	if len(res.Records) == 0 {
		return fmt.Errorf("no transactions found in %s", filepath.Base(path))
	}
	for _, uc := range res.UnknownCurrencies {
		logger.Warn("unresolved country code, review the exported row",
			slog.String("code", uc.CountryCode),
			slog.String("line", uc.Line))
	}

	txs := finalizer.Finalize(res.Records)
	finalizer.LogSummary(finalize.Summarize(txs))

	paths, err := writer.WriteAll(txs)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// resolveStatementDate picks the statement date from the flag, falling back
// to the date embedded in a "Statement BPI Master YYYY-MM-DD" filename.
func resolveStatementDate(path, flag string) (statement.Context, error) {
	raw := flag
	if raw == "" {
		base := filepath.Base(path)
		if m := statementNameRe.FindStringSubmatch(base); m != nil {
			raw = m[1]
		}
	}
	if raw == "" {
		return statement.Context{}, fmt.Errorf("statement date not in filename; pass --statement-date")
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return statement.Context{}, fmt.Errorf("invalid statement date %q: %w", raw, err)
	}
	return statement.Context{Year: date.Year(), Month: date.Month()}, nil
}
