// Package export writes finalized transactions to the files the
// bookkeeping import expects: a combined CSV covering every card, one
// import CSV per card, and an XLSX workbook for manual inspection.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/gbacareza/bpi-statement-parser/internal/finalize"
	"github.com/gbacareza/bpi-statement-parser/internal/ledger"
)

const (
	dateLayout     = "2006-01-02"
	fileTimeLayout = "2006-01-02 1504"

	liabilityBase    = "Liabilities:Credit Card:BPI Mastercard"
	liabilityECredit = liabilityBase + ":e-credit"
	liabilityGold    = liabilityBase + ":Gold"
)

// combinedRow is one line of the all-cards CSV. The Account column carries
// the card's liability account so the import tool can post both legs.
type combinedRow struct {
	Card            string `csv:"Card"`
	TransactionDate string `csv:"Transaction Date"`
	PostDate        string `csv:"Post Date"`
	Description     string `csv:"Description"`
	Amount          string `csv:"Amount"`
	Currency        string `csv:"Currency"`
	ForeignAmount   string `csv:"Foreign Amount"`
	ExchangeRate    string `csv:"Exchange Rate"`
	Account         string `csv:"Account"`
	TargetAccount   string `csv:"Target Account"`
}

// importRow is one line of a per-card import CSV. The import tool only
// needs the posting date, so the transaction date is dropped here.
type importRow struct {
	PostDate      string `csv:"Post Date"`
	Description   string `csv:"Description"`
	Amount        string `csv:"Amount"`
	TargetAccount string `csv:"Target Account"`
}

// Writer saves export files under a single output directory. The clock is
// injectable so filenames are stable in tests.
type Writer struct {
	outputDir string
	now       func() time.Time
	logger    *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClock overrides the timestamp source used in filenames.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) { w.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) { w.logger = logger }
}

// NewWriter builds a Writer targeting outputDir; the directory is created
// on first write.
func NewWriter(outputDir string, opts ...WriterOption) *Writer {
	w := &Writer{
		outputDir: outputDir,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteAll produces the combined CSV, the per-card CSVs, and the XLSX
// workbook, returning every path written.
func (w *Writer) WriteAll(txs []finalize.Transaction) ([]string, error) {
	var paths []string

	combined, err := w.WriteCombined(txs)
	if err != nil {
		return paths, err
	}
	paths = append(paths, combined)

	cardPaths, err := w.WriteCardFiles(txs)
	if err != nil {
		return paths, err
	}
	paths = append(paths, cardPaths...)

	workbook, err := w.WriteWorkbook(txs)
	if err != nil {
		return paths, err
	}
	paths = append(paths, workbook)

	return paths, nil
}

// WriteCombined writes every transaction to a single CSV named
// "For Import Statement BPI Master Both <timestamp>.csv".
func (w *Writer) WriteCombined(txs []finalize.Transaction) (string, error) {
	rows := make([]combinedRow, 0, len(txs))
	for _, tx := range txs {
		row := combinedRow{
			Card:            tx.Card,
			TransactionDate: tx.TransactionDate.Format(dateLayout),
			PostDate:        tx.PostDate.Format(dateLayout),
			Description:     tx.Description,
			Amount:          tx.Amount.StringFixed(2),
			Currency:        tx.Currency,
			Account:         CardLiabilityAccount(tx.Card),
			TargetAccount:   tx.TargetAccount,
		}
		if tx.ForeignAmount != nil {
			row.ForeignAmount = tx.ForeignAmount.StringFixed(2)
		}
		if tx.ExchangeRate != nil {
			row.ExchangeRate = tx.ExchangeRate.StringFixed(4)
		}
		rows = append(rows, row)
	}

	name := fmt.Sprintf("For Import Statement BPI Master Both %s.csv", w.timestamp())
	path := filepath.Join(w.outputDir, name)
	if err := w.writeCSV(path, &rows); err != nil {
		return "", err
	}

	w.logger.Info("wrote combined export",
		slog.String("path", path),
		slog.Int("transactions", len(rows)))
	return path, nil
}

// WriteCardFiles writes one import CSV per card, in first-seen card order.
func (w *Writer) WriteCardFiles(txs []finalize.Transaction) ([]string, error) {
	byCard := make(map[string][]importRow)
	var cardOrder []string

	for _, tx := range txs {
		if _, seen := byCard[tx.Card]; !seen {
			cardOrder = append(cardOrder, tx.Card)
		}
		byCard[tx.Card] = append(byCard[tx.Card], importRow{
			PostDate:      tx.PostDate.Format(dateLayout),
			Description:   tx.Description,
			Amount:        tx.Amount.StringFixed(2),
			TargetAccount: tx.TargetAccount,
		})
	}

	stamp := w.timestamp()
	paths := make([]string, 0, len(cardOrder))
	for _, card := range cardOrder {
		rows := byCard[card]
		name := fmt.Sprintf("For Import Statement BPI Master %s %s.csv", safeCardName(card), stamp)
		path := filepath.Join(w.outputDir, name)
		if err := w.writeCSV(path, &rows); err != nil {
			return paths, err
		}

		w.logger.Info("wrote card export",
			slog.String("card", card),
			slog.String("path", path),
			slog.Int("transactions", len(rows)))
		paths = append(paths, path)
	}

	return paths, nil
}

func (w *Writer) writeCSV(path string, rows any) error {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("write csv %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (w *Writer) timestamp() string {
	return w.now().Format(fileTimeLayout)
}

// CardLiabilityAccount maps a card section name to the liability account
// the combined export posts against.
func CardLiabilityAccount(card string) string {
	upper := strings.ToUpper(card)
	switch {
	case strings.Contains(upper, "ECREDIT"):
		return liabilityECredit
	case strings.Contains(upper, "GOLD"):
		return liabilityGold
	default:
		return liabilityBase
	}
}

var cardNameSanitizer = strings.NewReplacer(" ", "_", ":", "", "/", "")

func safeCardName(card string) string {
	return cardNameSanitizer.Replace(card)
}

// reviewNote flags rows the reviewer must look at in the workbook.
func reviewNote(tx finalize.Transaction) string {
	switch {
	case tx.NeedsReview:
		return "unresolved currency"
	case tx.TargetAccount == ledger.ManualReview:
		return "needs account"
	default:
		return ""
	}
}
