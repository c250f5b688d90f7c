package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/gbacareza/bpi-statement-parser/internal/finalize"
)

const workbookSheet = "Transactions"

var workbookHeader = []string{
	"Card", "Transaction Date", "Post Date", "Description", "Amount",
	"Currency", "Foreign Amount", "Exchange Rate", "Target Account",
	"Confidence", "Review",
}

// WriteWorkbook writes all transactions to an XLSX workbook named
// "Statement BPI Master <timestamp>.xlsx". The workbook adds the
// classification confidence and a review flag, which the CSVs omit
// because the import tool rejects unknown columns.
func (w *Writer) WriteWorkbook(txs []finalize.Transaction) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		return "", fmt.Errorf("rename workbook sheet: %w", err)
	}

	if err := setRow(f, workbookSheet, 1, headerCells()); err != nil {
		return "", err
	}

	for i, tx := range txs {
		cells := []any{
			tx.Card,
			tx.TransactionDate.Format(dateLayout),
			tx.PostDate.Format(dateLayout),
			tx.Description,
			tx.Amount.StringFixed(2),
			tx.Currency,
			"",
			"",
			tx.TargetAccount,
			tx.Confidence,
			reviewNote(tx),
		}
		if tx.ForeignAmount != nil {
			cells[6] = tx.ForeignAmount.StringFixed(2)
		}
		if tx.ExchangeRate != nil {
			cells[7] = tx.ExchangeRate.StringFixed(4)
		}
		if err := setRow(f, workbookSheet, i+2, cells); err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("Statement BPI Master %s.xlsx", w.timestamp())
	path := filepath.Join(w.outputDir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	w.logger.Info("wrote workbook",
		slog.String("path", path),
		slog.Int("transactions", len(txs)))
	return path, nil
}

func headerCells() []any {
	cells := make([]any, len(workbookHeader))
	for i, h := range workbookHeader {
		cells[i] = h
	}
	return cells
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
