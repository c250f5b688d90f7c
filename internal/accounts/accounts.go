// Package accounts loads the chart of accounts exported from the ledger
// application. The export is a CSV with a "Full Account Name" column of
// colon-delimited paths; expense accounts are identified by prefix.
package accounts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// ExpensePrefix marks expense-type accounts in the chart by naming
// convention.
const ExpensePrefix = "Expenses:"

// chartRow matches the ledger export's header by name; extra columns in the
// export are ignored.
type chartRow struct {
	FullName string `csv:"Full Account Name"`
}

// Chart is the ordered list of valid account names plus its expense subset.
// Read-only after load.
type Chart struct {
	all      []string
	expenses []string
}

// NewChart builds a chart from an in-memory list of account names,
// preserving order.
func NewChart(names []string) *Chart {
	c := &Chart{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c.all = append(c.all, name)
		if strings.HasPrefix(name, ExpensePrefix) {
			c.expenses = append(c.expenses, name)
		}
	}
	return c
}

// LoadChart reads a chart-of-accounts CSV.
func LoadChart(r io.Reader) (*Chart, error) {
	var rows []chartRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse accounts CSV: %w", err)
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.FullName)
	}
	return NewChart(names), nil
}

// LoadChartFile reads a chart-of-accounts CSV from disk.
func LoadChartFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open accounts CSV: %w", err)
	}
	defer f.Close()
	return LoadChart(f)
}

// All returns every account name in chart order.
func (c *Chart) All() []string { return c.all }

// Expenses returns the expense-prefixed subset in chart order.
func (c *Chart) Expenses() []string { return c.expenses }

// Len reports the number of accounts in the chart.
func (c *Chart) Len() int { return len(c.all) }
