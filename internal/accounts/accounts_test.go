package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadChart(t *testing.T) {
	csv := strings.Join([]string{
		`Full Account Name,Type,Description`,
		`Assets:Checking,ASSET,Main checking`,
		`Expenses:Food:Dining,EXPENSE,`,
		`Expenses:Food:Groceries,EXPENSE,`,
		`Liabilities:Credit Card:BPI Mastercard,LIABILITY,`,
		`Expenses:Entertainment:Music/Movies,EXPENSE,`,
	}, "\n")

	chart, err := LoadChart(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 5, chart.Len())
	assert.Equal(t, []string{
		"Expenses:Food:Dining",
		"Expenses:Food:Groceries",
		"Expenses:Entertainment:Music/Movies",
	}, chart.Expenses())
	assert.Contains(t, chart.All(), "Assets:Checking")
}

func TestLoadChart_MalformedCSV(t *testing.T) {
	_, err := LoadChart(strings.NewReader(`"unterminated`))
	assert.Error(t, err)
}

func TestNewChart_SkipsBlanks(t *testing.T) {
	chart := NewChart([]string{"Expenses:Food:Dining", "  ", "", "Assets:Checking"})
	assert.Equal(t, 2, chart.Len())
	assert.Equal(t, []string{"Expenses:Food:Dining"}, chart.Expenses())
}
