package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestIndex(t *testing.T) {
	si, err := NewSuggestIndex([]string{
		"Expenses:Food:Dining",
		"Expenses:Food:Groceries",
		"Expenses:Travel:Hotel",
		"Liabilities:Credit Card:BPI Mastercard",
	})
	require.NoError(t, err)
	defer si.Close()

	t.Run("ranks matching accounts", func(t *testing.T) {
		suggestions, err := si.Suggest("hotel booking cebu", 3)
		require.NoError(t, err)
		require.NotEmpty(t, suggestions)
		assert.Equal(t, "Expenses:Travel:Hotel", suggestions[0].Account)
	})

	t.Run("no shared vocabulary yields no suggestions", func(t *testing.T) {
		suggestions, err := si.Suggest("zzqx", 3)
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})

	t.Run("limit caps results", func(t *testing.T) {
		suggestions, err := si.Suggest("food", 1)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(suggestions), 1)
	})
}
