package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbacareza/bpi-statement-parser/internal/accounts"
)

func TestMapper_KnownPattern(t *testing.T) {
	m := NewMapper()

	t.Run("exact substring match wins with full confidence", func(t *testing.T) {
		c := m.Classify("Netflix.Com 123-456")
		assert.Equal(t, "Expenses:Entertainment:Music/Movies", c.Account)
		assert.Equal(t, 100, c.Confidence)
		assert.Equal(t, SourceKnownPattern, c.Source)
	})

	t.Run("case insensitive", func(t *testing.T) {
		c := m.Classify("NETFLIX.COM")
		assert.Equal(t, "Expenses:Entertainment:Music/Movies", c.Account)
		assert.Equal(t, 100, c.Confidence)
	})

	t.Run("known pattern beats keyword rule", func(t *testing.T) {
		// "Payment -Thank You" is a known mapping; "payment" is also a
		// keyword. The known layer must win.
		c := m.Classify("Payment -Thank You")
		assert.Equal(t, "Liabilities:Credit Card:BPI Mastercard", c.Account)
		assert.Equal(t, SourceKnownPattern, c.Source)
		assert.Equal(t, 100, c.Confidence)
	})
}

func TestMapper_TableOrderBreaksTies(t *testing.T) {
	m := NewMapper(WithMappings([]Mapping{
		{"Google *Youtubepremium", "Expenses:Entertainment:Music/Movies"},
		{"Google", "Expenses:Professional Development & Productivity"},
	}))

	c := m.Classify("Google *Youtubepremium Mountain View")
	assert.Equal(t, "Expenses:Entertainment:Music/Movies", c.Account,
		"earlier, more specific table entry must win")
}

func TestMapper_FuzzyKnownPattern(t *testing.T) {
	m := NewMapper()

	// Trailing reference junk: containment scoring clears the threshold.
	c := m.Classify("Backblaze.Com B2 Cloud 8887296680")
	assert.Equal(t, "Expenses:Professional Development & Productivity", c.Account)
	assert.Equal(t, SourceKnownPattern, c.Source)

	// A slightly mangled known key falls through to the fuzzy layer.
	c = m.Classify("Apple.Com/Bill Itunes.Con")
	assert.Equal(t, "Expenses:Entertainment:Music/Movies", c.Account)
	assert.Equal(t, SourceFuzzyKnown, c.Source)
	assert.GreaterOrEqual(t, c.Confidence, DefaultFuzzyThreshold)
	assert.LessOrEqual(t, c.Confidence, 100)
}

func TestMapper_KeywordRules(t *testing.T) {
	t.Run("without chart returns the rule's literal account", func(t *testing.T) {
		m := NewMapper()
		c := m.Classify("Meralco Online Pasig")
		assert.Equal(t, "Expenses:Utilities:Electric", c.Account)
		assert.Equal(t, SourceKeyword, c.Source)
		assert.Equal(t, ruleConfidence, c.Confidence)
	})

	t.Run("with chart refines the candidate to a live account", func(t *testing.T) {
		chart := accounts.NewChart([]string{
			"Expenses:Utilities:Electricity", // drifted spelling
			"Expenses:Food:Dining",
		})
		m := NewMapper(WithChart(chart))

		c := m.Classify("Meralco Online Pasig")
		assert.Equal(t, "Expenses:Utilities:Electricity", c.Account,
			"candidate should re-anchor to the live chart")
		assert.Equal(t, SourceKeyword, c.Source)
	})

	t.Run("rule order decides between overlapping keywords", func(t *testing.T) {
		m := NewMapper(WithKeywordRules([]KeywordRule{
			{"food panda", "Expenses:Food:Dining"},
			{"food", "Expenses:Food:Groceries"},
		}))
		c := m.Classify("Food Panda Manila")
		assert.Equal(t, "Expenses:Food:Dining", c.Account)
	})
}

func TestMapper_FuzzyAccountLayer(t *testing.T) {
	chart := accounts.NewChart([]string{
		"Expenses:Travel:Hotel",
		"Expenses:Banking Costs:Interest",
	})
	m := NewMapper(
		WithMappings(nil),
		WithKeywordRules(nil),
		WithChart(chart),
	)

	c := m.Classify("Banking Costs Interest")
	assert.Equal(t, "Expenses:Banking Costs:Interest", c.Account)
	assert.Equal(t, SourceFuzzyAccount, c.Source)
	assert.GreaterOrEqual(t, c.Confidence, DefaultGeneralThreshold)
}

func TestMapper_HeuristicBuckets(t *testing.T) {
	m := NewMapper(WithMappings(nil), WithKeywordRules(nil))

	tests := []struct {
		desc string
		want string
	}{
		{"Sm Department Store Makati", "Expenses:Electronics & Software"},
		{"Airport Taxi Queue", "Expenses:Professional Fees"},
	}

	for _, tt := range tests {
		c := m.Classify(tt.desc)
		assert.Equal(t, tt.want, c.Account, tt.desc)
		assert.Equal(t, SourceHeuristic, c.Source, tt.desc)
		assert.Equal(t, ruleConfidence, c.Confidence, tt.desc)
	}
}

func TestMapper_Fallback(t *testing.T) {
	m := NewMapper()

	t.Run("empty description short-circuits", func(t *testing.T) {
		c := m.Classify("")
		assert.Equal(t, ManualReview, c.Account)
		assert.Equal(t, 0, c.Confidence)
		assert.Equal(t, SourceFallback, c.Source)
	})

	t.Run("whitespace-only description short-circuits", func(t *testing.T) {
		c := m.Classify("   ")
		assert.Equal(t, ManualReview, c.Account)
		assert.Equal(t, 0, c.Confidence)
	})

	t.Run("unmatchable description falls back", func(t *testing.T) {
		c := m.Classify("Zzqx 9910")
		assert.Equal(t, ManualReview, c.Account)
		assert.Equal(t, SourceFallback, c.Source)
	})
}

func TestMapper_ClassifyBatch(t *testing.T) {
	m := NewMapper()

	results := m.ClassifyBatch([]string{"Netflix.Com", "", "Meralco Online"})
	require.Len(t, results, 3)
	assert.Equal(t, "Expenses:Entertainment:Music/Movies", results[0].Account)
	assert.Equal(t, ManualReview, results[1].Account)
	assert.Equal(t, "Expenses:Utilities:Electric", results[2].Account)
}

func TestMapper_HasChart(t *testing.T) {
	assert.False(t, NewMapper().HasChart())
	chart := accounts.NewChart([]string{"Expenses:Food:Dining"})
	assert.True(t, NewMapper(WithChart(chart)).HasChart())
}
