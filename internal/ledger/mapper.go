// Package ledger maps transaction descriptions to ledger account paths.
// Classification is layered: exact known patterns, fuzzy match against the
// known patterns, keyword rules, fuzzy match against the chart of accounts,
// heuristic defaults, then a Manual Review sentinel. Every layer is
// stateless over fixed construction-time tables, so one Mapper can serve
// concurrent callers.
package ledger

import (
	"log/slog"
	"strings"

	"github.com/gbacareza/bpi-statement-parser/internal/accounts"
)

// ManualReview is the fallback sentinel: no strategy produced enough
// confidence and a human must decide. It is a valid, expected output.
const ManualReview = "Manual Review"

// Source names the strategy that produced a classification, for human
// review of borderline results.
type Source string

const (
	SourceKnownPattern Source = "known-pattern"
	SourceFuzzyKnown   Source = "fuzzy-known"
	SourceKeyword      Source = "keyword"
	SourceFuzzyAccount Source = "fuzzy-account"
	SourceHeuristic    Source = "heuristic"
	SourceFallback     Source = "fallback"
)

// Classification is the mapper's verdict for one description.
type Classification struct {
	Account    string
	Confidence int
	Source     Source
}

// Default similarity thresholds, tuned against historical statements.
const (
	DefaultFuzzyThreshold   = 80 // vs known-pattern keys
	DefaultKeywordThreshold = 70 // keyword candidate vs chart
	DefaultGeneralThreshold = 60 // description vs chart
)

// Confidence assigned to rule and heuristic layers that carry no
// similarity score of their own.
const ruleConfidence = 50

// Mapper classifies descriptions into ledger accounts. All tables are fixed
// at construction and never mutated by classification.
type Mapper struct {
	mappings      []Mapping
	upperPatterns []string
	engine        *matchEngine
	rules         []KeywordRule
	heuristics    []heuristicBucket

	expenseAccounts []string // original casing
	upperExpense    []string

	fuzzyThreshold   int
	keywordThreshold int
	generalThreshold int

	logger *slog.Logger
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithChart supplies the live chart of accounts; its expense subset
// constrains and refines fuzzy suggestions.
func WithChart(chart *accounts.Chart) MapperOption {
	return func(m *Mapper) {
		if chart != nil {
			m.expenseAccounts = chart.Expenses()
		}
	}
}

// WithMappings replaces the known-pattern table. The slice must be ordered
// most-specific-first; the mapper preserves its order for tie-breaking.
func WithMappings(mappings []Mapping) MapperOption {
	return func(m *Mapper) { m.mappings = mappings }
}

// WithKeywordRules replaces the keyword rule table.
func WithKeywordRules(rules []KeywordRule) MapperOption {
	return func(m *Mapper) { m.rules = rules }
}

// WithThresholds overrides the three similarity thresholds.
func WithThresholds(fuzzy, keyword, general int) MapperOption {
	return func(m *Mapper) {
		m.fuzzyThreshold = fuzzy
		m.keywordThreshold = keyword
		m.generalThreshold = general
	}
}

// WithMapperLogger sets the structured logger.
func WithMapperLogger(logger *slog.Logger) MapperOption {
	return func(m *Mapper) { m.logger = logger }
}

// NewMapper builds a Mapper with the curated default knowledge base.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		mappings:         defaultMappings,
		rules:            defaultKeywordRules,
		heuristics:       defaultHeuristics,
		fuzzyThreshold:   DefaultFuzzyThreshold,
		keywordThreshold: DefaultKeywordThreshold,
		generalThreshold: DefaultGeneralThreshold,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.engine = newMatchEngine(m.mappings)
	m.upperPatterns = make([]string, len(m.mappings))
	for i, mp := range m.mappings {
		m.upperPatterns[i] = strings.ToUpper(mp.Pattern)
	}
	m.upperExpense = make([]string, len(m.expenseAccounts))
	for i, acct := range m.expenseAccounts {
		m.upperExpense[i] = strings.ToUpper(acct)
	}

	return m
}

// Classify maps a description to its best-guess account. It never fails:
// the worst case is the Manual Review sentinel.
func (m *Mapper) Classify(description string) Classification {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Classification{Account: ManualReview, Confidence: 0, Source: SourceFallback}
	}

	upper := strings.ToUpper(desc)

	// 1. Known-pattern substring match, first in table order wins.
	if mapping, ok := m.engine.match(upper); ok {
		return Classification{Account: mapping.Account, Confidence: 100, Source: SourceKnownPattern}
	}

	// 2. Fuzzy match against the known-pattern keys.
	if idx, score := m.bestMatch(upper, m.upperPatterns); score >= m.fuzzyThreshold {
		return Classification{Account: m.mappings[idx].Account, Confidence: score, Source: SourceFuzzyKnown}
	}

	// 3. Keyword rules, refined against the chart when one is loaded. The
	// rules were authored against account names that drift from the live
	// chart, so the candidate is re-anchored to a real account if a close
	// enough one exists.
	lower := strings.ToLower(desc)
	for _, rule := range m.rules {
		if !strings.Contains(lower, rule.Keyword) {
			continue
		}
		account := rule.Account
		if len(m.expenseAccounts) > 0 {
			if idx, score := m.bestMatch(strings.ToUpper(rule.Account), m.upperExpense); score >= m.keywordThreshold {
				account = m.expenseAccounts[idx]
			}
		}
		return Classification{Account: account, Confidence: ruleConfidence, Source: SourceKeyword}
	}

	// 4. Fuzzy match of the description itself against expense accounts.
	if len(m.expenseAccounts) > 0 {
		if idx, score := m.bestMatch(upper, m.upperExpense); score >= m.generalThreshold {
			return Classification{Account: m.expenseAccounts[idx], Confidence: score, Source: SourceFuzzyAccount}
		}
	}

	// 5. Heuristic default buckets.
	for _, bucket := range m.heuristics {
		for _, term := range bucket.terms {
			if strings.Contains(lower, term) {
				return Classification{Account: bucket.account, Confidence: ruleConfidence, Source: SourceHeuristic}
			}
		}
	}

	return Classification{Account: ManualReview, Confidence: ruleConfidence, Source: SourceFallback}
}

// ClassifyBatch classifies many descriptions in input order.
func (m *Mapper) ClassifyBatch(descriptions []string) []Classification {
	out := make([]Classification, len(descriptions))
	for i, desc := range descriptions {
		out[i] = m.Classify(desc)
	}
	return out
}

// HasChart reports whether a chart of accounts was supplied.
func (m *Mapper) HasChart() bool {
	return len(m.expenseAccounts) > 0
}

// bestMatch returns the index and score of the candidate most similar to
// target. Earlier candidates win score ties, keeping table order the
// tie-break everywhere.
func (m *Mapper) bestMatch(target string, candidates []string) (int, int) {
	bestIdx, bestScore := -1, -1
	for i, c := range candidates {
		if score := fuzzyScore(target, c); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}
