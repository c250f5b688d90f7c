// Package finalize enriches parsed statement records for ledger import:
// each record gets a target account from the classifier, foreign rows get
// their derived exchange rate, and Manual Review rows get ranked account
// suggestions. Parse records stay immutable; enrichment produces new
// Transaction values.
package finalize

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gbacareza/bpi-statement-parser/internal/ledger"
	"github.com/gbacareza/bpi-statement-parser/internal/statement"
	"github.com/gbacareza/bpi-statement-parser/pkg/money"
)

// Transaction is a parsed record plus its classification.
type Transaction struct {
	statement.Record

	TargetAccount string
	Confidence    int
	Source        ledger.Source

	// ExchangeRate is home-per-foreign, present only on foreign rows.
	ExchangeRate *decimal.Decimal

	// SuggestedAccounts holds ranked chart candidates for Manual Review
	// rows, when a suggestion index is available.
	SuggestedAccounts []string
}

const suggestionLimit = 3

// Finalizer classifies and enriches parse results.
type Finalizer struct {
	mapper       *ledger.Mapper
	suggest      *ledger.SuggestIndex
	homeCurrency string
	logger       *slog.Logger
}

// Option configures a Finalizer.
type Option func(*Finalizer)

// WithSuggestions enables account suggestions for Manual Review rows.
func WithSuggestions(index *ledger.SuggestIndex) Option {
	return func(f *Finalizer) { f.suggest = index }
}

// WithHomeCurrency sets the currency used when logging home totals.
func WithHomeCurrency(code string) Option {
	return func(f *Finalizer) {
		if code != "" {
			f.homeCurrency = code
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Finalizer) { f.logger = logger }
}

// New builds a Finalizer around a classifier.
func New(mapper *ledger.Mapper, opts ...Option) *Finalizer {
	f := &Finalizer{
		mapper:       mapper,
		homeCurrency: statement.DefaultHomeCurrency,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Finalize classifies every record and returns the enriched transactions
// sorted by transaction date (stable, so statement order breaks date ties).
func (f *Finalizer) Finalize(records []statement.Record) []Transaction {
	txs := make([]Transaction, 0, len(records))

	for _, rec := range records {
		tx := Transaction{Record: rec}

		c := f.mapper.Classify(rec.Description)
		tx.TargetAccount = c.Account
		tx.Confidence = c.Confidence
		tx.Source = c.Source

		if rec.ForeignAmount != nil {
			if rate, ok := money.ExchangeRate(rec.Amount, *rec.ForeignAmount); ok {
				tx.ExchangeRate = &rate
			}
		}

		if c.Account == ledger.ManualReview && f.suggest != nil {
			suggestions, err := f.suggest.Suggest(rec.Description, suggestionLimit)
			if err != nil {
				f.logger.Warn("account suggestion lookup failed",
					slog.String("description", rec.Description),
					slog.Any("error", err))
			}
			for _, s := range suggestions {
				tx.SuggestedAccounts = append(tx.SuggestedAccounts, s.Account)
			}
		}

		txs = append(txs, tx)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].TransactionDate.Before(txs[j].TransactionDate)
	})

	return txs
}

// CurrencyTotal aggregates one currency's rows.
type CurrencyTotal struct {
	Count        int
	HomeTotal    decimal.Decimal
	ForeignTotal decimal.Decimal
}

// Summary is the per-statement rollup shown after processing.
type Summary struct {
	Total        int
	AutoMapped   int
	ManualReview int
	NeedsReview  int // unresolved currencies
	ByCurrency   map[string]CurrencyTotal
}

// Summarize rolls up finalized transactions.
func Summarize(txs []Transaction) Summary {
	s := Summary{ByCurrency: make(map[string]CurrencyTotal)}

	for _, tx := range txs {
		s.Total++
		if tx.TargetAccount == ledger.ManualReview {
			s.ManualReview++
		} else {
			s.AutoMapped++
		}
		if tx.NeedsReview {
			s.NeedsReview++
		}

		ct := s.ByCurrency[tx.Currency]
		ct.Count++
		ct.HomeTotal = ct.HomeTotal.Add(tx.Amount)
		if tx.ForeignAmount != nil {
			ct.ForeignTotal = ct.ForeignTotal.Add(*tx.ForeignAmount)
		}
		s.ByCurrency[tx.Currency] = ct
	}

	return s
}

// AutoMapRate is the share of transactions classified without human help,
// in percent. Zero transactions yields zero.
func (s Summary) AutoMapRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.AutoMapped) / float64(s.Total) * 100
}

// LogSummary writes the rollup through the structured logger.
func (f *Finalizer) LogSummary(s Summary) {
	f.logger.Info("statement finalized",
		slog.Int("transactions", s.Total),
		slog.Int("auto_mapped", s.AutoMapped),
		slog.Int("manual_review", s.ManualReview),
		slog.String("auto_map_rate", money.Percent(s.AutoMapRate())),
	)

	for currency, ct := range s.ByCurrency {
		attrs := []any{
			slog.String("currency", currency),
			slog.Int("count", ct.Count),
			slog.String("home_total", money.Format(ct.HomeTotal, f.homeCurrency)),
		}
		if !ct.ForeignTotal.IsZero() {
			attrs = append(attrs, slog.String("foreign_total", money.Format(ct.ForeignTotal, currency)))
		}
		f.logger.Info("currency breakdown", attrs...)
	}

	if s.NeedsReview > 0 {
		f.logger.Warn("transactions with unresolved currency", slog.Int("count", s.NeedsReview))
	}
}
