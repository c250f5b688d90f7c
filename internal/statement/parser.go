package statement

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one parsed transaction. It is immutable after parsing;
// enrichment (account classification, exchange rates) happens on copies in
// the finalize layer, never here.
type Record struct {
	Card            string
	TransactionDate time.Time
	PostDate        time.Time
	Description     string
	Amount          decimal.Decimal // home currency; negative = credit/reversal
	Currency        string
	ForeignAmount   *decimal.Decimal // nil for domestic transactions

	// NeedsReview is set when currency resolution failed and Currency
	// holds the raw country code instead of an ISO currency.
	NeedsReview bool
}

// Context carries the statement's own cover date, used to resolve the year
// missing from every transaction date. Callers should always supply it; a
// zero Year falls back to the current calendar year with degraded accuracy
// around year boundaries.
type Context struct {
	Year  int
	Month time.Month
}

// Result is the outcome of parsing one statement. A non-empty input that
// produces zero records is the caller-visible signal of total extraction
// failure; parsing itself never returns an error for malformed data.
type Result struct {
	Records           []Record
	UnknownCurrencies []UnknownCurrency
}

var (
	// <Month> <Day> <Month> <Day> <Description> <Amount>
	singleLineRe = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2})\s+([A-Za-z]+)\s+(\d{1,2})\s+(.+?)\s+(-?\d{1,3}(?:,\d{3})*\.\d{2})$`)

	// <Month> <Day> <Month> <Day> <Description> <CountryCode>
	foreignFirstLineRe = regexp.MustCompile(`^([A-Za-z]+)\s+(\d{1,2})\s+([A-Za-z]+)\s+(\d{1,2})\s+(.+?)\s+([A-Z]{2,3})$`)

	// <CurrencyName> <ForeignAmount> <HomeAmount>
	currencyLineRe = regexp.MustCompile(`^[A-Za-z][A-Za-z.]*\s+([\d.,]+)\s+(\d{1,3}(?:,\d{3})*\.\d{2})$`)
)

// defaultSkipPatterns match statement boilerplate that must never reach the
// transaction matchers: balance summaries, column headers, customer-number
// lines. Substring search, case-insensitive, because boilerplate lines
// carry trailing junk.
var defaultSkipPatterns = []string{
	`Statement of Account`,
	`Customer Number`,
	`Previous Balance`,
	`Past Due`,
	`Ending Balance`,
	`Unbilled Installment`,
	`^Finance Charge\s+\d`,
	`Transaction\s+Post.*Date`,
	`^\d{6}-\d-\d{2}-\d{7}`,
	`^(Date|Transaction|Post Date|Description|Amount)\s*$`,
}

// Parser scans normalized statement text for transactions. Construction-time
// tables are read-only afterward, so one Parser is safe to share across
// goroutines parsing different statements.
type Parser struct {
	logger       *slog.Logger
	homeCurrency string
	skip         []*regexp.Regexp
	currencies   map[string]string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the structured logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// WithHomeCurrency overrides the default home currency code.
func WithHomeCurrency(code string) Option {
	return func(p *Parser) {
		if code != "" {
			p.homeCurrency = code
		}
	}
}

// WithHolderName adds the account holder's printed name to the skip set.
// Statements repeat the holder name on every page and it would otherwise be
// free to collide with description text.
func WithHolderName(name string) Option {
	return func(p *Parser) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		p.skip = append(p.skip, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(name)))
	}
}

// WithCountryCurrencies replaces the country-code lookup table. The table is
// copied; callers cannot mutate it after construction.
func WithCountryCurrencies(table map[string]string) Option {
	return func(p *Parser) {
		m := make(map[string]string, len(table))
		for k, v := range table {
			m[strings.ToUpper(k)] = strings.ToUpper(v)
		}
		p.currencies = m
	}
}

// NewParser builds a Parser with the standard skip set and country table.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger:       slog.Default(),
		homeCurrency: DefaultHomeCurrency,
		currencies:   defaultCountryCurrencies,
	}
	for _, pat := range defaultSkipPatterns {
		p.skip = append(p.skip, regexp.MustCompile(`(?i)`+pat))
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans the full statement text (all pages, newline-separated) and
// returns the deduplicated transactions. Lines that match no pattern are
// skipped, never fatal.
func (p *Parser) Parse(text string, ctx Context) Result {
	if ctx.Year == 0 {
		ctx.Year = time.Now().Year()
		p.logger.Warn("no statement year supplied, defaulting to current year",
			slog.Int("year", ctx.Year))
	}

	var res Result
	for _, sec := range splitSections(strings.Split(text, "\n")) {
		before := len(res.Records)
		p.parseSection(sec, ctx, &res)
		p.logger.Debug("card section parsed",
			slog.String("card", sec.card),
			slog.Int("transactions", len(res.Records)-before))
	}

	if len(res.Records) > 0 && res.Records[0].Card == SectionUnknown {
		p.logger.Warn("no card headers recognized, card attribution is unreliable")
	}

	res.Records = dedupRecords(res.Records)
	return res
}

func (p *Parser) parseSection(sec section, ctx Context, res *Result) {
	lines := sec.lines

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || p.shouldSkip(line) {
			continue
		}

		norm := NormalizeLine(line)

		if rec, ok := p.parseSingleLine(norm, sec.card, ctx); ok {
			res.Records = append(res.Records, rec)
			continue
		}

		if i+1 < len(lines) {
			next := NormalizeLine(strings.TrimSpace(lines[i+1]))
			if rec, unknown, ok := p.parseTwoLines(norm, next, sec.card, ctx); ok {
				if unknown != nil {
					res.UnknownCurrencies = append(res.UnknownCurrencies, *unknown)
					p.logger.Warn("unknown country code on foreign transaction",
						slog.String("code", unknown.CountryCode),
						slog.String("line", unknown.Line))
				}
				res.Records = append(res.Records, rec)
				i++ // currency line consumed
				continue
			}
		}
	}
}

func (p *Parser) shouldSkip(line string) bool {
	for _, re := range p.skip {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// parseSingleLine recognizes a domestic transaction occupying one line.
func (p *Parser) parseSingleLine(line, card string, ctx Context) (Record, bool) {
	m := singleLineRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	txDate, ok := buildDate(m[1], m[2], ctx)
	if !ok {
		return Record{}, false
	}
	postDate, ok := buildDate(m[3], m[4], ctx)
	if !ok {
		return Record{}, false
	}
	amount, ok := parseAmount(m[6])
	if !ok {
		return Record{}, false
	}

	return Record{
		Card:            card,
		TransactionDate: txDate,
		PostDate:        postDate,
		Description:     strings.TrimSpace(m[5]),
		Amount:          amount,
		Currency:        p.homeCurrency,
	}, true
}

// parseTwoLines recognizes a foreign-currency transaction split across a
// transaction line ending in a country code and a following conversion line
// carrying the foreign and home amounts.
func (p *Parser) parseTwoLines(line, next, card string, ctx Context) (Record, *UnknownCurrency, bool) {
	m1 := foreignFirstLineRe.FindStringSubmatch(line)
	if m1 == nil {
		return Record{}, nil, false
	}
	m2 := currencyLineRe.FindStringSubmatch(next)
	if m2 == nil {
		return Record{}, nil, false
	}

	txDate, ok := buildDate(m1[1], m1[2], ctx)
	if !ok {
		return Record{}, nil, false
	}
	postDate, ok := buildDate(m1[3], m1[4], ctx)
	if !ok {
		return Record{}, nil, false
	}
	foreign, ok := parseAmount(m2[1])
	if !ok {
		return Record{}, nil, false
	}
	amount, ok := parseAmount(m2[2])
	if !ok {
		return Record{}, nil, false
	}

	rec := Record{
		Card:            card,
		TransactionDate: txDate,
		PostDate:        postDate,
		Description:     strings.TrimSpace(m1[5]),
		Amount:          amount,
		ForeignAmount:   &foreign,
	}

	code := m1[6]
	currency, known := p.currencies[code]
	if !known {
		rec.Currency = code
		rec.NeedsReview = true
		return rec, &UnknownCurrency{CountryCode: code, Line: line}, true
	}
	rec.Currency = currency
	return rec, nil, true
}

// buildDate assembles a calendar date from a month name and day number plus
// the resolved year. An unrecognized month name discards the candidate.
func buildDate(monthName, dayStr string, ctx Context) (time.Time, bool) {
	month, ok := parseMonth(monthName)
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(resolveYear(month, ctx), month, day, 0, 0, 0, 0, time.UTC), true
}

// resolveYear applies the year-rollover rule: a December transaction on a
// January statement belongs to the prior calendar year. Applied per date,
// so transaction and post dates can land in different years.
func resolveYear(month time.Month, ctx Context) int {
	if month == time.December && ctx.Month == time.January {
		return ctx.Year - 1
	}
	return ctx.Year
}

func parseMonth(name string) (time.Month, bool) {
	for i, m := range monthNames {
		if strings.EqualFold(name, m) || strings.EqualFold(name, m[:3]) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// parseAmount parses a decimal with optional thousands separators and an
// optional leading minus sign. Malformed input means non-match, not error.
func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

type dedupKey struct {
	transactionDate time.Time
	postDate        time.Time
	description     string
	amount          string
	currency        string
}

// dedupRecords collapses records sharing the identity key, keeping the
// first-seen instance. Scan order (section order x line order) decides
// which instance survives.
func dedupRecords(records []Record) []Record {
	seen := make(map[dedupKey]struct{}, len(records))
	unique := records[:0:0]

	for _, rec := range records {
		key := dedupKey{
			transactionDate: rec.TransactionDate,
			postDate:        rec.PostDate,
			description:     rec.Description,
			amount:          rec.Amount.StringFixed(2),
			currency:        rec.Currency,
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, rec)
	}

	return unique
}
