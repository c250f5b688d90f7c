package statement

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func statementText(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestParser_SingleLine(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"May 1 May 2 Netflix.Com 549.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, SectionGoldRewards, rec.Card)
	assert.Equal(t, date(2025, time.May, 1), rec.TransactionDate)
	assert.Equal(t, date(2025, time.May, 2), rec.PostDate)
	assert.Equal(t, "Netflix.Com", rec.Description)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("549.00")))
	assert.Equal(t, "PHP", rec.Currency)
	assert.Nil(t, rec.ForeignAmount)
	assert.False(t, rec.NeedsReview)
}

func TestParser_TwoLineForeignCurrency(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"October 3 October 4 Audible*T90n24ln1 Amzn.Com/Bill US",
		"U.S.Dollar 14.95 866.84",
	), Context{Year: 2024, Month: time.October})

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, date(2024, time.October, 3), rec.TransactionDate)
	assert.Equal(t, date(2024, time.October, 4), rec.PostDate)
	assert.Equal(t, "Audible*T90n24ln1 Amzn.Com/Bill", rec.Description)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("866.84")))
	assert.Equal(t, "USD", rec.Currency)
	require.NotNil(t, rec.ForeignAmount)
	assert.True(t, rec.ForeignAmount.Equal(decimal.RequireFromString("14.95")))
	assert.Empty(t, res.UnknownCurrencies)
}

func TestParser_TwoLineUnknownCountryCode(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"October 3 October 4 Some Merchant Sydney AU",
		"U.S.Dollar 10.00 380.00",
	), Context{Year: 2024, Month: time.October})

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.True(t, rec.NeedsReview, "unknown code must be surfaced, not defaulted")
	assert.Equal(t, "AU", rec.Currency)
	require.Len(t, res.UnknownCurrencies, 1)
	assert.Equal(t, "AU", res.UnknownCurrencies[0].CountryCode)
}

func TestParser_YearRollover(t *testing.T) {
	p := NewParser()
	ctx := Context{Year: 2025, Month: time.January}

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"December 31 January 2 Year End Dinner 1,250.00",
		"January 5 January 6 New Year Groceries 2,337.48",
	), ctx)

	require.Len(t, res.Records, 2)
	assert.Equal(t, date(2024, time.December, 31), res.Records[0].TransactionDate)
	assert.Equal(t, date(2025, time.January, 2), res.Records[0].PostDate,
		"rollover applies per date, not per record")
	assert.Equal(t, date(2025, time.January, 5), res.Records[1].TransactionDate)
}

func TestParser_NoRolloverOutsideJanuaryStatement(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"December 1 December 2 Holiday Shopping 999.00",
	), Context{Year: 2024, Month: time.December})

	require.Len(t, res.Records, 1)
	assert.Equal(t, date(2024, time.December, 1), res.Records[0].TransactionDate)
}

func TestParser_SectionAttribution(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"  BPI   GOLD REWARDS  CARD ",
		"May 1 May 2 Gold Purchase 100.00",
		"BPI E-CREDIT CARD",
		"May 3 May 4 Ecredit Purchase 200.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 2)
	assert.Equal(t, SectionGoldRewards, res.Records[0].Card)
	assert.Equal(t, SectionECredit, res.Records[1].Card)
}

func TestParser_GoldHeaderWinsOverEmbeddedECredit(t *testing.T) {
	// One historical gold-card header embeds an e-credit substring; the
	// gold check runs first and must win.
	assert.Equal(t, SectionGoldRewards, headerCard("BPI EXPRESS CREDIT GOLD MASTERCARD"))
	assert.Equal(t, SectionECredit, headerCard("BPI ECREDIT CARD"))
	assert.Equal(t, SectionECredit, headerCard("BPI E-CREDIT CARD"))
	assert.Equal(t, "", headerCard("May 1 May 2 Netflix.Com 549.00"))
}

func TestParser_NoHeaderFallsBackToUnknownSection(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"May 1 May 2 Netflix.Com 549.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 1)
	assert.Equal(t, SectionUnknown, res.Records[0].Card)
}

func TestParser_NegativeAmountPreserved(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"May 10 May 11 Payment -Thank You -5,000.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 1)
	assert.True(t, res.Records[0].Amount.IsNegative())
	assert.True(t, res.Records[0].Amount.Equal(decimal.RequireFromString("-5000.00")))
}

func TestParser_SkipsBoilerplate(t *testing.T) {
	p := NewParser(WithHolderName("JUAN DELA CRUZ"))

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"Statement of Account",
		"Customer Number 1234567",
		"Previous Balance 10,000.00",
		"JUAN DELA CRUZ",
		"123456-1-01-1234567",
		"Transaction Post Date Description Amount",
		"May 1 May 2 Netflix.Com 549.00",
		"Ending Balance 9,451.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 1)
	assert.Equal(t, "Netflix.Com", res.Records[0].Description)
}

func TestParser_MalformedLinesAreSkipped(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"Notamonth 1 May 2 Bad Month 100.00",
		"May 99 May 2 Bad Day 100.00",
		"random continuation line with no shape",
		"May 1 May 2 Good Line 100.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 1)
	assert.Equal(t, "Good Line", res.Records[0].Description)
}

func TestParser_NormalizationRepairsRunTogetherDates(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"October1 October2 Spotify 149 . 00",
	), Context{Year: 2024, Month: time.October})

	require.Len(t, res.Records, 1)
	assert.Equal(t, date(2024, time.October, 1), res.Records[0].TransactionDate)
	assert.True(t, res.Records[0].Amount.Equal(decimal.RequireFromString("149.00")))
}

func TestParser_Deduplicates(t *testing.T) {
	p := NewParser()

	// Same transaction printed in two sections (carried-over page artifact).
	res := p.Parse(statementText(
		"BPI GOLD REWARDS CARD",
		"May 1 May 2 Netflix.Com 549.00",
		"May 1 May 2 Netflix.Com 549.00",
		"May 1 May 2 Spotify 149.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Netflix.Com", res.Records[0].Description)
	assert.Equal(t, "Spotify", res.Records[1].Description)
}

func TestDedupRecords_Idempotent(t *testing.T) {
	amount := decimal.RequireFromString("549.00")
	records := []Record{
		{Description: "A", Amount: amount, Currency: "PHP"},
		{Description: "A", Amount: amount, Currency: "PHP"},
		{Description: "B", Amount: amount, Currency: "PHP"},
	}

	once := dedupRecords(records)
	twice := dedupRecords(once)

	assert.LessOrEqual(t, len(once), len(records))
	assert.Equal(t, once, twice)
}

func TestParser_EmptyInputYieldsNoRecords(t *testing.T) {
	p := NewParser()

	res := p.Parse("", Context{Year: 2025, Month: time.May})
	assert.Empty(t, res.Records)
}

func TestParser_PageMarkersAreIgnored(t *testing.T) {
	p := NewParser()

	res := p.Parse(statementText(
		"=== PAGE 1 ===",
		"BPI GOLD REWARDS CARD",
		"May 1 May 2 Netflix.Com 549.00",
		"=== PAGE 2 ===",
		"May 3 May 4 Spotify 149.00",
	), Context{Year: 2025, Month: time.May})

	require.Len(t, res.Records, 2)
}
