// Package money formats statement amounts for display and derives exchange
// rates. Parsing keeps amounts as decimals; this package only renders them
// with the right currency symbol and grouping for summaries and exports.
package money

import (
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders an amount with its currency's symbol and grouping, e.g.
// "₱2,337.48" for PHP. Unknown currency codes fall back to "<code> <amount>"
// so review output stays readable for unresolved currencies.
func Format(amount decimal.Decimal, currencyCode string) string {
	currency := gomoney.GetCurrency(currencyCode)
	if currency == nil {
		return fmt.Sprintf("%s %s", currencyCode, amount.StringFixed(2))
	}

	minor := amount.Mul(decimal.New(1, int32(currency.Fraction))).Round(0).IntPart()
	return gomoney.New(minor, currencyCode).Display()
}

// Symbol returns the display symbol for a currency code, or the code itself
// when unknown.
func Symbol(currencyCode string) string {
	currency := gomoney.GetCurrency(currencyCode)
	if currency == nil {
		return currencyCode
	}
	return currency.Grapheme
}

// Percent renders a percentage with one decimal place, e.g. "94.1%".
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// ExchangeRate derives the home-per-foreign rate from a transaction's two
// amounts, rounded to four places. Reports false when the foreign amount is
// zero, since the rate is undefined there.
func ExchangeRate(homeAmount, foreignAmount decimal.Decimal) (decimal.Decimal, bool) {
	if foreignAmount.IsZero() {
		return decimal.Decimal{}, false
	}
	return homeAmount.Div(foreignAmount).Round(4), true
}
