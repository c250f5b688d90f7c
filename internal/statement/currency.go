package statement

// DefaultHomeCurrency is the statement issuer's local currency. Amounts are
// billed in it unless a two-line foreign-currency block says otherwise.
const DefaultHomeCurrency = "PHP"

// defaultCountryCurrencies maps the short country token that ends a
// foreign-transaction line to its ISO currency code. The set is closed and
// small on purpose: every code in it was observed on a real statement, and
// an unseen code is surfaced for review instead of guessed (silently
// mis-tagging a currency corrupts downstream totals).
var defaultCountryCurrencies = map[string]string{
	"US": "USD",
	"SG": "SGD",
	"NZ": "NZD",
}

// UnknownCurrency records a two-line foreign transaction whose country code
// is not in the lookup table. The transaction is still emitted (flagged for
// review, currency left as the raw code) and the occurrence reported here.
type UnknownCurrency struct {
	CountryCode string
	Line        string
}
