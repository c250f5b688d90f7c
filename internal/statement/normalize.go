// Package statement turns pdftotext output from BPI credit-card statements
// into typed transaction records. The extraction layer hands us loosely
// structured text with ragged whitespace and run-together tokens, so every
// line passes through a normalizer before any pattern matching happens.
package statement

import (
	"regexp"
	"strings"
)

// monthNames in statement order of appearance; also the canonical spelling
// the normalizer rewrites run-together month tokens to.
var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	spaceRunRe = regexp.MustCompile(`\s+`)

	// Spellings of the foreign-currency marker as they come out of the PDF
	// text layer. All collapse to the one canonical form the two-line
	// matcher expects.
	usDollarVariantsRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)U\s*\.\s*S\s*\.\s*Dollar`), // "U . S . Dollar"
		regexp.MustCompile(`(?i)U\s*S\s*Dollar`),           // "US Dollar"
		regexp.MustCompile(`(?i)U\.S\s*Dollar`),            // "U.S Dollar"
		regexp.MustCompile(`(?i)U\s*\.\s*S\s*Dollar`),      // "U . S Dollar"
	}

	// "2 , 337 . 48" -> "2,337.48"
	thousandsGapRe = regexp.MustCompile(`(\d+)\s*,\s*(\d+)`)
	decimalGapRe   = regexp.MustCompile(`(\d+)\s*\.\s*(\d+)`)

	// "...Amzn.Com/Bill866.84" -> "...Amzn.Com/Bill 866.84"
	trailingAmountRe = regexp.MustCompile(`([A-Za-z])(-?\d{1,3}(?:,\d{3})*\.\d{2})$`)

	monthDayRe []monthFix
	dayMonthRe []monthFix
)

type monthFix struct {
	re   *regexp.Regexp
	repl string
}

func init() {
	for _, m := range monthNames {
		// "October1" -> "October 1"
		monthDayRe = append(monthDayRe, monthFix{
			re:   regexp.MustCompile(`(?i)\b` + m + `(\d{1,2})\b`),
			repl: m + " ${1}",
		})
		// "15September" -> "15 September"
		dayMonthRe = append(dayMonthRe, monthFix{
			re:   regexp.MustCompile(`(?i)\b(\d{1,2})` + m + `\b`),
			repl: "${1} " + m,
		})
	}
}

const usDollarCanonical = "U.S.Dollar"

// NormalizeLine repairs the known PDF-extraction defects on a single line.
// It is idempotent: normalizing an already-normalized line is a no-op.
func NormalizeLine(line string) string {
	if line == "" {
		return line
	}

	text := spaceRunRe.ReplaceAllString(strings.TrimSpace(line), " ")

	for _, re := range usDollarVariantsRe {
		text = re.ReplaceAllString(text, usDollarCanonical)
	}

	for _, f := range monthDayRe {
		text = f.re.ReplaceAllString(text, f.repl)
	}
	for _, f := range dayMonthRe {
		text = f.re.ReplaceAllString(text, f.repl)
	}

	text = thousandsGapRe.ReplaceAllString(text, "${1},${2}")
	text = decimalGapRe.ReplaceAllString(text, "${1}.${2}")
	text = trailingAmountRe.ReplaceAllString(text, "${1} ${2}")

	return text
}
