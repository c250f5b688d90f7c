package ledger

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// matchEngine runs the known-pattern layer: a single Aho-Corasick pass over
// the description finds every known pattern it contains, and the pattern
// earliest in table order wins. Mapping tables are authored
// most-specific-first, so overlapping patterns resolve to the more specific
// one.
type matchEngine struct {
	matcher  *ahocorasick.Matcher
	mappings []Mapping
}

func newMatchEngine(mappings []Mapping) *matchEngine {
	if len(mappings) == 0 {
		return &matchEngine{}
	}

	patterns := make([][]byte, len(mappings))
	for i, m := range mappings {
		patterns[i] = []byte(strings.ToUpper(m.Pattern))
	}

	return &matchEngine{
		matcher:  ahocorasick.NewMatcher(patterns),
		mappings: mappings,
	}
}

// match returns the mapping for the first-in-table-order pattern contained
// in the uppercased description.
func (e *matchEngine) match(upperDesc string) (Mapping, bool) {
	if e.matcher == nil {
		return Mapping{}, false
	}

	hits := e.matcher.Match([]byte(upperDesc))
	if len(hits) == 0 {
		return Mapping{}, false
	}

	best := hits[0]
	for _, idx := range hits[1:] {
		if idx < best {
			best = idx
		}
	}
	return e.mappings[best], true
}
