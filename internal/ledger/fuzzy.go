package ledger

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// fuzzyScore rates the similarity of two strings on a 0-100 scale. Both
// inputs are expected uppercased. Containment is scored generously because
// merchant descriptors mostly differ by trailing reference junk
// ("AUDIBLE*T90N24LN1" vs "AUDIBLE*"); otherwise the better of a
// Levenshtein-derived score and a subsequence rank wins.
func fuzzyScore(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	if strings.Contains(a, b) {
		return 75 + (25 * len(b) / len(a))
	}
	if strings.Contains(b, a) {
		return 75 + (25 * len(a) / len(b))
	}

	maxLen := max(len(a), len(b))
	levScore := 100 * (maxLen - levenshtein(a, b)) / maxLen

	// fuzzy.RankMatch reports where b starts matching inside a as a
	// subsequence (-1 when it never does); earlier is better.
	rankScore := 0
	if rank := fuzzy.RankMatch(b, a); rank >= 0 && rank < len(a) {
		rankScore = 60 - (rank * 40 / len(a))
	}

	return max(levScore, rankScore)
}

// levenshtein is the rune-wise edit distance, two-row variant.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
