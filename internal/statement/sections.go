package statement

import "strings"

// Canonical card-section labels. Statements from different years spell the
// headers differently; all variants fold into one of these.
const (
	SectionGoldRewards = "BPI GOLD REWARDS CARD"
	SectionECredit     = "BPI ECREDIT CARD"
	SectionUnknown     = "UNKNOWN_CARD"
)

// Header markers are compared against the normalized, uppercased line with
// spaces removed (and hyphens removed for the e-credit check, which has
// appeared as both "ECREDIT" and "E-CREDIT").
var (
	goldMarkers = []string{
		"BPIGOLDREWARDS",
		"GOLDREWARDS",
		"BPIEXPRESSCREDITGOLDMASTERCARD",
	}
	ecreditMarkers = []string{
		"BPIECREDIT",
		"ECREDITCARD",
	}
)

type section struct {
	card  string
	lines []string
}

// splitSections partitions the statement lines by card header. Lines before
// the first recognized header are dropped, matching how the statements lay
// out their summary pages; if no header is ever seen the whole text becomes
// a single UNKNOWN_CARD section so transactions are still recovered, just
// with an unusable card label.
func splitSections(lines []string) []section {
	var sections []section
	current := -1

	for _, line := range lines {
		switch card := headerCard(line); card {
		case "":
			if current >= 0 {
				sections[current].lines = append(sections[current].lines, line)
			}
		default:
			sections = append(sections, section{card: card, lines: []string{line}})
			current = len(sections) - 1
		}
	}

	if len(sections) == 0 {
		return []section{{card: SectionUnknown, lines: lines}}
	}
	return sections
}

// headerCard reports which canonical card a line's header names, or "" if
// the line is not a header. The gold-rewards check runs first: one
// historical gold-card header embeds "E-CREDIT" in its long form, and the
// gold-first ordering is the documented tie-break.
func headerCard(line string) string {
	norm := strings.ToUpper(NormalizeLine(line))
	squashed := strings.ReplaceAll(norm, " ", "")

	for _, marker := range goldMarkers {
		if strings.Contains(squashed, marker) {
			return SectionGoldRewards
		}
	}

	dehyphenated := strings.ReplaceAll(squashed, "-", "")
	if !strings.Contains(norm, "GOLD") {
		for _, marker := range ecreditMarkers {
			if strings.Contains(dehyphenated, marker) {
				return SectionECredit
			}
		}
	}

	return ""
}
