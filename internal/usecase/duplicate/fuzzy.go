package duplicate

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	scoreExact             = 100
	scoreContained         = 85
	scoreTemplateContained = 80
	minTokenLen            = 3
)

// FuzzyMatch scores two free-text values on a 0-100 scale, ignoring case and
// surrounding whitespace. Equal text scores 100, containment 85, anything else
// the loose token overlap ratio.
func FuzzyMatch(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return scoreExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return scoreContained
	}

	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	matched := 0
	for _, x := range ta {
		for _, y := range tb {
			if strings.Contains(x, y) || strings.Contains(y, x) {
				matched++
				break
			}
		}
	}

	// repeated tokens can push the loose ratio past 1
	ratio := 2 * float64(matched) / float64(len(ta)+len(tb))
	return clamp(int(math.Round(ratio * 100)))
}

// tokens splits on whitespace and drops words shorter than minTokenLen runes.
// Duplicated words are kept.
func tokens(s string) []string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLen {
			out = append(out, f)
		}
	}
	return out
}

// CompareCodeTemplates scores two code templates on a 0-100 scale after
// collapsing whitespace and lowercasing.
func CompareCodeTemplates(a, b string) int {
	a = normalizeCode(a)
	b = normalizeCode(b)

	if a == b {
		return scoreExact
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return scoreTemplateContained
	}

	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}

	total, found := 0, 0
	for _, r := range shorter {
		total++
		if strings.ContainsRune(longer, r) {
			found++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(found) / float64(total) * 100))
}

func normalizeCode(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
