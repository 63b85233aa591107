package duplicate

import (
	"math"
	"strings"

	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// Score returns the 0-100 similarity of candidate c to query q.
//
// Title and description contribute only when both sides carry text. The bonus
// weight is always part of the denominator, so question types without a code
// signal can never reach 100 on text alone.
func Score(q domdup.Query, c question.Candidate, w Weights) int {
	var total, weights float64

	if present(q.Title) && present(c.Title) {
		total += float64(FuzzyMatch(q.Title, c.Title)) * w.Title
		weights += w.Title
	}
	if present(q.Description) && present(c.Description) {
		total += float64(FuzzyMatch(q.Description, c.Description)) * w.Description
		weights += w.Description
	}

	total += bonus(q, c, w.Bonus)
	weights += w.Bonus

	if weights == 0 {
		return 0
	}
	return clamp(int(math.Round(total / weights)))
}

// bonus returns the already weighted type-specific contribution.
func bonus(q domdup.Query, c question.Candidate, weight float64) float64 {
	switch {
	case q.Type.IsExecutable():
		if sameEntryFunction(q, c) {
			return scoreExact * weight
		}
	case q.Type == question.TypeFillInTheBlank:
		if present(q.CodeTemplate) && present(c.CodeTemplate) {
			return float64(CompareCodeTemplates(q.CodeTemplate, c.CodeTemplate)) * weight
		}
	}
	return 0
}

func present(s string) bool { return strings.TrimSpace(s) != "" }

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > scoreExact:
		return scoreExact
	}
	return v
}
