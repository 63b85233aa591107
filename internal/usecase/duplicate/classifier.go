package duplicate

import (
	"strings"

	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// Classify reports whether c is an exact match for q and explains the match.
func Classify(q domdup.Query, c question.Candidate, similarity int, b Bands) (bool, string) {
	exact := IsExactMatch(q, c)

	switch {
	case exact:
		return true, domdup.ReasonExact
	case similarity >= b.NearlyIdentical:
		return false, domdup.ReasonNearlyIdentical
	case similarity >= b.VerySimilar:
		return false, domdup.ReasonVerySimilar
	case similarity >= b.Similar:
		return false, domdup.ReasonSimilar
	case sameEntryFunction(q, c):
		return false, domdup.ReasonSameFunction
	case similarity >= b.Related:
		return false, domdup.ReasonRelated
	}
	return false, domdup.ReasonKeyword
}

// IsExactMatch compares title, description and, for executable types, the
// entry function after trimming and lowercasing. Empty query fields never match.
func IsExactMatch(q domdup.Query, c question.Candidate) bool {
	if sameText(q.Title, c.Title) || sameText(q.Description, c.Description) {
		return true
	}
	return sameEntryFunction(q, c)
}

// sameEntryFunction reports whether an executable query names the candidate's
// entry function, ignoring case and surrounding whitespace.
func sameEntryFunction(q domdup.Query, c question.Candidate) bool {
	return q.Type.IsExecutable() && sameText(q.EntryFunction, c.EntryFunctionName)
}

func sameText(query, stored string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return false
	}
	return query == strings.ToLower(strings.TrimSpace(stored))
}
