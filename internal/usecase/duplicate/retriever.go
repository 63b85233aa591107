package duplicate

import (
	"fmt"
	"strings"

	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

// CandidateFilter builds the retrieval expression for q:
//
//	access AND type AND language [AND category] AND (title~ OR description~ OR entry function)
//
// ok is false when q has nothing searchable, in which case the store must not be queried.
// Free text is passed through verbatim; stores escape it for their own dialect.
func CandidateFilter(q domdup.Query, access filter.Condition) (expr filter.Expression, ok bool, err error) {
	var anyOf []filter.Condition

	if title := strings.TrimSpace(q.Title); title != "" {
		c, err := filter.NewContains(question.FieldTitle, title)
		if err != nil {
			return filter.Expression{}, false, err
		}
		anyOf = append(anyOf, c)
	}
	if desc := strings.TrimSpace(q.Description); desc != "" {
		c, err := filter.NewContains(question.FieldDescription, desc)
		if err != nil {
			return filter.Expression{}, false, err
		}
		anyOf = append(anyOf, c)
	}
	if fn := strings.TrimSpace(q.EntryFunction); fn != "" && q.Type.IsExecutable() {
		c, err := filter.NewMatch(question.FieldEntryFunction, fn)
		if err != nil {
			return filter.Expression{}, false, err
		}
		anyOf = append(anyOf, c)
	}
	if len(anyOf) == 0 {
		return filter.Expression{}, false, nil
	}

	must := []filter.Condition{access}
	base := []struct{ key, value string }{
		{question.FieldType, string(q.Type)},
		{question.FieldLanguage, string(q.Language)},
	}
	if q.Category != "" && q.Type.HasCode() {
		base = append(base, struct{ key, value string }{question.FieldCategory, string(q.Category)})
	}
	for _, b := range base {
		c, err := filter.NewMatch(b.key, b.value)
		if err != nil {
			return filter.Expression{}, false, err
		}
		must = append(must, c)
	}

	text, err := filter.NewAnyOf(anyOf...)
	if err != nil {
		return filter.Expression{}, false, err
	}
	must = append(must, text)

	expr, err = filter.NewExpression(must, nil)
	if err != nil {
		return filter.Expression{}, false, fmt.Errorf("candidate filter: %w", err)
	}
	return expr, true, nil
}
