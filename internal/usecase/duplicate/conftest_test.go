package duplicate

import (
	"context"

	"github.com/kailas-cloud/questionbank/internal/domain/question"
	"github.com/kailas-cloud/questionbank/internal/domain/search/filter"
)

// memRepo evaluates filter expressions against candidates held in memory.
type memRepo struct {
	items     []question.Candidate
	calls     int
	lastLimit int
	returned  []question.Candidate
}

func (m *memRepo) FindCandidates(_ context.Context, expr filter.Expression, limit int) ([]question.Candidate, error) {
	m.calls++
	m.lastLimit = limit
	var out []question.Candidate
	for _, c := range m.items {
		if len(out) == limit {
			break
		}
		if expr.Eval(fieldsOf(c)) {
			out = append(out, c)
		}
	}
	m.returned = out
	return out, nil
}

func fieldsOf(c question.Candidate) map[string]string {
	return map[string]string{
		question.FieldID:             c.ID,
		question.FieldTitle:          c.Title,
		question.FieldDescription:    c.Description,
		question.FieldType:           string(c.Type),
		question.FieldLanguage:       string(c.Language),
		question.FieldCategory:       string(c.Category),
		question.FieldOrganizationID: c.OrganizationID,
		question.FieldIsGlobal:       question.BoolValue(c.IsGlobal),
		question.FieldEntryFunction:  c.EntryFunctionName,
	}
}

// stubRepo returns fixed candidates without filtering.
type stubRepo struct {
	items     []question.Candidate
	err       error
	calls     int
	lastLimit int
	lastExpr  filter.Expression
}

func (s *stubRepo) FindCandidates(_ context.Context, expr filter.Expression, limit int) ([]question.Candidate, error) {
	s.calls++
	s.lastLimit = limit
	s.lastExpr = expr
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}
