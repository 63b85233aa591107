package questionbank

import (
	dombatch "github.com/kailas-cloud/questionbank/internal/domain/batch"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

func toInternalQuery(q Query) domdup.Query {
	return domdup.Query{
		Title:         q.Title,
		Description:   q.Description,
		Type:          question.Type(q.Type),
		Language:      question.Language(q.Language),
		Category:      question.Category(q.Category),
		EntryFunction: q.EntryFunction,
		CodeTemplate:  q.CodeTemplate,
	}
}

func fromInternalMatch(m *domdup.Match) Match {
	return Match{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        QuestionType(m.Type),
		Language:    string(m.Language),
		Category:    string(m.Category),
		Difficulty:  string(m.Difficulty),
		Source:      string(m.Source),
		Similarity:  m.Similarity,
		ExactMatch:  m.ExactMatch,
		MatchReason: m.MatchReason,
	}
}

func toInternalCandidate(q *Question) question.Candidate {
	return question.Candidate{
		ID:                q.ID,
		Title:             q.Title,
		Description:       q.Description,
		Type:              question.Type(q.Type),
		Language:          question.Language(q.Language),
		Category:          question.Category(q.Category),
		Difficulty:        question.Difficulty(q.Difficulty),
		OrganizationID:    q.OrganizationID,
		IsGlobal:          q.IsGlobal,
		CreatedBy:         q.CreatedBy,
		CreatedAt:         q.CreatedAt,
		EntryFunctionName: q.EntryFunctionName,
		CodeTemplate:      q.CodeTemplate,
		CorrectAnswer:     q.CorrectAnswer,
		Options:           q.Options,
	}
}

func fromInternalCandidate(c *question.Candidate) Question {
	return Question{
		ID:                c.ID,
		Title:             c.Title,
		Description:       c.Description,
		Type:              QuestionType(c.Type),
		Language:          string(c.Language),
		Category:          string(c.Category),
		Difficulty:        string(c.Difficulty),
		OrganizationID:    c.OrganizationID,
		IsGlobal:          c.IsGlobal,
		CreatedBy:         c.CreatedBy,
		CreatedAt:         c.CreatedAt,
		EntryFunctionName: c.EntryFunctionName,
		CodeTemplate:      c.CodeTemplate,
		CorrectAnswer:     c.CorrectAnswer,
		Options:           c.Options,
	}
}

func toBatchResponse(results []dombatch.Result) BatchResponse {
	resp := BatchResponse{Items: make([]ItemResult, len(results))}
	for i, r := range results {
		resp.Items[i] = ItemResult{ID: r.ID(), OK: r.OK(), Err: r.Err()}
		if r.OK() {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}

// firstError returns the first per-item error, for observation.
func (r BatchResponse) firstError() error {
	for _, it := range r.Items {
		if it.Err != nil {
			return it.Err
		}
	}
	return nil
}
