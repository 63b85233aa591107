package chi

import (
	"time"

	dombatch "github.com/kailas-cloud/questionbank/internal/domain/batch"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

// ErrorCode is the machine-readable error identifier in error responses.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeMissingOrganization ErrorCode = "missing_organization"
	ErrorCodeRateLimited         ErrorCode = "rate_limited"
	ErrorCodeNotFound            ErrorCode = "not_found"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Status  int       `json:"status"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DuplicateItem is one ranked match.
type DuplicateItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Language    string `json:"language"`
	Category    string `json:"category,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Source      string `json:"source"`
	Similarity  int    `json:"similarity"`
	ExactMatch  bool   `json:"exactMatch"`
	MatchReason string `json:"matchReason"`
}

// DuplicateListResponse wraps ranked matches.
type DuplicateListResponse struct {
	Items []DuplicateItem `json:"items"`
}

// duplicateQueryParams mirrors the GET query string. All fields are optional
// at the binding layer; the validator reports missing ones.
type duplicateQueryParams struct {
	Title         *string
	Description   *string
	Type          *string
	Language      *string
	Category      *string
	EntryFunction *string
	CodeTemplate  *string
}

// IndexItem is a question projection pushed into the candidate index.
type IndexItem struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Type              string     `json:"type"`
	Language          string     `json:"language"`
	Category          string     `json:"category,omitempty"`
	Difficulty        string     `json:"difficulty,omitempty"`
	OrganizationID    string     `json:"organizationId,omitempty"`
	IsGlobal          bool       `json:"isGlobal"`
	CreatedBy         string     `json:"createdBy,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
	EntryFunctionName string     `json:"entryFunctionName,omitempty"`
	CodeTemplate      string     `json:"codeTemplate,omitempty"`
	CorrectAnswer     string     `json:"correctAnswer,omitempty"`
	Options           []string   `json:"options,omitempty"`
}

// IndexUpsertRequest is the body of PUT /v1/questions/index.
type IndexUpsertRequest struct {
	Items []IndexItem `json:"items"`
}

// IndexDeleteRequest is the body of DELETE /v1/questions/index.
type IndexDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BatchResultItem is the outcome of one batch item.
type BatchResultItem struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// BatchResponse summarizes a batch operation.
type BatchResponse struct {
	Items     []BatchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func duplicateToDTO(m *domdup.Match) DuplicateItem {
	return DuplicateItem{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        string(m.Type),
		Language:    string(m.Language),
		Category:    string(m.Category),
		Difficulty:  string(m.Difficulty),
		Source:      string(m.Source),
		Similarity:  m.Similarity,
		ExactMatch:  m.ExactMatch,
		MatchReason: m.MatchReason,
	}
}

func (p *duplicateQueryParams) toQuery() domdup.Query {
	return domdup.Query{
		Title:         deref(p.Title),
		Description:   deref(p.Description),
		Type:          question.Type(deref(p.Type)),
		Language:      question.Language(deref(p.Language)),
		Category:      question.Category(deref(p.Category)),
		EntryFunction: deref(p.EntryFunction),
		CodeTemplate:  deref(p.CodeTemplate),
	}
}

func indexItemToCandidate(it *IndexItem) question.Candidate {
	c := question.Candidate{
		ID:                it.ID,
		Title:             it.Title,
		Description:       it.Description,
		Type:              question.Type(it.Type),
		Language:          question.Language(it.Language),
		Category:          question.Category(it.Category),
		Difficulty:        question.Difficulty(it.Difficulty),
		OrganizationID:    it.OrganizationID,
		IsGlobal:          it.IsGlobal,
		CreatedBy:         it.CreatedBy,
		EntryFunctionName: it.EntryFunctionName,
		CodeTemplate:      it.CodeTemplate,
		CorrectAnswer:     it.CorrectAnswer,
		Options:           it.Options,
	}
	if it.CreatedAt != nil {
		c.CreatedAt = it.CreatedAt.UTC()
	}
	return c
}

func candidateToIndexItem(c *question.Candidate) IndexItem {
	it := IndexItem{
		ID:                c.ID,
		Title:             c.Title,
		Description:       c.Description,
		Type:              string(c.Type),
		Language:          string(c.Language),
		Category:          string(c.Category),
		Difficulty:        string(c.Difficulty),
		OrganizationID:    c.OrganizationID,
		IsGlobal:          c.IsGlobal,
		CreatedBy:         c.CreatedBy,
		EntryFunctionName: c.EntryFunctionName,
		CodeTemplate:      c.CodeTemplate,
		CorrectAnswer:     c.CorrectAnswer,
		Options:           c.Options,
	}
	if !c.CreatedAt.IsZero() {
		createdAt := c.CreatedAt
		it.CreatedAt = &createdAt
	}
	return it
}

func batchToDTO(results []dombatch.Result) BatchResponse {
	resp := BatchResponse{Items: make([]BatchResultItem, len(results))}
	for i, r := range results {
		item := BatchResultItem{ID: r.ID(), Status: string(r.Status())}
		if r.Err() != nil {
			status, code := classify(r.Err())
			item.Error = &ErrorResponse{Status: status, Code: code, Message: safeDomainMessage(r.Err())}
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Items[i] = item
	}
	return resp
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
