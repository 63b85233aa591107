// Package duplicate defines the inputs and outputs of duplicate question detection.
package duplicate

import "github.com/kailas-cloud/questionbank/internal/domain/question"

// Source labels where a matching question lives relative to the caller.
type Source string

// Source values.
const (
	SourceGlobal       Source = "Global"
	SourceOrganization Source = "Your Organization"
)

// SourceOf returns the source label for a stored candidate.
func SourceOf(c question.Candidate) Source {
	if c.IsGlobal {
		return SourceGlobal
	}
	return SourceOrganization
}

// Query is a proposed question checked for duplicates.
type Query struct {
	Title         string            `json:"title,omitempty"`
	Description   string            `json:"description,omitempty"`
	Type          question.Type     `json:"type" validate:"required,questiontype"`
	Language      question.Language `json:"language" validate:"required,language"`
	Category      question.Category `json:"category,omitempty" validate:"omitempty,category"`
	EntryFunction string            `json:"entryFunction,omitempty"`
	CodeTemplate  string            `json:"codeTemplate,omitempty"`
}

// AccessContext identifies the caller's tenant.
type AccessContext struct {
	OrganizationID string
}

// Match is a scored candidate returned to the caller.
type Match struct {
	question.Candidate
	Similarity  int
	ExactMatch  bool
	Source      Source
	MatchReason string
}

// Match reasons, highest priority first.
const (
	ReasonExact           = "Exact match found"
	ReasonNearlyIdentical = "Nearly identical content"
	ReasonVerySimilar     = "Very similar content"
	ReasonSimilar         = "Similar title or description"
	ReasonSameFunction    = "Same function name"
	ReasonRelated         = "Potentially related"
	ReasonKeyword         = "Regex keyword match"
)
