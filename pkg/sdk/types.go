package questionbank

import "time"

// QuestionType is the kind of question.
type QuestionType string

// Question types.
const (
	TypeTrueFalse      QuestionType = "trueFalse"
	TypeMultipleChoice QuestionType = "multipleChoice"
	TypeFillInTheBlank QuestionType = "fillInTheBlank"
	TypeCodeChallenge  QuestionType = "codeChallenge"
	TypeCodeDebugging  QuestionType = "codeDebugging"
)

// Query is a proposed question checked for duplicates.
// Either Title or Description is required; Type and Language always are.
type Query struct {
	Title         string
	Description   string
	Type          QuestionType
	Language      string
	Category      string
	EntryFunction string
	CodeTemplate  string
}

// Match is a stored question similar to the query.
type Match struct {
	ID          string
	Title       string
	Description string
	Type        QuestionType
	Language    string
	Category    string
	Difficulty  string
	Source      string // "Global" or "Your Organization"
	Similarity  int    // 0..100
	ExactMatch  bool
	MatchReason string
}

// Question is the projection of a stored question kept in the candidate index.
type Question struct {
	ID                string
	Title             string
	Description       string
	Type              QuestionType
	Language          string
	Category          string
	Difficulty        string
	OrganizationID    string
	IsGlobal          bool
	CreatedBy         string
	CreatedAt         time.Time
	EntryFunctionName string
	CodeTemplate      string
	CorrectAnswer     string
	Options           []string
}

// ItemResult is the outcome of one item in a batch call.
type ItemResult struct {
	ID  string
	OK  bool
	Err error
}

// BatchResponse summarizes a batch call.
type BatchResponse struct {
	Items     []ItemResult
	Succeeded int
	Failed    int
}
