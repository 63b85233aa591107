package duplicate

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/questionbank/internal/domain"
	domdup "github.com/kailas-cloud/questionbank/internal/domain/duplicate"
	"github.com/kailas-cloud/questionbank/internal/domain/question"
)

func TestValidator_Validate(t *testing.T) {
	valid := domdup.Query{
		Title: "Reverse a string", Type: question.TypeCodeChallenge, Language: question.LanguagePython,
	}

	tests := []struct {
		name    string
		mutate  func(q *domdup.Query)
		wantMsg string
	}{
		{"valid", func(*domdup.Query) {}, ""},
		{"description only", func(q *domdup.Query) { q.Title, q.Description = "", "Reverse it" }, ""},
		{"valid category", func(q *domdup.Query) { q.Category = question.CategoryLogic }, ""},
		{"blank text", func(q *domdup.Query) { q.Title, q.Description = "  ", "\t" }, "Either title or description is required"},
		{"missing type", func(q *domdup.Query) { q.Type = "" }, "Question type is required"},
		{"invalid type", func(q *domdup.Query) { q.Type = "essay" }, "Invalid question type: essay"},
		{"missing language", func(q *domdup.Query) { q.Language = "" }, "Language is required"},
		{"invalid language", func(q *domdup.Query) { q.Language = "cobol" }, "Invalid language: cobol"},
		{"invalid category", func(q *domdup.Query) { q.Category = "design" }, "Invalid category: design"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			err := v.Validate(q)

			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			msg, ok := domain.ValidationMessage(err)
			if !ok || msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestValidator_TypeCheckedBeforeLanguage(t *testing.T) {
	err := NewValidator().Validate(domdup.Query{Title: "x"})
	msg, _ := domain.ValidationMessage(err)
	if msg != "Question type is required" {
		t.Errorf("message = %q", msg)
	}
}
