// Package question holds the question bank vocabulary and the lightweight
// candidate projection read by duplicate detection.
package question

import "time"

// Type is the closed set of question types.
type Type string

// Question type constants.
const (
	TypeTrueFalse      Type = "trueFalse"
	TypeMultipleChoice Type = "multipleChoice"
	TypeFillInTheBlank Type = "fillInTheBlank"
	TypeCodeChallenge  Type = "codeChallenge"
	TypeCodeDebugging  Type = "codeDebugging"
)

var types = []Type{
	TypeTrueFalse, TypeMultipleChoice, TypeFillInTheBlank, TypeCodeChallenge, TypeCodeDebugging,
}

// Types returns all supported question types.
func Types() []Type { return append([]Type(nil), types...) }

// IsValid reports whether t is a supported question type.
func (t Type) IsValid() bool {
	for _, v := range types {
		if t == v {
			return true
		}
	}
	return false
}

// HasCode reports whether questions of this type carry code (category applies).
func (t Type) HasCode() bool {
	return t == TypeFillInTheBlank || t == TypeCodeChallenge || t == TypeCodeDebugging
}

// IsExecutable reports whether questions of this type define an entry function.
func (t Type) IsExecutable() bool {
	return t == TypeCodeChallenge || t == TypeCodeDebugging
}

// Language is the closed set of programming/technology languages.
type Language string

// Supported languages.
const (
	LanguageJavaScript  Language = "javascript"
	LanguageTypeScript  Language = "typescript"
	LanguagePython      Language = "python"
	LanguageJava        Language = "java"
	LanguageCSharp      Language = "csharp"
	LanguageCPP         Language = "cpp"
	LanguageC           Language = "c"
	LanguageGo          Language = "go"
	LanguageRuby        Language = "ruby"
	LanguagePHP         Language = "php"
	LanguageSwift       Language = "swift"
	LanguageKotlin      Language = "kotlin"
	LanguageRust        Language = "rust"
	LanguageSQL         Language = "sql"
	LanguageHTML        Language = "html"
	LanguageCSS         Language = "css"
	LanguageReact       Language = "react"
	LanguageReactNative Language = "reactNative"
	LanguageFlutter     Language = "flutter"
	LanguageDart        Language = "dart"
)

var languages = map[Language]struct{}{
	LanguageJavaScript: {}, LanguageTypeScript: {}, LanguagePython: {}, LanguageJava: {},
	LanguageCSharp: {}, LanguageCPP: {}, LanguageC: {}, LanguageGo: {}, LanguageRuby: {},
	LanguagePHP: {}, LanguageSwift: {}, LanguageKotlin: {}, LanguageRust: {}, LanguageSQL: {},
	LanguageHTML: {}, LanguageCSS: {}, LanguageReact: {}, LanguageReactNative: {},
	LanguageFlutter: {}, LanguageDart: {},
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	_, ok := languages[l]
	return ok
}

// Category classifies code-bearing questions.
type Category string

// Category constants.
const (
	CategoryLogic  Category = "logic"
	CategoryUI     Category = "ui"
	CategorySyntax Category = "syntax"
)

// IsValid reports whether c is a supported category.
func (c Category) IsValid() bool {
	return c == CategoryLogic || c == CategoryUI || c == CategorySyntax
}

// Difficulty is the authored difficulty level.
type Difficulty string

// Difficulty constants.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Candidate is the read-only projection of a stored question used by duplicate
// detection and kept in the candidate index.
type Candidate struct {
	ID                string
	Title             string
	Description       string
	Type              Type
	Language          Language
	Category          Category
	Difficulty        Difficulty
	OrganizationID    string
	IsGlobal          bool
	CreatedBy         string
	CreatedAt         time.Time
	EntryFunctionName string
	CodeTemplate      string
	CorrectAnswer     string
	Options           []string
}
