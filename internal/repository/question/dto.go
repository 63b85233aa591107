package question

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	domq "github.com/kailas-cloud/questionbank/internal/domain/question"
)

// tagSeparator splits TAG values at index time. Free text is indexed as one
// tag per field, so the separator is stripped from stored text.
const tagSeparator = "\x1f"

// candidateToHash converts a candidate to a flat map for HSET. Every field is
// written so that an overwrite clears stale values; empty TAG values are not indexed.
func candidateToHash(c *domq.Candidate) (map[string]string, error) {
	var createdAt int64
	if !c.CreatedAt.IsZero() {
		createdAt = c.CreatedAt.UnixMilli()
	}

	var opts []byte
	if len(c.Options) > 0 {
		var err error
		if opts, err = json.Marshal(c.Options); err != nil {
			return nil, fmt.Errorf("marshal options: %w", err)
		}
	}

	return map[string]string{
		domq.FieldID:             c.ID,
		domq.FieldTitle:          sanitizeText(c.Title),
		domq.FieldDescription:    sanitizeText(c.Description),
		domq.FieldType:           string(c.Type),
		domq.FieldLanguage:       string(c.Language),
		domq.FieldCategory:       string(c.Category),
		domq.FieldDifficulty:     string(c.Difficulty),
		domq.FieldOrganizationID: c.OrganizationID,
		domq.FieldIsGlobal:       domq.BoolValue(c.IsGlobal),
		domq.FieldCreatedBy:      c.CreatedBy,
		domq.FieldCreatedAt:      strconv.FormatInt(createdAt, 10),
		domq.FieldEntryFunction:  c.EntryFunctionName,
		domq.FieldCodeTemplate:   c.CodeTemplate,
		domq.FieldCorrectAnswer:  c.CorrectAnswer,
		domq.FieldOptions:        string(opts),
	}, nil
}

// candidateFromHash hydrates a candidate from FT.SEARCH RETURN fields.
func candidateFromHash(m map[string]string) (domq.Candidate, error) {
	c := domq.Candidate{
		ID:                m[domq.FieldID],
		Title:             m[domq.FieldTitle],
		Description:       m[domq.FieldDescription],
		Type:              domq.Type(m[domq.FieldType]),
		Language:          domq.Language(m[domq.FieldLanguage]),
		Category:          domq.Category(m[domq.FieldCategory]),
		Difficulty:        domq.Difficulty(m[domq.FieldDifficulty]),
		OrganizationID:    m[domq.FieldOrganizationID],
		IsGlobal:          m[domq.FieldIsGlobal] == "true",
		CreatedBy:         m[domq.FieldCreatedBy],
		EntryFunctionName: m[domq.FieldEntryFunction],
		CodeTemplate:      m[domq.FieldCodeTemplate],
		CorrectAnswer:     m[domq.FieldCorrectAnswer],
	}

	if v := m[domq.FieldCreatedAt]; v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domq.Candidate{}, fmt.Errorf("parse created_at %q: %w", v, err)
		}
		if ms != 0 {
			c.CreatedAt = time.UnixMilli(ms).UTC()
		}
	}

	if v := m[domq.FieldOptions]; v != "" {
		if err := json.Unmarshal([]byte(v), &c.Options); err != nil {
			return domq.Candidate{}, fmt.Errorf("unmarshal options: %w", err)
		}
	}
	return c, nil
}

func sanitizeText(s string) string {
	return strings.ReplaceAll(s, tagSeparator, " ")
}
