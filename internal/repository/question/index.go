package question

import (
	"github.com/kailas-cloud/questionbank/internal/db"
	domq "github.com/kailas-cloud/questionbank/internal/domain/question"
)

// buildIndex describes the candidate index: keyword fields as TAGs, free text
// as whole-value TAGs (substring search via wildcard), created_at for ordering.
func buildIndex(prefix string) (*db.IndexDefinition, error) {
	return db.NewIndex(indexName(prefix)).
		Prefix(keyPrefix(prefix)).
		TagWithOpts(domq.FieldTitle, tagSeparator, false).
		TagWithOpts(domq.FieldDescription, tagSeparator, false).
		Tag(domq.FieldType).
		Tag(domq.FieldLanguage).
		Tag(domq.FieldCategory).
		Tag(domq.FieldOrganizationID).
		Tag(domq.FieldIsGlobal).
		TagWithOpts(domq.FieldEntryFunction, "", true).
		SortableNumeric(domq.FieldCreatedAt).
		Build()
}

func keyPrefix(prefix string) string {
	return prefix + "question:"
}

func questionKey(prefix, id string) string {
	return keyPrefix(prefix) + id
}

func indexName(prefix string) string {
	return prefix + "question:idx"
}
