package db

import "github.com/kailas-cloud/questionbank/internal/domain/search/filter"

// Query is the input for a filtered FT.SEARCH lookup.
type Query struct {
	IndexName    string
	Filters      filter.Expression
	Limit        int
	ReturnFields []string
	// SortBy names a SORTABLE field; results are returned in ascending order.
	SortBy string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
