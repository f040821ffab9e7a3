package db

// TagClause is a single required tag match in a TagQuery.
type TagClause struct {
	Field string
	Value string
}

// TagQuery is the input for a boolean AND tag search: every clause must match.
type TagQuery struct {
	IndexName    string
	Clauses      []TagClause
	Limit        int
	ReturnFields []string
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
