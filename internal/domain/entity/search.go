package entity

// SearchResult is the answer produced by the search provider for one query.
// Content empty means the provider matched nothing; Citations may be nil.
type SearchResult struct {
	Content   string
	Citations []string
}
