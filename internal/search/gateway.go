// Package search wraps the external web-search API. The engine treats it as
// a black box: a query plus a start index in, up to ten ranked records out.
package search

import (
	"context"

	"leadgen-engine/internal/domain"
)

// PageSize is how many records one gateway call returns at most.
const PageSize = 10

// Request is one page fetch. Start is a 1-based result offset (1, 11, 21...).
// Recency is an optional qdr:* filter.
type Request struct {
	Query   string
	Start   int
	Recency string
}

// Gateway executes one search page. An empty slice means the query is
// exhausted. Errors are hard failures for that page only; callers abort the
// current query's pagination and move on.
type Gateway interface {
	Search(ctx context.Context, req Request) ([]domain.SearchResultRecord, error)
}
