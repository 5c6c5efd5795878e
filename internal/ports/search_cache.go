package ports

import (
	"context"

	"medicine-finder-service/internal/domain"
)

// Port: short-lived cache of complete search result sets. A hit must be
// byte-for-byte equivalent to re-running the query against unchanged data.
type SearchCache interface {
	// Return the cached result set and whether the key was present.
	Get(ctx context.Context, key string) ([]domain.SearchResult, bool, error)
	Put(ctx context.Context, key string, results []domain.SearchResult) error
}
