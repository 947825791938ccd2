// Package vectorstore provides the nearest-neighbor index holding the
// taxonomy's skill embeddings. The index is consumed as a black-box search
// service; its storage and indexing internals are out of scope.
package vectorstore

import "context"

// Payload is the metadata stored alongside each skill embedding.
type Payload struct {
	Category    string `json:"category"`
	Skill       string `json:"skill"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Point is one skill embedding record. IDs are assigned deterministically at
// seed time from the taxonomy ordering, so re-seeding overwrites the same
// records and stays idempotent.
type Point struct {
	ID      uint64
	Vector  []float32
	Payload Payload
}

// Result is one nearest neighbor returned by a search.
type Result struct {
	Score   float64
	Payload Payload
}

// SearchOptions bounds a nearest-neighbor query. ScoreThreshold filters
// server-side; neighbors below it are never returned.
type SearchOptions struct {
	Limit          int
	ScoreThreshold float64
}

// Index persists skill vectors and answers similarity queries.
// EnsureCollection and Upsert are used only by the seeding process; the
// request-time gap engine only searches.
type Index interface {
	EnsureCollection(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, points []Point) error
	Search(ctx context.Context, vector []float32, opts SearchOptions) ([]Result, error)
}

// SearchError is returned when the index is unreachable or a query is
// malformed. It is fatal for the current analysis request.
type SearchError struct {
	Op    string
	Cause error
}

func (e *SearchError) Error() string {
	if e.Cause != nil {
		return "vector search: " + e.Op + ": " + e.Cause.Error()
	}
	return "vector search: " + e.Op
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}
