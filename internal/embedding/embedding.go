// Package embedding provides clients that turn free text into fixed-dimension
// vectors for semantic retrieval.
package embedding

import "context"

// Provider converts text into a numeric vector representation. Implementations
// are injected into the category matcher and the seeder so tests can
// substitute fakes.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// Error is returned when the embedding provider is unreachable or rejects
// the input. It is fatal for the current analysis request; retry policy
// belongs to the provider client, not the caller.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return "embedding: " + e.Message + ": " + e.Cause.Error()
	}
	return "embedding: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
