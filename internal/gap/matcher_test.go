package gap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsync/internal/embedding"
	"github.com/jonathan/skillsync/internal/vectorstore"
)

type fakeProvider struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeProvider) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeProvider) Dimension() int { return len(f.vector) }

type fakeIndex struct {
	results  []vectorstore.Result
	err      error
	lastOpts vectorstore.SearchOptions
	lastVec  []float32
	upserted []vectorstore.Point
}

func (f *fakeIndex) EnsureCollection(_ context.Context, _ int) error { return nil }

func (f *fakeIndex) Upsert(_ context.Context, points []vectorstore.Point) error {
	f.upserted = append(f.upserted, points...)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, vector []float32, opts vectorstore.SearchOptions) ([]vectorstore.Result, error) {
	f.lastVec = vector
	f.lastOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func neighbor(category string, score float64) vectorstore.Result {
	return vectorstore.Result{Score: score, Payload: vectorstore.Payload{Category: category, Skill: "s"}}
}

func TestMatcher_GroupsByCategoryKeepingMaxScore(t *testing.T) {
	provider := &fakeProvider{vector: []float32{0.5, 0.5}}
	index := &fakeIndex{results: []vectorstore.Result{
		neighbor("Web Development", 0.81),
		neighbor("Backend Development", 0.77),
		neighbor("Web Development", 0.92),
		neighbor("Backend Development", 0.52),
	}}

	matcher := NewMatcher(provider, index, ServiceParams)
	matches, err := matcher.Match(context.Background(), "become a web developer")
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, CategoryMatch{Category: "Web Development", Confidence: 0.92}, matches[0])
	assert.Equal(t, CategoryMatch{Category: "Backend Development", Confidence: 0.77}, matches[1])
}

func TestMatcher_PassesParamsToIndex(t *testing.T) {
	provider := &fakeProvider{vector: []float32{1}}
	index := &fakeIndex{}

	matcher := NewMatcher(provider, index, GapFinderParams)
	_, err := matcher.Match(context.Background(), "goal")
	require.NoError(t, err)

	assert.Equal(t, 10, index.lastOpts.Limit)
	assert.Equal(t, 0.40, index.lastOpts.ScoreThreshold)
	assert.Equal(t, []float32{1}, index.lastVec)
}

func TestMatcher_EmptyNeighborsIsNotAnError(t *testing.T) {
	provider := &fakeProvider{vector: []float32{1}}
	index := &fakeIndex{}

	matcher := NewMatcher(provider, index, ServiceParams)
	matches, err := matcher.Match(context.Background(), "goal")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatcher_EmbeddingErrorPropagates(t *testing.T) {
	cause := &embedding.Error{Message: "provider down"}
	provider := &fakeProvider{err: cause}
	index := &fakeIndex{}

	matcher := NewMatcher(provider, index, ServiceParams)
	_, err := matcher.Match(context.Background(), "goal")

	var embErr *embedding.Error
	require.ErrorAs(t, err, &embErr)
}

func TestMatcher_SearchErrorPropagates(t *testing.T) {
	provider := &fakeProvider{vector: []float32{1}}
	index := &fakeIndex{err: &vectorstore.SearchError{Op: "search points", Cause: errors.New("down")}}

	matcher := NewMatcher(provider, index, ServiceParams)
	_, err := matcher.Match(context.Background(), "goal")

	var searchErr *vectorstore.SearchError
	require.ErrorAs(t, err, &searchErr)
}

func TestMatcher_SkipsNeighborsWithoutCategory(t *testing.T) {
	provider := &fakeProvider{vector: []float32{1}}
	index := &fakeIndex{results: []vectorstore.Result{
		{Score: 0.9, Payload: vectorstore.Payload{Skill: "orphan"}},
		neighbor("Data Science", 0.6),
	}}

	matcher := NewMatcher(provider, index, ServiceParams)
	matches, err := matcher.Match(context.Background(), "goal")
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "Data Science", matches[0].Category)
}
