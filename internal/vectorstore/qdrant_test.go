package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQdrant(t *testing.T, url string) *Qdrant {
	t.Helper()
	q, err := NewQdrant(QdrantConfig{URL: url, Collection: "skills", APIKey: "secret"})
	require.NoError(t, err)
	return q
}

func TestNewQdrant_Validation(t *testing.T) {
	_, err := NewQdrant(QdrantConfig{Collection: "skills"})
	assert.Error(t, err)

	_, err = NewQdrant(QdrantConfig{URL: "http://localhost:6333"})
	assert.Error(t, err)
}

func TestEnsureCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/collections/skills", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api-key"))

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(1536), body["vectors"]["size"])
		assert.Equal(t, "Cosine", body["vectors"]["distance"])

		fmt.Fprint(w, `{"result": true, "status": "ok"}`)
	}))
	defer srv.Close()

	q := newTestQdrant(t, srv.URL)
	assert.NoError(t, q.EnsureCollection(context.Background(), 1536))
}

func TestEnsureCollection_InvalidDimension(t *testing.T) {
	q := newTestQdrant(t, "http://localhost:6333")
	err := q.EnsureCollection(context.Background(), 0)

	var searchErr *SearchError
	require.ErrorAs(t, err, &searchErr)
}

func TestUpsert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/collections/skills/points", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("wait"))

		var body struct {
			Points []struct {
				ID      uint64    `json:"id"`
				Vector  []float32 `json:"vector"`
				Payload Payload   `json:"payload"`
			} `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Points, 1)
		assert.Equal(t, uint64(1), body.Points[0].ID)
		assert.Equal(t, "Web Development", body.Points[0].Payload.Category)

		fmt.Fprint(w, `{"result": {"status": "completed"}}`)
	}))
	defer srv.Close()

	q := newTestQdrant(t, srv.URL)
	err := q.Upsert(context.Background(), []Point{{
		ID:     1,
		Vector: []float32{0.1, 0.2},
		Payload: Payload{
			Category: "Web Development",
			Skill:    "React",
		},
	}})
	assert.NoError(t, err)
}

func TestUpsert_EmptyIsNoop(t *testing.T) {
	q := newTestQdrant(t, "http://localhost:6333")
	assert.NoError(t, q.Upsert(context.Background(), nil))
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/skills/points/search", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(5), body["limit"])
		assert.Equal(t, 0.45, body["score_threshold"])
		assert.Equal(t, true, body["with_payload"])

		fmt.Fprint(w, `{"result": [
			{"score": 0.82, "payload": {"category": "Web Development", "skill": "React", "description": "d"}},
			{"score": 0.61, "payload": {"category": "Backend Development", "skill": "SQL", "description": "d"}}
		]}`)
	}))
	defer srv.Close()

	q := newTestQdrant(t, srv.URL)
	results, err := q.Search(context.Background(), []float32{0.1}, SearchOptions{Limit: 5, ScoreThreshold: 0.45})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0.82, results[0].Score)
	assert.Equal(t, "Web Development", results[0].Payload.Category)
	assert.Equal(t, "SQL", results[1].Payload.Skill)
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	q := newTestQdrant(t, srv.URL)
	_, err := q.Search(context.Background(), []float32{0.1}, SearchOptions{Limit: 5})

	var searchErr *SearchError
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, "search points", searchErr.Op)
}
