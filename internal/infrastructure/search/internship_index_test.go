package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
)

type fakeES struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
	exists   bool
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	key := r.Method + " " + r.URL.Path
	f.requests = append(f.requests, key)
	if f.bodies == nil {
		f.bodies = map[string]string{}
	}
	f.bodies[key] = string(b)
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/internships":
		if !f.exists {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/internships":
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case r.URL.Path == "/internships/_search":
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"b"},{"_id":"a"}]}}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	default:
		_, _ = io.WriteString(w, `{"result":"created"}`)
	}
}

func (f *fakeES) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func newIndex(t *testing.T, f *fakeES) *InternshipIndex {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewInternshipIndex(es, "internships")
}

func TestEnsureIndexCreatesOnce(t *testing.T) {
	f := &fakeES{}
	x := newIndex(t, f)
	require.NoError(t, x.EnsureIndex(context.Background()))
	assert.Equal(t, []string{"HEAD /internships", "PUT /internships"}, f.seen())
	assert.Contains(t, f.bodies["PUT /internships"], `"recruiter_id"`)

	f.exists = true
	require.NoError(t, x.EnsureIndex(context.Background()))
	assert.Len(t, f.seen(), 3)
}

func TestIndexAndSearch(t *testing.T) {
	f := &fakeES{}
	x := newIndex(t, f)
	ctx := context.Background()

	err := x.Index(ctx, &entity.Internship{
		ID: "a", RecruiterID: "r1", Title: "Go Intern", Company: "Acme",
		Status: entity.InternshipActive, UpdatedOn: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(f.bodies["PUT /internships/_doc/a"]), &doc))
	assert.Equal(t, "Go Intern", doc["title"])
	assert.Equal(t, "Active", doc["status"])

	ids, err := x.Search(ctx, "golang", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids)
	assert.Contains(t, f.bodies["POST /internships/_search"], `"golang"`)

	// deleting a document that was never indexed is fine
	require.NoError(t, x.Delete(ctx, "missing"))
}
