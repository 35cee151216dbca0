package firebase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store/memory"
)

// fakeFirebase answers the REST API from a memory tree.
type fakeFirebase struct {
	mu       sync.Mutex
	tree     *memory.Store
	secret   string
	requests []string
}

func (f *fakeFirebase) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if r.URL.Query().Get("auth") != f.secret {
		http.Error(w, `{"error":"Permission denied"}`, http.StatusUnauthorized)
		return
	}

	path := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".json")
	ctx := r.Context()
	var err error
	switch r.Method {
	case http.MethodGet:
		var v any
		v, err = f.tree.Get(ctx, path)
		if err == nil {
			if r.URL.Query().Get("shallow") == "true" {
				v = true
			}
			_ = json.NewEncoder(w).Encode(v)
		}
		return
	case http.MethodPut:
		var v any
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &v)
		err = f.tree.Set(ctx, path, v)
	case http.MethodPatch:
		var fields map[string]any
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &fields)
		err = f.tree.Update(ctx, path, fields)
	case http.MethodDelete:
		err = f.tree.Remove(ctx, path)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func newTestStore(t *testing.T, secret string) (*Store, *fakeFirebase) {
	t.Helper()
	fake := &fakeFirebase{tree: memory.New(), secret: "s3cret"}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := New(srv.URL, WithSecret(secret))
	require.NoError(t, err)
	return s, fake
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestStore(t, "s3cret")

	require.NoError(t, s.Set(ctx, "guilds/vanguard/characters/thrall", map[string]any{
		"level": 60, "dateAdded": "2016-01-02",
	}))
	require.NoError(t, s.Update(ctx, "guilds/vanguard/characters/thrall", map[string]any{"level": 45}))
	require.NoError(t, s.Set(ctx, "guilds/vanguard/reputations/argent dawn/thrall", 3000))

	v, err := s.Get(ctx, "guilds/vanguard/characters/thrall")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"level": float64(45), "dateAdded": "2016-01-02"}, v)

	v, err = s.Get(ctx, "guilds/vanguard/reputations/argent dawn/thrall")
	require.NoError(t, err)
	assert.Equal(t, float64(3000), v)

	require.NoError(t, s.Remove(ctx, "guilds/vanguard/characters/thrall"))
	v, err = s.Get(ctx, "guilds/vanguard/characters/thrall")
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Contains(t, fake.requests, "PATCH /guilds/vanguard/characters/thrall.json")
	assert.Contains(t, fake.requests, "PUT /guilds/vanguard/reputations/argent dawn/thrall.json")
}

func TestIdentity(t *testing.T) {
	ctx := context.Background()

	s, _ := newTestStore(t, "s3cret")
	id, err := s.Identity(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "firebase:127.0.0.1"))

	bad, _ := newTestStore(t, "wrong")
	_, err = bad.Identity(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsUnauthenticated(err))
}

func TestWriteRejected(t *testing.T) {
	bad, _ := newTestStore(t, "wrong")

	err := bad.Set(context.Background(), "a", 1)
	assert.True(t, errors.IsUnauthenticated(err))
}

func TestServerErrorIsStoreError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s, err := New(srv.URL)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "guilds")
	require.Error(t, err)
	assert.True(t, errors.IsStoreError(err))
}

func TestNodeURL(t *testing.T) {
	s, err := New("https://roster.firebaseio.com/")
	require.NoError(t, err)

	assert.Equal(t, "https://roster.firebaseio.com/.json", s.nodeURL("", nil))
	assert.Equal(t, "https://roster.firebaseio.com/professions/first%20aid/thrall.json",
		s.nodeURL("professions/first aid/thrall", nil))
	assert.Equal(t, "https://roster.firebaseio.com/tasks.json?shallow=true",
		s.nodeURL("/tasks/", map[string][]string{"shallow": {"true"}}))

	assert.Equal(t, "https://roster.firebaseio.com", URL("roster"))

	_, err = New("roster")
	assert.Error(t, err)
}
