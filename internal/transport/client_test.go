package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientHeaders(t *testing.T) {
	var got *http.Request
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(
		WithAuth(&QueryAuth{Param: "auth"}, "s3cret"),
		WithUserAgent("rostersync-test"),
		WithTimeout(time.Second),
	)
	resp, err := c.Send(context.Background(), http.MethodPatch, srv.URL+"/a.json", map[string]any{"level": 45})
	require.NoError(t, err)

	var out struct{ OK bool }
	require.NoError(t, DecodeResponse(resp, &out))
	assert.True(t, out.OK)

	assert.Equal(t, http.MethodPatch, got.Method)
	assert.Equal(t, "s3cret", got.URL.Query().Get("auth"))
	assert.Equal(t, "rostersync-test", got.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"level":45}`, body)
}

func TestReadBodyStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Permission denied", http.StatusUnauthorized)
	}))
	defer srv.Close()

	resp, err := New(WithAccept("text/xml")).Get(context.Background(), srv.URL)
	require.NoError(t, err)

	_, err = ReadBody(resp)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Error(), "Permission denied")
}
