package transport

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&NoAuth{}).Apply(req, "secret")
	assert.Empty(t, req.Header)
}

func TestBearerAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	(&BearerAuth{}).Apply(req, "token")
	assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
}

func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "auth"}

	u, err := url.Parse("https://roster.firebaseio.com/guilds.json?shallow=true")
	require.NoError(t, err)
	req := &http.Request{URL: u, Header: make(http.Header)}

	auth.Apply(req, "db-secret")
	assert.Equal(t, "db-secret", req.URL.Query().Get("auth"))
	assert.Equal(t, "true", req.URL.Query().Get("shallow"))

	// nil URL is ignored
	auth.Apply(&http.Request{Header: make(http.Header)}, "db-secret")
}
