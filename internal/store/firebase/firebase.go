// Package firebase implements store.Backend over the Firebase Realtime
// Database REST API.
//
// Every node is addressed as <url>/<path>.json. Requests authenticate with a
// database secret passed as ?auth= or with an OAuth access token.
package firebase

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rostersync/rostersync/internal/transport"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store"
)

// Store is a Firebase Realtime Database backend.
type Store struct {
	baseURL string
	client  *transport.Client
	opts    []transport.Option
}

var _ store.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithSecret authenticates with a database secret or ID token.
func WithSecret(secret string) Option {
	return func(s *Store) {
		s.opts = append(s.opts, transport.WithAuth(&transport.QueryAuth{Param: "auth"}, secret))
	}
}

// WithAccessToken authenticates with an OAuth2 access token.
func WithAccessToken(token string) Option {
	return func(s *Store) {
		s.opts = append(s.opts, transport.WithAuth(&transport.BearerAuth{}, token))
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.opts = append(s.opts, transport.WithTimeout(d))
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Store) {
		s.opts = append(s.opts, transport.WithHTTPClient(hc))
	}
}

// URL returns the database URL for a Firebase subdomain.
func URL(subdomain string) string {
	return "https://" + subdomain + ".firebaseio.com"
}

// New creates a backend for the database at baseURL.
func New(baseURL string, opts ...Option) (*Store, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewConfigError("firebase", "invalid database URL "+baseURL, err)
	}
	s := &Store{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(s)
	}
	s.client = transport.New(s.opts...)
	return s, nil
}

// Get implements store.Backend.
func (s *Store) Get(ctx context.Context, path string) (any, error) {
	resp, err := s.client.Get(ctx, s.nodeURL(path, nil))
	if err != nil {
		return nil, errors.WrapStore("read", path, err)
	}
	var v any
	if err := transport.DecodeResponse(resp, &v); err != nil {
		return nil, s.wrap("read", path, err)
	}
	return v, nil
}

// Set implements store.Backend.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	return s.send(ctx, http.MethodPut, "set", path, value)
}

// Update implements store.Backend.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	return s.send(ctx, http.MethodPatch, "update", path, fields)
}

// Remove implements store.Backend.
func (s *Store) Remove(ctx context.Context, path string) error {
	return s.send(ctx, http.MethodDelete, "remove", path, nil)
}

// Identity implements store.Backend. It performs a shallow read of the
// root, which the database rules reject for unauthenticated callers.
func (s *Store) Identity(ctx context.Context) (string, error) {
	resp, err := s.client.Get(ctx, s.nodeURL("", url.Values{"shallow": {"true"}}))
	if err != nil {
		return "", errors.NewAuthenticationError("firebase", "identity check failed", err)
	}
	if _, err := transport.ReadBody(resp); err != nil {
		return "", s.wrap("identity", "", err)
	}
	u, _ := url.Parse(s.baseURL)
	return "firebase:" + u.Host, nil
}

func (s *Store) send(ctx context.Context, method, op, path string, body any) error {
	resp, err := s.client.Send(ctx, method, s.nodeURL(path, url.Values{"print": {"silent"}}), body)
	if err != nil {
		return errors.WrapStore(op, path, err)
	}
	if _, err := transport.ReadBody(resp); err != nil {
		return s.wrap(op, path, err)
	}
	return nil
}

// nodeURL returns <base>/<escaped path>.json?<query>.
func (s *Store) nodeURL(path string, query url.Values) string {
	segments := strings.Split(store.Join(path), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	u := s.baseURL + "/" + strings.Join(segments, "/") + ".json"
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *Store) wrap(op, path string, err error) error {
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) &&
		(statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden) {
		return errors.NewAuthenticationError("firebase", op+" "+path+" rejected", err)
	}
	return errors.WrapStore(op, path, err)
}
