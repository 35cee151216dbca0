// Package store defines the tree-addressed key/value contract rostersync
// writes to, independent of the service behind it.
//
// A Backend exposes five primitives over slash-separated paths. A Ref binds a
// backend to a path so callers can compose child paths without I/O and then
// read or write the node they name:
//
//	guild := store.Root(backend).Child("guilds", "vanguard")
//	node, err := guild.Child("characters", "thrall").Read(ctx)
package store

import (
	"context"
	"strings"

	"github.com/rostersync/rostersync/pkg/errors"
)

// Backend is a remote hierarchical key/value tree.
//
// Values are JSON-shaped: maps with string keys, arrays, strings, numbers and
// booleans. An empty map or array is the same as an absent node.
type Backend interface {
	// Get returns the value at path, or nil when the node is absent.
	Get(ctx context.Context, path string) (any, error)

	// Set replaces the subtree at path with value.
	Set(ctx context.Context, path string, value any) error

	// Update merges fields into the node at path, one level deep.
	// A nil field value removes that child.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Remove deletes the subtree at path.
	Remove(ctx context.Context, path string) error

	// Identity returns the principal the backend is authenticated as.
	Identity(ctx context.Context) (string, error)
}

// Ref addresses one node of a backend.
type Ref struct {
	backend Backend
	path    string
}

// Root returns a ref to the root of b.
func Root(b Backend) Ref {
	return Ref{backend: b}
}

// NewRef returns a ref to path on b.
func NewRef(b Backend, path string) Ref {
	return Ref{backend: b, path: Join(path)}
}

// Child returns a ref to the descendant named by parts. It performs no I/O.
func (r Ref) Child(parts ...string) Ref {
	return Ref{backend: r.backend, path: Join(append([]string{r.path}, parts...)...)}
}

// Path returns the slash-separated path of the node, "" for the root.
func (r Ref) Path() string { return r.path }

// Key returns the last path segment.
func (r Ref) Key() string {
	if i := strings.LastIndexByte(r.path, '/'); i >= 0 {
		return r.path[i+1:]
	}
	return r.path
}

// Backend returns the backend the ref points into.
func (r Ref) Backend() Backend { return r.backend }

// IsZero reports whether the ref has no backend.
func (r Ref) IsZero() bool { return r.backend == nil }

// String implements fmt.Stringer.
func (r Ref) String() string { return "/" + r.path }

// Read returns the node at the ref.
func (r Ref) Read(ctx context.Context) (Node, error) {
	v, err := r.backend.Get(ctx, r.path)
	if err != nil {
		return Node{}, wrap("read", r.path, err)
	}
	return NewNode(v), nil
}

// Set replaces the node at the ref.
func (r Ref) Set(ctx context.Context, value any) error {
	return wrap("set", r.path, r.backend.Set(ctx, r.path, value))
}

// Update shallow-merges fields into the node at the ref.
func (r Ref) Update(ctx context.Context, fields map[string]any) error {
	return wrap("update", r.path, r.backend.Update(ctx, r.path, fields))
}

// Remove deletes the node at the ref.
func (r Ref) Remove(ctx context.Context) error {
	return wrap("remove", r.path, r.backend.Remove(ctx, r.path))
}

// Identity proves the backend is authenticated.
func (r Ref) Identity(ctx context.Context) (string, error) {
	return r.backend.Identity(ctx)
}

// Join joins path segments, dropping empty segments and surrounding slashes.
func Join(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, "/")
}

func wrap(op, path string, err error) error {
	if err == nil || errors.IsStoreError(err) || errors.IsUnauthenticated(err) {
		return err
	}
	return errors.WrapStore(op, path, err)
}
