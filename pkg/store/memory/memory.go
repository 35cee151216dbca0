// Package memory implements store.Backend as an in-process tree.
// It backs tests and dry runs, and can be loaded from and saved to a YAML
// snapshot so a run can be inspected offline.
package memory

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/rostersync/rostersync/pkg/constants"
	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store"
)

// DefaultPrincipal is the identity reported by a new store.
const DefaultPrincipal = "memory"

// Store is a concurrency-safe in-memory tree.
type Store struct {
	mu        sync.RWMutex
	root      map[string]any
	principal string
}

var _ store.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPrincipal sets the identity the store reports. An empty principal
// makes Identity fail.
func WithPrincipal(principal string) Option {
	return func(s *Store) {
		s.principal = principal
	}
}

// WithData seeds the tree. The data is normalized and copied.
func WithData(data map[string]any) Option {
	return func(s *Store) {
		if v, err := store.Normalize(data); err == nil {
			if m, ok := v.(map[string]any); ok {
				s.root = m
			}
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		root:      make(map[string]any),
		principal: DefaultPrincipal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements store.Backend.
func (s *Store) Get(ctx context.Context, path string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := lookup(s.root, segments(path))
	if v == nil {
		return nil, nil
	}
	// copy so callers never alias the tree
	return store.Normalize(v)
}

// Set implements store.Backend.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v, err := store.Normalize(value)
	if err != nil {
		return errors.WrapStore("set", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(segments(path), v)
	return nil
}

// Update implements store.Backend.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	normalized := make(map[string]any, len(fields))
	for k, f := range fields {
		v, err := store.Normalize(f)
		if err != nil {
			return errors.WrapStore("update", path, err)
		}
		normalized[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	base := segments(path)
	for k, v := range normalized {
		s.put(append(append([]string(nil), base...), segments(k)...), v)
	}
	return nil
}

// Remove implements store.Backend.
func (s *Store) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(segments(path), nil)
	return nil
}

// Identity implements store.Backend.
func (s *Store) Identity(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.principal == "" {
		return "", errors.NewAuthenticationError("memory", "no principal configured", nil)
	}
	return s.principal, nil
}

// Snapshot returns a copy of the whole tree.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, _ := store.Normalize(s.root)
	m, _ := v.(map[string]any)
	if m == nil {
		m = make(map[string]any)
	}
	return m
}

// LoadFile replaces the tree with the YAML snapshot at path. A missing
// file leaves the tree empty.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapStore("load", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	v, err := store.Normalize(raw)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	root, _ := v.(map[string]any)
	if root == nil {
		root = make(map[string]any)
	}

	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
	return nil
}

// SaveFile writes the tree to path as YAML.
func (s *Store) SaveFile(path string) error {
	data, err := yaml.Marshal(s.Snapshot())
	if err != nil {
		return errors.WrapStore("save", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapStore("save", path, err)
	}
	return nil
}

// put writes v at segs, pruning branches left empty. Must hold mu.
func (s *Store) put(segs []string, v any) {
	if len(segs) == 0 {
		m, _ := v.(map[string]any)
		if m == nil {
			m = make(map[string]any)
		}
		s.root = m
		return
	}
	putIn(s.root, segs, v)
}

func putIn(m map[string]any, segs []string, v any) {
	key := segs[0]
	if len(segs) == 1 {
		if isEmpty(v) {
			delete(m, key)
		} else {
			m[key] = v
		}
		return
	}

	child, ok := m[key].(map[string]any)
	if !ok {
		if isEmpty(v) {
			return
		}
		child = make(map[string]any)
		m[key] = child
	}
	putIn(child, segs[1:], v)
	if len(child) == 0 {
		delete(m, key)
	}
}

func lookup(v any, segs []string) any {
	for _, s := range segs {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[s]
	}
	if isEmpty(v) {
		return nil
	}
	return v
}

func isEmpty(v any) bool {
	return !store.NewNode(v).Exists()
}

func segments(path string) []string {
	path = store.Join(path)
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
