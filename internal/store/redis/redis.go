// Package redis implements store.Backend on Redis. Every leaf of the tree
// is a string key <prefix>:<path> holding the leaf's JSON encoding, so a
// subtree is the set of keys sharing its path prefix.
package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rostersync/rostersync/pkg/errors"
	"github.com/rostersync/rostersync/pkg/store"
)

// DefaultPrefix namespaces rostersync keys.
const DefaultPrefix = "rostersync"

// scanCount is the SCAN batch hint and the MGET chunk size.
const scanCount = 500

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the Redis server address in "host:port" form.
	Addr string

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number.
	DB int

	// Prefix namespaces every key.
	Prefix string

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        "localhost:6379",
		Prefix:      DefaultPrefix,
		DialTimeout: 5 * time.Second,
	}
}

// Store is a Redis backend.
type Store struct {
	client *redis.Client
	prefix string
}

var _ store.Backend = (*Store)(nil)

// New wraps an existing client.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Open connects to Redis with cfg.
func Open(cfg Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	return New(client, cfg.Prefix)
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Get implements store.Backend.
func (s *Store) Get(ctx context.Context, path string) (any, error) {
	path = store.Join(path)

	if path != "" {
		raw, err := s.client.Get(ctx, s.key(path)).Result()
		switch {
		case err == nil:
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, errors.WrapStore("read", path, err)
			}
			return v, nil
		case err != redis.Nil:
			return nil, errors.WrapStore("read", path, err)
		}
	}

	keys, err := s.subtreeKeys(ctx, path)
	if err != nil {
		return nil, errors.WrapStore("read", path, err)
	}
	leaves := make(map[string]any, len(keys))
	for start := 0; start < len(keys); start += scanCount {
		chunk := keys[start:min(start+scanCount, len(keys))]
		values, err := s.client.MGet(ctx, chunk...).Result()
		if err != nil {
			return nil, errors.WrapStore("read", path, err)
		}
		for i, raw := range values {
			str, ok := raw.(string)
			if !ok {
				// removed between SCAN and MGET
				continue
			}
			var v any
			if err := json.Unmarshal([]byte(str), &v); err != nil {
				return nil, errors.WrapStore("read", chunk[i], err)
			}
			leaves[s.path(chunk[i])] = v
		}
	}
	return store.Unflatten(path, leaves), nil
}

// Set implements store.Backend.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	path = store.Join(path)
	return s.write(ctx, "set", path, map[string]any{path: value})
}

// Update implements store.Backend.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	path = store.Join(path)
	children := make(map[string]any, len(fields))
	for k, v := range fields {
		children[store.Join(path, k)] = v
	}
	return s.write(ctx, "update", path, children)
}

// Remove implements store.Backend.
func (s *Store) Remove(ctx context.Context, path string) error {
	path = store.Join(path)
	return s.write(ctx, "remove", path, map[string]any{path: nil})
}

// Identity implements store.Backend.
func (s *Store) Identity(ctx context.Context) (string, error) {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return "", errors.NewAuthenticationError("redis", "ping failed", err)
	}
	return "redis:" + s.client.Options().Addr + "/" + s.prefix, nil
}

// write replaces each subtree in nodes inside one MULTI/EXEC.
func (s *Store) write(ctx context.Context, op, path string, nodes map[string]any) error {
	var stale []string
	sets := make(map[string]string)

	for p, value := range nodes {
		v, err := store.Normalize(value)
		if err != nil {
			return errors.WrapStore(op, p, err)
		}
		keys, err := s.subtreeKeys(ctx, p)
		if err != nil {
			return errors.WrapStore(op, p, err)
		}
		stale = append(stale, keys...)
		if p != "" {
			stale = append(stale, s.key(p))
		}

		leaves := store.Flatten(p, v)
		if len(leaves) > 0 {
			for _, a := range store.Ancestors(p) {
				stale = append(stale, s.key(a))
			}
		}
		for lp, leaf := range leaves {
			raw, err := json.Marshal(leaf)
			if err != nil {
				return errors.WrapStore(op, lp, err)
			}
			sets[s.key(lp)] = string(raw)
		}
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(stale) > 0 {
			pipe.Del(ctx, stale...)
		}
		for k, v := range sets {
			pipe.Set(ctx, k, v, 0)
		}
		return nil
	})
	return errors.WrapStore(op, path, err)
}

// subtreeKeys lists the keys strictly below path.
func (s *Store) subtreeKeys(ctx context.Context, path string) ([]string, error) {
	pattern := escapeGlob(s.prefix) + ":*"
	if path != "" {
		pattern = escapeGlob(s.key(path)) + "/*"
	}

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}

func (s *Store) key(path string) string {
	return s.prefix + ":" + path
}

func (s *Store) path(key string) string {
	return strings.TrimPrefix(key, s.prefix+":")
}

// escapeGlob escapes the characters SCAN MATCH treats as patterns.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\', '^':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
