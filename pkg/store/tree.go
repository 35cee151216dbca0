package store

import (
	"sort"
	"strings"
)

// Flatten turns the value written at prefix into leaves keyed by full path.
// Maps are branches and every other value, arrays included, is a leaf.
// Empty branches produce no leaves. v is expected in normalized form.
func Flatten(prefix string, v any) map[string]any {
	leaves := make(map[string]any)
	flatten(Join(prefix), v, leaves)
	return leaves
}

func flatten(path string, v any, leaves map[string]any) {
	if empty(v) {
		return
	}
	m, ok := v.(map[string]any)
	if !ok {
		leaves[path] = v
		return
	}
	for k, child := range m {
		flatten(Join(path, k), child, leaves)
	}
}

// Unflatten rebuilds the value at prefix from leaves keyed by full path.
// It returns nil when no leaf lies at or below prefix.
func Unflatten(prefix string, leaves map[string]any) any {
	prefix = Join(prefix)
	if v, ok := leaves[prefix]; ok {
		return v
	}

	var root map[string]any
	for _, p := range sortedKeys(leaves) {
		rel, ok := relative(prefix, p)
		if !ok {
			continue
		}
		if root == nil {
			root = make(map[string]any)
		}
		insert(root, strings.Split(rel, "/"), leaves[p])
	}
	if root == nil {
		return nil
	}
	return root
}

// Descendant reports whether p lies strictly below prefix.
func Descendant(prefix, p string) bool {
	_, ok := relative(Join(prefix), p)
	return ok
}

// Ancestors returns every proper ancestor of p, nearest first, excluding the root.
func Ancestors(p string) []string {
	var out []string
	for i := strings.LastIndexByte(p, '/'); i > 0; i = strings.LastIndexByte(p, '/') {
		p = p[:i]
		out = append(out, p)
	}
	return out
}

func relative(prefix, p string) (string, bool) {
	if prefix == "" {
		return p, p != ""
	}
	if !strings.HasPrefix(p, prefix+"/") {
		return "", false
	}
	return p[len(prefix)+1:], true
}

func insert(m map[string]any, segments []string, v any) {
	for _, s := range segments[:len(segments)-1] {
		child, ok := m[s].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[s] = child
		}
		m = child
	}
	m[segments[len(segments)-1]] = v
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
