package store

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Node is a value read from a backend.
type Node struct {
	value any
}

// NewNode wraps v.
func NewNode(v any) Node {
	return Node{value: v}
}

// Value returns the raw value.
func (n Node) Value() any { return n.value }

// Exists reports whether the node holds data. Nil, empty maps and empty
// arrays do not count.
func (n Node) Exists() bool {
	return !empty(n.value)
}

// Map returns the node's children, or nil when the node is not a branch.
func (n Node) Map() map[string]any {
	m, _ := n.value.(map[string]any)
	return m
}

// Keys returns the sorted child keys of a branch.
func (n Node) Keys() []string {
	m := n.Map()
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if !empty(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Child returns the named child node.
func (n Node) Child(key string) Node {
	return Node{value: n.Map()[key]}
}

// Int returns the node as an integer.
func (n Node) Int() (int, bool) {
	switch v := n.value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		i, err := v.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(v)
		return i, err == nil
	default:
		return 0, false
	}
}

// Strings returns the string elements of an array node.
func (n Node) Strings() []string {
	switch v := n.value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Decode stores the node into the value pointed to by v.
func (n Node) Decode(v any) error {
	data, err := json.Marshal(n.value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Normalize converts v into its JSON shape: map[string]any, []any, string,
// float64, bool or nil.
func Normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}
