package confloader

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Delimiter separates segments of a dotted key.
const Delimiter = "."

// Tree is a nested configuration mapping. Values are scalars, nested
// mappings (map[string]any) or sequences ([]any).
type Tree map[string]any

// Kind classifies a configuration value.
type Kind int

const (
	KindScalar Kind = iota
	KindTree
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindList:
		return "list"
	default:
		return "scalar"
	}
}

// KindOf reports the kind of a normalized value. A nil value is a scalar.
func KindOf(v any) Kind {
	switch v.(type) {
	case Tree, map[string]any:
		return KindTree
	case []any:
		return KindList
	default:
		return KindScalar
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}

// Merge deep-merges src into dst and returns dst.
// Keys present on one side only are kept. When both sides hold a mapping
// they are merged recursively; any other pair is replaced by src's value.
// Values taken from src are copied, so src may be reused by the caller.
func Merge(dst, src Tree) Tree {
	if dst == nil {
		dst = make(Tree, len(src))
	}
	for key, in := range src {
		dst[key] = mergeValue(dst[key], in)
	}
	return dst
}

func mergeValue(cur, in any) any {
	switch {
	case KindOf(cur) == KindTree && KindOf(in) == KindTree:
		curMap, _ := asMap(cur)
		inMap, _ := asMap(in)
		return map[string]any(Merge(curMap, inMap))
	default:
		return clone(in)
	}
}

// Lookup walks t following the segments of a dotted key.
// It stops as soon as a segment is missing or the current node is not a
// mapping; sequences are not addressable by dotted keys.
func Lookup(t Tree, key string) (any, bool) {
	var node any = map[string]any(t)
	for _, seg := range strings.Split(key, Delimiter) {
		m, ok := asMap(node)
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Flatten returns the leaves of t keyed by their dotted path.
// Empty mappings are kept as leaves so they remain visible.
func Flatten(t Tree) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", t)
	return out
}

func flattenInto(out map[string]any, prefix string, m map[string]any) {
	for key, val := range m {
		full := key
		if prefix != "" {
			full = prefix + Delimiter + key
		}
		if nested, ok := asMap(val); ok && len(nested) > 0 {
			flattenInto(out, full, nested)
			continue
		}
		out[full] = val
	}
}

// SortedKeys returns the flattened keys of t in lexical order.
func SortedKeys(t Tree) []string {
	flat := Flatten(t)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	return Tree(cloneMap(t))
}

func clone(v any) any {
	switch val := v.(type) {
	case Tree:
		return cloneMap(val)
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = clone(item)
		}
		return out
	default:
		return val
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

// normalizeTree converts decoder output into the Tree value model.
func normalizeTree(m map[string]any) Tree {
	t := make(Tree, len(m))
	for k, v := range m {
		t[k] = normalize(v)
	}
	return t
}

// normalize maps nested decoder values onto map[string]any, []any and
// scalars. Typed maps and slices produced by some parsers are converted by
// reflection.
func normalize(v any) any {
	switch val := v.(type) {
	case nil, string, bool, int, int64, uint64, float64:
		return val
	case Tree:
		return map[string]any(normalizeTree(val))
	case map[string]any:
		return map[string]any(normalizeTree(val))
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	default:
		return v
	}
}

func countLeaves(t Tree) int {
	return len(Flatten(t))
}
