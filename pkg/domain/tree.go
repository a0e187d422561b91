package domain

import "strings"

// Tree is the whole application state held by a host container.
// Nested slices are addressed by dotted paths ("app.todo").
// A published Tree is never mutated; containers replace it wholesale.
type Tree map[string]any

// SplitPath breaks a dotted path into its segments, dropping empty ones.
func SplitPath(path string) []string {
	raw := strings.Split(path, ".")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Resolve walks the tree along a dotted path.
// It returns false instead of panicking when any segment is missing.
func (t Tree) Resolve(path string) (any, bool) {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	var cur any = t
	for _, p := range parts {
		node, ok := asNode(cur)
		if !ok {
			return nil, false
		}
		cur, ok = node[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// With returns a copy of the tree where the value at path is replaced.
// Only the maps along the path are copied; untouched branches are shared.
func (t Tree) With(path string, value any) Tree {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return t
	}
	return assign(t, parts, value)
}

func assign(node Tree, parts []string, value any) Tree {
	out := make(Tree, len(node)+1)
	for k, v := range node {
		out[k] = v
	}
	head := parts[0]
	if len(parts) == 1 {
		out[head] = value
		return out
	}
	child, _ := asNode(node[head])
	out[head] = assign(child, parts[1:], value)
	return out
}

func asNode(v any) (Tree, bool) {
	switch n := v.(type) {
	case Tree:
		return n, true
	case map[string]any:
		return Tree(n), true
	default:
		return nil, false
	}
}
