// Package statustree models the nested component-health payloads the
// portal renders. Upstream health endpoints return arbitrarily nested
// JSON; instead of recursing on raw shapes, the payload is decoded once
// into a tagged tree (leaf value or node with named children) and every
// consumer works against that type.
package statustree

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Node is one element of a health tree: either a leaf carrying a value
// or a branch carrying named children, never both.
type Node struct {
	Value    string
	Children map[string]*Node
}

// Leaf creates a leaf node carrying a value
func Leaf(value string) *Node {
	return &Node{Value: value}
}

// Branch creates a branch node over the given children
func Branch(children map[string]*Node) *Node {
	return &Node{Children: children}
}

// IsLeaf reports whether the node carries a value rather than children
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Decode converts a raw JSON health payload into a tagged tree.
// Objects become branches, arrays become branches keyed by index, and
// every scalar becomes a leaf with its string rendering.
func Decode(data []byte) (*Node, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse health payload: %w", err)
	}
	return fromValue(raw), nil
}

func fromValue(v interface{}) *Node {
	switch val := v.(type) {
	case map[string]interface{}:
		children := make(map[string]*Node, len(val))
		for key, child := range val {
			children[key] = fromValue(child)
		}
		return Branch(children)
	case []interface{}:
		children := make(map[string]*Node, len(val))
		for i, child := range val {
			children[strconv.Itoa(i)] = fromValue(child)
		}
		return Branch(children)
	case string:
		return Leaf(val)
	case float64:
		return Leaf(strconv.FormatFloat(val, 'f', -1, 64))
	case bool:
		return Leaf(strconv.FormatBool(val))
	case nil:
		return Leaf("")
	default:
		return Leaf(fmt.Sprintf("%v", val))
	}
}

// Row is one flattened tree entry as rendered by the status table
type Row struct {
	Path  []string `json:"path"`
	Depth int      `json:"depth"`
	Value string   `json:"value,omitempty"` // Empty for branch rows
}

// Walk visits every node depth-first with children in key order
func Walk(n *Node, visit func(path []string, node *Node)) {
	walk(n, nil, visit)
}

func walk(n *Node, path []string, visit func(path []string, node *Node)) {
	visit(path, n)
	if n.IsLeaf() {
		return
	}

	keys := make([]string, 0, len(n.Children))
	for key := range n.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		walk(n.Children[key], append(path, key), visit)
	}
}

// Flatten converts a tree into the row list the dashboard renders,
// skipping the synthetic root row.
func Flatten(n *Node) []Row {
	var rows []Row
	Walk(n, func(path []string, node *Node) {
		if len(path) == 0 {
			return
		}
		row := Row{
			Path:  append([]string(nil), path...),
			Depth: len(path) - 1,
		}
		if node.IsLeaf() {
			row.Value = node.Value
		}
		rows = append(rows, row)
	})
	return rows
}
