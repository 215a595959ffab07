// SPDX-License-Identifier: MIT

// Package document models a parsed OpenAPIA document as a closed tree of
// mappings, sequences and scalars, and provides the deep-merge engine used
// by inheritance resolution.
package document

import (
	"fmt"
	"sort"
)

// Kind discriminates the three node variants of a document tree.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Node is one node of a document tree. A Node is exactly one of a mapping
// (string key to child), a sequence (ordered children) or a scalar
// (string, number, bool or nil).
type Node struct {
	kind     Kind
	mapping  map[string]*Node
	sequence []*Node
	scalar   any
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{kind: KindMapping, mapping: make(map[string]*Node)}
}

// NewSequence returns a sequence node holding the given items.
func NewSequence(items ...*Node) *Node {
	return &Node{kind: KindSequence, sequence: items}
}

// NewScalar returns a scalar node holding v.
func NewScalar(v any) *Node {
	return &Node{kind: KindScalar, scalar: v}
}

// FromGo converts a plain Go value, as produced by yaml.Unmarshal or
// json.Unmarshal into an any, to a document tree. Values that are neither
// maps nor slices become scalars.
func FromGo(v any) *Node {
	switch t := v.(type) {
	case map[string]any:
		n := NewMapping()
		for k, child := range t {
			n.mapping[k] = FromGo(child)
		}
		return n
	case map[any]any:
		// Older YAML trees key mappings by any; stringify the keys.
		n := NewMapping()
		for k, child := range t {
			n.mapping[fmt.Sprint(k)] = FromGo(child)
		}
		return n
	case []any:
		items := make([]*Node, len(t))
		for i, child := range t {
			items[i] = FromGo(child)
		}
		return NewSequence(items...)
	default:
		return NewScalar(v)
	}
}

// ToGo converts the tree back to plain Go values for marshaling.
func (n *Node) ToGo() any {
	switch n.kind {
	case KindMapping:
		out := make(map[string]any, len(n.mapping))
		for k, child := range n.mapping {
			out[k] = child.ToGo()
		}
		return out
	case KindSequence:
		out := make([]any, len(n.sequence))
		for i, child := range n.sequence {
			out[i] = child.ToGo()
		}
		return out
	default:
		return n.scalar
	}
}

// Kind reports which variant this node is.
func (n *Node) Kind() Kind { return n.kind }

// Get returns the child stored under key. The second result is false when
// the node is not a mapping or the key is absent.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindMapping {
		return nil, false
	}
	child, ok := n.mapping[key]
	return child, ok
}

// Has reports whether the mapping node carries key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Set stores child under key. It panics if n is not a mapping.
func (n *Node) Set(key string, child *Node) {
	if n.kind != KindMapping {
		panic("document: Set on non-mapping node")
	}
	n.mapping[key] = child
}

// Keys returns the mapping keys in sorted order. Key order carries no
// meaning in a document; sorting keeps iteration deterministic.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(n.mapping))
	for k := range n.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of children: sequence items or mapping entries.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindSequence:
		return len(n.sequence)
	case KindMapping:
		return len(n.mapping)
	default:
		return 0
	}
}

// Items returns the sequence children in order, or nil for other kinds.
func (n *Node) Items() []*Node {
	if n == nil || n.kind != KindSequence {
		return nil
	}
	return n.sequence
}

// Scalar returns the scalar value, or nil for non-scalar nodes.
func (n *Node) Scalar() any {
	if n == nil || n.kind != KindScalar {
		return nil
	}
	return n.scalar
}

// Str returns the node's value when it is a string scalar.
func (n *Node) Str() (string, bool) {
	if n == nil || n.kind != KindScalar {
		return "", false
	}
	s, ok := n.scalar.(string)
	return s, ok
}

// StringAt returns the string scalar stored under key of a mapping node.
func (n *Node) StringAt(key string) (string, bool) {
	child, ok := n.Get(key)
	if !ok {
		return "", false
	}
	return child.Str()
}

// Clone returns a deep copy sharing no nodes with the receiver.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindMapping:
		out := NewMapping()
		for k, child := range n.mapping {
			out.mapping[k] = child.Clone()
		}
		return out
	case KindSequence:
		items := make([]*Node, len(n.sequence))
		for i, child := range n.sequence {
			items[i] = child.Clone()
		}
		return NewSequence(items...)
	default:
		return NewScalar(n.scalar)
	}
}

// Equal reports structural equality of two trees. Sequences compare by
// position, mappings by key set, scalars by value.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindMapping:
		if len(n.mapping) != len(o.mapping) {
			return false
		}
		for k, child := range n.mapping {
			other, ok := o.mapping[k]
			if !ok || !child.Equal(other) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(n.sequence) != len(o.sequence) {
			return false
		}
		for i, child := range n.sequence {
			if !child.Equal(o.sequence[i]) {
				return false
			}
		}
		return true
	default:
		return n.scalar == o.scalar
	}
}
