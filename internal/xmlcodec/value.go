// Package xmlcodec converts between the modem's XML documents and a nested
// key-ordered value structure. The modem firmware is picky: request elements
// must appear in a fixed order, and response elements repeat a tag when a
// field holds more than one entry, so a plain map cannot represent either
// side faithfully.
package xmlcodec

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is one node of a document: a Scalar leaf, a *Node of named children
// in insertion order, or a List of repeated siblings sharing one tag.
type Value interface {
	isValue()
}

// Scalar is a leaf element's text. An empty element decodes to Scalar("").
type Scalar string

func (Scalar) isValue() {}

func (s Scalar) String() string { return string(s) }

// List holds values encoded as repeated sibling elements under the parent's
// tag. Decoding produces a List only when a tag occurs more than once.
type List []Value

func (List) isValue() {}

// Node is an ordered mapping from tag name to child value. Replacing an
// existing key keeps its position.
type Node struct {
	fields *orderedmap.OrderedMap[string, Value]
}

func (*Node) isValue() {}

// NewNode returns an empty Node.
func NewNode() *Node {
	return &Node{fields: orderedmap.New[string, Value]()}
}

// Set adds key at the end, or replaces its value in place if already present.
func (n *Node) Set(key string, v Value) {
	n.fields.Set(key, v)
}

// Get returns the value for key, if present.
func (n *Node) Get(key string) (Value, bool) {
	return n.fields.Get(key)
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.fields.Get(key)
	return ok
}

// Len returns the number of entries.
func (n *Node) Len() int {
	return n.fields.Len()
}

// Keys returns the key names in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, n.fields.Len())
	for p := n.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Each calls fn for every entry in insertion order.
func (n *Node) Each(fn func(key string, v Value)) {
	for p := n.fields.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// Clone deep-copies the node so callers can mutate the copy without touching
// the original.
func (n *Node) Clone() *Node {
	out := NewNode()
	for p := n.fields.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, cloneValue(p.Value))
	}
	return out
}

func cloneValue(v Value) Value {
	switch val := v.(type) {
	case *Node:
		return val.Clone()
	case List:
		out := make(List, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON renders the node as a JSON object with keys in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.fields)
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Value(l))
}
