// Package extensions provides an order-preserving container for the vendor
// extension (`x-*`) fields that specification documents may carry on any object.
package extensions

import (
	"strings"

	"github.com/flowlint/flowlint/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Extension represents a single extension to an object, in its raw form.
type Extension = *yaml.Node

// Element represents a key/value pair of a set of extensions.
type Element = sequencedmap.Element[string, Extension]

// NewElem creates a new element for an extensions set.
func NewElem(key string, value *yaml.Node) *Element {
	return sequencedmap.NewElem(key, value)
}

// Extensions represents a set of extensions to an object, in document order.
type Extensions struct {
	*sequencedmap.Map[string, Extension]
}

// New creates a new extensions set.
func New(elements ...*Element) *Extensions {
	return &Extensions{
		Map: sequencedmap.New(elements...),
	}
}

// Collect gathers the `x-*` keys of a mapping node, in document order.
// Non-mapping nodes yield an empty set.
func Collect(node *yaml.Node) *Extensions {
	e := New()

	if node == nil || node.Kind != yaml.MappingNode {
		return e
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if strings.HasPrefix(key, "x-") {
			e.Set(key, node.Content[i+1])
		}
	}

	return e
}

// MarshalYAML emits the extensions as a mapping in insertion order.
func (e *Extensions) MarshalYAML() (any, error) {
	if e == nil {
		return nil, nil
	}
	return e.Map.MarshalYAML()
}

// Marshal encodes v as a mapping node and appends the extension fields to it
// in insertion order, so extensions survive a load, modify, save round trip.
func Marshal(v any, exts *Extensions) (any, error) {
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}

	if exts == nil || exts.Len() == 0 || node.Kind != yaml.MappingNode {
		return node, nil
	}

	for key, ext := range exts.All() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			ext,
		)
	}

	return node, nil
}
