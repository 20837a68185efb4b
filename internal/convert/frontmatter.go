// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// canonicalOrder is the key order of the emitted web.dev frontmatter. Keys
// not listed here follow in insertion order.
var canonicalOrder = []string{
	"title",
	"subhead",
	"description",
	"date",
	"updated",
	"tags",
	"hero",
	"alt",
	"authors",
}

// Field is one frontmatter entry derived by a rule.
type Field struct {
	Key   string
	Value *yaml.Node
}

// StringField returns a field holding a YAML string. The encoder quotes the
// value only when a plain scalar would be read back as something else.
func StringField(key, value string) Field {
	return Field{Key: key, Value: strNode(value)}
}

// DateField returns a field holding an unquoted ISO calendar date.
func DateField(key, value string) Field {
	return Field{Key: key, Value: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: value}}
}

// ListField returns a field holding a block sequence of strings.
func ListField(key string, items ...string) Field {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range items {
		seq.Content = append(seq.Content, strNode(item))
	}
	return Field{Key: key, Value: seq}
}

// PlaceholderField returns an empty field followed by a comment, for values
// that need a manual follow-up.
func PlaceholderField(key, comment string) Field {
	return Field{Key: key, Value: &yaml.Node{
		Kind:        yaml.ScalarNode,
		Tag:         "!!null",
		LineComment: "# " + comment,
	}}
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// Frontmatter accumulates the fields derived while the pipeline runs and
// serializes them once, when the block is closed. Adding a key that is
// already present replaces its value.
type Frontmatter struct {
	keys   []string
	values map[string]*yaml.Node
}

// Add records fields, replacing earlier values for the same key.
func (f *Frontmatter) Add(fields ...Field) {
	if f.values == nil {
		f.values = make(map[string]*yaml.Node)
	}
	for _, fld := range fields {
		if _, ok := f.values[fld.Key]; !ok {
			f.keys = append(f.keys, fld.Key)
		}
		f.values[fld.Key] = fld.Value
	}
}

// Get returns the node stored for key.
func (f *Frontmatter) Get(key string) (*yaml.Node, bool) {
	n, ok := f.values[key]
	return n, ok
}

// Len returns the number of distinct keys.
func (f *Frontmatter) Len() int {
	return len(f.keys)
}

// Keys returns the keys in emission order.
func (f *Frontmatter) Keys() []string {
	keys := make([]string, 0, len(f.keys))
	known := make(map[string]bool, len(canonicalOrder))
	for _, k := range canonicalOrder {
		known[k] = true
		if _, ok := f.values[k]; ok {
			keys = append(keys, k)
		}
	}
	for _, k := range f.keys {
		if !known[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// Node returns the frontmatter as a YAML mapping node in emission order.
func (f *Frontmatter) Node() *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range f.Keys() {
		m.Content = append(m.Content, strNode(k), f.values[k])
	}
	return m
}

// Marshal renders the frontmatter block including its "---" delimiters.
func (f *Frontmatter) Marshal() (string, error) {
	if f.Len() == 0 {
		return "---\n---\n", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f.Node()); err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	return "---\n" + buf.String() + "---\n", nil
}
