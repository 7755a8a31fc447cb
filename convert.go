// SPDX-License-Identifier: MIT
package canopy

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const nothingString = "Nothing"

var (
	_ yaml.Marshaler   = (*Tree)(nil)
	_ yaml.Unmarshaler = (*Tree)(nil)
)

// leavesOnly reports whether no node has a non-empty child tree.
func (t *Tree) leavesOnly() bool {
	for _, child := range t.children {
		if child != nil && !child.Empty() {
			return false
		}
	}

	return true
}

// ToNative converts the [Tree] into plain Go values.
//
// An empty Tree yields an empty []any; a Tree of leaves yields its single node or a []any of
// its nodes; any other Tree yields a map[any]any of every node to its converted child, nil for
// a leaf.
func (t *Tree) ToNative() any {
	switch {
	case t.Empty():
		return []any{}
	case t.leavesOnly():
		if len(t.order) == 1 {
			return t.order[0]
		}
		return slices.Clone(t.order)
	}

	return t.ToExpanded()
}

// ToExpanded converts the [Tree] into a map of every node to its child converted with
// [Tree.ToNative], nil for a leaf.
func (t *Tree) ToExpanded() map[any]any {
	expanded := make(map[any]any, len(t.order))
	for _, node := range t.order {
		child := t.children[node]
		if child == nil || child.Empty() {
			expanded[node] = nil
			continue
		}

		expanded[node] = child.ToNative()
	}

	return expanded
}

// String is the fmt.Stringer implementation for a [Tree], rendering its content in insertion
// order for diagnostics.
func (t *Tree) String() string {
	if t.nothing {
		return nothingString
	}

	var buffer strings.Builder
	buffer.WriteString("Tree[")
	t.format(&buffer, true)
	buffer.WriteString("]")

	return buffer.String()
}

func (t *Tree) format(buffer *strings.Builder, top bool) {
	switch {
	case t.Empty():
		if !top {
			buffer.WriteString("[]")
		}
		return
	case len(t.order) == 1 && t.leavesOnly():
		buffer.WriteString(formatNode(t.order[0]))
		return
	}

	leaves := t.leavesOnly()
	if !top {
		if leaves {
			buffer.WriteString("[")
		} else {
			buffer.WriteString("{")
		}
	}

	for index, node := range t.order {
		if index > 0 {
			buffer.WriteString(", ")
		}
		buffer.WriteString(formatNode(node))

		if child := t.children[node]; child != nil && !child.Empty() {
			buffer.WriteString(" => ")
			child.format(buffer, false)
		}
	}

	if !top {
		if leaves {
			buffer.WriteString("]")
		} else {
			buffer.WriteString("}")
		}
	}
}

// Render draws the [Tree] as an ASCII tree for diagnostics.
func (t *Tree) Render() string {
	root := treeprint.New()
	t.render(root)

	return root.String()
}

func (t *Tree) render(branch treeprint.Tree) {
	for _, node := range t.order {
		child := t.children[node]
		if child == nil || child.Empty() {
			branch.AddNode(formatNode(node))
			continue
		}

		child.render(branch.AddBranch(formatNode(node)))
	}
}

// FromYAML instantiates a [Tree] from a YAML document.
//
// Mappings become nodes with children (in document order), sequences node sets & null values
// leaves.
func FromYAML(data []byte, options ...Option) (*Tree, error) {
	t := New(options...)
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}

	return t, nil
}

// MarshalYAML is the yaml.Marshaler implementation for a [Tree], following the shape of
// [Tree.ToNative] while keeping the insertion order.
func (t *Tree) MarshalYAML() (interface{}, error) { return t.yamlNode() }

func (t *Tree) yamlNode() (*yaml.Node, error) {
	switch {
	case t.Empty():
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}, nil
	case t.leavesOnly():
		if len(t.order) == 1 {
			return scalarYAMLNode(t.order[0])
		}

		sequence := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, node := range t.order {
			item, err := scalarYAMLNode(node)
			if err != nil {
				return nil, err
			}
			sequence.Content = append(sequence.Content, item)
		}

		return sequence, nil
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, node := range t.order {
		key, err := scalarYAMLNode(node)
		if err != nil {
			return nil, err
		}

		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if child := t.children[node]; child != nil && !child.Empty() {
			if value, err = child.yamlNode(); err != nil {
				return nil, err
			}
		}

		mapping.Content = append(mapping.Content, key, value)
	}

	return mapping, nil
}

func scalarYAMLNode(node Node) (*yaml.Node, error) {
	encoded := new(yaml.Node)
	if err := encoded.Encode(node); err != nil {
		return nil, fmt.Errorf("(%v) yaml encoding: %w", node, err)
	}

	return encoded, nil
}

// UnmarshalYAML is the yaml.Unmarshaler implementation for a [Tree], adding the decoded
// document to the Tree.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	if t.children == nil {
		t.children = make(map[Node]*Tree)
	}
	if t.cfg == nil {
		t.cfg = defConfig
	}

	content, err := yamlContent(value)
	if err != nil {
		return err
	}

	_, err = t.Add(content)

	return err
}

// yamlContent converts a YAML node into command input, keeping mapping order through Pairs.
func yamlContent(value *yaml.Node) (any, error) {
	switch value.Kind {
	case yaml.DocumentNode:
		if len(value.Content) < 1 {
			return nil, nil
		}
		return yamlContent(value.Content[0])
	case yaml.AliasNode:
		return yamlContent(value.Alias)
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return nil, nil
		}

		var scalar any
		if err := value.Decode(&scalar); err != nil {
			return nil, err
		}
		return scalar, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(value.Content))
		for _, item := range value.Content {
			content, err := yamlContent(item)
			if err != nil {
				return nil, err
			}
			items = append(items, content)
		}
		return items, nil
	case yaml.MappingNode:
		pairs := make(Pairs, 0, len(value.Content)/2)
		for index := 0; index+1 < len(value.Content); index += 2 {
			key, err := yamlContent(value.Content[index])
			if err != nil {
				return nil, err
			}

			child, err := yamlContent(value.Content[index+1])
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, Pair{Node: key, Child: child})
		}
		return pairs, nil
	}

	return nil, fmt.Errorf("%w: yaml node kind %d", ErrArgument, value.Kind)
}
