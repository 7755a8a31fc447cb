// SPDX-License-Identifier: MIT
package canopy

import (
	"encoding/binary"
	"fmt"
	"iter"
	"strings"

	"github.com/cespare/xxhash/v2"
)

type (
	// Path defines an immutable sequence of nodes leading from a conceptual root to a
	// descendant.
	//
	// A Path only references its parent Path, so every Path branched from a common prefix
	// shares the prefix's Path values. Paths are never mutated & are safe to share.
	Path struct {
		// parent is nil for Root.
		parent *Path

		// node is the tip of the Path.
		node Node

		length int
	}
)

// Root is the empty [Path] every Path descends from.
var Root = &Path{}

// NewPath instantiates a [Path] of nodes, each a valid [Node].
func NewPath(nodes ...Node) (*Path, error) { return Root.Branch(nodes...) }

// Branch returns the [Path] extended by nodes, sharing p as the prefix.
func (p *Path) Branch(nodes ...Node) (*Path, error) {
	current := p
	for _, node := range nodes {
		if err := validateNode(node); err != nil {
			return nil, fmt.Errorf("path element: %w", err)
		}

		current = current.branch(node)
	}

	return current, nil
}

// branch extends the Path by a node known to be valid.
func (p *Path) branch(node Node) *Path {
	return &Path{parent: p, node: node, length: p.length + 1}
}

// Node returns the tip of the [Path], nil for Root.
func (p *Path) Node() Node { return p.node }

// Parent returns the [Path] without its tip, nil for Root.
func (p *Path) Parent() *Path { return p.parent }

// Len returns the number of nodes of the [Path].
func (p *Path) Len() int { return p.length }

// IsRoot reports whether the [Path] is empty.
func (p *Path) IsRoot() bool { return p.parent == nil }

// Up returns the ancestor distance levels above the [Path], Root if there are fewer.
func (p *Path) Up(distance int) *Path {
	current := p
	for ; distance > 0 && current.parent != nil; distance-- {
		current = current.parent
	}

	return current
}

// Nodes lists the nodes of the [Path] from the root.
func (p *Path) Nodes() []Node {
	nodes := make([]Node, p.length)
	for current := p; current.parent != nil; current = current.parent {
		nodes[current.length-1] = current.node
	}

	return nodes
}

// Each iterates over the nodes of the [Path] from the root.
func (p *Path) Each() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, node := range p.Nodes() {
			if !yield(node) {
				return
			}
		}
	}
}

// HasPrefix reports whether the [Path] begins with the nodes of prefix.
func (p *Path) HasPrefix(prefix *Path) bool {
	if prefix == nil || prefix.length > p.length {
		return false
	}

	return p.Up(p.length - prefix.length).Equal(prefix)
}

// In reports whether the [Path] exists in tree.
func (p *Path) In(tree Treelike) bool { return tree.IncludePath(p) }

// Equal reports whether other holds exactly the same nodes, compared with ==.
func (p *Path) Equal(other *Path) bool {
	if other == nil || p.length != other.length {
		return false
	}

	for a, b := p, other; a != b; a, b = a.parent, b.parent {
		if a.node != b.node {
			return false
		}
	}

	return true
}

// LooseEqual reports whether other, a [Path] or a sequence of nodes, holds loosely equal nodes;
// numbers compare by value.
func (p *Path) LooseEqual(other any) bool {
	var nodes []Node
	switch o := other.(type) {
	case *Path:
		if o == nil {
			return false
		}
		nodes = o.Nodes()
	default:
		if !isSequence(other) {
			return false
		}
		_ = eachItem(other, func(item any) error {
			nodes = append(nodes, item)
			return nil
		})
	}

	if len(nodes) != p.length {
		return false
	}

	for index, node := range p.Nodes() {
		if !looseNodeEqual(node, nodes[index]) {
			return false
		}
	}

	return true
}

// Hash returns a digest of the [Path] consistent with [Path.Equal].
func (p *Path) Hash() uint64 {
	digest := xxhash.New()

	var buf [8]byte
	for _, node := range p.Nodes() {
		binary.LittleEndian.PutUint64(buf[:], nodeDigest(node))
		_, _ = digest.Write(buf[:])
	}

	return digest.Sum64()
}

// Join renders the nodes of the [Path] separated by sep.
func (p *Path) Join(sep string) string {
	nodes := p.Nodes()

	parts := make([]string, len(nodes))
	for index, node := range nodes {
		parts[index] = fmt.Sprint(node)
	}

	return strings.Join(parts, sep)
}

// String is the fmt.Stringer implementation for a [Path].
func (p *Path) String() string {
	nodes := p.Nodes()

	parts := make([]string, len(nodes))
	for index, node := range nodes {
		parts[index] = formatNode(node)
	}

	return "Path[" + strings.Join(parts, ", ") + "]"
}
