// SPDX-License-Identifier: MIT
package canopy

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type (
	// Tree defines a recursive node set: every node may own a child Tree.
	//
	// A node without children (a leaf) is recorded with a nil child, which is distinct from a
	// node recorded with an explicit empty child Tree.
	//
	// Synchronization is unnecessary, the type is designed for single-threaded use; concurrent
	// mutation is undefined.
	Tree struct {
		// cfg contains a pointer to a [Config] shared by all Tree nodes.
		cfg *Config

		// children maps every node to its child Tree, nil for a leaf.
		children map[Node]*Tree

		// order holds the nodes in insertion order.
		order []Node

		frozen  bool
		nothing bool
	}
)

// New instantiates an empty [Tree].
func New(options ...Option) *Tree {
	t := &Tree{
		cfg:      defConfig,
		children: make(map[Node]*Tree),
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// From instantiates a [Tree] holding input.
//
// A single argument is added as is: a node, a sequence of nodes or a tree-like value. Multiple
// arguments are added as a sequence.
func From(input ...any) (*Tree, error) {
	t := New()

	var err error
	switch len(input) {
	case 0:
	case 1:
		_, err = t.Add(input[0])
	default:
		_, err = t.Add(input)
	}
	if err != nil {
		return nil, err
	}

	return t, nil
}

// newChild instantiates a Tree sharing t's Config.
func (t *Tree) newChild() *Tree {
	return &Tree{
		cfg:      t.cfg,
		children: make(map[Node]*Tree),
	}
}

// guard checks whether cmd may run on the [Tree].
//
// skip is true when the command must not proceed, err holding the reason if any.
func (t *Tree) guard(cmd Command) (skip bool, err error) {
	switch {
	case t.nothing:
		if cmd.Destructive() {
			return true, nil
		}

		return true, fmt.Errorf(commandErrFmt, cmd, ErrNothingMutation)
	case t.frozen:
		return true, fmt.Errorf(commandErrFmt, cmd, ErrFrozen)
	}

	return false, nil
}

func (t *Tree) result(err error) (*Tree, error) {
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Empty reports whether the [Tree] has no nodes.
func (t *Tree) Empty() bool { return len(t.order) < 1 }

// Size returns the number of nodes on the first level of the [Tree].
func (t *Tree) Size() int { return len(t.order) }

// Nodes lists the [Tree]'s nodes in insertion order.
func (t *Tree) Nodes() []Node { return slices.Clone(t.order) }

// Node returns the single node of the [Tree].
func (t *Tree) Node() (node Node, err error) {
	switch len(t.order) {
	case 0:
		err = ErrEmptyNodeSet
	case 1:
		node = t.order[0]
	default:
		err = fmt.Errorf("%w: %d nodes", ErrNonUniqueNodeSet, len(t.order))
	}

	return
}

// IncludeNode checks for the existence of a node on the first level of the [Tree].
func (t *Tree) IncludeNode(node Node) (ok bool) {
	if validateNode(node) != nil {
		return
	}

	_, ok = t.children[node]
	return
}

// Leaf reports whether node exists without children; an explicit empty child counts as none.
func (t *Tree) Leaf(node Node) bool {
	if !t.IncludeNode(node) {
		return false
	}

	child := t.children[node]
	return child == nil || child.Empty()
}

// StrictLeaf reports whether node exists & was never given a child tree.
func (t *Tree) StrictLeaf(node Node) bool {
	return t.IncludeNode(node) && t.children[node] == nil
}

// IsNothing reports whether the [Tree] is the [Nothing] sentinel.
func (t *Tree) IsNothing() bool { return t.nothing }

// Absent is false for a [Tree]; only an [Absence] stands for a missing tree.
func (t *Tree) Absent() bool { return false }

// Presence returns the [Tree] itself.
func (t *Tree) Presence() *Tree { return t }

// Frozen reports whether the [Tree] rejects commands.
func (t *Tree) Frozen() bool { return t.frozen }

// Freeze the [Tree] & all its child trees, subsequent commands fail with ErrFrozen.
func (t *Tree) Freeze() *Tree {
	if t.nothing {
		return t
	}

	t.frozen = true
	for _, child := range t.children {
		if child != nil {
			child.Freeze()
		}
	}

	return t
}

// Clone returns a deep, unfrozen copy of the [Tree].
//
// Cloning [Nothing] yields an ordinary empty Tree.
func (t *Tree) Clone() *Tree {
	clone := t.newChild()
	if clone.cfg == nil {
		clone.cfg = defConfig
	}

	for _, node := range t.order {
		clone.order = append(clone.order, node)

		var child *Tree
		if existing := t.children[node]; existing != nil {
			child = existing.Clone()
		}
		clone.children[node] = child
	}

	return clone
}

// insertNode records node as a leaf unless it's already present.
func (t *Tree) insertNode(node Node) {
	if _, ok := t.children[node]; ok {
		return
	}

	t.order = append(t.order, node)
	t.children[node] = nil
}

// ensureChild returns the child Tree of node, creating node & an empty child as necessary.
func (t *Tree) ensureChild(node Node) *Tree {
	t.insertNode(node)

	child := t.children[node]
	if child == nil {
		child = t.newChild()
		t.children[node] = child
	}

	return child
}

// removeNode deletes node & its subtree.
func (t *Tree) removeNode(node Node) {
	if _, ok := t.children[node]; !ok {
		return
	}

	delete(t.children, node)
	if index := slices.Index(t.order, node); index > -1 {
		t.order = slices.Delete(t.order, index, index+1)
	}
}

// adoptChild returns the child Tree installed under node, installing an empty one if there's
// none.
//
// Used by an [Absence] to materialize.
func (t *Tree) adoptChild(node Node) (*Tree, error) {
	if skip, err := t.guard(CommandAdd); skip {
		return nil, err
	}

	return t.ensureChild(node), nil
}
