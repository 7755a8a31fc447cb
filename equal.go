// SPDX-License-Identifier: MIT
package canopy

import (
	"errors"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

var (
	treeSeed    = xxhash.Sum64String("canopy.Tree")
	nothingSeed = xxhash.Sum64String("canopy.Nothing")
	leafMarker  = xxhash.Sum64String("canopy.leaf")

	errStop = errors.New("stop")
)

// Equal reports whether other is a [Tree] of exactly the same structure.
//
// Nodes are compared with ==, so 1 & 1.0 differ, and a leaf differs from a node with an explicit
// empty child tree. [Nothing] only equals itself. An [Absence] compares through its presence.
func (t *Tree) Equal(other any) bool {
	switch o := other.(type) {
	case *Tree:
		return o != nil && t.equal(o)
	case *Absence:
		return o != nil && t.equal(o.Presence())
	}

	return false
}

func (t *Tree) equal(o *Tree) bool {
	if t == o {
		return true
	}
	if t.nothing != o.nothing || len(t.order) != len(o.order) {
		return false
	}

	for node, child := range t.children {
		otherChild, ok := o.children[node]
		if !ok {
			return false
		}

		if child == nil || otherChild == nil {
			if child != otherChild {
				return false
			}
			continue
		}

		if !child.equal(otherChild) {
			return false
		}
	}

	return true
}

// LooseEqual reports whether other is a [Tree] or an [Absence] with an equivalent structure.
//
// Numeric nodes compare by value (1 equals 1.0) & an explicit empty child tree equals a leaf.
// Every empty tree, including an unmaterialized Absence, equals [Nothing].
func (t *Tree) LooseEqual(other any) bool {
	switch o := other.(type) {
	case *Tree:
		return o != nil && looseEqual(t, o)
	case *Absence:
		return o != nil && looseEqual(t, o.Presence())
	}

	return false
}

// Match reports whether other describes the [Tree]'s structure.
//
// other may be a node, matching a Tree holding only that leaf; a sequence, matching a Tree whose
// nodes are exactly its elements; or a tree-like value, matched recursively. Comparison follows
// [Tree.LooseEqual].
func (t *Tree) Match(other any) bool {
	o, err := toTree(other)
	if err != nil {
		return false
	}

	return looseEqual(t, o)
}

func looseEqual(a, b *Tree) bool {
	if a == b {
		return true
	}
	if len(a.order) != len(b.order) {
		return false
	}

	// Every node of b pairs with at most one node of a; exact matches are paired first.
	used := make(map[Node]struct{}, len(b.order))

	var pending []Node
	for _, node := range a.order {
		child, ok := b.children[node]
		if ok && looseChildEqual(a.children[node], child) {
			used[node] = struct{}{}
			continue
		}
		pending = append(pending, node)
	}
	if len(pending) < 1 {
		return true
	}

	index := b.looseIndex()
	for _, node := range pending {
		matched := false
		for _, candidate := range index[looseKey(node)] {
			if _, ok := used[candidate]; ok {
				continue
			}
			if looseChildEqual(a.children[node], b.children[candidate]) {
				used[candidate], matched = struct{}{}, true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func looseChildEqual(a, b *Tree) bool {
	aEmpty, bEmpty := a == nil || a.Empty(), b == nil || b.Empty()
	if aEmpty || bEmpty {
		return aEmpty == bEmpty
	}

	return looseEqual(a, b)
}

// looseIndex groups the nodes by loose key, in insertion order.
func (t *Tree) looseIndex() map[any][]Node {
	index := make(map[any][]Node, len(t.order))
	for _, node := range t.order {
		key := looseKey(node)
		index[key] = append(index[key], node)
	}

	return index
}

// Include reports whether x is contained in the [Tree].
//
// x may be a node on the first level; a sequence whose elements are all included; a tree-like
// value whose nodes are all present with their child content included in the respective child
// trees; or a [Path] present in the Tree. Empty collections are always included.
func (t *Tree) Include(x any) bool {
	if x == nil {
		return false
	}

	switch classify(x) {
	case inputNothing:
		return true
	case inputAtom:
		return t.IncludeNode(x)
	case inputSequence:
		return eachItem(x, func(item any) error {
			if item == nil || isSequence(item) || !t.Include(item) {
				return errStop
			}
			return nil
		}) == nil
	case inputTreelike:
		return t.includeTree(x)
	case inputPath:
		return t.IncludePath(x.(*Path))
	}

	return false
}

func (t *Tree) includeTree(tree any) bool {
	return eachPair(tree, func(node Node, content any) error {
		if !t.IncludeNode(node) {
			return errStop
		}
		if classify(content) == inputNothing {
			return nil
		}

		child := t.children[node]
		if child == nil || !child.Include(content) {
			return errStop
		}

		return nil
	}) == nil
}

// IncludePath reports whether every node of path exists, each beneath the previous one.
func (t *Tree) IncludePath(path *Path) bool {
	if path == nil {
		return false
	}

	current := t
	for index, node := range path.Nodes() {
		if !current.IncludeNode(node) {
			return false
		}

		child := current.children[node]
		if child == nil && index < path.Len()-1 {
			return false
		}
		current = child
	}

	return true
}

// Superset reports whether every path of the tree-like value other is included in the [Tree].
func (t *Tree) Superset(other any) bool {
	return treelike(other) && t.Include(other)
}

// ProperSuperset reports whether the [Tree] is a Superset of, but not loosely equal to, other.
func (t *Tree) ProperSuperset(other any) bool {
	if !t.Superset(other) {
		return false
	}

	o, err := toTree(other)
	return err == nil && !looseEqual(t, o)
}

// Subset reports whether every path of the [Tree] is included in the tree-like value other.
func (t *Tree) Subset(other any) bool {
	if !treelike(other) {
		return false
	}

	o, err := toTree(other)
	if err != nil {
		return false
	}

	return o.Include(t)
}

// ProperSubset reports whether the [Tree] is a Subset of, but not loosely equal to, other.
func (t *Tree) ProperSubset(other any) bool {
	if !treelike(other) {
		return false
	}

	o, err := toTree(other)
	if err != nil {
		return false
	}

	return o.Include(t) && !looseEqual(t, o)
}

// Hash returns a digest of the [Tree] consistent with [Tree.Equal].
func (t *Tree) Hash() uint64 {
	sum := treeSeed
	if t.nothing {
		sum = nothingSeed
	}

	// Addition keeps the digest independent of insertion order.
	for node, child := range t.children {
		childDigest := leafMarker
		if child != nil {
			childDigest = child.Hash()
		}

		sum += bits.RotateLeft64(nodeDigest(node), 31) ^ childDigest
	}

	return sum
}
