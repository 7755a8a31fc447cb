// SPDX-License-Identifier: MIT
package canopy

import (
	"iter"
)

// EachNode iterates over the [Tree]'s nodes in insertion order.
func (t *Tree) EachNode() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, node := range t.order {
			if !yield(node) {
				return
			}
		}
	}
}

// EachPair iterates over the [Tree]'s nodes & their children in insertion order; a leaf yields
// [Nothing].
func (t *Tree) EachPair() iter.Seq2[Node, *Tree] {
	return func(yield func(Node, *Tree) bool) {
		for _, node := range t.order {
			child := t.children[node]
			if child == nil {
				child = Nothing
			}

			if !yield(node, child) {
				return
			}
		}
	}
}

// EachPath performs a depth-first walk over the [Tree], yielding the [Path] to every leaf.
//
// A node with an empty child tree counts as a leaf. Paths to sibling leaves share their parent
// Path.
func (t *Tree) EachPath() iter.Seq[*Path] {
	return func(yield func(*Path) bool) { t.eachPath(Root, yield) }
}

func (t *Tree) eachPath(prefix *Path, yield func(*Path) bool) bool {
	for _, node := range t.order {
		path := prefix.branch(node)

		child := t.children[node]
		if child == nil || child.Empty() {
			if !yield(path) {
				return false
			}
			continue
		}

		if !child.eachPath(path, yield) {
			return false
		}
	}

	return true
}

// Paths lists the [Path]s to every leaf, see [Tree.EachPath].
func (t *Tree) Paths() (paths []*Path) {
	for path := range t.EachPath() {
		paths = append(paths, path)
	}

	return
}

// Leaves lists the values of all leaves in depth-first order.
func (t *Tree) Leaves() (leaves []Node) {
	for path := range t.EachPath() {
		leaves = append(leaves, path.Node())
	}

	return
}

// Levels lists the [Tree]'s nodes by level, breadth-first.
func (t *Tree) Levels() (levels [][]Node) {
	queue := []*Tree{t}

	for len(queue) > 0 {
		var (
			peers []Node
			next  []*Tree
		)

		for _, tree := range queue {
			for _, node := range tree.order {
				peers = append(peers, node)

				if child := tree.children[node]; child != nil && !child.Empty() {
					next = append(next, child)
				}
			}
		}

		if len(peers) > 0 {
			levels = append(levels, peers)
		}
		queue = next
	}

	return
}

// Height returns the number of levels of the [Tree].
func (t *Tree) Height() (height int) {
	if t.Empty() {
		return
	}

	for _, child := range t.children {
		if child == nil {
			continue
		}

		if childHeight := child.Height(); childHeight > height {
			height = childHeight
		}
	}

	return height + 1
}

// TotalSize returns the number of nodes on all levels of the [Tree].
func (t *Tree) TotalSize() (size int) {
	size = len(t.order)
	for _, child := range t.children {
		if child != nil {
			size += child.TotalSize()
		}
	}

	return
}

// Search lists the [Path]s to every tree that includes target, the root Path included, in
// pre-order.
//
// target is matched with [Tree.Include] against every tree, regardless of matches above it.
func (t *Tree) Search(target any) []*Path {
	var results []*Path
	t.search(target, Root, &results)

	return results
}

func (t *Tree) search(target any, at *Path, results *[]*Path) {
	if t.Include(target) {
		*results = append(*results, at)
	}

	for _, node := range t.order {
		if child := t.children[node]; child != nil {
			child.search(target, at.branch(node), results)
		}
	}
}
