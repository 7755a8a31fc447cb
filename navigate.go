// SPDX-License-Identifier: MIT
package canopy

import (
	"fmt"
)

const notFoundErrFmt = "(%v) %w"

// Child retrieves the child of a node.
//
// The result is the child [Tree] for a node with children, [Nothing] for a leaf & an [Absence]
// standing for the child of a missing node; mutating the Absence creates the node.
func (t *Tree) Child(node Node) (Treelike, error) {
	if err := validateNode(node); err != nil {
		return nil, err
	}
	if t.nothing {
		return Nothing, nil
	}

	child, ok := t.children[node]
	switch {
	case !ok:
		return newAbsence(t, node), nil
	case child == nil:
		return Nothing, nil
	}

	return child, nil
}

// ChildAt retrieves the tree at the end of path, an empty path returning the [Tree] itself.
//
// Missing nodes & leaves along the path yield a chain of [Absence]s; mutating the last one
// creates every missing node.
func (t *Tree) ChildAt(path ...Node) (Treelike, error) { return childAt(t, path) }

func childAt(from Treelike, path []Node) (current Treelike, err error) {
	current = from
	for _, node := range path {
		switch c := current.(type) {
		case *Tree:
			current, err = c.childForWrite(node)
		case *Absence:
			current, err = c.childForWrite(node)
		}
		if err != nil {
			return nil, err
		}
	}

	return
}

// childForWrite behaves like Child, save for leaves yielding an Absence.
func (t *Tree) childForWrite(node Node) (Treelike, error) {
	if err := validateNode(node); err != nil {
		return nil, err
	}
	if t.nothing {
		return Nothing, nil
	}

	if child := t.children[node]; child != nil {
		return child, nil
	}

	return newAbsence(t, node), nil
}

// Fetch retrieves the child of a node, [Nothing] for a leaf.
//
// A missing node yields ErrNotFound.
func (t *Tree) Fetch(node Node) (*Tree, error) {
	if err := validateNode(node); err != nil {
		return nil, err
	}

	child, ok := t.children[node]
	switch {
	case !ok:
		return nil, fmt.Errorf(notFoundErrFmt, node, ErrNotFound)
	case child == nil:
		return Nothing, nil
	}

	return child, nil
}

// FetchOr retrieves the child of a node like [Tree.Fetch], returning def for a missing node.
func (t *Tree) FetchOr(node Node, def any) any {
	child, err := t.Fetch(node)
	if err != nil {
		return def
	}

	return child
}

// FetchFunc retrieves the child of a node like [Tree.Fetch], returning the result of fn for a
// missing node.
func (t *Tree) FetchFunc(node Node, fn func(node Node) any) any {
	child, err := t.Fetch(node)
	if err != nil {
		return fn(node)
	}

	return child
}

// FetchPath retrieves the tree at the end of path, an empty path returning the [Tree] itself.
//
// A missing node yields ErrNotFound; a leaf followed by more nodes yields ErrChild, which also
// matches ErrNotFound.
func (t *Tree) FetchPath(path ...Node) (*Tree, error) {
	current := t
	for index, node := range path {
		child, err := current.Fetch(node)
		if err != nil {
			return nil, fmt.Errorf("path %v: %w", path[:index+1], err)
		}

		if child.nothing && index < len(path)-1 {
			return nil, fmt.Errorf("(%v) %w: %w", node, ErrChild, ErrNotFound)
		}
		current = child
	}

	return current, nil
}

// FetchPathOr retrieves the tree at the end of path like [Tree.FetchPath], returning def if
// there's none.
func (t *Tree) FetchPathOr(path []Node, def any) any {
	child, err := t.FetchPath(path...)
	if err != nil {
		return def
	}

	return child
}
