// SPDX-License-Identifier: MIT
package canopy

import (
	"fmt"
)

// Delete removes input from the [Tree], returning the Tree.
//
// input may be:
//   - a node, removed with its subtree;
//   - a sequence of nodes, tree-like values or paths, each deleted in order;
//   - a tree-like value; for every node => content pair the node is removed outright when
//     content is nil, [Nothing] or empty, otherwise content is deleted from the node's child
//     tree & the node removed if that leaves it without children;
//   - a [Path]; the node at its tip is removed, then every ancestor left without children.
//
// Missing nodes & paths are ignored. Processing stops at the first invalid element; elements
// deleted before it remain deleted.
func (t *Tree) Delete(input any) (*Tree, error) {
	if skip, err := t.guard(CommandDelete); skip {
		return t.result(err)
	}

	return t.result(t.delete(input))
}

// Clear removes all nodes from the [Tree].
func (t *Tree) Clear() (*Tree, error) {
	if skip, err := t.guard(CommandClear); skip {
		return t.result(err)
	}

	t.clear()

	return t, nil
}

// Compact recursively turns empty child trees into leaves; no node is removed.
func (t *Tree) Compact() (*Tree, error) {
	if skip, err := t.guard(CommandCompact); skip {
		return t.result(err)
	}

	for _, node := range t.order {
		child := t.children[node]
		if child == nil {
			continue
		}

		if _, err := child.Compact(); err != nil {
			return nil, err
		}
		if child.Empty() {
			t.children[node] = nil
		}
	}

	return t, nil
}

func (t *Tree) clear() {
	t.children = make(map[Node]*Tree)
	t.order = nil
}

func (t *Tree) delete(input any) (err error) {
	switch classify(input) {
	case inputAtom:
		err = t.deleteNode(input)
	case inputSequence:
		err = t.deleteSequence(input)
	case inputTreelike:
		err = t.deleteTree(input)
	case inputPath:
		err = t.deletePath(input.(*Path))
	}

	return
}

func (t *Tree) deleteNode(node Node) error {
	if err := validateNode(node); err != nil {
		t.rejected(CommandDelete, node, err)
		return err
	}

	t.removeNode(node)

	return nil
}

func (t *Tree) deleteSequence(sequence any) error {
	return eachItem(sequence, func(item any) error {
		if isSequence(item) {
			err := fmt.Errorf(invalidNodeErrFmt, item, ErrNestedNodeSet)
			t.rejected(CommandDelete, sequence, err)

			return err
		}

		return t.delete(item)
	})
}

func (t *Tree) deleteTree(tree any) error {
	return eachPair(tree, func(node Node, content any) error {
		if err := validateNode(node); err != nil {
			t.rejected(CommandDelete, node, err)
			return err
		}

		if _, ok := t.children[node]; !ok {
			return nil
		}

		if classify(content) == inputNothing {
			t.removeNode(node)
			return nil
		}

		// A leaf counts as an exhausted child.
		child := t.children[node]
		if child != nil {
			if _, err := child.Delete(content); err != nil {
				return err
			}
		}

		if child == nil || child.Empty() {
			t.removeNode(node)
		}

		return nil
	})
}

// deletePath removes the node at the tip of path, then ascends removing every ancestor left
// without children.
func (t *Tree) deletePath(path *Path) error {
	nodes := path.Nodes()
	tip := len(nodes) - 1

	// trail[index] holds the tree containing nodes[index].
	trail := make([]*Tree, 0, len(nodes))

	current := t
	for _, node := range nodes[:tip] {
		child := current.children[node]
		if child == nil {
			// Missing node or leaf, the path doesn't exist.
			return nil
		}

		trail = append(trail, current)
		current = child
	}

	if _, ok := current.children[nodes[tip]]; !ok {
		return nil
	}
	if current.frozen {
		return fmt.Errorf(commandErrFmt, CommandDelete, ErrFrozen)
	}
	current.removeNode(nodes[tip])

	for index := len(trail) - 1; index >= 0 && current.Empty(); index-- {
		parent := trail[index]
		if parent.frozen {
			return fmt.Errorf(commandErrFmt, CommandDelete, ErrFrozen)
		}

		t.cfg.debugf("delete path %v: removing childless node (%v)", path, nodes[index])
		parent.removeNode(nodes[index])
		current = parent
	}

	return nil
}
