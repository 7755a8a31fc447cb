// SPDX-License-Identifier: MIT
package canopy

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// Add merges input into the [Tree], returning the Tree.
//
// input may be:
//   - nil, [Nothing] or an empty value, which is a no-op;
//   - a node, added as a leaf unless present;
//   - a sequence (slice or array) of nodes, tree-like values or paths, each added in order;
//   - a tree-like value ([Tree], [Absence], [Pairs] or a Go map), its nodes merged & their
//     child content added to the respective child trees;
//   - a [Path], added as a chain of nested nodes.
//
// Processing stops at the first invalid element; elements added before it remain.
func (t *Tree) Add(input any) (*Tree, error) {
	if skip, err := t.guard(CommandAdd); skip {
		return t.result(err)
	}

	return t.result(t.add(input))
}

// Replace clears the [Tree] then adds input.
func (t *Tree) Replace(input any) (*Tree, error) {
	if skip, err := t.guard(CommandReplace); skip {
		return t.result(err)
	}

	t.clear()

	return t.result(t.add(input))
}

// Set replaces the content of the child tree at path with input, creating missing nodes along
// the path.
func (t *Tree) Set(path []Node, input any) (*Tree, error) {
	if skip, err := t.guard(CommandSet); skip {
		return t.result(err)
	}

	if len(path) < 1 {
		return nil, fmt.Errorf("%w: set requires a path", ErrArgument)
	}

	target, err := t.ChildAt(path...)
	if err != nil {
		return nil, err
	}

	if _, err = target.Replace(input); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tree) add(input any) (err error) {
	switch classify(input) {
	case inputAtom:
		err = t.addNode(input)
	case inputSequence:
		err = t.addSequence(input)
	case inputTreelike:
		err = t.addTree(input)
	case inputPath:
		err = t.addPath(input.(*Path))
	}

	return
}

func (t *Tree) addNode(node Node) error {
	if err := validateNode(node); err != nil {
		t.rejected(CommandAdd, node, err)
		return err
	}

	t.insertNode(node)

	return nil
}

func (t *Tree) addSequence(sequence any) error {
	return eachItem(sequence, func(item any) error {
		if isSequence(item) {
			err := fmt.Errorf(invalidNodeErrFmt, item, ErrNestedNodeSet)
			t.rejected(CommandAdd, sequence, err)

			return err
		}

		return t.add(item)
	})
}

func (t *Tree) addTree(tree any) error {
	return eachPair(tree, t.addChild)
}

// addChild ensures node is present, adding content to its child tree.
func (t *Tree) addChild(node Node, content any) error {
	if err := validateNode(node); err != nil {
		t.rejected(CommandAdd, node, err)
		return err
	}

	if nothingLike(content) {
		t.insertNode(node)
		return nil
	}

	// Delegate to Add, a child may have been frozen on its own.
	_, err := t.ensureChild(node).Add(content)

	return err
}

func (t *Tree) addPath(path *Path) error {
	nodes := path.Nodes()

	current := t
	for _, node := range nodes[:len(nodes)-1] {
		if current.frozen {
			return fmt.Errorf(commandErrFmt, CommandAdd, ErrFrozen)
		}
		current = current.ensureChild(node)
	}
	if current.frozen {
		return fmt.Errorf(commandErrFmt, CommandAdd, ErrFrozen)
	}
	current.insertNode(nodes[len(nodes)-1])

	return nil
}

// rejected logs an input refused by a command.
func (t *Tree) rejected(cmd Command, input any, err error) {
	if !t.cfg.Debug {
		return
	}

	t.cfg.debugf("%s rejected (%v): %s", cmd, err, spew.Sdump(input))
}
