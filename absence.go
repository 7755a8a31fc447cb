// SPDX-License-Identifier: MIT
package canopy

import (
	"fmt"
	"iter"
)

type (
	// Absence stands for the child tree of a node that doesn't exist yet.
	//
	// An Absence reads like [Nothing] until a command that may add content runs on it; the
	// command creates an empty [Tree], installs it in the parent under the recorded node
	// (materializing an absent parent first) & runs on that Tree. The Absence then forwards to
	// the installed Tree, though the Tree is what the parent holds.
	Absence struct {
		// parent is the *Tree or *Absence the node belongs to.
		parent Treelike

		node Node

		// tree is nil until the Absence is materialized.
		tree *Tree
	}

	absenceState uint8
)

// Absence states.
const (
	absenceRequested absenceState = iota
	absenceInstalled
)

func newAbsence(parent Treelike, node Node) *Absence {
	return &Absence{parent: parent, node: node}
}

func (a *Absence) state() absenceState {
	if a.tree == nil {
		return absenceRequested
	}

	return absenceInstalled
}

// Node returns the node whose child the [Absence] stands for.
func (a *Absence) Node() Node { return a.node }

// Parent returns the [Tree] or [Absence] the node belongs to.
func (a *Absence) Parent() Treelike { return a.parent }

// Presence returns the installed [Tree], [Nothing] before materialization.
func (a *Absence) Presence() *Tree {
	if a.state() == absenceRequested {
		return Nothing
	}

	return a.tree
}

// Absent reports whether the [Absence] hasn't been materialized.
func (a *Absence) Absent() bool { return a.state() == absenceRequested }

// IsNothing is false, an [Absence] isn't the Nothing sentinel even though it reads like it.
func (a *Absence) IsNothing() bool { return false }

// materialize installs a Tree under the recorded node, materializing the parent if absent.
//
// Creating & installing happen in one step: an existing child tree under the node is adopted.
func (a *Absence) materialize() (*Tree, error) {
	if a.state() == absenceInstalled {
		return a.tree, nil
	}

	var parent *Tree
	switch p := a.parent.(type) {
	case *Absence:
		var err error
		if parent, err = p.materialize(); err != nil {
			return nil, err
		}
	case *Tree:
		parent = p
	default:
		return nil, fmt.Errorf("absence of (%v): %w: parent of type %T", a.node, ErrArgument, a.parent)
	}

	tree, err := parent.adoptChild(a.node)
	if err != nil {
		return nil, err
	}
	a.tree = tree

	parent.cfg.debugf("materialized absent child of (%v)", a.node)

	return tree, nil
}

// run applies a command through the command table: destructive commands are no-ops before
// materialization, anything else materializes the Absence first.
func (a *Absence) run(cmd Command, fn func(*Tree) (*Tree, error)) (*Tree, error) {
	if cmd.Destructive() && a.state() == absenceRequested {
		return Nothing, nil
	}

	tree, err := a.materialize()
	if err != nil {
		return nil, fmt.Errorf(commandErrFmt, cmd, err)
	}

	return fn(tree)
}

// Add materializes the [Absence] & adds input to the installed [Tree], see [Tree.Add].
func (a *Absence) Add(input any) (*Tree, error) {
	return a.run(CommandAdd, func(t *Tree) (*Tree, error) { return t.Add(input) })
}

// Replace materializes the [Absence] & replaces the installed [Tree]'s content with input.
func (a *Absence) Replace(input any) (*Tree, error) {
	return a.run(CommandReplace, func(t *Tree) (*Tree, error) { return t.Replace(input) })
}

// Set materializes the [Absence] & sets input at path in the installed [Tree], see [Tree.Set].
func (a *Absence) Set(path []Node, input any) (*Tree, error) {
	if len(path) < 1 {
		return nil, fmt.Errorf("%w: set requires a path", ErrArgument)
	}

	return a.run(CommandSet, func(t *Tree) (*Tree, error) { return t.Set(path, input) })
}

// Delete removes input from the installed [Tree]; a no-op before materialization.
func (a *Absence) Delete(input any) (*Tree, error) {
	return a.run(CommandDelete, func(t *Tree) (*Tree, error) { return t.Delete(input) })
}

// Clear removes all nodes from the installed [Tree]; a no-op before materialization.
func (a *Absence) Clear() (*Tree, error) {
	return a.run(CommandClear, (*Tree).Clear)
}

// Compact compacts the installed [Tree]; a no-op before materialization.
func (a *Absence) Compact() (*Tree, error) {
	return a.run(CommandCompact, (*Tree).Compact)
}

// Child returns an [Absence] chained to this one before materialization, the installed
// [Tree]'s [Tree.Child] afterwards.
func (a *Absence) Child(node Node) (Treelike, error) {
	if a.state() == absenceInstalled {
		return a.tree.Child(node)
	}

	return a.childForWrite(node)
}

// ChildAt chains an [Absence] for every node of path, see [Tree.ChildAt].
func (a *Absence) ChildAt(path ...Node) (Treelike, error) { return childAt(a, path) }

func (a *Absence) childForWrite(node Node) (Treelike, error) {
	if a.state() == absenceInstalled {
		return a.tree.childForWrite(node)
	}

	if err := validateNode(node); err != nil {
		return nil, err
	}

	return newAbsence(a, node), nil
}

// Empty reports whether the [Absence]'s presence has no nodes.
func (a *Absence) Empty() bool { return a.Presence().Empty() }

// Size returns the [Absence]'s presence size.
func (a *Absence) Size() int { return a.Presence().Size() }

// Nodes lists the [Absence]'s presence nodes.
func (a *Absence) Nodes() []Node { return a.Presence().Nodes() }

// Include reports whether the [Absence]'s presence includes x, see [Tree.Include].
func (a *Absence) Include(x any) bool { return a.Presence().Include(x) }

// IncludeNode reports whether the [Absence]'s presence includes node.
func (a *Absence) IncludeNode(node Node) bool { return a.Presence().IncludeNode(node) }

// IncludePath reports whether the [Absence]'s presence includes path.
func (a *Absence) IncludePath(path *Path) bool { return a.Presence().IncludePath(path) }

// EachPair iterates over the [Absence]'s presence.
func (a *Absence) EachPair() iter.Seq2[Node, *Tree] { return a.Presence().EachPair() }

// EachNode iterates over the [Absence]'s presence nodes.
func (a *Absence) EachNode() iter.Seq[Node] { return a.Presence().EachNode() }

// EachPath iterates over the [Absence]'s presence paths.
func (a *Absence) EachPath() iter.Seq[*Path] { return a.Presence().EachPath() }

// Search searches the [Absence]'s presence, see [Tree.Search].
func (a *Absence) Search(target any) []*Path { return a.Presence().Search(target) }

// Equal reports whether other is the same [Absence] or is exactly equal to its presence, see
// [Tree.Equal].
func (a *Absence) Equal(other any) bool {
	if o, ok := other.(*Absence); ok && o == a {
		return true
	}

	return a.Presence().Equal(other)
}

// LooseEqual compares the [Absence]'s presence with other, see [Tree.LooseEqual].
func (a *Absence) LooseEqual(other any) bool { return a.Presence().LooseEqual(other) }

// Match matches the [Absence]'s presence against other, see [Tree.Match].
func (a *Absence) Match(other any) bool { return a.Presence().Match(other) }

// ToNative converts the [Absence]'s presence, see [Tree.ToNative].
func (a *Absence) ToNative() any { return a.Presence().ToNative() }

// String is the fmt.Stringer implementation for an [Absence], rendering its presence.
func (a *Absence) String() string { return a.Presence().String() }

// Inspect describes the [Absence] for diagnostics.
func (a *Absence) Inspect() string {
	if a.state() == absenceInstalled {
		return fmt.Sprintf("Absence(%s) installed: %s", formatNode(a.node), a.tree)
	}

	return fmt.Sprintf("Absence(%s) in %s", formatNode(a.node), a.parent)
}
