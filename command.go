// SPDX-License-Identifier: MIT
package canopy

import "iter"

type (
	// Command identifies a mutating operation.
	Command uint8

	// Mutator defines the commands shared by [Tree], [Nothing] & [Absence].
	//
	// Each command returns the real tree it was applied to.
	Mutator interface {
		Add(input any) (*Tree, error)
		Delete(input any) (*Tree, error)
		Replace(input any) (*Tree, error)
		Set(path []Node, input any) (*Tree, error)
		Clear() (*Tree, error)
		Compact() (*Tree, error)
	}

	// Treelike is implemented by values interpretable as a node => child structure: a [Tree]
	// (including [Nothing]) or an [Absence].
	Treelike interface {
		Mutator

		Empty() bool
		Size() int
		Nodes() []Node
		Include(x any) bool
		IncludeNode(node Node) bool
		IncludePath(path *Path) bool
		Child(node Node) (Treelike, error)
		ChildAt(path ...Node) (Treelike, error)
		EachPair() iter.Seq2[Node, *Tree]
		LooseEqual(other any) bool
		Match(other any) bool
		Search(target any) []*Path
		String() string

		// Presence returns the real tree behind the value, [Nothing] if there is none.
		Presence() *Tree
		// Absent reports whether the value stands for a tree that doesn't exist.
		Absent() bool
		// IsNothing reports whether the value is the [Nothing] sentinel.
		IsNothing() bool
	}

	commandInfo struct {
		name        string
		destructive bool
	}
)

// Commands.
const (
	CommandAdd Command = iota
	CommandReplace
	CommandSet
	CommandDelete
	CommandClear
	CommandCompact
)

var commands = [...]commandInfo{
	CommandAdd:     {name: "add"},
	CommandReplace: {name: "replace"},
	CommandSet:     {name: "set"},
	CommandDelete:  {name: "delete", destructive: true},
	CommandClear:   {name: "clear", destructive: true},
	CommandCompact: {name: "compact", destructive: true},
}

var (
	_ Treelike = (*Tree)(nil)
	_ Treelike = (*Absence)(nil)
)

// String is the fmt.Stringer implementation for a Command.
func (c Command) String() string {
	if int(c) >= len(commands) {
		return "unknown"
	}

	return commands[c].name
}

// Destructive reports whether the Command can only remove content.
//
// Destructive commands are no-ops on [Nothing] & on an [Absence] that hasn't been created.
func (c Command) Destructive() bool {
	if int(c) >= len(commands) {
		return false
	}

	return commands[c].destructive
}

// AllCommands lists every Command.
func AllCommands() []Command {
	list := make([]Command, len(commands))
	for index := range commands {
		list[index] = Command(index)
	}

	return list
}
