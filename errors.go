// SPDX-License-Identifier: MIT
package canopy

import "errors"

// Errors encountered when handling a Tree.
var (
	ErrInvalidNode      = errors.New("invalid node")
	ErrNestedNodeSet    = errors.New("nested node set; wrap nested content in a tree-like value")
	ErrNonUniqueNodeSet = errors.New("node set has more than one node")
	ErrEmptyNodeSet     = errors.New("node set is empty")

	ErrNotFound = errors.New("not found")
	ErrChild    = errors.New("has no child tree")
	ErrArgument = errors.New("invalid argument")

	ErrNothingMutation = errors.New("attempt to add content to Nothing")
	ErrFrozen          = errors.New("tree is frozen")
)

const (
	invalidNodeErrFmt = "(%v) %w"
	commandErrFmt     = "%s: %w"
)
