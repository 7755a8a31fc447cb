// SPDX-License-Identifier: MIT
package canopy

// Nothing is the canonical empty [Tree], standing for the absence of any child.
//
// Queries treat it as a permanently empty Tree. Destructive commands (Delete, Clear, Compact)
// are no-ops returning Nothing, every other command fails with ErrNothingMutation. Nothing is
// loosely equal to every empty Tree yet exactly equal only to itself.
var Nothing = &Tree{
	cfg:      defConfig,
	children: map[Node]*Tree{},
	frozen:   true,
	nothing:  true,
}

// NothingLike reports whether value stands for no tree at all: nil, [Nothing] or an [Absence]
// whose tree hasn't been created.
func NothingLike(value any) bool { return nothingLike(value) }
