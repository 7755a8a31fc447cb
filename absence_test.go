// SPDX-License-Identifier: MIT
package canopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// absentChild is a test helper retrieving the Absence of a missing node.
func absentChild(t *testing.T, tree Treelike, node Node) *Absence {
	t.Helper()

	child, err := tree.Child(node)
	require.NoError(t, err)

	absence, ok := child.(*Absence)
	require.True(t, ok, "%T isn't an Absence", child)

	return absence
}

func TestAbsence_Add(t *testing.T) {
	tree := New()
	absence := absentChild(t, tree, "missing")

	assert.True(t, absence.Absent())
	assert.Same(t, Nothing, absence.Presence())
	assert.Equal(t, "missing", absence.Node())
	assert.Same(t, tree, absence.Parent())

	got, err := absence.Add("x")
	require.NoError(t, err)

	assert.False(t, absence.Absent())
	assert.Same(t, got, absence.Presence())
	assert.True(t, tree.Equal(mustFrom(t, Pairs{{"missing", "x"}})))
	assert.True(t, absence.Equal(mustFrom(t, "x")))
	assert.True(t, mustFrom(t, "x").Equal(absence))
	assert.False(t, absence.Equal(mustFrom(t, "y")))

	installed, err := tree.Fetch("missing")
	require.NoError(t, err)
	assert.Same(t, got, installed)

	// The installed tree is used from then on.
	_, err = absence.Add("y")
	require.NoError(t, err)
	assert.True(t, installed.Match([]any{"x", "y"}))
}

func TestAbsence_Chain(t *testing.T) {
	tree := mustFrom(t, "keep")

	first := absentChild(t, tree, "a")
	second := absentChild(t, first, "b")
	assert.Same(t, first, second.Parent())

	got, err := second.Add([]any{1, 2})
	require.NoError(t, err)

	assert.False(t, first.Absent())
	assert.True(t, got.Match([]any{1, 2}))
	assert.True(t, tree.Equal(mustFrom(t, Pairs{{"keep", nil}, {"a", Pairs{{"b", []any{1, 2}}}}})))
}

func TestAbsence_Destructive(t *testing.T) {
	tree := New()
	absence := absentChild(t, tree, "missing")

	for _, cmd := range []func() (*Tree, error){
		func() (*Tree, error) { return absence.Delete("x") },
		absence.Clear,
		absence.Compact,
	} {
		got, err := cmd()
		require.NoError(t, err)
		assert.Same(t, Nothing, got)
	}

	assert.True(t, absence.Absent())
	assert.True(t, tree.Empty())
}

func TestAbsence_Adopt(t *testing.T) {
	tree := New()
	absence := absentChild(t, tree, "a")

	// The node is created elsewhere before the Absence materializes.
	_, err := tree.Add(Pairs{{"a", "b"}})
	require.NoError(t, err)

	_, err = absence.Add("c")
	require.NoError(t, err)
	assert.True(t, tree.Match(Pairs{{"a", []any{"b", "c"}}}))
}

func TestAbsence_Queries(t *testing.T) {
	tree := New()
	absence := absentChild(t, tree, "missing")

	assert.True(t, absence.Empty())
	assert.Zero(t, absence.Size())
	assert.Empty(t, absence.Nodes())
	assert.False(t, absence.IsNothing())
	assert.True(t, NothingLike(absence))
	assert.True(t, absence.LooseEqual(New()))
	assert.True(t, absence.Equal(Nothing))
	assert.False(t, absence.Equal(New()))
	assert.True(t, absence.Equal(absence))
	assert.Equal(t, "Nothing", absence.String())
	assert.Contains(t, absence.Inspect(), `Absence("missing")`)

	_, err := absence.Replace(Pairs{{1, 2}})
	require.NoError(t, err)

	assert.False(t, NothingLike(absence))
	assert.True(t, absence.IncludeNode(1))
	assert.True(t, absence.Include(Pairs{{1, 2}}))
	assert.Equal(t, []Node{1}, absence.Nodes())
	assert.Len(t, absence.Search(2), 1)
	assert.Contains(t, absence.Inspect(), "installed")
}

func TestAbsence_Frozen(t *testing.T) {
	tree := New()
	absence := absentChild(t, tree, "missing")
	tree.Freeze()

	_, err := absence.Add("x")
	assert.ErrorIs(t, err, ErrFrozen)
	assert.True(t, absence.Absent())
}
