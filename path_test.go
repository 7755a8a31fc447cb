// SPDX-License-Identifier: MIT
package canopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPath(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantLen int
		wantErr bool
	}{
		{name: "root", nodes: nil, wantLen: 0},
		{name: "nodes", nodes: []Node{"a", 1, 2.5}, wantLen: 3},
		{name: "collection element", nodes: []Node{"a", []any{1}}, wantErr: true},
		{name: "nil element", nodes: []Node{nil}, wantErr: true},
		{name: "uncomparable struct element", nodes: []Node{boxed{X: map[int]int{}}}, wantErr: true},
		{name: "comparable struct element", nodes: []Node{boxed{X: 1}}, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPath(tt.nodes...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, got.Len())
			assert.Equal(t, tt.wantLen == 0, got.IsRoot())
		})
	}
}

func TestPath_Accessors(t *testing.T) {
	path, err := NewPath("a", "b", "c")
	require.NoError(t, err)

	assert.Equal(t, "c", path.Node())
	assert.Equal(t, []Node{"a", "b", "c"}, path.Nodes())
	assert.Equal(t, []Node{"a", "b"}, path.Parent().Nodes())
	assert.Equal(t, []Node{"a"}, path.Up(2).Nodes())
	assert.Same(t, Root, path.Up(10))
	assert.Nil(t, Root.Parent())
	assert.Nil(t, Root.Node())
	assert.Equal(t, "a/b/c", path.Join("/"))
	assert.Equal(t, `Path["a", "b", "c"]`, path.String())

	var collected []Node
	for node := range path.Each() {
		collected = append(collected, node)
	}
	assert.Equal(t, path.Nodes(), collected)

	prefix, err := NewPath("a", "b")
	require.NoError(t, err)
	assert.True(t, path.HasPrefix(prefix))
	assert.True(t, path.HasPrefix(Root))
	assert.False(t, prefix.HasPrefix(path))

	tree := mustFrom(t, Pairs{{"a", Pairs{{"b", "c"}}}})
	assert.True(t, path.In(tree))
	assert.True(t, prefix.In(tree))
}

func TestPath_SharedPrefix(t *testing.T) {
	foo, err := NewPath("foo")
	require.NoError(t, err)

	bar, err := foo.Branch("bar")
	require.NoError(t, err)

	baz, err := foo.Branch("baz")
	require.NoError(t, err)

	assert.Same(t, bar.Parent(), baz.Parent())
	assert.Same(t, foo, bar.Parent())

	// Paths enumerated from a tree share their common prefix too.
	tree := mustFrom(t, Pairs{{"foo", []any{"bar", "baz"}}})
	paths := tree.Paths()
	require.Len(t, paths, 2)
	assert.Same(t, paths[0].Parent(), paths[1].Parent())
}

func TestPath_Equality(t *testing.T) {
	a, err := NewPath("x", 1)
	require.NoError(t, err)

	b, err := NewPath("x", 1)
	require.NoError(t, err)

	c, err := NewPath("x", 1.0)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.True(t, a.LooseEqual(c))
	assert.True(t, a.LooseEqual([]any{"x", 1.0}))
	assert.False(t, a.LooseEqual([]any{"x"}))
	assert.False(t, a.LooseEqual("x"))
	assert.False(t, a.Equal(nil))
	assert.True(t, Root.Equal(Root))
}
