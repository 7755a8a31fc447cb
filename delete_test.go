// SPDX-License-Identifier: MIT
package canopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Delete(t *testing.T) {
	fooBarBaz, err := NewPath("foo", "bar", "baz")
	require.NoError(t, err)

	fooBar, err := NewPath("foo", "bar")
	require.NoError(t, err)

	tests := []struct {
		name    string
		tree    *Tree
		input   any
		want    *Tree
		wantErr error
	}{
		{
			name:  "node with subtree",
			tree:  mustFrom(t, Pairs{{"a", "b"}, {"c", nil}}),
			input: "a",
			want:  mustFrom(t, "c"),
		},
		{
			name:  "missing node",
			tree:  mustFrom(t, 1),
			input: 2,
			want:  mustFrom(t, 1),
		},
		{
			name:  "node set",
			tree:  mustFrom(t, 1, 2, 3),
			input: []int{1, 3},
			want:  mustFrom(t, 2),
		},
		{
			name:  "child content",
			tree:  mustFrom(t, Pairs{{"a", []any{1, 2}}}),
			input: Pairs{{"a", 1}},
			want:  mustFrom(t, Pairs{{"a", 2}}),
		},
		{
			name:  "exhausted child removes node",
			tree:  mustFrom(t, Pairs{{"a", []any{1, 2}}, {"b", nil}}),
			input: map[string]any{"a": []any{1, 2}},
			want:  mustFrom(t, "b"),
		},
		{
			name:  "empty content removes node outright",
			tree:  mustFrom(t, Pairs{{"a", []any{1, 2}}, {"b", nil}}),
			input: Pairs{{"a", []any{}}},
			want:  mustFrom(t, "b"),
		},
		{
			name:  "leaf removed by child content",
			tree:  mustFrom(t, "a", "b"),
			input: Pairs{{"a", "x"}},
			want:  mustFrom(t, "b"),
		},
		{
			name:  "path removes childless ancestors",
			tree:  mustFrom(t, Pairs{{"foo", Pairs{{"bar", "baz"}}}}),
			input: fooBarBaz,
			want:  New(),
		},
		{
			name:  "path keeps ancestors with children",
			tree:  mustFrom(t, Pairs{{"foo", Pairs{{"bar", "baz"}, {"qux", nil}}}}),
			input: fooBarBaz,
			want:  mustFrom(t, Pairs{{"foo", "qux"}}),
		},
		{
			name:  "path to inner node",
			tree:  mustFrom(t, Pairs{{"foo", Pairs{{"bar", "baz"}}}, {"x", nil}}),
			input: fooBar,
			want:  mustFrom(t, "x"),
		},
		{
			name:  "missing path",
			tree:  mustFrom(t, Pairs{{"foo", "bar"}}),
			input: fooBarBaz,
			want:  mustFrom(t, Pairs{{"foo", "bar"}}),
		},
		{
			name:    "nested node set",
			tree:    mustFrom(t, 1, 2),
			input:   []any{1, []any{2}},
			want:    mustFrom(t, 2),
			wantErr: ErrNestedNodeSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tree.Delete(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, tt.tree.Equal(tt.want), "got %s, want %s", tt.tree, tt.want)
				return
			}

			require.NoError(t, err)
			assert.Same(t, tt.tree, got)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTree_Clear(t *testing.T) {
	tree := mustFrom(t, Pairs{{"a", "b"}})

	got, err := tree.Clear()
	require.NoError(t, err)
	assert.Same(t, tree, got)
	assert.True(t, tree.Empty())

	_, err = tree.Add("c")
	require.NoError(t, err)
	assert.Equal(t, []Node{"c"}, tree.Nodes())
}

func TestTree_Compact(t *testing.T) {
	tree := mustFrom(t, Pairs{{"a", []any{}}, {"b", Pairs{{"c", []any{}}}}})

	got, err := tree.Compact()
	require.NoError(t, err)
	assert.Same(t, tree, got)

	assert.True(t, tree.StrictLeaf("a"))
	assert.False(t, tree.Leaf("b"))
	assert.True(t, tree.Equal(mustFrom(t, Pairs{{"a", nil}, {"b", "c"}})))
}
