// SPDX-License-Identifier: MIT
package canopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTree_ToNative(t *testing.T) {
	tests := []struct {
		name string
		tree *Tree
		want any
	}{
		{name: "empty", tree: New(), want: []any{}},
		{name: "single leaf", tree: mustFrom(t, 1), want: 1},
		{name: "leaves", tree: mustFrom(t, 1, 2), want: []any{1, 2}},
		{
			name: "nested",
			tree: mustFrom(t, Pairs{{"a", []any{1, 2}}, {"b", nil}, {"c", Pairs{{"d", "e"}}}}),
			want: map[any]any{"a": []any{1, 2}, "b": nil, "c": map[any]any{"d": "e"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tree.ToNative())
		})
	}
}

func TestTree_String(t *testing.T) {
	tests := []struct {
		name string
		tree *Tree
		want string
	}{
		{name: "empty", tree: New(), want: "Tree[]"},
		{name: "Nothing", tree: Nothing, want: "Nothing"},
		{name: "leaves", tree: mustFrom(t, 1, "a"), want: `Tree[1, "a"]`},
		{name: "integral float", tree: mustFrom(t, 1, 1.0, 2.5), want: "Tree[1, 1.0, 2.5]"},
		{name: "single child", tree: mustFrom(t, Pairs{{"a", "b"}, {"c", nil}}), want: `Tree["a" => "b", "c"]`},
		{name: "leaf children", tree: mustFrom(t, Pairs{{"a", []any{1, 2}}}), want: `Tree["a" => [1, 2]]`},
		{name: "nested", tree: mustFrom(t, Pairs{{"a", Pairs{{"b", "c"}}}}), want: `Tree["a" => {"b" => "c"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tree.String())
		})
	}
}

func TestTree_Render(t *testing.T) {
	tree := mustFrom(t, Pairs{{"a", "b"}, {"c", nil}})

	got := tree.Render()
	assert.Contains(t, got, `"a"`)
	assert.Contains(t, got, `"b"`)
	assert.Contains(t, got, `"c"`)
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Tree
		wantErr bool
	}{
		{
			name:  "mapping",
			input: "a:\n  b: 1\n  c: [2, 3]\nd: null\n",
			want:  mustFrom(t, Pairs{{"a", Pairs{{"b", 1}, {"c", []any{2, 3}}}}, {"d", nil}}),
		},
		{
			name:  "sequence",
			input: "- x\n- y\n",
			want:  mustFrom(t, "x", "y"),
		},
		{
			name:  "empty document",
			input: "",
			want:  New(),
		},
		{
			name:    "nested sequence",
			input:   "- [1, 2]\n",
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "a: [1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromYAML([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTree_MarshalYAML(t *testing.T) {
	tree := mustFrom(t, Pairs{{"b", []any{1, 2}}, {"a", nil}})

	out, err := yaml.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: null")

	got, err := FromYAML(out)
	require.NoError(t, err)
	assert.True(t, got.Equal(tree), "got %s, want %s", got, tree)
	assert.Equal(t, []Node{"b", "a"}, got.Nodes())
}
