// SPDX-License-Identifier: MIT
package canopy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/canopy/lexer"
)

func TestDeserialize(t *testing.T) {
	type args struct {
		ctx   context.Context
		input string
		opts  []lexer.Option
	}

	tests := []struct {
		name    string
		args    args
		want    *Tree
		wantErr []error
	}{
		{
			name: "valid",
			args: args{ctx: context.Background(), input: "2,3))"},
			want: mustFrom(t, Pairs{{2, 3}}),
		},
		{
			name: "forest with whitespace",
			args: args{ctx: context.Background(), input: "1, 2)),\n3)"},
			want: mustFrom(t, Pairs{{1, 2}, {3, nil}}),
		},
		{
			name: "scalars",
			args: args{ctx: context.Background(), input: `"a b",true),1.5),2.0),word))`},
			want: mustFrom(t, Pairs{{"a b", []any{true, 1.5, 2, "word"}}}),
		},
		{
			name: "escaped quote",
			args: args{ctx: context.Background(), input: `"say \"hi\"")`},
			want: mustFrom(t, `say "hi"`),
		},
		{
			name: "custom markers",
			args: args{
				ctx: context.Background(), input: "1;2]]",
				opts: []lexer.Option{lexer.WithEndMarker(']'), lexer.WithSplitter(';')},
			},
			want: mustFrom(t, Pairs{{1, 2}}),
		},
		{
			name: "empty",
			args: args{ctx: context.Background(), input: "  "},
			want: New(),
		},
		{
			name:    "excessive values",
			args:    args{ctx: context.Background(), input: "1,2)"},
			wantErr: []error{ErrInvalidHierarchySrc, ErrExcessiveValues},
		},
		{
			name:    "excessive end markers",
			args:    args{ctx: context.Background(), input: "1))"},
			wantErr: []error{ErrInvalidHierarchySrc, ErrExcessiveEndMarkers},
		},
		{
			name:    "unknown tokens",
			args:    args{ctx: context.Background(), input: "1,{)"},
			wantErr: []error{ErrInvalidHierarchySrc, lexer.ErrUnknownTokens},
		},
		{
			name:    "unterminated value",
			args:    args{ctx: context.Background(), input: `"abc`},
			wantErr: []error{ErrInvalidHierarchySrc, lexer.ErrUnterminatedValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]lexer.Option{lexer.WithSource(strings.NewReader(tt.args.input))}, tt.args.opts...)

			got, err := Deserialize(tt.args.ctx, opts...)
			if tt.wantErr != nil {
				for _, want := range tt.wantErr {
					assert.ErrorIs(t, err, want)
				}
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestDeserialize_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tree := mustFrom(t, Pairs{
		{"root", Pairs{{1, []any{"x", "y, z"}}, {2.5, nil}}},
		{false, nil},
	})

	serialized, err := tree.Serialize(ctx)
	require.NoError(t, err)

	got, err := Deserialize(ctx, lexer.WithSource(strings.NewReader(serialized)))
	require.NoError(t, err)
	assert.True(t, got.Equal(tree), "got %s, want %s", got, tree)
}

func TestDeserialize_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Deserialize(ctx, lexer.WithSource(strings.NewReader("1)")))
	assert.ErrorIs(t, err, context.Canceled)
}
