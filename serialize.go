// SPDX-License-Identifier: MIT
package canopy

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goccy/go-json"

	"gitlab.com/fisherprime/canopy/lexer"
)

// Serialization errors.
var (
	ErrUnserializableNode = errors.New("node can't be serialized")
)

// Serialize transforms the [Tree] into a string.
//
// Every node is written JSON encoded, followed by its children & the lexer's end marker; values
// are separated by the lexer's splitter, e.g. `1,2)),3)` for Tree[1 => 2, 3]. Only string, bool
// & numeric nodes can be serialized.
//
// The distinction between a leaf & a node with an explicit empty child isn't kept.
func (t *Tree) Serialize(ctx context.Context, opts ...lexer.Option) (output string, err error) {
	l := lexer.New(opts...)
	endMarker, splitter := string(l.EndMarker()), string(l.Splitter())

	var buffer strings.Builder
	first := true
	err = t.serialize(ctx, endMarker, func(value string) error {
		if !first && value != endMarker {
			if _, err := buffer.WriteString(splitter); err != nil {
				return err
			}
		}
		first = false

		_, err := buffer.WriteString(value)
		return err
	})
	if err != nil {
		// Invalidate serialization output.
		return
	}

	output = buffer.String()

	return
}

// serialize performs the serialization grunt work.
func (t *Tree) serialize(ctx context.Context, endMarker string, write func(string) error) error {
	for _, node := range t.order {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		value, err := encodeNode(node)
		if err != nil {
			return err
		}
		if err = write(value); err != nil {
			return err
		}

		if child := t.children[node]; child != nil {
			if err = child.serialize(ctx, endMarker, write); err != nil {
				return err
			}
		}

		if err = write(endMarker); err != nil {
			return err
		}
	}

	return nil
}

func encodeNode(node Node) (string, error) {
	switch reflect.ValueOf(node).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return "", fmt.Errorf("(%T) %w", node, ErrUnserializableNode)
	}

	encoded, err := json.Marshal(node)
	if err != nil {
		return "", fmt.Errorf(invalidNodeErrFmt, node, err)
	}

	return string(encoded), nil
}
