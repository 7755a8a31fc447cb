// SPDX-License-Identifier: MIT
package canopy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"gitlab.com/fisherprime/canopy/lexer"
)

// Deserialization errors.
var (
	ErrExcessiveValues     = errors.New("the deserialization source has values in excess by")
	ErrExcessiveEndMarkers = errors.New("the deserialization source has end markers in excess by")
)

type itemStatus uint8

// Outcomes of deserializing a lexed item.
const (
	statusNext itemStatus = iota
	statusEnd
	statusEOF
)

// Deserialize transforms a serialized [Tree], read from the lexer's source, into a Tree.
//
// Quoted values are decoded as JSON strings; bare values as integers, floating point numbers,
// booleans or, failing those, as plain strings. An empty source yields an empty Tree.
func Deserialize(ctx context.Context, opts ...lexer.Option) (t *Tree, err error) {
	l := lexer.New(opts...)

	t = New(WithLogger(l.Logger()))
	for {
		var status itemStatus
		if status, err = t.deserialize(ctx, l); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHierarchySrc, err)
		}
		if status == statusEOF {
			break
		}
	}

	diff := l.ValueCounter() - l.EndCounter()
	switch {
	case diff > 0:
		err = fmt.Errorf("%w: %d", ErrExcessiveValues, diff)
	case diff < 0:
		err = fmt.Errorf("%w: %d", ErrExcessiveEndMarkers, diff*-1)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHierarchySrc, err)
	}

	t.cfg.debugf("deserialized: %s", t)

	return
}

// deserialize performs the deserialization grunt work, consuming one node & its children.
func (t *Tree) deserialize(ctx context.Context, l *lexer.Lexer) (status itemStatus, err error) {
	item, ok := l.Item(ctx)
	if !ok {
		status = statusEOF
		return
	}

	switch item.ID {
	case lexer.ItemEOF:
		status = statusEOF
		return
	case lexer.ItemError:
		// Stop input processing.
		err = item.Err
		return
	case lexer.ItemEndMarker:
		status = statusEnd
		return
	case lexer.ItemSplitter:
		return
	}

	var node Node
	if node, err = decodeNode(item.Val); err != nil {
		return
	}

	child := t.newChild()
	for {
		var childStatus itemStatus
		if childStatus, err = child.deserialize(ctx, l); err != nil {
			return
		}

		if childStatus == statusEOF {
			// Missing end markers are reported by the counter check.
			status = statusEOF
			break
		}
		if childStatus == statusEnd {
			break
		}
	}

	var content any
	if !child.Empty() {
		content = child
	}
	err = t.addChild(node, content)

	return
}

// decodeNode converts a lexed value into a [Node].
func decodeNode(value []byte) (node Node, err error) {
	if len(value) > 0 && value[0] == lexer.Quote {
		var decoded string
		if err = json.Unmarshal(value, &decoded); err != nil {
			err = fmt.Errorf(invalidNodeErrFmt, string(value), err)
			return
		}
		node = decoded

		return
	}

	text := string(value)
	if integer, parseErr := strconv.ParseInt(text, 10, 64); parseErr == nil {
		if integer >= math.MinInt && integer <= math.MaxInt {
			node = int(integer)
			return
		}
	}

	var decoded any
	if json.Unmarshal(value, &decoded) != nil || decoded == nil {
		// Bare word.
		node = text
		return
	}

	node = decoded
	if f, ok := decoded.(float64); ok && f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		node = int(f)
	}

	return
}
