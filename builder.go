// SPDX-License-Identifier: MIT
package canopy

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

type (
	// Builder defines an interface for entities that can be read into a Tree.
	Builder interface {
		// Value obtains the node stored by the Builder.
		Value() Node
		// Parent obtains the parent node stored by the Builder, nil for a top-level node.
		Parent() Node
	}

	// BuildSource is a wrapper type for []Builder used to generate a Tree.
	BuildSource struct {
		debug  bool
		logger logrus.FieldLogger

		list      []Builder
		isOrdered bool
	}

	// DefaultBuilder is a sample Builder interface implementation.
	DefaultBuilder struct {
		value  Node
		parent Node
	}

	// BuildOption defines the BuildSource functional option type.
	BuildOption func(*BuildSource)
)

// Tree building errors.
var (
	ErrBuildHierarchy = errors.New("failed to build tree")

	ErrMissingRootNode = errors.New("missing top-level node")
	ErrDuplicateValue  = errors.New("value occurs more than once")

	ErrEmptyHierarchySrc   = errors.New("empty hierarchy source")
	ErrInvalidHierarchySrc = errors.New("invalid hierarchy source")

	ErrLocateParents = errors.New("unable to locate parent")

	ErrPanicked = errors.New("recovery from panic")
)

// NewDefaultBuilder instantiates a DefaultBuilder for value beneath parent.
func NewDefaultBuilder(value, parent Node) *DefaultBuilder {
	return &DefaultBuilder{value: value, parent: parent}
}

// Value obtains the node stored by the DefaultBuilder.
func (d *DefaultBuilder) Value() Node { return d.value }

// Parent obtains the parent stored by the DefaultBuilder
func (d *DefaultBuilder) Parent() Node { return d.parent }

// NewBuildSource instantiates a BuildSource.
func NewBuildSource(options ...BuildOption) *BuildSource {
	b := &BuildSource{
		logger: logrus.New(),
		list:   []Builder{},
	}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// WithBuilders configures the underlying list.
func WithBuilders(list ...Builder) BuildOption {
	return func(b *BuildSource) { b.list = append(b.list, list...) }
}

// WithBuildLogger configures the logger option.
func WithBuildLogger(logger logrus.FieldLogger) BuildOption {
	return func(b *BuildSource) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithDebug configures the debug option
func WithDebug(debug bool) BuildOption {
	return func(b *BuildSource) { b.debug = debug }
}

// WithOrdered declares that every parent precedes its children in the source, a single pass
// then suffices.
func WithOrdered(ordered bool) BuildOption {
	return func(b *BuildSource) { b.isOrdered = ordered }
}

// Len retrieves the length of the BuildSource.
func (b *BuildSource) Len() int { return len(b.list) }

// Cut a value at some index from the BuildSource.
func (b *BuildSource) Cut(index int) {
	if index == 0 {
		b.list = b.list[1:]
		return
	}

	upper := index + 1
	// Cut upto (excluding) `index`, cut from (including) `index+1`.
	b.list = append(b.list[:index], b.list[upper:]...)
}

// Build generates a [Tree] from the BuildSource, consuming it.
//
// Records with a nil parent become top-level nodes, every other record is placed beneath the
// record holding its parent. Records whose parent can't be located are reported together.
func (b *BuildSource) Build(ctx context.Context, options ...Option) (t *Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			// Skip expensive operation if not debug.
			if b.debug {
				b.logger.Debugf("current tree: %s \nsource remnants: %s", spew.Sprint(t), spew.Sdump(b.list))
			}

			t, err = nil, fmt.Errorf("%w: %w: %w", ErrBuildHierarchy, ErrInvalidHierarchySrc, err)
		}
	}()

	if b.Len() < 1 {
		err = ErrEmptyHierarchySrc
		return
	}

	t = New(options...)

	// owners maps every placed value to the Tree holding it.
	owners := make(map[Node]*Tree, b.Len())
	place := func(owner *Tree, value Node) error {
		if err := validateNode(value); err != nil {
			return err
		}
		if _, ok := owners[value]; ok {
			return fmt.Errorf(invalidNodeErrFmt, value, ErrDuplicateValue)
		}

		owner.insertNode(value)
		owners[value] = owner

		return nil
	}

	for index := 0; index < b.Len(); index++ {
		if b.list[index].Parent() != nil {
			continue
		}

		if err = place(t, b.list[index].Value()); err != nil {
			return
		}
		b.Cut(index)
		index--
	}
	if t.Empty() {
		err = ErrMissingRootNode
		return
	}

	if b.debug {
		b.logger.Debugf("source (without top-level nodes): %s", spew.Sdump(b.list))
	}

	for prevLen := -1; b.Len() > 0 && b.Len() != prevLen; {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		prevLen = b.Len()
		for index := 0; index < b.Len(); index++ {
			record := b.list[index]

			owner, ok := owners[record.Parent()]
			if !ok {
				// Parent not in the tree, yet.
				continue
			}

			if err = place(owner.ensureChild(record.Parent()), record.Value()); err != nil {
				return
			}

			// Remove added node from the build source.
			b.Cut(index)
			index--
		}

		if b.isOrdered {
			break
		}
	}

	var result *multierror.Error
	for _, record := range b.list {
		result = multierror.Append(result, fmt.Errorf("(%v) %w: %v", record.Value(), ErrLocateParents, record.Parent()))
	}
	err = result.ErrorOrNil()

	return
}
