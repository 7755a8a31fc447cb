// SPDX-License-Identifier: MIT
package canopy

import (
	"reflect"

	"golang.org/x/exp/slices"
)

type (
	// Pair is a node & its child content; the element of a [Pairs] literal.
	Pair struct {
		Node  Node
		Child any
	}

	// Pairs is an insertion-ordered tree-like literal.
	//
	// Go maps are accepted wherever Pairs are, their keys visited in a deterministic order that
	// isn't the insertion order.
	Pairs []Pair

	inputKind uint8
)

// Input classes, see classify.
const (
	inputNothing inputKind = iota
	inputAtom
	inputSequence
	inputTreelike
	inputPath
)

// classify determines how a command argument is interpreted.
func classify(input any) inputKind {
	switch v := input.(type) {
	case nil:
		return inputNothing
	case *Tree:
		if v == nil || v.Empty() {
			return inputNothing
		}
		return inputTreelike
	case *Absence:
		if v == nil || v.Presence().Empty() {
			return inputNothing
		}
		return inputTreelike
	case Pairs:
		if len(v) < 1 {
			return inputNothing
		}
		return inputTreelike
	case Pair:
		return inputTreelike
	case *Path:
		if v == nil || v.IsRoot() {
			return inputNothing
		}
		return inputPath
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() < 1 {
			return inputNothing
		}
		return inputSequence
	case reflect.Map:
		if rv.Len() < 1 {
			return inputNothing
		}
		return inputTreelike
	}

	return inputAtom
}

// treelike reports whether value is interpretable as a node => child structure, empty or not.
func treelike(value any) bool {
	switch v := value.(type) {
	case *Tree:
		return v != nil
	case *Absence:
		return v != nil
	case Pairs, Pair:
		return true
	case nil:
		return false
	}

	return reflect.ValueOf(value).Kind() == reflect.Map
}

// nothingLike reports whether child content stands for no children at all, as opposed to an
// explicit, possibly empty, child tree.
func nothingLike(content any) bool {
	switch v := content.(type) {
	case nil:
		return true
	case *Tree:
		return v == nil || v.nothing
	case *Absence:
		return v == nil || v.tree == nil
	}

	return false
}

// eachItem calls fn with every element of a sequence, stopping at the first error.
func eachItem(sequence any, fn func(item any) error) error {
	if list, ok := sequence.([]any); ok {
		for _, item := range list {
			if err := fn(item); err != nil {
				return err
			}
		}

		return nil
	}

	rv := reflect.ValueOf(sequence)
	for index := 0; index < rv.Len(); index++ {
		if err := fn(rv.Index(index).Interface()); err != nil {
			return err
		}
	}

	return nil
}

// eachPair calls fn with every node & child content of a tree-like value, stopping at the first
// error.
//
// A leaf's content is an untyped nil.
func eachPair(input any, fn func(node Node, content any) error) error {
	switch v := input.(type) {
	case *Tree:
		// Iterate over a copy, fn may mutate v.
		for _, node := range slices.Clone(v.order) {
			var content any
			if child := v.children[node]; child != nil {
				content = child
			}

			if err := fn(node, content); err != nil {
				return err
			}
		}

		return nil
	case *Absence:
		return eachPair(v.Presence(), fn)
	case Pair:
		return fn(v.Node, v.Child)
	case Pairs:
		for _, pair := range v {
			if err := fn(pair.Node, pair.Child); err != nil {
				return err
			}
		}

		return nil
	}

	rv := reflect.ValueOf(input)
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int { return compareKeys(a.Interface(), b.Interface()) })

	for _, key := range keys {
		var content any
		if value := rv.MapIndex(key); value.IsValid() && !isNilValue(value) {
			content = value.Interface()
		}

		if err := fn(key.Interface(), content); err != nil {
			return err
		}
	}

	return nil
}

func isNilValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

// toTree interprets value as a [Tree].
//
// Trees & Absences are returned as is (an Absence by its presence), anything else is added to a
// new Tree.
func toTree(value any) (*Tree, error) {
	switch v := value.(type) {
	case *Tree:
		if v != nil {
			return v, nil
		}
		return Nothing, nil
	case *Absence:
		if v != nil {
			return v.Presence(), nil
		}
		return Nothing, nil
	}

	return From(value)
}

// isSequence reports whether value is a slice or an array, other than [Pairs].
func isSequence(value any) bool {
	switch value.(type) {
	case nil, Pairs:
		return false
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}

	return false
}
