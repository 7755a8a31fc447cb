// SPDX-License-Identifier: MIT
package canopy

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cast"
)

// Node is an opaque value identifying a position in a [Tree].
//
// Any non-nil comparable value that is not a collection (slice, array, map) or one of the tree
// types of this package is a valid Node.
type Node = any

// ValidNode reports whether value can be used as a [Node].
func ValidNode(value any) bool { return validateNode(value) == nil }

func validateNode(value any) error {
	switch value.(type) {
	case nil:
		return fmt.Errorf("(nil) %w", ErrInvalidNode)
	case *Tree, *Absence, *Path, Pairs, Pair:
		return fmt.Errorf("(%T) %w", value, ErrInvalidNode)
	}

	typ := reflect.TypeOf(value)
	switch typ.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Errorf("(%T) %w: collections can't be nodes", value, ErrInvalidNode)
	}
	// Interface fields may hold uncomparable values.
	if !typ.Comparable() || !reflect.ValueOf(value).Comparable() {
		return fmt.Errorf("(%T) %w: not comparable", value, ErrInvalidNode)
	}

	return nil
}

// looseKey returns the value a node is compared by under loose equality.
//
// Numbers of all kinds collapse to float64, anything else is its own key.
func looseKey(node Node) any {
	rv := reflect.ValueOf(node)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if f, err := cast.ToFloat64E(node); err == nil {
			return f
		}
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if f, err := cast.ToFloat64E(node); err == nil {
			return f
		}
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		if f, err := cast.ToFloat64E(node); err == nil {
			return f
		}
		return rv.Float()
	}

	return node
}

func looseNodeEqual(a, b Node) bool { return looseKey(a) == looseKey(b) }

// nodeDigest hashes a node such that nodes equal under == share a digest.
func nodeDigest(node Node) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%T:%#v", node, node))
}

// formatNode renders a node for diagnostics.
func formatNode(node Node) string {
	switch v := node.(type) {
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return v.String()
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	}

	return fmt.Sprint(node)
}

// formatFloat renders a float so integral values stay distinguishable from integers.
func formatFloat(f float64, bitSize int) string {
	out := strconv.FormatFloat(f, 'g', -1, bitSize)
	if strings.ContainsAny(out, ".eIN") {
		return out
	}

	return out + ".0"
}

// compareKeys orders map keys for deterministic traversal of Go maps.
//
// Numbers sort first by value, strings next, anything else by its formatted value.
func compareKeys(a, b any) int {
	rankA, rankB := keyRank(a), keyRank(b)
	if rankA != rankB {
		return rankA - rankB
	}

	switch rankA {
	case 0:
		fa, fb := looseKey(a).(float64), looseKey(b).(float64)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}

		return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
	case 1:
		return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
	}

	return strings.Compare(fmt.Sprintf("%T:%v", a, a), fmt.Sprintf("%T:%v", b, b))
}

func keyRank(key any) int {
	if key == nil {
		return 3
	}

	switch reflect.ValueOf(key).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return 0
	case reflect.String:
		return 1
	}

	return 2
}
