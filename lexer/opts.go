// SPDX-License-Identifier: MIT
package lexer

import (
	"io"

	"github.com/sirupsen/logrus"
)

type (
	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

const (
	// DefEndMarker is the `rune` indicating the end of a node's children.
	DefEndMarker = ')'

	// DefSplitter is the `rune` separating values in the serialization output.
	DefSplitter = ','

	// Quote delimits values containing runes other than letters, digits & `_-.+`.
	Quote = '"'

	emptyRune rune = 0
)

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithEndMarker configures the endMarker option.
func WithEndMarker(r rune) Option {
	return func(l *Lexer) {
		if r != emptyRune {
			l.endMarker = r
		}
	}
}

// WithSplitter configures the splitter option.
func WithSplitter(r rune) Option {
	return func(l *Lexer) {
		if r != emptyRune {
			l.splitter = r
		}
	}
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(l *Lexer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSource configures the source option.
func WithSource(source io.RuneReader) Option { return func(l *Lexer) { l.source = source } }
