// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go
// REF: []rune to []byte conversion. https://stackoverflow.com/a/29255836

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer defines a type to capture serialized tree tokens from a source.
	//
	// The Lexer runs its state functions on demand: every call to [Lexer.Item] lexes until an
	// Item is available.
	Lexer struct {
		debug     bool
		endMarker rune
		splitter  rune
		logger    logrus.FieldLogger

		// state is the next state function, nil once lexing is over.
		state NextOperation

		// items holds lexed Items awaiting consumption.
		items []Item

		// source is the input source.
		source io.RuneReader

		// buffer is a slice of runes being lexed.
		buffer []rune
		//  bufferIndex is the current buffer position.
		//
		// When this value exceeds the length of buffer, the buffer is populated from the source.
		bufferIndex int

		valueCounter int
		endCounter   int
	}
)

const (
	sourceLimit   = 512
	defBufferSize = 10
)

// Lexing errors.
var (
	ErrInvalidPeekLength   = errors.New("invalid peek length")
	ErrInvalidBackupAmount = errors.New("invalid backup amount")
	ErrUnknownTokens       = errors.New("unknown tokens")
	ErrUnterminatedValue   = errors.New("unterminated quoted value")
)

// Improves on performance compared to ORs.
//
// Reduces function cost improving probalility of inlining.
var (
	whitespace = [256]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	valueSymbols = [256]bool{
		'_': true,
		'-': true,
		'.': true,
		'+': true,
	}
)

// New creates a new scanner for the configured source.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		endMarker: DefEndMarker,
		splitter:  DefSplitter,
		logger:    logrus.New(),

		buffer: make([]rune, 0, defBufferSize),
		source: strings.NewReader(""),
	}

	for _, opt := range opts {
		opt(l)
	}
	l.state = l.LexWhitespace

	return l
}

// EndMarker obtains the configured end marker.
func (l *Lexer) EndMarker() rune { return l.endMarker }

// Splitter obtains the configured value splitter.
func (l *Lexer) Splitter() rune { return l.splitter }

// ValueCounter obtains the number of values lexed so far.
func (l *Lexer) ValueCounter() int { return l.valueCounter }

// EndCounter obtains the number of end markers lexed so far.
func (l *Lexer) EndCounter() int { return l.endCounter }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Item returns the next lexed Item, ok is false once the source is exhausted.
//
// A canceled context yields an ItemError & ends lexing.
func (l *Lexer) Item(ctx context.Context) (i Item, ok bool) {
	for len(l.items) < 1 {
		if l.state == nil {
			return
		}

		select {
		case <-ctx.Done():
			l.state = nil
			return Item{ID: ItemError, Err: ctx.Err()}, true
		default:
			l.state = l.state(ctx)
		}
	}

	i, l.items = l.items[0], l.items[1:]
	ok = true

	return
}

// LexWhitespace search for whitespace.
func (l *Lexer) LexWhitespace(ctx context.Context) NextOperation {
	// Whitespace at the end of the source is handled by the emptyRune case.
	_ = l.AcceptWhile(isWhitespace)

	// Ignore white spaces, discard instead of emit.
	l.Discard()

	next := l.Next()
	switch {
	case next == emptyRune:
		l.EmitEOF()
		return nil
	case next == l.endMarker:
		l.endCounter++
		l.Emit(ItemEndMarker)

		return l.LexWhitespace
	case next == l.splitter:
		l.Emit(ItemSplitter)

		return l.LexWhitespace
	case next == Quote:
		return l.LexQuoted
	case isValue(next):
		return l.LexValue
	default:
		if err := l.Backup(); err != nil {
			l.EmitError(err)
			return nil
		}

		nextRunes, err := l.PeekN(sourceLimit)
		if err != nil {
			l.EmitError(err)
			return nil
		}

		l.EmitError(fmt.Errorf("%w: %s", ErrUnknownTokens, string(nextRunes)))

		return nil
	}
}

// LexValue consumes a bare value.
func (l *Lexer) LexValue(ctx context.Context) NextOperation {
	if err := l.AcceptWhile(isValue); err != nil && !errors.Is(err, io.EOF) {
		l.EmitError(err)
		return nil
	}

	l.valueCounter++
	l.Emit(ItemValue)

	return l.LexWhitespace
}

// LexQuoted consumes a double-quoted value, backslash escaping the next rune; the quotes are
// part of the emitted value.
func (l *Lexer) LexQuoted(ctx context.Context) NextOperation {
	for escaped := false; ; {
		r := l.Next()
		switch {
		case r == emptyRune:
			l.EmitError(fmt.Errorf("%w: %s", ErrUnterminatedValue, string(l.buffer[:l.bufferIndex])))
			return nil
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == Quote:
			l.valueCounter++
			l.Emit(ItemValue)

			return l.LexWhitespace
		}
	}
}

// Next return the Next rune in the input.
func (l *Lexer) Next() (r rune) {
	if l.bufferIndex >= len(l.buffer) {
		// Request data from the source.
		if l.Source(0) < 1 {
			r = emptyRune
			return
		}
	}

	r = l.buffer[l.bufferIndex]
	l.bufferIndex++

	return
}

// Peek return the next rune, without updating the index.
func (l *Lexer) Peek() (r rune, err error) {
	list, err := l.PeekN(1)
	if err != nil {
		return
	}
	r = list[0]

	return
}

// PeekN return the next N runes, without updating the index.
//
// This operation will return a shorter slice if the the end of the source is reached.
func (l *Lexer) PeekN(n int) (list []rune, err error) {
	if n < 1 {
		err = fmt.Errorf("%w: %d", ErrInvalidPeekLength, n)
		return
	}

	for limit := l.bufferIndex + n; limit > len(l.buffer); {
		// Request data from the source.
		if l.Source(limit-len(l.buffer)) < 1 {
			break
		}
	}

	limit := l.bufferIndex + n
	if limit > len(l.buffer) {
		limit = len(l.buffer)
	}
	if limit <= l.bufferIndex {
		err = io.EOF
		return
	}

	list = l.buffer[l.bufferIndex:limit]

	return
}

// Backup step back one rune.
func (l *Lexer) Backup() error { return l.BackupN(1) }

// BackupN step back N runes.
func (l *Lexer) BackupN(n int) (err error) {
	if l.bufferIndex < n {
		err = fmt.Errorf("%w: amount %d index: %d", ErrInvalidBackupAmount, n, l.bufferIndex)
		return
	}
	l.bufferIndex -= n

	return
}

// Discard the buffer content before the current buffer index.
func (l *Lexer) Discard() {
	l.buffer = l.buffer[l.bufferIndex:]
	l.bufferIndex = 0
}

// Source runes from the source reader.
func (l *Lexer) Source(amount int) (sourced int) {
	if amount < defBufferSize {
		amount = defBufferSize
	}

	buffer := make([]rune, amount)
	for ; sourced < amount; sourced++ {
		// NOTE: Function cost reduced by swapping the error check's condition.
		if r, _, err := l.source.ReadRune(); err == nil {
			buffer[sourced] = r
			continue
		}

		// Error can only be io.EOF
		break
	}

	l.buffer = append(l.buffer, buffer[:sourced]...)

	return
}

// AcceptWhile consumes runes while condition is true.
//
// io.EOF is returned when the source ends first.
func (l *Lexer) AcceptWhile(fn ValidationFunction) (err error) {
	for {
		r := l.Next()
		if r == emptyRune {
			// End of input.
			return io.EOF
		}

		// End of current token type.
		if !fn(r) {
			return l.Backup()
		}
	}
}

// Emit queues an Item holding the buffer content before the current index.
func (l *Lexer) Emit(t ItemID) {
	runes := l.buffer[:l.bufferIndex]

	bufSize := 0
	for _, r := range runes {
		bufSize += utf8.RuneLen(r)
	}
	buf := make([]byte, bufSize)

	index := 0
	for _, r := range runes {
		index += utf8.EncodeRune(buf[index:], r)
	}

	if l.debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.Debug("lexer Emit: ", string(buf))
	}

	l.items = append(l.items, Item{
		ID:  t,
		Val: buf,
	})
	l.Discard()
}

// EmitEOF queues an ItemEOF Item.
func (l *Lexer) EmitEOF() {
	l.items = append(l.items, Item{ID: ItemEOF})
}

// EmitError queues an error Item, terminating the scan process; io.EOF queues an ItemEOF.
func (l *Lexer) EmitError(err error) {
	if errors.Is(err, io.EOF) {
		l.EmitEOF()
		return
	}

	l.items = append(l.items, Item{
		ID:  ItemError,
		Err: err,
	})
}

// isWhitespace return true for whitespace, newline & carrier return.
func isWhitespace(r rune) bool { return r < 256 && whitespace[r] }

// isAlpha return true for an alphabetic sequence.
func isAlpha(r rune) bool { return (r < 256 && valueSymbols[r]) || unicode.IsLetter(r) }

// isNumeric return true for a real number.
func isNumeric(r rune) bool { return unicode.IsDigit(r) }

// isValue return true for a bare value sequence.
func isValue(r rune) bool { return isAlpha(r) || isNumeric(r) }
