// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"fmt"

	"go4.org/mem"
)

// A Tokenizer reads lexical tokens from a caller-owned byte slice. Each call
// to Next advances the tokenizer to the next token. The tokenizer does not copy
// its input: the slice passed to Reset or Continue must remain valid and
// unmodified until the next call to either.
//
// If the input ends in the middle of a token, Next does not report the partial
// token. Instead it rewinds to the start of the token and returns End; the
// caller may then supply more input with Continue, beginning with the bytes
// reported by Remaining.
//
// The type parameter T is the type of an arbitrary tag value stored with the
// tokenizer for the caller's use. It has no effect on tokenizing.
//
// A Tokenizer is not safe for concurrent use by multiple goroutines.
type Tokenizer[T any] struct {
	tag T

	input []byte
	pos   int  // offset of the next unread byte in input
	base  int  // absolute offset of input[0]
	final bool // no input follows the current buffer

	tok   Token // the last token returned by Next
	state Token // parse state, including comma and colon
	stk   structStack
	err   error

	tpos, tend int // span of the current token in input
	vpos, vend int // span of the current value in input
	hasValue   bool

	line      int // newlines consumed so far
	lineStart int // absolute offset just past the last newline consumed
}

// New constructs a tokenizer with the given tag and a structure stack of
// DefaultDepth entries. Call Reset to supply input.
func New[T any](tag T) *Tokenizer[T] { return NewSize(tag, DefaultDepth) }

// NewSize constructs a tokenizer with the given tag whose objects and arrays
// may nest at most depth levels deep. It panics if depth < 0.
func NewSize[T any](tag T, depth int) *Tokenizer[T] {
	if depth < 0 {
		panic(fmt.Sprintf("jsont: invalid stack depth %d", depth))
	}
	return &Tokenizer[T]{tag: tag, stk: newStructStack(depth)}
}

// Tag returns the tag value t was constructed with.
func (t *Tokenizer[T]) Tag() T { return t.tag }

// Reset discards all tokenizer state and prepares t to tokenize a new stream
// starting with input. Reset also clears final mode.
func (t *Tokenizer[T]) Reset(input []byte) {
	t.input = input
	t.pos, t.base = 0, 0
	t.final = false
	t.tok, t.state = End, End
	t.stk.reset()
	t.err = nil
	t.tpos, t.tend = 0, 0
	t.clearValue()
	t.line, t.lineStart = 0, 0
}

// Continue replaces the input of t with input, preserving the structure stack
// and parse state of the stream. The new input must begin with the unconsumed
// bytes of the old input, as reported by Remaining, so that a token rewound
// at the end of the old buffer is presented again in full.
//
// If t is in the error state, it remains so: only Reset recovers from an
// error.
func (t *Tokenizer[T]) Continue(input []byte) {
	t.base += t.pos
	t.input = input
	t.pos = 0
	t.tpos, t.tend = 0, 0
	t.clearValue()
	if t.tok != Error {
		t.tok = End
	}
}

// SetFinal configures whether the current input is the end of the stream
// (true) or may be followed by more input via Continue (false).
//
// In final mode a number ending at the end of the input is reported rather
// than deferred, and an incomplete token or unclosed structure at the end of
// the input is reported as an error wrapping ErrUnexpectedEOF.
func (t *Tokenizer[T]) SetFinal(final bool) { t.final = final }

// Final reports whether t is in final mode.
func (t *Tokenizer[T]) Final() bool { return t.final }

// Next advances t to the next token of the input and returns it. Commas and
// colons are checked and consumed but are not reported.
//
// Next returns End when the input is exhausted, including when the input ends
// in the middle of a token. Next returns Error when the input is malformed;
// after that every call returns Error until t is Reset. Use Err to find the
// cause.
func (t *Tokenizer[T]) Next() Token {
	if t.tok == Error {
		return Error
	}
	t.clearValue()

	for t.pos < len(t.input) {
		b := t.input[t.pos]
		t.tpos = t.pos
		t.pos++

		switch b {
		case ' ', '\t', '\r':
			continue
		case '\n':
			t.line++
			t.lineStart = t.base + t.pos
			continue
		case '{':
			return t.open(ObjectStart)
		case '}':
			return t.close(ObjectEnd, ErrUnexpectedObjectEnd)
		case '[':
			return t.open(ArrayStart)
		case ']':
			return t.close(ArrayEnd, ErrUnexpectedArrayEnd)
		case ',':
			if !t.state.completesValue() {
				return t.fail(t.tpos, ErrUnexpectedComma)
			}
			t.state = comma
		case ':':
			if t.state != FieldName {
				return t.fail(t.tpos, ErrUnexpectedColon)
			}
			t.state = colon
		case '"':
			return t.scanString()
		case 't':
			return t.scanLiteral("true", True)
		case 'f':
			return t.scanLiteral("false", False)
		case 'n':
			return t.scanLiteral("null", Null)
		default:
			if isNumStart(b) {
				return t.scanNumber()
			}
			return t.fail(t.tpos, fmt.Errorf("%w %q", ErrUnexpectedInput, b))
		}
	}

	t.tpos, t.tend = t.pos, t.pos
	if t.final {
		if t.stk.n != 0 {
			return t.fail(t.pos, fmt.Errorf("%w: %d unclosed %s", ErrUnexpectedEOF, t.stk.n, plural(t.stk.n, "structure")))
		} else if t.state == comma || t.state == colon {
			return t.fail(t.pos, fmt.Errorf("%w after %v", ErrUnexpectedEOF, t.state))
		}
	}
	t.tok = End
	return End
}

// Token returns the current token, the one most recently returned by Next.
func (t *Tokenizer[T]) Token() Token { return t.tok }

// Err returns the cause of the last Error token, or nil. The error wraps one
// of the Err* values defined by this package and reports the input offset.
func (t *Tokenizer[T]) Err() error { return t.err }

// Depth reports the number of objects and arrays currently open.
func (t *Tokenizer[T]) Depth() int { return t.stk.n }

// Capacity reports the maximum nesting depth supported by t.
func (t *Tokenizer[T]) Capacity() int { return len(t.stk.buf) }

// InObject reports whether the innermost open structure is an object.
func (t *Tokenizer[T]) InObject() bool { return t.stk.top() == ObjectStart }

// Remaining returns the unconsumed portion of the current input. After Next
// returns End, this includes any partial token that was rewound.
func (t *Tokenizer[T]) Remaining() []byte { return t.input[t.pos:] }

// Offset reports the offset in the current input of the next unread byte.
func (t *Tokenizer[T]) Offset() int { return t.pos }

// InputOffset reports the offset of the next unread byte relative to the
// start of the stream, counting input discarded by calls to Continue.
func (t *Tokenizer[T]) InputOffset() int { return t.base + t.pos }

// LastByte returns the last byte read from the current input, or 0 if none
// has been read. After an Error token, this is the offending byte.
func (t *Tokenizer[T]) LastByte() byte {
	if t.pos == 0 {
		return 0
	}
	return t.input[t.pos-1]
}

func (t *Tokenizer[T]) set(tok Token) Token {
	t.tok, t.state = tok, tok
	t.tend = t.pos
	return tok
}

func (t *Tokenizer[T]) fail(pos int, err error) Token {
	t.clearValue()
	t.tend = t.pos
	t.err = posError{pos: t.base + pos, err: err}
	t.tok, t.state = Error, Error
	return Error
}

// rewind moves the cursor back to pos, the start of an incomplete token.
func (t *Tokenizer[T]) rewind(pos int) Token {
	if t.final {
		t.pos = len(t.input)
		return t.fail(pos, fmt.Errorf("%w in %s", ErrUnexpectedEOF, describe(t.input[pos])))
	}
	t.clearValue()
	t.pos = pos
	t.tpos, t.tend = pos, pos
	t.tok = End
	return End
}

func (t *Tokenizer[T]) open(kind Token) Token {
	if !t.stk.push(kind) {
		return t.fail(t.tpos, ErrStackSize)
	}
	return t.set(kind)
}

func (t *Tokenizer[T]) close(kind Token, cause error) Token {
	want := ObjectStart
	if kind == ArrayEnd {
		want = ArrayStart
	}
	if !t.stk.pop(want) {
		return t.fail(t.tpos, cause)
	}
	return t.set(kind)
}

// expectsFieldName reports whether a string at the current position is in
// the key position of an object.
func (t *Tokenizer[T]) expectsFieldName() bool {
	return t.state == ObjectStart || (t.state == comma && t.stk.top() == ObjectStart)
}

func (t *Tokenizer[T]) scanString() Token {
	start := t.tpos
	var esc bool
	for i := t.pos; i < len(t.input); i++ {
		if esc {
			esc = false
			continue
		}
		switch t.input[i] {
		case '\\':
			esc = true
		case '"':
			tok := String
			if t.expectsFieldName() {
				tok = FieldName
			}
			t.setValue(t.pos, i)
			t.pos = i + 1
			return t.set(tok)
		}
	}
	return t.rewind(start)
}

func (t *Tokenizer[T]) scanLiteral(word string, tok Token) Token {
	start := t.tpos
	end := start + len(word)
	if end > len(t.input) {
		if !mem.HasPrefix(mem.S(word), mem.B(t.input[start:])) {
			return t.failLiteral(start, word)
		}
		return t.rewind(start)
	}
	if !mem.B(t.input[start:end]).EqualString(word) {
		return t.failLiteral(start, word)
	}
	t.pos = end
	return t.set(tok)
}

func (t *Tokenizer[T]) failLiteral(start int, word string) Token {
	i := start
	for i < len(t.input) && i-start < len(word) && t.input[i] == word[i-start] {
		i++
	}
	t.pos = i + 1
	return t.fail(i, fmt.Errorf("%w %q in %s", ErrUnexpectedInput, t.input[i], word))
}

func (t *Tokenizer[T]) scanNumber() Token {
	start := t.tpos
	n, isFloat, more, err := scanNumber(t.input[start:])
	if err != nil {
		t.pos = start + n + 1
		return t.fail(start+n, fmt.Errorf("%w: %w", ErrUnexpectedInput, err))
	}
	if more && !(t.final && isDigit(t.input[len(t.input)-1])) {
		// The input ended before a byte that terminates the number.
		return t.rewind(start)
	}
	t.setValue(start, start+n)
	t.pos = start + n
	if isFloat {
		return t.set(Float)
	}
	return t.set(Integer)
}

func (t *Tokenizer[T]) setValue(pos, end int) {
	t.vpos, t.vend, t.hasValue = pos, end, true
}

func (t *Tokenizer[T]) clearValue() {
	t.vpos, t.vend, t.hasValue = 0, 0, false
}

func describe(b byte) string {
	switch {
	case b == '"':
		return "string"
	case isNumStart(b):
		return "number"
	default:
		return "literal"
	}
}

func plural(n int, s string) string {
	if n == 1 {
		return s
	}
	return s + "s"
}
