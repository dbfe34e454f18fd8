// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jsont/internal/escape"

	"go4.org/mem"
)

// builderState records what punctuation, if any, must precede the next
// element appended to a Builder.
type builderState byte

const (
	neutral          builderState = iota // nothing written, or after Reset
	afterFieldName                       // a colon is due
	afterValue                           // a comma is due
	afterObjectStart                     // no punctuation
	afterArrayStart                      // no punctuation
)

// minBuilderCap is the smallest buffer a Builder allocates.
const minBuilderCap = 64

// A Builder assembles minified JSON text in an internal buffer. Each method
// appends one element and inserts a comma or colon before it as needed.
//
// A Builder does not check that its output is well-formed: the caller is
// responsible for balancing objects and arrays and for writing a field name
// before each member value. A zero Builder is ready for use.
//
// The methods that append an element return their receiver, so calls may be
// chained:
//
//	var b jsont.Builder
//	b.StartObject().FieldName("ok").Bool(true).EndObject()
type Builder struct {
	buf   []byte
	state builderState
}

// NewBuilder constructs a Builder whose buffer has room for at least size
// bytes.
func NewBuilder(size int) *Builder {
	return &Builder{buf: make([]byte, 0, max(size, minBuilderCap))}
}

// StartObject begins a new object.
func (b *Builder) StartObject() *Builder {
	b.prefix()
	b.state = afterObjectStart
	return b.appendByte('{')
}

// EndObject ends the innermost object.
func (b *Builder) EndObject() *Builder {
	b.state = afterValue
	return b.appendByte('}')
}

// StartArray begins a new array.
func (b *Builder) StartArray() *Builder {
	b.prefix()
	b.state = afterArrayStart
	return b.appendByte('[')
}

// EndArray ends the innermost array.
func (b *Builder) EndArray() *Builder {
	b.state = afterValue
	return b.appendByte(']')
}

// FieldName appends the key of an object member. The name is quoted and
// escaped as by Quote.
func (b *Builder) FieldName(name string) *Builder {
	b.prefix()
	b.state = afterFieldName
	return b.appendQuoted(mem.S(name))
}

// RawFieldName appends the key of an object member. The text is enclosed in
// quotation marks but is otherwise written verbatim; the caller is
// responsible for escaping it.
func (b *Builder) RawFieldName(text []byte) *Builder {
	b.prefix()
	b.state = afterFieldName
	return b.appendRaw(text)
}

// String appends a string value. The value is quoted and escaped as by Quote.
func (b *Builder) String(v string) *Builder {
	b.prefix()
	b.state = afterValue
	return b.appendQuoted(mem.S(v))
}

// RawString appends a string value. The text is enclosed in quotation marks
// but is otherwise written verbatim; the caller is responsible for escaping
// it.
func (b *Builder) RawString(text []byte) *Builder {
	b.prefix()
	b.state = afterValue
	return b.appendRaw(text)
}

// RawValue appends text verbatim as a value. The caller is responsible for
// ensuring text is a valid JSON value, for example a number copied from the
// input of a Tokenizer.
func (b *Builder) RawValue(text []byte) *Builder {
	b.prefix()
	b.state = afterValue
	b.buf = append(b.reserve(len(text)), text...)
	return b
}

// Int64 appends an integer value.
func (b *Builder) Int64(v int64) *Builder {
	b.prefix()
	b.state = afterValue
	b.buf = strconv.AppendInt(b.reserve(20), v, 10)
	return b
}

// Int appends an integer value.
func (b *Builder) Int(v int) *Builder { return b.Int64(int64(v)) }

// Float64 appends a floating-point value in the shortest form that represents
// v exactly. The output always has a fraction or an exponent, so that it reads
// back as a Float token. JSON cannot represent NaN or infinities; these are
// written as null.
func (b *Builder) Float64(v float64) *Builder {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return b.Null()
	}
	b.prefix()
	b.state = afterValue
	start := len(b.buf)
	b.buf = strconv.AppendFloat(b.reserve(32), v, 'g', -1, 64)
	if !bytes.ContainsAny(b.buf[start:], ".eE") {
		b.buf = append(b.buf, '.', '0')
	}
	return b
}

// Bool appends a Boolean value.
func (b *Builder) Bool(v bool) *Builder {
	b.prefix()
	b.state = afterValue
	if v {
		b.buf = append(b.reserve(4), "true"...)
	} else {
		b.buf = append(b.reserve(5), "false"...)
	}
	return b
}

// Null appends a null value.
func (b *Builder) Null() *Builder {
	b.prefix()
	b.state = afterValue
	b.buf = append(b.reserve(4), "null"...)
	return b
}

// Bytes returns the contents of the buffer. The result is only valid until the
// next modification of b.
func (b *Builder) Bytes() []byte { return b.buf }

// Text returns a copy of the contents of the buffer as a string.
func (b *Builder) Text() string { return string(b.buf) }

// Len reports the number of bytes in the buffer.
func (b *Builder) Len() int { return len(b.buf) }

// Cap reports the capacity of the buffer.
func (b *Builder) Cap() int { return cap(b.buf) }

// Reset discards the contents of the buffer, but retains its storage.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.state = neutral
}

// Detach returns the contents of the buffer and releases the buffer to the
// caller. Afterward b is empty, as if newly constructed.
func (b *Builder) Detach() []byte {
	out := b.buf
	b.buf = nil
	b.state = neutral
	return out
}

// Clone returns a new Builder with a copy of the contents and state of b.
func (b *Builder) Clone() *Builder {
	return &Builder{
		buf:   append(make([]byte, 0, cap(b.buf)), b.buf...),
		state: b.state,
	}
}

// WriteTo writes the contents of the buffer to w. It satisfies io.WriterTo.
// The buffer is not modified.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

// prefix writes the punctuation required before the next element.
func (b *Builder) prefix() {
	switch b.state {
	case afterFieldName:
		b.appendByte(':')
	case afterValue:
		b.appendByte(',')
	}
}

// reserve ensures the buffer has room for n more bytes and returns it.
// Growth is geometric, by a factor of 1.5.
func (b *Builder) reserve(n int) []byte {
	if cap(b.buf)-len(b.buf) >= n {
		return b.buf
	}
	size := max((len(b.buf)+n)*3/2, minBuilderCap)
	buf := make([]byte, len(b.buf), size)
	copy(buf, b.buf)
	b.buf = buf
	return b.buf
}

func (b *Builder) appendByte(c byte) *Builder {
	b.buf = append(b.reserve(1), c)
	return b
}

func (b *Builder) appendQuoted(s mem.RO) *Builder {
	buf := append(b.reserve(s.Len()+2), '"')
	buf = escape.AppendQuote(buf, s)
	b.buf = append(buf, '"')
	return b
}

func (b *Builder) appendRaw(text []byte) *Builder {
	buf := append(b.reserve(len(text)+2), '"')
	buf = append(buf, text...)
	b.buf = append(buf, '"')
	return b
}
