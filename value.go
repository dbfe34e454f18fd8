// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"errors"
	"math"
	"strconv"

	"github.com/creachadair/jsont/internal/escape"

	"go4.org/mem"
)

// The methods in this file access the value of the current token. None of
// them changes the state of the tokenizer.

// HasValue reports whether the current token has a value. This is true after
// Next returns Integer, Float, String, or FieldName.
func (t *Tokenizer[T]) HasValue() bool { return t.hasValue }

// Text returns the undecoded text of the current value, or nil if the current
// token has no value. For strings and field names the text excludes the
// quotation marks, and escape sequences are not decoded.
//
// The result is a view of the input, and is only valid until the input is
// replaced by Reset or Continue. The caller must not modify it.
func (t *Tokenizer[T]) Text() []byte {
	if !t.hasValue {
		return nil
	}
	return t.input[t.vpos:t.vend:t.vend]
}

// Copy returns a copy of the undecoded text of the current value, or nil if
// the current token has no value.
func (t *Tokenizer[T]) Copy() []byte {
	if !t.hasValue {
		return nil
	}
	return append([]byte{}, t.Text()...)
}

// StringValue returns a copy of the undecoded text of the current value as a
// string, or "" if the current token has no value.
func (t *Tokenizer[T]) StringValue() string { return string(t.Text()) }

// Equal reports whether the current token has a value whose undecoded text is
// equal to b. It does not copy.
func (t *Tokenizer[T]) Equal(b []byte) bool {
	return t.hasValue && mem.B(t.Text()).Equal(mem.B(b))
}

// EqualString reports whether the current token has a value whose undecoded
// text is equal to s. It does not copy.
func (t *Tokenizer[T]) EqualString(s string) bool {
	return t.hasValue && mem.B(t.Text()).EqualString(s)
}

// Unquote returns the text of the current value with escape sequences
// decoded. Invalid escapes are replaced by the Unicode replacement rune;
// Unquote reports an error for an incomplete escape sequence, or if the
// current token has no value.
func (t *Tokenizer[T]) Unquote() ([]byte, error) {
	if !t.hasValue {
		return nil, ErrNoValue
	}
	return escape.Unquote(mem.B(t.Text()))
}

// Span returns the span of the current value relative to the start of the
// stream. For strings the span excludes the quotation marks. If the current
// token has no value, Span returns an empty span at the current offset.
func (t *Tokenizer[T]) Span() Span {
	if !t.hasValue {
		return Span{Pos: t.base + t.pos, End: t.base + t.pos}
	}
	return Span{Pos: t.base + t.vpos, End: t.base + t.vend}
}

// Int64 returns the current value as a signed 64-bit integer. It converts the
// longest prefix of the value that is an integer, so a Float value such as
// 12.34 yields 12.
//
// If the value is out of range, Int64 returns math.MaxInt64 or math.MinInt64
// according to its sign, together with ErrRange. If the current token has no
// value, Int64 returns math.MinInt64 and ErrNoValue; if the value has no
// leading digits it returns math.MinInt64 and ErrSyntax.
func (t *Tokenizer[T]) Int64() (int64, error) {
	if !t.hasValue {
		return math.MinInt64, ErrNoValue
	}
	return parseInt(t.Text())
}

// Float64 returns the current value as a floating-point number.
//
// If the current token has no value, Float64 returns NaN and ErrNoValue. If
// the value is not a number, it returns NaN and ErrSyntax. If the value is
// out of range, it returns ±Inf (or 0 for underflow) and ErrRange.
func (t *Tokenizer[T]) Float64() (float64, error) {
	if !t.hasValue {
		return math.NaN(), ErrNoValue
	}
	v, err := mem.ParseFloat(mem.B(t.Text()), 64)
	if errors.Is(err, strconv.ErrRange) {
		return v, ErrRange
	} else if err != nil {
		return math.NaN(), ErrSyntax
	}
	return v, nil
}
