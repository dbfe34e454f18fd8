// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"errors"
	"fmt"
)

// Causes of structural and lexical errors. After one of these is reported the
// tokenizer returns Error from every call to Next until it is Reset.
// The error reported by Err wraps one of these values; use errors.Is to
// recover it.
var (
	ErrStackSize           = errors.New("stack size limit exceeded")
	ErrUnexpectedObjectEnd = errors.New("unexpected end of object while not in an object")
	ErrUnexpectedArrayEnd  = errors.New("unexpected end of array while not in an array")
	ErrUnexpectedComma     = errors.New(`unexpected ","`)
	ErrUnexpectedColon     = errors.New(`unexpected ":"`)
	ErrUnexpectedInput     = errors.New("unexpected input")

	// ErrUnexpectedEOF is reported only in final mode (see SetFinal), when the
	// input ends inside a token or with structures still open.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
)

// Conversion errors reported by Int64 and Float64. These do not affect the
// state of the tokenizer.
var (
	// ErrNoValue means the current token has no value to convert.
	ErrNoValue = errors.New("no value available")

	// ErrSyntax means the value does not begin with a number.
	ErrSyntax = errors.New("value is not a number")

	// ErrRange means the number is out of range for the target type.
	// The accompanying value is saturated.
	ErrRange = errors.New("value out of range")
)

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

// Offset returns the absolute input offset at which err occurred, or -1 if
// err did not originate from a Tokenizer.
func Offset(err error) int {
	var p posError
	if errors.As(err, &p) {
		return p.pos
	}
	return -1
}
