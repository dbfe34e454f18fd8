// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"errors"
	"math"
)

// scanNumber scans the text of a JSON number at the front of buf, where buf[0]
// is a sign or a digit. It returns the length n of the number, and whether it
// has a fraction or an exponent.
//
// If buf ends before a byte that terminates the number, more is true and the
// number may continue in subsequent input. If the number is malformed, err is
// non-nil and buf[n] is the offending byte.
func scanNumber(buf []byte) (n int, isFloat, more bool, err error) {
	i := 0
	if buf[i] == '-' {
		i++
		if i == len(buf) {
			return i, false, true, nil
		}
	}

	// Integer part. A leading zero must be the only digit.
	switch {
	case buf[i] == '0':
		i++
		if i < len(buf) && isDigit(buf[i]) {
			return i, false, false, errors.New("extra leading zeroes")
		}
	case isDigit(buf[i]):
		i = skipDigits(buf, i)
	default:
		return i, false, false, errors.New("missing integer digits")
	}
	if i == len(buf) {
		return i, false, true, nil
	}

	// Fraction: "." followed by at least one digit.
	if buf[i] == '.' {
		isFloat = true
		i++
		j := skipDigits(buf, i)
		if j == len(buf) {
			return j, true, true, nil
		} else if j == i {
			return j, true, false, errors.New("no digits after decimal point")
		}
		i = j
	}

	// Exponent: "e" or "E", an optional sign, and at least one digit.
	if buf[i] == 'e' || buf[i] == 'E' {
		isFloat = true
		i++
		if i < len(buf) && (buf[i] == '+' || buf[i] == '-') {
			i++
		}
		j := skipDigits(buf, i)
		if j == len(buf) {
			return j, true, true, nil
		} else if j == i {
			return j, true, false, errors.New("missing exponent digits")
		}
		i = j
	}
	return i, isFloat, false, nil
}

func skipDigits(buf []byte, i int) int {
	for i < len(buf) && isDigit(buf[i]) {
		i++
	}
	return i
}

// parseInt parses the longest prefix of text that is an optionally-signed
// decimal integer. Parsing stops at the first non-digit, so "12.5" yields 12.
//
// If the value does not fit in an int64, parseInt returns math.MaxInt64 or
// math.MinInt64 according to the sign, and ErrRange. If text has no digits,
// parseInt returns math.MinInt64 and ErrSyntax.
func parseInt(text []byte) (int64, error) {
	i, neg := 0, false
	if len(text) != 0 {
		switch text[0] {
		case '-':
			neg = true
			i++
		case '+':
			i++
		}
	}

	// Values above cutoff*10 + cutlim are out of range.
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	cutoff, cutlim := limit/10, limit%10

	var acc uint64
	var digits, over bool
	for ; i < len(text) && isDigit(text[i]); i++ {
		d := uint64(text[i] - '0')
		digits = true
		if over || acc > cutoff || (acc == cutoff && d > cutlim) {
			over = true
			continue
		}
		acc = acc*10 + d
	}

	switch {
	case !digits:
		return math.MinInt64, ErrSyntax
	case over && neg:
		return math.MinInt64, ErrRange
	case over:
		return math.MaxInt64, ErrRange
	case neg:
		return -int64(acc), nil // wraps correctly for math.MinInt64
	default:
		return int64(acc), nil
	}
}

func isNumStart(b byte) bool { return b == '-' || isDigit(b) }
func isDigit(b byte) bool    { return '0' <= b && b <= '9' }
