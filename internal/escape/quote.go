// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// NeedsQuote reports whether src contains any byte or rune that AppendQuote
// would escape.
func NeedsQuote(src mem.RO) bool {
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		if b < ' ' || b == '"' || b == '\\' || b >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The result does not include the enclosing quotation marks.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()), src) }

// AppendQuote appends the escaped encoding of src to dst and returns the
// extended slice. Quotation marks, backslashes, control characters, and the
// separators U+2028 and U+2029 are escaped. Invalid UTF-8 is replaced by
// U+FFFD.
func AppendQuote(dst []byte, src mem.RO) []byte {
	if !NeedsQuote(src) {
		return mem.Append(dst, src)
	}
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					dst = append(dst, '\\', b)
				} else {
					dst = append(dst, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				dst = append(dst, '\\', byte(r))
			} else {
				dst = append(dst, byte(r))
			}
			continue
		}

		switch r {
		case '\ufffd': // replacement rune, or invalid UTF-8
			dst = append(dst, `\ufffd`...)
		case '\u2028': // line separator
			dst = append(dst, `\u2028`...)
		case '\u2029': // paragraph separator
			dst = append(dst, `\u2029`...)
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return dst
}
