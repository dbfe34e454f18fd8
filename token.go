// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

// Token is the type of a lexical token produced by a Tokenizer.
//
// The numeric values of the exported constants are stable and may be stored
// or exchanged with other programs.
type Token byte

// Constants defining the valid Token values.
const (
	End         Token = iota // input exhausted, or end of stream
	Error                    // structural or lexical error (see Err)
	ObjectStart              // left brace "{"
	ObjectEnd                // right brace "}"
	ArrayStart               // left square bracket "["
	ArrayEnd                 // right square bracket "]"
	True                     // constant: true
	False                    // constant: false
	Null                     // constant: null
	Integer                  // number with no fraction or exponent
	Float                    // number with fraction and/or exponent
	String                   // string value
	FieldName                // string in the key position of an object

	// Internal parse states. These are never returned by Next.
	comma
	colon
)

var tokenStr = [...]string{
	End:         "end",
	Error:       "error",
	ObjectStart: `"{"`,
	ObjectEnd:   `"}"`,
	ArrayStart:  `"["`,
	ArrayEnd:    `"]"`,
	True:        "true",
	False:       "false",
	Null:        "null",
	Integer:     "integer",
	Float:       "float",
	String:      "string",
	FieldName:   "field name",
	comma:       `","`,
	colon:       `":"`,
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return "invalid token"
	}
	return tokenStr[v]
}

// HasValue reports whether t carries a value span (Integer, Float, String,
// and FieldName).
func (t Token) HasValue() bool { return t >= Integer && t <= FieldName }

// IsNumber reports whether t is Integer or Float.
func (t Token) IsNumber() bool { return t == Integer || t == Float }

// completesValue reports whether a comma may legally follow t.
func (t Token) completesValue() bool {
	switch t {
	case True, False, Null, Integer, Float, String, FieldName, ObjectEnd, ArrayEnd:
		return true
	}
	return false
}
