// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

// DefaultDepth is the structure stack capacity used by New.
const DefaultDepth = 512

// A structStack records the currently open objects and arrays. Its storage is
// allocated once at construction and never grows.
type structStack struct {
	buf []Token // ObjectStart or ArrayStart; len(buf) is the capacity
	n   int
}

func newStructStack(size int) structStack {
	return structStack{buf: make([]Token, size)}
}

// push adds tok to the stack, and reports false if the stack is full.
func (s *structStack) push(tok Token) bool {
	if s.n == len(s.buf) {
		return false
	}
	s.buf[s.n] = tok
	s.n++
	return true
}

// pop removes the top of the stack if it is want, and reports whether it did.
func (s *structStack) pop(want Token) bool {
	if s.top() != want {
		return false
	}
	s.n--
	return true
}

// top returns the innermost open structure, or End if there is none.
func (s *structStack) top() Token {
	if s.n == 0 {
		return End
	}
	return s.buf[s.n-1]
}

func (s *structStack) reset() { s.n = 0 }
