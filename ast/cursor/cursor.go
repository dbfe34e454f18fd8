// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the AST of a JSON value.
package cursor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jsont/ast"
)

// ErrNotFound is reported when a path refers to a key or index that is not
// present in the value being traversed.
var ErrNotFound = errors.New("not found")

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method.  This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	return result[T](New(v).Down(path...))
}

// Pointer resolves a JSON Pointer (RFC 6901) against v and returns the value
// it refers to. See Cursor.Pointer.
func Pointer[T ast.Value](v ast.Value, ptr string) (T, error) {
	return result[T](New(v).Pointer(ptr))
}

func result[T ast.Value](c *Cursor) (T, error) {
	var zero T
	if err := c.Err(); err != nil {
		return zero, err
	}
	v, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("wrong value type %T", c.Value())
	}
	return v, nil
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org ast.Value
	stk []ast.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []ast.Value {
	return append([]ast.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings (denoting object
// keys), integers (denoting offsets into arrays), functions (see below), or
// nil.  If the path is valid, the element reached is returned. If the path
// cannot be completely consumed, traversal stops and an error is recorded. Use
// Err to recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves an object member with that name. If this is the last
// element of the path, the member is returned; otherwise, subsequent path
// elements continue from the value of that member. Use a nil path element to
// resolve an object member at the end of a path.
//
// If a path element is an integer, the corresponding value must be an array or
// object, and the integer resolves to an index in the array or object.
// Negative indices count backward from the end (-1 is last, -2 second last).
// An error is reported if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next object in the sequence. The function must have a signature
//
//	func(ast.Value) (ast.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		cur = c.enterMember(cur)

		switch t := elt.(type) {
		case string:
			o, ok := cur.(ast.Object)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, elt)
			}
			m := o.Find(t)
			if m == nil {
				return c.setErrorf("key %q: %w", t, ErrNotFound)
			}
			cur = c.push(m)

		case int:
			next, err := index(cur, t)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case nil:
			// Do nothing. This case supports indirecting through a member at the
			// end of the path.

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

// Pointer traverses the JSON Pointer (RFC 6901) ptr starting from the current
// value. Each reference token selects a member of an object by key, or an
// element of an array by its decimal index. Unlike Down, the cursor always
// ends on a value rather than an object member.
func (c *Cursor) Pointer(ptr string) *Cursor {
	c.err = nil
	toks, err := splitPointer(ptr)
	if err != nil {
		c.err = err
		return c
	}
	cur := c.Value()
	for _, tok := range toks {
		cur = c.enterMember(cur)
		switch e := cur.(type) {
		case ast.Object:
			m := e.Find(tok)
			if m == nil {
				return c.setErrorf("key %q: %w", tok, ErrNotFound)
			}
			cur = c.push(m.Value)
		case ast.Array:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || (len(tok) > 1 && tok[0] == '0') {
				return c.setErrorf("invalid array index %q", tok)
			}
			next, err := index(e, i)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)
		default:
			return c.setErrorf("cannot traverse %T with %q", cur, tok)
		}
	}
	return c
}

// enterMember returns the value of cur if it is an object member, or else
// cur itself.
func (c *Cursor) enterMember(cur ast.Value) ast.Value {
	if m, ok := cur.(*ast.Member); ok {
		return c.push(m.Value)
	}
	return cur
}

func (c *Cursor) push(v ast.Value) ast.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func index(v ast.Value, i int) (ast.Value, error) {
	switch e := v.(type) {
	case ast.Array:
		j, ok := fixArrayBound(len(e), i)
		if !ok {
			return nil, fmt.Errorf("array index %d out of bounds (n=%d): %w", i, len(e), ErrNotFound)
		}
		return e[j], nil
	case ast.Object:
		j, ok := fixArrayBound(len(e), i)
		if !ok {
			return nil, fmt.Errorf("object index %d out of bounds (n=%d): %w", i, len(e), ErrNotFound)
		}
		return e[j], nil
	default:
		return nil, fmt.Errorf("cannot traverse %T with %v", v, i)
	}
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

var unescapeToken = strings.NewReplacer("~1", "/", "~0", "~")

// splitPointer splits ptr into its unescaped reference tokens. The empty
// pointer refers to the whole value and has no tokens.
func splitPointer(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	} else if ptr[0] != '/' {
		return nil, fmt.Errorf("invalid pointer %q: must begin with /", ptr)
	}
	toks := strings.Split(ptr[1:], "/")
	for i, tok := range toks {
		toks[i] = unescapeToken.Replace(tok)
	}
	return toks, nil
}
