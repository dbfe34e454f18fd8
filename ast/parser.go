// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jsont"
)

// Parse parses and returns the JSON values from r. In case of error, any
// complete values already parsed are returned along with the error.
func Parse(r io.Reader) ([]Value, error) {
	return NewParser(jsont.NewStream(r)).parseAll()
}

// ParseSingle parses and returns a single JSON value from r. It reports an
// error if r contains no value, or more than one.
func ParseSingle(r io.Reader) (Value, error) {
	p := NewParser(jsont.NewStream(r))
	v, err := p.parseOne()
	if err == io.EOF {
		return nil, errors.New("no value found")
	} else if err != nil {
		return nil, err
	}
	if _, err := p.parseOne(); err == nil {
		return nil, errors.New("extra values after input")
	} else if err != io.EOF {
		return nil, err
	}
	return v, nil
}

// A Parser constructs syntax trees from a Stream. It checks the structure of
// objects and arrays that the tokenizer itself does not: every member of an
// object has exactly one key and one value.
//
// After a Parser reports an error other than io.EOF, every later call to Next
// reports the same error.
type Parser struct {
	st  *jsont.Stream
	h   parseHandler
	err error
}

// NewParser constructs a Parser that reads values from st. The caller may
// configure st (for example its chunk size or logger) before parsing.
func NewParser(st *jsont.Stream) *Parser { return &Parser{st: st} }

// Next parses and returns the next value from the input. It returns io.EOF
// when no further values are available.
func (p *Parser) Next() (Value, error) { return p.parseOne() }

func (p *Parser) parseOne() (Value, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.h.reset()
	if err := p.st.ParseOne(&p.h); err != nil {
		if err != io.EOF {
			p.err = err
		}
		return nil, err
	}
	if !p.h.done {
		p.err = errors.New("incomplete value")
		return nil, p.err
	}
	return p.h.result, nil
}

func (p *Parser) parseAll() ([]Value, error) {
	var vs []Value
	for {
		v, err := p.parseOne()
		if err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

// A frame is an object or array under construction.
type frame struct {
	obj    Object
	arr    Array
	isObj  bool
	member *Member // the member awaiting a value, or nil
}

// A parseHandler implements the jsont.Handler interface to construct abstract
// syntax trees for JSON values.
type parseHandler struct {
	stk    []*frame
	result Value
	done   bool
}

func (h *parseHandler) reset() {
	h.stk = h.stk[:0]
	h.result, h.done = nil, false
}

func (h *parseHandler) top() *frame {
	if len(h.stk) == 0 {
		return nil
	}
	return h.stk[len(h.stk)-1]
}

// add delivers a complete value to the innermost open structure, or records
// it as the result if no structure is open.
func (h *parseHandler) add(loc jsont.Anchor, v Value) error {
	f := h.top()
	switch {
	case f == nil:
		h.result, h.done = v, true
	case !f.isObj:
		f.arr = append(f.arr, v)
	case f.member == nil:
		return syntaxError(loc, "missing key for object member")
	default:
		f.member.Value = v
		f.obj = append(f.obj, f.member)
		f.member = nil
	}
	return nil
}

func (h *parseHandler) BeginObject(loc jsont.Anchor) error {
	if err := h.checkValue(loc); err != nil {
		return err
	}
	h.stk = append(h.stk, &frame{isObj: true, obj: Object{}})
	return nil
}

func (h *parseHandler) EndObject(loc jsont.Anchor) error {
	f := h.top()
	if f.member != nil {
		return syntaxError(loc, fmt.Sprintf("missing value for member %q", f.member.Key))
	}
	h.stk = h.stk[:len(h.stk)-1]
	return h.add(loc, f.obj)
}

func (h *parseHandler) BeginArray(loc jsont.Anchor) error {
	if err := h.checkValue(loc); err != nil {
		return err
	}
	h.stk = append(h.stk, &frame{arr: Array{}})
	return nil
}

func (h *parseHandler) EndArray(loc jsont.Anchor) error {
	f := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return h.add(loc, f.arr)
}

func (h *parseHandler) BeginMember(loc jsont.Anchor) error {
	f := h.top()
	if f.member != nil {
		return syntaxError(loc, fmt.Sprintf("missing value for member %q", f.member.Key))
	}
	key, err := loc.Unquote()
	if err != nil {
		return syntaxError(loc, err.Error())
	}
	f.member = &Member{Key: string(key)}
	return nil
}

func (h *parseHandler) Value(loc jsont.Anchor) error {
	if err := h.checkValue(loc); err != nil {
		return err
	}
	v, err := decodeValue(loc)
	if err != nil {
		return err
	}
	return h.add(loc, v)
}

func (h *parseHandler) EndOfInput(loc jsont.Anchor) {}

// checkValue reports an error if a value may not begin at loc.
func (h *parseHandler) checkValue(loc jsont.Anchor) error {
	if f := h.top(); f != nil && f.isObj && f.member == nil {
		return syntaxError(loc, fmt.Sprintf("expected object key, got %v", loc.Token()))
	}
	return nil
}

// decodeValue converts the scalar value at loc into a Value. An integer that
// does not fit in an int64 is stored as a Float.
func decodeValue(loc jsont.Anchor) (Value, error) {
	switch tok := loc.Token(); tok {
	case jsont.True, jsont.False:
		return Bool(tok == jsont.True), nil
	case jsont.Null:
		return Null, nil
	case jsont.String:
		s, err := loc.Unquote()
		if err != nil {
			return nil, syntaxError(loc, err.Error())
		}
		return String(s), nil
	case jsont.Integer:
		if z, err := loc.Int64(); err == nil {
			return Integer(z), nil
		}
		fallthrough
	case jsont.Float:
		f, err := loc.Float64()
		if err != nil && !errors.Is(err, jsont.ErrRange) {
			return nil, syntaxError(loc, err.Error())
		}
		return Float(f), nil
	default:
		return nil, fmt.Errorf("unknown value %v", tok)
	}
}

func syntaxError(loc jsont.Anchor, msg string) error {
	pos := loc.Location()
	return &jsont.SyntaxError{Location: pos.First, Offset: pos.Pos, Message: msg}
}
