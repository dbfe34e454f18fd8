// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values,
// and a parser that constructs syntax trees from JSON source.
package ast

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/creachadair/jsont"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// JSON returns the minified JSON encoding of the value.
	JSON() string

	// encode appends the encoding of the value to b.
	encode(b *jsont.Builder)
}

// An Object is a collection of key-value members.
type Object []*Member

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of the members of o, in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// JSON satisfies the Value interface.
func (o Object) JSON() string { return toJSON(o) }

func (o Object) encode(b *jsont.Builder) {
	b.StartObject()
	for _, m := range o {
		m.encodeMember(b)
	}
	b.EndObject()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, val Value) *Member { return &Member{Key: key, Value: val} }

// JSON satisfies the Value interface. The encoding of a member is an object
// with that member alone.
func (m *Member) JSON() string { return toJSON(m) }

func (m *Member) encode(b *jsont.Builder) {
	b.StartObject()
	m.encodeMember(b)
	b.EndObject()
}

func (m *Member) encodeMember(b *jsont.Builder) {
	b.FieldName(m.Key)
	if m.Value == nil {
		b.Null()
	} else {
		m.Value.encode(b)
	}
}

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string { return toJSON(a) }

func (a Array) encode(b *jsont.Builder) {
	b.StartArray()
	for _, v := range a {
		if v == nil {
			b.Null()
		} else {
			v.encode(b)
		}
	}
	b.EndArray()
}

// A String is a string value. The value is stored decoded.
type String string

// JSON satisfies the Value interface.
func (s String) JSON() string { return jsont.Quote(string(s)) }

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

func (s String) encode(b *jsont.Builder) { b.String(string(s)) }

// An Integer is an integer value.
type Integer int64

// Int constructs an Integer from an int.
func Int(z int) Integer { return Integer(z) }

// JSON satisfies the Value interface.
func (z Integer) JSON() string { return toJSON(z) }

func (z Integer) encode(b *jsont.Builder) { b.Int64(int64(z)) }

// A Float is a floating-point value.
type Float float64

// JSON satisfies the Value interface. NaN and infinities are encoded as null.
func (f Float) JSON() string { return toJSON(f) }

func (f Float) encode(b *jsont.Builder) { b.Float64(float64(f)) }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (v Bool) JSON() string { return toJSON(v) }

func (v Bool) encode(b *jsont.Builder) { b.Bool(bool(v)) }

type null struct{}

// Null represents the null constant.
var Null Value = null{}

func (null) JSON() string            { return "null" }
func (null) encode(b *jsont.Builder) { b.Null() }

// Encode appends the minified JSON encoding of v to b. A nil Value is encoded
// as null.
func Encode(b *jsont.Builder, v Value) {
	if v == nil {
		b.Null()
		return
	}
	v.encode(b)
}

func toJSON(v Value) string {
	var b jsont.Builder
	v.encode(&b)
	return b.Text()
}

// ToValue converts a Go value into an equivalent AST value. It handles nil,
// Booleans, strings, integer and floating-point numbers, slices, and maps
// with string keys. Map keys are sorted. A Value is returned unchanged.
// ToValue panics if x has any other type.
func ToValue(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case int:
		return Integer(v)
	case int64:
		return Integer(v)
	case float64:
		return Float(v)
	case []any:
		out := make(Array, len(v))
		for i, elt := range v {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		out := make(Object, len(keys))
		for i, key := range keys {
			out[i] = Field(key, ToValue(v[key]))
		}
		return out
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return Integer(u)
		}
		return Float(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Slice, reflect.Array:
		out := make(Array, rv.Len())
		for i := range out {
			out[i] = ToValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(a.String(), b.String())
		})
		out := make(Object, len(keys))
		for i, key := range keys {
			out[i] = Field(key.String(), ToValue(rv.MapIndex(key).Interface()))
		}
		return out
	}
	panic(fmt.Sprintf("ast: cannot convert %T to a Value", x))
}
