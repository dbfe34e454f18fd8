// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont_test

import (
	"math"
	"strings"
	"testing"

	"github.com/buger/jsonparser"
	"github.com/creachadair/jsont"
	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name  string
		build func(*jsont.Builder)
		want  string
	}{
		{"Empty", func(*jsont.Builder) {}, ""},
		{"Object", func(b *jsont.Builder) {
			b.StartObject().
				FieldName("a").Int(1).
				FieldName("b").StartArray().Bool(true).Null().EndArray().
				EndObject()
		}, `{"a":1,"b":[true,null]}`},
		{"EmptyStructures", func(b *jsont.Builder) {
			b.StartArray().StartArray().EndArray().StartObject().EndObject().EndArray()
		}, `[[],{}]`},
		{"Nested", func(b *jsont.Builder) {
			b.StartArray().
				StartObject().FieldName("x").StartArray().EndArray().EndObject().
				Int64(-5).
				StartArray().Int(1).Int(2).EndArray().
				EndArray()
		}, `[{"x":[]},-5,[1,2]]`},
		{"TopLevel", func(b *jsont.Builder) {
			b.Int(1).Bool(false).String("x")
		}, `1,false,"x"`},
		{"Strings", func(b *jsont.Builder) {
			b.StartObject().FieldName("q\"k").String("a\"b\\c\n\x01").EndObject()
		}, `{"q\"k":"a\"b\\c\n\u0001"}`},
		{"Raw", func(b *jsont.Builder) {
			b.StartObject().
				RawFieldName([]byte(`k `)).RawString([]byte(`v\n`)).
				FieldName("n").RawValue([]byte("12.50")).
				EndObject()
		}, `{"k ":"v\n","n":12.50}`},
		{"Extremes", func(b *jsont.Builder) {
			b.StartArray().Int64(math.MaxInt64).Int64(math.MinInt64).EndArray()
		}, `[9223372036854775807,-9223372036854775808]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b jsont.Builder
			tc.build(&b)
			if got := b.Text(); got != tc.want {
				t.Errorf("Output: got %#q, want %#q", got, tc.want)
			}
			if b.Len() != len(tc.want) {
				t.Errorf("Len: got %d, want %d", b.Len(), len(tc.want))
			}
		})
	}
}

func TestBuilderFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{100, "100.0"},
		{-17, "-17.0"},
		{2.5, "2.5"},
		{-0.125, "-0.125"},
		{0.0001, "0.0001"},
		{1e6, "1e+06"},
		{1e-7, "1e-07"},
		{6.02e23, "6.02e+23"},
		{math.NaN(), "null"},
		{math.Inf(1), "null"},
		{math.Inf(-1), "null"},
	}
	tz := jsont.New[any](nil)
	for _, tc := range tests {
		var b jsont.Builder
		b.Float64(tc.input)
		if got := b.Text(); got != tc.want {
			t.Errorf("Float64(%v): got %q, want %q", tc.input, got, tc.want)
		}

		// Finite values read back as Float tokens with the same value.
		if math.IsNaN(tc.input) || math.IsInf(tc.input, 0) {
			continue
		}
		tz.Reset(b.Bytes())
		tz.SetFinal(true)
		if tok := tz.Next(); tok != jsont.Float {
			t.Errorf("Float64(%v): read back %v, want %v", tc.input, tok, jsont.Float)
		} else if v, err := tz.Float64(); err != nil || v != tc.input {
			t.Errorf("Float64(%v): read back %v, %v", tc.input, v, err)
		}
	}
}

func TestBuilderBuffer(t *testing.T) {
	t.Run("Growth", func(t *testing.T) {
		var b jsont.Builder
		if b.Cap() != 0 {
			t.Errorf("Zero Builder: Cap is %d, want 0", b.Cap())
		}
		b.Null()
		if b.Cap() != 64 {
			t.Errorf("After one value: Cap is %d, want 64", b.Cap())
		}

		var c jsont.Builder
		c.String(strings.Repeat("x", 100))
		if got, want := c.Cap(), 153; got != want {
			t.Errorf("After long string: Cap is %d, want %d", got, want)
		}

		d := jsont.NewBuilder(0)
		if d.Cap() != 64 {
			t.Errorf("NewBuilder(0): Cap is %d, want 64", d.Cap())
		}
		d.StartArray()
		for i := range 1000 {
			d.Int(i)
			if d.Cap() < d.Len() {
				t.Fatalf("Cap %d < Len %d", d.Cap(), d.Len())
			}
		}
		d.EndArray()
		if !jsoniter.Valid(d.Bytes()) {
			t.Error("Output is not valid JSON")
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := jsont.NewBuilder(256)
		b.StartArray().Int(1)
		b.Reset()
		if b.Len() != 0 || b.Cap() != 256 {
			t.Errorf("After Reset: Len %d, Cap %d", b.Len(), b.Cap())
		}
		if got := b.Int(2).Text(); got != "2" {
			t.Errorf("After Reset: got %q, want %q", got, "2")
		}
	})

	t.Run("Detach", func(t *testing.T) {
		var b jsont.Builder
		b.StartArray().Int(1).EndArray()
		got := b.Detach()
		if string(got) != "[1]" {
			t.Errorf("Detach: got %q, want %q", got, "[1]")
		}
		if b.Len() != 0 || b.Cap() != 0 {
			t.Errorf("After Detach: Len %d, Cap %d", b.Len(), b.Cap())
		}
		if out := b.Bool(true).Text(); out != "true" {
			t.Errorf("After Detach: got %q, want %q", out, "true")
		}
		if string(got) != "[1]" {
			t.Errorf("Detached buffer changed: %q", got)
		}
	})

	t.Run("Clone", func(t *testing.T) {
		var b jsont.Builder
		b.StartArray().Int(1)
		c := b.Clone()
		c.Int(2).EndArray()
		b.EndArray()
		if got := b.Text(); got != "[1]" {
			t.Errorf("Original: got %q, want %q", got, "[1]")
		}
		if got := c.Text(); got != "[1,2]" {
			t.Errorf("Clone: got %q, want %q", got, "[1,2]")
		}
	})

	t.Run("WriteTo", func(t *testing.T) {
		var b jsont.Builder
		b.StartObject().FieldName("ok").Bool(true).EndObject()
		var sb strings.Builder
		n, err := b.WriteTo(&sb)
		if err != nil {
			t.Fatalf("WriteTo failed: %v", err)
		}
		if n != int64(b.Len()) || sb.String() != b.Text() {
			t.Errorf("WriteTo: wrote %d bytes %q, want %q", n, sb.String(), b.Text())
		}
	})
}

func TestBuilderRoundTrip(t *testing.T) {
	var b jsont.Builder
	b.StartObject().
		FieldName("name").String("tab\there \"quoted\"").
		FieldName("n").Int64(-42).
		FieldName("pi").Float64(3.25).
		FieldName("ok").Bool(true).
		FieldName("none").Null().
		FieldName("list").StartArray().Int(1).String("two").StartObject().EndObject().EndArray().
		EndObject()
	data := b.Bytes()

	t.Run("Tokenizer", func(t *testing.T) {
		want := []tokText{
			{jsont.ObjectStart, ""},
			{jsont.FieldName, "name"}, {jsont.String, `tab\there \"quoted\"`},
			{jsont.FieldName, "n"}, {jsont.Integer, "-42"},
			{jsont.FieldName, "pi"}, {jsont.Float, "3.25"},
			{jsont.FieldName, "ok"}, {jsont.True, ""},
			{jsont.FieldName, "none"}, {jsont.Null, ""},
			{jsont.FieldName, "list"},
			{jsont.ArrayStart, ""}, {jsont.Integer, "1"}, {jsont.String, "two"},
			{jsont.ObjectStart, ""}, {jsont.ObjectEnd, ""},
			{jsont.ArrayEnd, ""},
			{jsont.ObjectEnd, ""},
		}
		tz := jsont.New[any](nil)
		got := scanAll(tz, string(data))
		if tz.Err() != nil {
			t.Fatalf("Tokenizing builder output: %v", tz.Err())
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Tokens: (-want, +got)\n%s", diff)
		}
	})

	t.Run("jsoniter", func(t *testing.T) {
		if !jsoniter.Valid(data) {
			t.Fatalf("Output is not valid JSON: %s", data)
		}
		var v struct {
			Name string  `json:"name"`
			N    int     `json:"n"`
			Pi   float64 `json:"pi"`
			OK   bool    `json:"ok"`
			None *int    `json:"none"`
			List []any   `json:"list"`
		}
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &v); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if v.Name != "tab\there \"quoted\"" || v.N != -42 || v.Pi != 3.25 || !v.OK || v.None != nil || len(v.List) != 3 {
			t.Errorf("Unmarshal: got %+v", v)
		}
	})

	t.Run("jsonparser", func(t *testing.T) {
		if s, err := jsonparser.GetString(data, "name"); err != nil || s != "tab\there \"quoted\"" {
			t.Errorf("GetString(name): got %q, %v", s, err)
		}
		if n, err := jsonparser.GetInt(data, "n"); err != nil || n != -42 {
			t.Errorf("GetInt(n): got %d, %v", n, err)
		}
		if f, err := jsonparser.GetFloat(data, "pi"); err != nil || f != 3.25 {
			t.Errorf("GetFloat(pi): got %v, %v", f, err)
		}
		if ok, err := jsonparser.GetBoolean(data, "ok"); err != nil || !ok {
			t.Errorf("GetBoolean(ok): got %v, %v", ok, err)
		}
		if _, vt, _, err := jsonparser.Get(data, "none"); err != nil || vt != jsonparser.Null {
			t.Errorf("Get(none): got type %v, %v", vt, err)
		}
		var types []jsonparser.ValueType
		if _, err := jsonparser.ArrayEach(data, func(_ []byte, vt jsonparser.ValueType, _ int, err error) {
			types = append(types, vt)
		}, "list"); err != nil {
			t.Errorf("ArrayEach(list): %v", err)
		}
		if diff := cmp.Diff([]jsonparser.ValueType{
			jsonparser.Number, jsonparser.String, jsonparser.Object,
		}, types); diff != "" {
			t.Errorf("List types: (-want, +got)\n%s", diff)
		}
	})
}
