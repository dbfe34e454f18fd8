// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jsont"
)

// mustNext tokenizes input in final mode and checks that its first token is
// want.
func mustNext(t *testing.T, input string, want jsont.Token) *jsont.Tokenizer[any] {
	t.Helper()
	tz := jsont.New[any](nil)
	tz.Reset([]byte(input))
	tz.SetFinal(true)
	if got := tz.Next(); got != want {
		t.Fatalf("Next(%#q): got %v, want %v (err=%v)", input, got, want, tz.Err())
	}
	return tz
}

func TestInt64(t *testing.T) {
	tests := []struct {
		input string
		tok   jsont.Token
		want  int64
		err   error
	}{
		{"0", jsont.Integer, 0, nil},
		{"-0", jsont.Integer, 0, nil},
		{"15", jsont.Integer, 15, nil},
		{"-2501", jsont.Integer, -2501, nil},
		{"9223372036854775807", jsont.Integer, math.MaxInt64, nil},
		{"-9223372036854775808", jsont.Integer, math.MinInt64, nil},
		{"9223372036854775808", jsont.Integer, math.MaxInt64, jsont.ErrRange},
		{"99999999999999999999", jsont.Integer, math.MaxInt64, jsont.ErrRange},
		{"-9223372036854775809", jsont.Integer, math.MinInt64, jsont.ErrRange},
		{"-99999999999999999999", jsont.Integer, math.MinInt64, jsont.ErrRange},

		// The longest integer prefix is converted.
		{"12.34", jsont.Float, 12, nil},
		{"3e5", jsont.Float, 3, nil},

		// String contents are converted as written.
		{`"25"`, jsont.String, 25, nil},
		{`"+7x"`, jsont.String, 7, nil},
		{`"abc"`, jsont.String, math.MinInt64, jsont.ErrSyntax},
		{`""`, jsont.String, math.MinInt64, jsont.ErrSyntax},
		{`"-"`, jsont.String, math.MinInt64, jsont.ErrSyntax},
		{`" 12"`, jsont.String, math.MinInt64, jsont.ErrSyntax},

		// Tokens without values.
		{"true", jsont.True, math.MinInt64, jsont.ErrNoValue},
		{"null", jsont.Null, math.MinInt64, jsont.ErrNoValue},
		{"[", jsont.ArrayStart, math.MinInt64, jsont.ErrNoValue},
	}
	for _, tc := range tests {
		tz := mustNext(t, tc.input, tc.tok)
		got, err := tz.Int64()
		if got != tc.want || !errors.Is(err, tc.err) || (err == nil) != (tc.err == nil) {
			t.Errorf("Int64(%#q): got %v, %v; want %v, %v", tc.input, got, err, tc.want, tc.err)
		}

		// A missing value, missing digits, and overflow are reported apart.
		for _, other := range []error{jsont.ErrNoValue, jsont.ErrSyntax, jsont.ErrRange} {
			if other != tc.err && errors.Is(err, other) {
				t.Errorf("Int64(%#q): error %v matches %v", tc.input, err, other)
			}
		}

		// Conversion errors do not affect the tokenizer.
		if tz.Err() != nil {
			t.Errorf("Int64(%#q): tokenizer error %v", tc.input, tz.Err())
		}
	}
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		input string
		tok   jsont.Token
		want  float64
		err   error
	}{
		{"0", jsont.Integer, 0, nil},
		{"-17", jsont.Integer, -17, nil},
		{"2.5", jsont.Float, 2.5, nil},
		{"-0.001E-1", jsont.Float, -0.0001, nil},
		{"6.02e23", jsont.Float, 6.02e23, nil},
		{"1e400", jsont.Float, math.Inf(1), jsont.ErrRange},
		{"-1e400", jsont.Float, math.Inf(-1), jsont.ErrRange},
		{`"0.25"`, jsont.String, 0.25, nil},
	}
	for _, tc := range tests {
		tz := mustNext(t, tc.input, tc.tok)
		got, err := tz.Float64()
		if got != tc.want || !errors.Is(err, tc.err) || (err == nil) != (tc.err == nil) {
			t.Errorf("Float64(%#q): got %v, %v; want %v, %v", tc.input, got, err, tc.want, tc.err)
		}
	}

	for _, tc := range []struct {
		input string
		tok   jsont.Token
		err   error
	}{
		{`"x"`, jsont.String, jsont.ErrSyntax},
		{"false", jsont.False, jsont.ErrNoValue},
		{"{", jsont.ObjectStart, jsont.ErrNoValue},
	} {
		tz := mustNext(t, tc.input, tc.tok)
		got, err := tz.Float64()
		if !math.IsNaN(got) || !errors.Is(err, tc.err) {
			t.Errorf("Float64(%#q): got %v, %v; want NaN, %v", tc.input, got, err, tc.err)
		}
	}
}

func TestValueText(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		const wantText = `a\tb c\n` // as written, without quotes
		const wantDec = "a\tb c\n"  // with escapes undone
		tz := mustNext(t, `"a\tb c\n"`, jsont.String)
		if !tz.HasValue() {
			t.Error("HasValue: got false, want true")
		}
		if got := string(tz.Text()); got != wantText {
			t.Errorf("Text: got %#q, want %#q", got, wantText)
		}
		if got := tz.StringValue(); got != wantText {
			t.Errorf("StringValue: got %#q, want %#q", got, wantText)
		}
		if u, err := tz.Unquote(); err != nil {
			t.Errorf("Unquote failed: %v", err)
		} else if got := string(u); got != wantDec {
			t.Errorf("Unquote: got %#q, want %#q", got, wantDec)
		}
		if !tz.EqualString(wantText) {
			t.Errorf("EqualString(%#q): got false, want true", wantText)
		}
		if tz.EqualString(wantDec) {
			t.Errorf("EqualString(%#q): got true, want false", wantDec)
		}
		if !tz.Equal([]byte(wantText)) {
			t.Errorf("Equal(%#q): got false, want true", wantText)
		}
	})

	t.Run("Copy", func(t *testing.T) {
		input := []byte(`["abc"]`)
		tz := jsont.New[any](nil)
		tz.Reset(input)
		tz.Next()
		tz.Next()
		view, cp := tz.Text(), tz.Copy()
		input[2] = 'X'
		if got := string(view); got != "Xbc" {
			t.Errorf("Text view: got %q, want %q", got, "Xbc")
		}
		if got := string(cp); got != "abc" {
			t.Errorf("Copy: got %q, want %q", got, "abc")
		}
	})

	t.Run("NoValue", func(t *testing.T) {
		tz := mustNext(t, "null", jsont.Null)
		if tz.HasValue() {
			t.Error("HasValue: got true, want false")
		}
		if got := tz.Text(); got != nil {
			t.Errorf("Text: got %q, want nil", got)
		}
		if got := tz.Copy(); got != nil {
			t.Errorf("Copy: got %q, want nil", got)
		}
		if tz.EqualString("null") || tz.Equal(nil) {
			t.Error("Equal: got true for a token with no value")
		}
		if _, err := tz.Unquote(); !errors.Is(err, jsont.ErrNoValue) {
			t.Errorf("Unquote: got %v, want %v", err, jsont.ErrNoValue)
		}
		if got, want := tz.Span(), (jsont.Span{Pos: 4, End: 4}); got != want {
			t.Errorf("Span: got %v, want %v", got, want)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		tz := mustNext(t, `""`, jsont.String)
		if !tz.HasValue() || !tz.EqualString("") {
			t.Error("Empty string has no value")
		}
		if got := tz.Text(); got == nil || len(got) != 0 {
			t.Errorf("Text: got %q, want empty", got)
		}
	})
}
