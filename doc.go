// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsont implements a resumable, allocation-free JSON tokenizer and a
// minified JSON builder.
//
// # Tokenizing
//
// The Tokenizer type reads lexical tokens from a byte slice owned by the
// caller. Construct a tokenizer, supply input with Reset, and call Next to
// iterate over the tokens:
//
//	t := jsont.New[any](nil)
//	t.Reset(input)
//	for tok := t.Next(); tok != jsont.End; tok = t.Next() {
//	   if tok == jsont.Error {
//	      log.Fatalf("Invalid input: %v", t.Err())
//	   }
//	   log.Printf("Next token: %v %q", tok, t.Text())
//	}
//
// Commas and colons are checked but not reported. The tokenizer tracks the
// nesting of objects and arrays in a fixed-size stack, and reports an error
// if closers do not match their openers or the stack overflows. Once an error
// is reported, Next returns Error until the tokenizer is Reset.
//
// Values are not decoded. The Text method returns a view of the value in the
// input; for strings the quotation marks are excluded but escapes are not
// decoded. Use Int64, Float64, and Unquote to convert a value on demand.
//
// # Partial input
//
// When the input ends in the middle of a token, Next rewinds to the start of
// the token and returns End. To resume, pass Continue a new buffer that begins
// with the bytes reported by Remaining:
//
//	if t.Next() == jsont.End {
//	   buf = append(buf[:0], t.Remaining()...)
//	   buf = append(buf, more...)
//	   t.Continue(buf)
//	}
//
// A number at the end of the input is deferred in the same way, since more
// digits may follow. Call SetFinal(true) when no more input will arrive, so
// that a trailing number is reported and an incomplete stream is an error.
//
// # Building
//
// The Builder type assembles minified JSON text, inserting commas and colons
// as needed:
//
//	var b jsont.Builder
//	b.StartObject().FieldName("n").Int(5).FieldName("ok").Bool(true).EndObject()
//	fmt.Println(b.Text()) // {"n":5,"ok":true}
//
// # Streaming
//
// The Stream type reads input from an io.Reader in chunks, feeds it through a
// Tokenizer, and reports the structure of the input to a Handler:
//
//	s := jsont.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// In case of a syntax error, the error has concrete type *jsont.SyntaxError.
// To parse a single value from the front of the input, call ParseOne, which
// returns io.EOF if no further values are available. To pull tokens one at a
// time instead, call Next and read values from the Stream's Tokenizer.
//
// The methods of a Handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember               | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The Anchor passed to a handler method is only valid for the duration of
// that method call.
package jsont
