// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// DefaultChunkSize is the number of bytes a Stream requests from its reader
// on each read, unless changed by SetChunkSize.
const DefaultChunkSize = 16384

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) value text
	Copy() []byte       // Returns a copy of the raw value text
	Location() Location // Returns the full location of the anchor

	// Conversions of the value text, as defined by Tokenizer.
	Int64() (int64, error)
	Float64() (float64, error)
	Unquote() ([]byte, error)
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key is
	// not unescaped (see jsont.Unquote). The member ends when the next member
	// begins or its object ends.
	BeginMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// Stream is a stream parser that consumes input from an io.Reader and
// delivers events to a Handler corresponding with the structure of the input.
//
// The input is read in chunks into a buffer that is fed to a Tokenizer. When
// a token spans the end of a chunk, the unconsumed bytes are carried over and
// presented again with the next chunk, so tokens are never split.
type Stream struct {
	r     io.Reader
	t     *Tokenizer[io.Reader]
	buf   []byte
	chunk int
	eof   bool
	log   zerolog.Logger
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return NewStreamSize(r, DefaultDepth) }

// NewStreamSize constructs a new Stream that consumes input from r, and
// permits objects and arrays to nest at most depth levels.
func NewStreamSize(r io.Reader, depth int) *Stream {
	t := NewSize(r, depth)
	t.Reset(nil)
	return &Stream{r: r, t: t, chunk: DefaultChunkSize, log: zerolog.Nop()}
}

// SetChunkSize sets the number of bytes s requests from its reader on each
// read. If n <= 0, DefaultChunkSize is used.
func (s *Stream) SetChunkSize(n int) {
	if n <= 0 {
		n = DefaultChunkSize
	}
	s.chunk = n
}

// SetLogger sets a logger to which s reports buffer refills and errors at
// trace and debug level. By default s does not log.
func (s *Stream) SetLogger(log zerolog.Logger) { s.log = log }

// Tokenizer returns the tokenizer used by s. The caller may inspect the
// state of the tokenizer, but must not advance or reset it.
func (s *Stream) Tokenizer() *Tokenizer[io.Reader] { return s.t }

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) error {
	for {
		tok, err := s.Next()
		if err != nil {
			return err
		} else if tok == End {
			h.EndOfInput(s.t)
			return nil
		}
		if err := s.dispatch(h, tok); err != nil {
			return err
		}
	}
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) error {
	tok, err := s.Next()
	if err != nil {
		return err
	} else if tok == End {
		h.EndOfInput(s.t)
		return io.EOF
	}
	for {
		if err := s.dispatch(h, tok); err != nil {
			return err
		} else if s.t.Depth() == 0 {
			return nil
		}
		tok, err = s.Next()
		if err != nil {
			return err
		} else if tok == End {
			return s.syntaxError(ErrUnexpectedEOF)
		}
	}
}

func (s *Stream) dispatch(h Handler, tok Token) error {
	switch tok {
	case ObjectStart:
		return h.BeginObject(s.t)
	case ObjectEnd:
		return h.EndObject(s.t)
	case ArrayStart:
		return h.BeginArray(s.t)
	case ArrayEnd:
		return h.EndArray(s.t)
	case FieldName:
		return h.BeginMember(s.t)
	case True, False, Null, Integer, Float, String:
		return h.Value(s.t)
	default:
		return fmt.Errorf("unknown token %v", tok)
	}
}

// Next returns the next token from the input, reading more input as needed.
// It returns End only at the end of the stream. In case of a syntax error, the
// returned error has type [*SyntaxError]. While the token is current, its
// value may be read from the Tokenizer.
//
// Next advances the same tokenizer as Parse and ParseOne, so a caller may
// mix calls to Next with those methods.
func (s *Stream) Next() (Token, error) {
	for {
		switch tok := s.t.Next(); tok {
		case Error:
			return tok, s.syntaxError(s.t.Err())
		case End:
			if s.eof {
				return End, nil
			} else if err := s.fill(); err != nil {
				return Error, err
			}
		default:
			return tok, nil
		}
	}
}

// fill reads the next chunk of input and hands it to the tokenizer, together
// with the unconsumed portion of the previous chunk.
func (s *Stream) fill() error {
	rest := s.t.Remaining()
	n := len(rest)
	if need := n + s.chunk; need > cap(s.buf) {
		buf := make([]byte, n, max(need, 2*cap(s.buf)))
		copy(buf, rest)
		s.buf = buf
	} else {
		s.buf = s.buf[:copy(s.buf[:n], rest)]
	}

	nr, err := s.r.Read(s.buf[n : n+s.chunk])
	s.buf = s.buf[:n+nr]
	if errors.Is(err, io.EOF) {
		s.eof = true
		s.t.SetFinal(true)
	} else if err != nil {
		s.log.Debug().Err(err).Int("offset", s.t.InputOffset()).Msg("read failed")
		return err
	}
	s.log.Trace().
		Int("carry", n).
		Int("read", nr).
		Int("offset", s.t.InputOffset()).
		Bool("eof", s.eof).
		Msg("refill")
	s.t.Continue(s.buf)
	return nil
}

func (s *Stream) syntaxError(err error) error {
	loc := s.t.Location()
	off := Offset(err)
	if off < 0 {
		off = loc.Pos
	}
	s.log.Debug().Err(err).Int("offset", off).Msg("syntax error")
	return &SyntaxError{
		Location: loc.First,
		Offset:   off,
		Message:  errorMessage(err),
		err:      err,
	}
}

// errorMessage returns the text of err without its offset annotation.
func errorMessage(err error) string {
	var p posError
	if errors.As(err, &p) {
		return p.err.Error()
	}
	return err.Error()
}

// SyntaxError is the concrete type of errors reported by the stream parser.
type SyntaxError struct {
	Location LineCol
	Offset   int // absolute byte offset of the error
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
