// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsont

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d..%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%s-%d", loc.First, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// Location returns the location of the current token relative to the start
// of the stream. For an End token, this is the empty span at the end of the
// consumed input.
func (t *Tokenizer[T]) Location() Location {
	return Location{
		Span:  Span{Pos: t.base + t.tpos, End: t.base + t.tend},
		First: t.lineCol(t.tpos),
		Last:  t.lineCol(t.tend),
	}
}

// lineCol returns the line and column of offset pos in the current input.
// Only newlines in whitespace between tokens are counted.
func (t *Tokenizer[T]) lineCol(pos int) LineCol {
	return LineCol{Line: t.line + 1, Column: max(t.base+pos-t.lineStart, 0)}
}
