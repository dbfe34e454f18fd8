// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jsont"
)

// minifyCommand re-emits each value of its inputs without insignificant
// whitespace, one value per line.
type minifyCommand struct {
	*settings
	files *[]string
}

func (cmd *minifyCommand) run(*kingpin.ParseContext) error {
	return cmd.eachInput(*cmd.files, cmd.minify)
}

func (cmd *minifyCommand) minify(_ string, st *jsont.Stream) error {
	m := &minifier{b: jsont.NewBuilder(0)}
	for {
		err := st.ParseOne(m)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if _, err := m.b.WriteTo(cmd.stdout); err != nil {
			return err
		} else if _, err := io.WriteString(cmd.stdout, "\n"); err != nil {
			return err
		}
		m.b.Reset()
	}
}

// minifier is a jsont.Handler that copies its input to a Builder. Strings,
// keys, and numbers are copied verbatim, without decoding.
type minifier struct {
	b *jsont.Builder
}

func (m *minifier) BeginObject(jsont.Anchor) error { m.b.StartObject(); return nil }
func (m *minifier) EndObject(jsont.Anchor) error   { m.b.EndObject(); return nil }
func (m *minifier) BeginArray(jsont.Anchor) error  { m.b.StartArray(); return nil }
func (m *minifier) EndArray(jsont.Anchor) error    { m.b.EndArray(); return nil }
func (m *minifier) EndOfInput(jsont.Anchor)        {}

func (m *minifier) BeginMember(loc jsont.Anchor) error {
	m.b.RawFieldName(loc.Text())
	return nil
}

func (m *minifier) Value(loc jsont.Anchor) error {
	switch tok := loc.Token(); tok {
	case jsont.String:
		m.b.RawString(loc.Text())
	case jsont.Integer, jsont.Float:
		m.b.RawValue(loc.Text())
	case jsont.True, jsont.False:
		m.b.Bool(tok == jsont.True)
	case jsont.Null:
		m.b.Null()
	}
	return nil
}

func addMinifyCommand(app *kingpin.Application, s *settings) {
	cmd := &minifyCommand{settings: s}
	minify := app.Command("minify", "Re-emit each input value without whitespace.").Action(cmd.run)
	cmd.files = minify.Arg("file", "The files to read (default stdin).").Strings()
}
