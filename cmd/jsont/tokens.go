// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jsont"
	"github.com/fatih/color"
)

// tokensCommand prints each token of its inputs, one per line, together with
// the decoded value of tokens that have one.
type tokensCommand struct {
	*settings
	files *[]string
}

var (
	nameColor  = color.New(color.Bold)
	keyColor   = color.New(color.FgBlue)
	strColor   = color.New(color.FgGreen)
	numColor   = color.New(color.FgCyan)
	constColor = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
)

func (cmd *tokensCommand) run(*kingpin.ParseContext) error {
	return cmd.eachInput(*cmd.files, cmd.printTokens)
}

func (cmd *tokensCommand) printTokens(name string, st *jsont.Stream) error {
	w := cmd.stdout
	nameColor.Fprintf(w, "%-12s | %s\n", "Token", "Value")
	fmt.Fprintln(w, "-------------|----------------------------------------")
	t := st.Tokenizer()
	for {
		tok, err := st.Next()
		if err != nil {
			var serr *jsont.SyntaxError
			if errors.As(err, &serr) {
				errColor.Fprintf(cmd.stderr, "Error: %s (%q at offset %d)\n",
					serr.Message, t.LastByte(), serr.Offset)
			}
			return err
		} else if tok == jsont.End {
			return nil
		}
		fmt.Fprintf(w, "%-12s |", tok)
		printValue(w, tok, t)
		fmt.Fprintln(w)
	}
}

// printValue prints the value of the current token of t, if it has one.
// A value that cannot be converted is reported in place of the value.
func printValue(w io.Writer, tok jsont.Token, t *jsont.Tokenizer[io.Reader]) {
	switch tok {
	case jsont.FieldName, jsont.String:
		c := strColor
		if tok == jsont.FieldName {
			c = keyColor
		}
		if s, err := t.Unquote(); err != nil {
			errColor.Fprintf(w, " <%v>", err)
		} else {
			c.Fprintf(w, " %q", s)
		}
	case jsont.Integer:
		if z, err := t.Int64(); err != nil {
			errColor.Fprintf(w, " %s <%v>", t.Text(), err)
		} else {
			numColor.Fprintf(w, " %d", z)
		}
	case jsont.Float:
		if f, err := t.Float64(); err != nil {
			errColor.Fprintf(w, " %s <%v>", t.Text(), err)
		} else {
			numColor.Fprintf(w, " %g", f)
		}
	case jsont.True, jsont.False, jsont.Null:
		constColor.Fprintf(w, " %s", tok)
	}
}

func addTokensCommand(app *kingpin.Application, s *settings) {
	cmd := &tokensCommand{settings: s}
	tokens := app.Command("tokens", "Print the tokens of each input.").Action(cmd.run)
	cmd.files = tokens.Arg("file", "The files to read (default stdin).").Strings()
}
