// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jsont"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

// checkCommand validates its inputs and prints a summary of each.
type checkCommand struct {
	*settings
	files *[]string
}

func (cmd *checkCommand) run(*kingpin.ParseContext) error {
	return cmd.eachInput(*cmd.files, cmd.checkInput)
}

func (cmd *checkCommand) checkInput(name string, st *jsont.Stream) error {
	start := time.Now()
	var sc statsCounter
	err := st.Parse(&sc)
	if err != nil {
		errColor.Fprintf(cmd.stdout, "%s: %v\n", name, err)
		return err
	}
	size := st.Tokenizer().InputOffset()
	log.Debug().Str("input", name).Dur("elapsed", time.Since(start)).Int("bytes", size).Msg("check complete")

	color.New(color.Bold).Fprintf(cmd.stdout, "%s: ", name)
	fmt.Fprintf(cmd.stdout, "ok, %s, %s values, %s tokens, max depth %d\n",
		humanize.Bytes(uint64(size)),
		humanize.Comma(int64(sc.values)),
		humanize.Comma(int64(sc.tokens)),
		sc.maxDepth,
	)
	return nil
}

// statsCounter is a jsont.Handler that counts the tokens and top-level
// values of its input.
type statsCounter struct {
	tokens   int
	values   int
	depth    int
	maxDepth int
}

func (s *statsCounter) begin() error {
	s.tokens++
	s.depth++
	s.maxDepth = max(s.maxDepth, s.depth)
	return nil
}

func (s *statsCounter) end() error {
	s.tokens++
	s.depth--
	if s.depth == 0 {
		s.values++
	}
	return nil
}

func (s *statsCounter) BeginObject(jsont.Anchor) error { return s.begin() }
func (s *statsCounter) EndObject(jsont.Anchor) error   { return s.end() }
func (s *statsCounter) BeginArray(jsont.Anchor) error  { return s.begin() }
func (s *statsCounter) EndArray(jsont.Anchor) error    { return s.end() }
func (s *statsCounter) BeginMember(jsont.Anchor) error { s.tokens++; return nil }
func (s *statsCounter) EndOfInput(jsont.Anchor)        {}

func (s *statsCounter) Value(jsont.Anchor) error {
	s.tokens++
	if s.depth == 0 {
		s.values++
	}
	return nil
}

var _ jsont.Handler = (*statsCounter)(nil)

func addCheckCommand(app *kingpin.Application, s *settings) {
	cmd := &checkCommand{settings: s}
	check := app.Command("check", "Validate each input and print a summary.").Action(cmd.run)
	cmd.files = check.Arg("file", "The files to read (default stdin).").Strings()
}
