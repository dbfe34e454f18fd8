// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jsont tokenizes, validates, and minifies JSON text.
//
// Usage:
//
//	jsont tokens [file ...]   # print each token and its value
//	jsont check [file ...]    # validate and summarize
//	jsont minify [file ...]   # re-emit each value without whitespace
//
// With no files, input is read from stdin.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jsont"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tailscale/hujson"
)

// settings holds the global flags and the I/O streams shared by all commands.
type settings struct {
	chunk    *int
	depth    *int
	hujson   *bool
	logLevel *string
	pretty   *bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *kingpin.Application {
	app := kingpin.New("jsont", "Tokenize, validate, and minify JSON text.")
	app.Writer(stdout).ErrorWriter(stderr).UsageWriter(stderr)

	s := &settings{stdin: stdin, stdout: stdout, stderr: stderr}
	s.chunk = app.Flag("chunk", "Number of bytes to read from the input at a time.").
		Default(fmt.Sprint(jsont.DefaultChunkSize)).Int()
	s.depth = app.Flag("depth", "Maximum nesting depth of objects and arrays.").
		Default(fmt.Sprint(jsont.DefaultDepth)).Int()
	s.hujson = app.Flag("hujson", "Accept HuJSON input (comments and trailing commas).").Bool()
	s.logLevel = app.Flag("log-level", "Log level (trace, debug, info, warn, error, fatal).").
		Default("info").Enum("trace", "debug", "info", "warn", "error", "fatal")
	s.pretty = app.Flag("pretty", "Write human-readable logs.").Bool()

	app.PreAction(func(*kingpin.ParseContext) error {
		setupLogging(s.stderr, *s.logLevel, *s.pretty)
		return nil
	})

	addTokensCommand(app, s)
	addCheckCommand(app, s)
	addMinifyCommand(app, s)
	return app
}

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	fmt.Fprintf(os.Stderr, "jsont: %v\n", err)
	os.Exit(1)
}

func setupLogging(w io.Writer, level string, pretty bool) {
	var logLevel zerolog.Level
	switch level {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	case "fatal":
		logLevel = zerolog.FatalLevel
	default:
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}
}

// newStream constructs a stream over r configured by the global flags.
func (s *settings) newStream(name string, r io.Reader) (*jsont.Stream, error) {
	if *s.hujson {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		// Standardize replaces comments and trailing commas with whitespace,
		// so offsets into the result match the original text.
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("hujson: %w", err)
		}
		log.Debug().Str("input", name).Int("bytes", len(std)).Msg("standardized HuJSON input")
		r = bytes.NewReader(std)
	}
	st := jsont.NewStreamSize(r, *s.depth)
	st.SetChunkSize(*s.chunk)
	st.SetLogger(log.Logger.With().Str("input", name).Logger())
	return st, nil
}

// eachInput calls run for each named file, or for stdin if there are none.
// It reports the first error from run, after visiting all the inputs.
func (s *settings) eachInput(files []string, run func(name string, st *jsont.Stream) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var first error
	for _, name := range files {
		if err := s.runInput(name, run); err != nil {
			log.Error().Err(err).Str("input", name).Msg("failed")
			if first == nil {
				first = fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return first
}

func (s *settings) runInput(name string, run func(string, *jsont.Stream) error) error {
	r := s.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	st, err := s.newStream(name, r)
	if err != nil {
		return err
	}
	return run(name, st)
}
