// Command hunaftool converts between Hunspell affix-driven dictionaries
// and flat word lists. It is a thin driver over the aff/expand/compress
// engine: format detection, file I/O, and the documented
// unknown-character retry loop live here, not in the engine.
package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/hunaft/hunaft/aff"
	"github.com/hunaft/hunaft/alphabet"
	"github.com/hunaft/hunaft/compress"
	"github.com/hunaft/hunaft/diag"
	"github.com/hunaft/hunaft/expand"
	"github.com/hunaft/hunaft/format"
)

type options struct {
	affPath   string
	inPath    string
	outPath   string
	inFormat  string
	outFormat string
	verbose   bool
}

func parseFlags() *options {
	opts := &options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("hunaftool converts between Hunspell AFF/DIC dictionaries and flat word lists (TXT, CSV).")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.affPath, "aff", "a", "", "affix file path"),
		flagSet.StringVarP(&opts.inPath, "input", "", "", "input file path (stdin if empty)"),
		flagSet.StringVarP(&opts.inFormat, "input-format", "i", "", "input format: dic, txt, or csv (inferred from extension if empty)"),
	)
	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.outPath, "output", "", "", "output file path (stdout if empty)"),
		flagSet.StringVarP(&opts.outFormat, "output-format", "o", "", "output format: dic, txt, or csv (inferred from input format if empty)"),
		flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "print advisory diagnostics to stderr"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("parsing flags: %v", err)
	}
	if opts.affPath == "" {
		gologger.Fatal().Msg("-aff is required")
	}
	return opts
}

func main() {
	opts := parseFlags()
	if opts.verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	affText, err := readFile(opts.affPath)
	if err != nil {
		gologger.Fatal().Msgf("reading AFF: %v", err)
	}
	inputText, err := readInput(opts.inPath)
	if err != nil {
		gologger.Fatal().Msgf("reading input: %v", err)
	}

	inFmt := opts.inFormat
	if inFmt == "" {
		inFmt = inferFormat(opts.inPath)
	}
	outFmt := opts.outFormat
	if outFmt == "" {
		outFmt = defaultOutputFormat(inFmt)
	}

	output, err := convert(affText, inputText, inFmt, outFmt)
	if err != nil {
		var unknownChar *alphabet.UnknownCharacterError
		if errors.As(err, &unknownChar) {
			output, err = convertWithSeededAlphabet(affText, inputText, inFmt, outFmt)
		}
	}
	if err != nil {
		gologger.Fatal().Msgf("conversion failed: %v", err)
	}

	if err := writeOutput(opts.outPath, output); err != nil {
		gologger.Fatal().Msgf("writing output: %v", err)
	}
	os.Exit(0)
}

// convert performs one conversion attempt against a freshly loaded AFF
// (and therefore a fresh Alphabet seeded only from the AFF itself: its
// TRY / WORDCHARS / BREAK directives and the characters of its rules).
func convert(affText, inputText, inFmt, outFmt string) (string, error) {
	sink := &diag.Sink{}
	a, err := aff.Load(affText, sink)
	if err != nil {
		return "", err
	}
	out, err := runConversion(a, inputText, inFmt, outFmt, sink)
	logDiagnostics(sink)
	return out, err
}

// convertWithSeededAlphabet is the documented single retry: seed an
// Alphabet from every rune in both the AFF and the input text before
// loading, so a character that only appears in the input (never
// mentioned by TRY/WORDCHARS/BREAK) is already known.
func convertWithSeededAlphabet(affText, inputText, inFmt, outFmt string) (string, error) {
	seed := alphabet.New()
	seed.ObserveString(affText)
	seed.ObserveString(inputText)

	sink := &diag.Sink{}
	a, err := aff.LoadWithAlphabet(affText, sink, seed)
	if err != nil {
		return "", err
	}
	out, err := runConversion(a, inputText, inFmt, outFmt, sink)
	logDiagnostics(sink)
	return out, err
}

func runConversion(a *aff.Affix, inputText, inFmt, outFmt string, sink *diag.Sink) (string, error) {
	switch {
	case inFmt == "dic" && (outFmt == "txt" || outFmt == "csv"):
		entries, err := format.ReadDIC(inputText, a, sink)
		if err != nil {
			return "", err
		}
		var words [][]byte
		for _, e := range entries {
			words = append(words, expand.Words(a, e)...)
		}
		scanBreaks(a, words, outFmt, sink)
		if outFmt == "txt" {
			return format.WriteTXT(words, a.Alphabet), nil
		}
		return format.WriteCSV(words, a.Alphabet), nil

	case (inFmt == "txt" || inFmt == "csv") && outFmt == "dic":
		var words [][]byte
		var err error
		if inFmt == "txt" {
			words, err = format.ReadTXT(inputText, a.Alphabet)
		} else {
			words, err = format.ReadCSV(inputText, a.Alphabet)
		}
		if err != nil {
			return "", err
		}
		scanBreaks(a, words, inFmt, sink)
		entries := compress.Compress(a, words)
		return format.WriteDIC(entries, a), nil

	default:
		return "", &unsupportedConversionError{from: inFmt, to: outFmt}
	}
}

// scanBreaks reports an Info diagnostic for every word that contains a
// declared BREAK sequence, per a.BreakScanner. Advisory only: compounding
// is out of scope, so this never changes which words are emitted.
func scanBreaks(a *aff.Affix, words [][]byte, source string, sink *diag.Sink) {
	if a.BreakScanner == nil {
		return
	}
	for _, w := range words {
		if d := a.BreakScanner.Diagnose(a.Alphabet.Decode(w), source, 0); d != nil {
			sink.Report(*d)
		}
	}
}

type unsupportedConversionError struct {
	from, to string
}

func (e *unsupportedConversionError) Error() string {
	return "no known conversion path from " + e.from + " to " + e.to
}

func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dic":
		return "dic"
	case ".csv":
		return "csv"
	default:
		return "txt"
	}
}

// defaultOutputFormat mirrors the documented default: DIC input without
// an explicit output format produces CSV; TXT/CSV input produces DIC.
func defaultOutputFormat(inFmt string) string {
	if inFmt == "dic" {
		return "csv"
	}
	return "dic"
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readInput(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readFile(path)
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func logDiagnostics(sink *diag.Sink) {
	for _, d := range sink.Items() {
		switch d.Severity {
		case diag.Warning:
			gologger.Warning().Msg(d.String())
		default:
			gologger.Verbose().Msg(d.String())
		}
	}
}
