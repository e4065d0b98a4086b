// Package breakscan provides an advisory diagnostic for BREAK-declared
// sequences that compounding is out of scope for. An AFF's BREAK
// directive tells Hunspell's compounder where it may split a word; this
// engine never compounds, so a BREAK sequence found inside a word is
// reported purely as an informational note that the word was expanded
// (or accepted) as a single token rather than split.
package breakscan

import (
	"github.com/coregx/ahocorasick"
	"github.com/hunaft/hunaft/diag"
)

// Scanner multi-pattern matches a word against every BREAK sequence
// declared in an AFF, in one O(len(word)) pass regardless of how many
// sequences are declared.
type Scanner struct {
	automaton *ahocorasick.Automaton
}

// New builds a Scanner over sequences (the literal strings named by the
// AFF's BREAK directives, in declaration order). An AFF that declares
// no BREAK sequences yields a Scanner that never matches.
func New(sequences []string) (*Scanner, error) {
	if len(sequences) == 0 {
		return &Scanner{}, nil
	}
	builder := ahocorasick.NewBuilder()
	for _, s := range sequences {
		builder.AddPattern([]byte(s))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Scanner{automaton: automaton}, nil
}

// Diagnose returns an Info diagnostic naming word and the byte offset of
// the first BREAK sequence found in it, or nil if none of the declared
// sequences occur. The matched sequence itself is not named.
func (s *Scanner) Diagnose(word string, source string, line int) *diag.Diagnostic {
	if s == nil || s.automaton == nil {
		return nil
	}
	data := []byte(word)
	m := s.automaton.Find(data, 0)
	if m == nil {
		return nil
	}
	d := diag.Infof(source, line, "word %q contains a declared BREAK sequence at byte offset %d; compounding is out of scope, word kept as one token", word, m.Start)
	return &d
}
