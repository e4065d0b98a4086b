// Package aff loads a Hunspell AFF file into the compiled structures
// (alphabet, flag registry, and the four affix tries) that the
// expansion and compression engines consult.
//
// Loading is a two-pass process: the first pass only discovers the
// FLAG encoding and registers every flag mentioned anywhere in the
// file, because Hunspell tolerates FLAG appearing after rule blocks
// that already reference flags; the second pass compiles rules against
// the now-fixed flag encoding and alphabet, repairing or warning about
// the malformed input Hunspell itself tolerates (see load.go).
package aff

import (
	"github.com/hunaft/hunaft/affix"
	"github.com/hunaft/hunaft/alphabet"
	"github.com/hunaft/hunaft/flagset"
	"github.com/hunaft/hunaft/internal/breakscan"
)

// Affix is the fully loaded, read-only result of parsing one AFF file.
type Affix struct {
	Alphabet *alphabet.Alphabet
	Flags    *flagset.Registry

	// FullStrip permits a rule to remove an entire stem (see the
	// FULLSTRIP directive).
	FullStrip bool

	// NeedAffix is the virtual-stem flag's bit position, or -1 if the
	// AFF never declared NEEDAFFIX.
	NeedAffix int

	// Break holds the BREAK-declared sequences, in declaration order.
	// Compounding itself is out of scope; Break is retained only to
	// feed the alphabet and to power the advisory breakscan diagnostic.
	Break []string

	// BreakScanner multi-pattern matches Break against words at
	// expansion/compression time; nil only if BreakScanner construction
	// somehow failed (Load reports that as a warning and leaves it nil).
	BreakScanner *breakscan.Scanner

	PrefixFromStem *affix.Ruleset
	PrefixToStem   *affix.Ruleset
	SuffixFromStem *affix.Ruleset
	SuffixToStem   *affix.Ruleset
}

// NeedsAffix reports whether bit position p is the virtual-stem flag.
func (a *Affix) NeedsAffix(p int) bool {
	return a.NeedAffix >= 0 && p == a.NeedAffix
}
