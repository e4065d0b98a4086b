// Package affix holds the compiled representation of AFF prefix/suffix
// rules (AffixMatch) and the four-trie Ruleset that indexes them for
// fast directional lookup: {prefix, suffix} x {from-stem, to-stem}.
//
// From-stem tries answer "which rules can apply to this stem" (used by
// the expansion engine, walking outward from a dictionary entry).
// To-stem tries answer "which rules could have produced this surface
// word from some stem" (used by the compression engine's reverse
// attribution step).
package affix

import "github.com/hunaft/hunaft/condition"

// Kind distinguishes a prefix rule from a suffix rule.
type Kind int

const (
	Prefix Kind = iota
	Suffix
)

// AffixMatch is a compiled, directional affix rule ready for trie
// insertion and application.
//
// Exactly one of (RemoveLeft, AppendLeft) or (RemoveRight, AppendRight)
// is populated, matching Kind: Prefix rules mutate the left edge of a
// word, Suffix rules the right edge.
type AffixMatch struct {
	Kind Kind

	// Flag is the primary flag gating this rule's application; Flag2 is
	// the continuation flag(s) registered by a trailing "/flags2" on the
	// append field, enabling a further level of affixation on the result.
	Flag  int
	Flag2 []int

	// Cross reports whether this rule may participate in prefix+suffix
	// composition (the AFF file's Y/N column).
	Cross bool

	RemoveLeft  []byte
	AppendLeft  []byte
	RemoveRight []byte
	AppendRight []byte

	// Condition is the full compiled condition, matched against the
	// stem. ConditionContext is the same condition with the
	// strip-aligned trailing (suffix rules) or leading (prefix rules)
	// positions removed — the "extra" context shared by the stem and
	// every surface form the rule produces, used when indexing both the
	// from-stem and the to-stem tries (see BuildPath in trie.go).
	Condition       *condition.Condition
	ConditionContext *condition.Condition

	// Raw is the original AFF rule text, kept for diagnostics.
	Raw string
}

// strip returns the rule's removed bytes, regardless of Kind.
func (m *AffixMatch) strip() []byte {
	if m.Kind == Prefix {
		return m.RemoveLeft
	}
	return m.RemoveRight
}

// appended returns the rule's appended bytes, regardless of Kind.
func (m *AffixMatch) appended() []byte {
	if m.Kind == Prefix {
		return m.AppendLeft
	}
	return m.AppendRight
}
