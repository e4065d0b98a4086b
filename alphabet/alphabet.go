// Package alphabet implements the bijection between the UTF-8 characters
// observed in an affix/dictionary file pair and a compact 0-based byte
// index space.
//
// Reducing the working alphabet to at most 256 symbols lets the affix
// trie (see package affix) use fixed-width, array-indexed child slots
// instead of a generic map, which keeps trie descent O(1) per step. The
// cost is a documented limitation: a single Alphabet cannot represent a
// text with more than 256 distinct code points.
package alphabet

import "fmt"

// maxSize is the largest cardinality an Alphabet can hold. Chosen so
// encoded words fit in a single byte per character, matching the affix
// trie's fixed [256]child layout.
const maxSize = 256

// UnknownCharacterError is returned by Encode in strict mode when a rune
// has never been observed by this Alphabet.
//
// The documented recovery is to seed the Alphabet from every input file
// (AFF and DIC/TXT/CSV) and retry the whole operation exactly once; see
// cmd/hunaftool for the retry driver and aff.LoadWithAlphabet for the
// seeded reload.
type UnknownCharacterError struct {
	Rune rune
}

func (e *UnknownCharacterError) Error() string {
	return fmt.Sprintf("alphabet: unknown character %q", e.Rune)
}

// Alphabet is an ordered, append-only (until finalized) bijection between
// observed runes and dense byte indices.
//
// Create one with New; the zero value has no rune index and panics on
// the first Observe.
type Alphabet struct {
	chars     []rune       // index -> rune, dense [0, len(chars))
	index     map[rune]byte // rune -> index
	finalized bool
}

// New returns an empty Alphabet.
func New() *Alphabet {
	return &Alphabet{index: make(map[rune]byte)}
}

// Observe registers r in the alphabet if not already present, returning
// its byte index. Observe is a no-op once the Alphabet has been
// finalized; callers must seed an Alphabet before the first strict
// Encode.
//
// Panics if registering r would exceed the 256-symbol limit — this is a
// documented limitation of the design, not a recoverable condition: a
// caller that wants graceful degradation should pre-count the unique
// runes across its inputs before calling Observe.
func (a *Alphabet) Observe(r rune) byte {
	if b, ok := a.index[r]; ok {
		return b
	}
	if a.finalized {
		return 0
	}
	if len(a.chars) >= maxSize {
		panic(fmt.Sprintf("alphabet: more than %d distinct characters", maxSize))
	}
	b := byte(len(a.chars))
	a.chars = append(a.chars, r)
	a.index[r] = b
	return b
}

// ObserveString registers every rune of s.
func (a *Alphabet) ObserveString(s string) {
	for _, r := range s {
		a.Observe(r)
	}
}

// Encode converts word into its byte-index representation.
//
// When strict is true, Encode also finalizes the Alphabet (see
// FinalizedSize) and fails with *UnknownCharacterError on the first rune
// it has never observed, instead of silently registering it. When strict
// is false, unknown runes are registered on the fly (this is how the AFF
// loader builds up the alphabet while it compiles rules), unless the
// Alphabet is already finalized, in which case they are reported as
// *UnknownCharacterError as in strict mode.
func (a *Alphabet) Encode(word string, strict bool) ([]byte, error) {
	if strict {
		a.finalized = true
	}
	out := make([]byte, 0, len(word))
	for _, r := range word {
		b, ok := a.index[r]
		if !ok {
			if strict || a.finalized {
				return nil, &UnknownCharacterError{Rune: r}
			}
			b = a.Observe(r)
		}
		out = append(out, b)
	}
	return out, nil
}

// Decode converts an encoded byte sequence back to its string form. Decode
// is total: every byte produced by this Alphabet's Encode was assigned
// from a registered rune.
func (a *Alphabet) Decode(encoded []byte) string {
	runes := make([]rune, len(encoded))
	for i, b := range encoded {
		if int(b) >= len(a.chars) {
			runes[i] = '�'
			continue
		}
		runes[i] = a.chars[b]
	}
	return string(runes)
}

// FinalizedSize returns the current cardinality of the alphabet and
// latches it to strict mode: after this call, any Encode/Observe of an
// unseen rune is treated as unknown rather than silently added.
func (a *Alphabet) FinalizedSize() int {
	a.finalized = true
	return len(a.chars)
}

// Size returns the current cardinality without finalizing.
func (a *Alphabet) Size() int {
	return len(a.chars)
}

// Finalized reports whether the alphabet has latched to strict mode.
func (a *Alphabet) Finalized() bool {
	return a.finalized
}
