// Package expand implements dictionary-to-word-list expansion: given a
// loaded AFF and a dictionary entry's stem and flag set, it enumerates
// every surface word Hunspell's affixation rules would produce.
package expand

import (
	"github.com/hunaft/hunaft/aff"
	"github.com/hunaft/hunaft/affix"
	"github.com/hunaft/hunaft/flagset"
)

// Entry is one compiled dictionary line: an encoded stem plus its
// parsed flag set.
type Entry struct {
	Stem  []byte
	Flags flagset.Set
}

// Words returns every surface word entry expands to under a, in the
// deterministic order produced by trie-insertion-ordered descent.
// Callers that need sorted or deduplicated output (compression, the
// textual writers) accumulate across this order themselves; Words
// itself does not dedupe, since the same word can legitimately arise
// from two different rule combinations and the caller may care about
// that.
func Words(a *aff.Affix, entry Entry) [][]byte {
	var out [][]byte
	stem := entry.Stem
	flags := entry.Flags

	if !isVirtual(a, flags) {
		out = append(out, stem)
	}

	for _, p := range a.PrefixFromStem.MatchedRules(stem) {
		if !flags.Has(p.Flag) {
			continue
		}
		if w, ok := p.Apply(stem, a.FullStrip); ok {
			out = append(out, w)
		}
	}

	for _, s := range a.SuffixFromStem.MatchedRules(affix.ReverseWord(stem)) {
		if !flags.Has(s.Flag) {
			continue
		}
		w1, ok := s.Apply(stem, a.FullStrip)
		if !ok {
			continue
		}
		if !flag2HasVirtual(a, s.Flag2) {
			out = append(out, w1)
		}

		if s.Cross {
			for _, p := range a.PrefixFromStem.MatchedRules(w1) {
				if !p.Cross || !flags.Has(p.Flag) {
					continue
				}
				if w, ok := p.Apply(w1, a.FullStrip); ok {
					out = append(out, w)
				}
			}
		}

		for _, s2 := range a.SuffixFromStem.MatchedRules(affix.ReverseWord(w1)) {
			if !intsContain(s.Flag2, s2.Flag) {
				continue
			}
			w2, ok := s2.Apply(w1, a.FullStrip)
			if !ok {
				continue
			}
			out = append(out, w2)

			if !s.Cross || !s2.Cross {
				continue
			}
			for _, p := range a.PrefixFromStem.MatchedRules(w2) {
				if !p.Cross {
					continue
				}
				if !flags.Has(p.Flag) && !intsContain(s.Flag2, p.Flag) {
					continue
				}
				if w, ok := p.Apply(w2, a.FullStrip); ok {
					out = append(out, w)
				}
			}
		}
	}

	return out
}

func isVirtual(a *aff.Affix, flags flagset.Set) bool {
	return a.NeedAffix >= 0 && flags.Has(a.NeedAffix)
}

func flag2HasVirtual(a *aff.Affix, flag2 []int) bool {
	return a.NeedAffix >= 0 && intsContain(flag2, a.NeedAffix)
}

func intsContain(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
