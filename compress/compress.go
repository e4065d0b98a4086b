// Package compress implements the reverse operation of expand: given an
// AFF and a flat word list, it selects a minimal set of stem+flag
// dictionary entries whose expansion under that AFF reproduces the
// input word list.
package compress

import (
	"bytes"
	"sort"

	"github.com/hunaft/hunaft/aff"
	"github.com/hunaft/hunaft/affix"
	"github.com/hunaft/hunaft/expand"
	"github.com/hunaft/hunaft/flagset"
)

// candidate is a stem under consideration for emission: a real word
// from the input (virtual == false) or a stem synthesized by undoing a
// suffix rule with no corresponding real word (virtual == true, only
// possible when the AFF declares NEEDAFFIX).
type candidate struct {
	word    []byte
	flags   flagset.Set
	virtual bool
	covers  []int // indices into the input word list, deduplicated
}

func key(b []byte) string { return string(b) }

// Compress selects a minimal set of entries whose expansion under a
// reproduces words exactly (as a set). words must already be encoded
// against a.Alphabet.
func Compress(a *aff.Affix, words [][]byte) []expand.Entry {
	wordIndex := make(map[string]int, len(words))
	for i, w := range words {
		wordIndex[key(w)] = i
	}

	candidates := seedCandidates(a, words, wordIndex)
	deriveCandidates(a, words, wordIndex, candidates)
	pruneFlags(a, wordIndex, candidates)
	computeCoverage(a, wordIndex, candidates)

	ordered := orderedCandidates(candidates)
	selected, todo := greedySelect(ordered, len(words))

	for idx, stillOpen := range todo {
		if stillOpen {
			selected = append(selected, &candidate{
				word:  words[idx],
				flags: a.Flags.NewEmptySet(),
			})
		}
	}

	return finalize(a, selected)
}

// seedCandidates ensures every real input word is itself a candidate
// stem (covering at least itself, with no flags until deriveCandidates
// or pruneFlags add/remove any).
func seedCandidates(a *aff.Affix, words [][]byte, wordIndex map[string]int) map[string]*candidate {
	candidates := make(map[string]*candidate, len(words))
	for _, w := range words {
		candidates[key(w)] = &candidate{word: w, flags: a.Flags.NewEmptySet()}
	}
	return candidates
}

// deriveCandidates is Step 1: walk the suffix to-stem trie for each
// input word to find every suffix rule that could have produced it,
// undo that rule to recover a candidate stem, and attribute the rule's
// flag to that stem (real if the stem is itself in the input, virtual
// otherwise, when NEEDAFFIX is declared).
func deriveCandidates(a *aff.Affix, words [][]byte, wordIndex map[string]int, candidates map[string]*candidate) {
	for _, w := range words {
		for _, s := range a.SuffixToStem.MatchedRules(affix.ReverseWord(w)) {
			if len(s.AppendRight) > len(w) {
				continue
			}
			stem := undoSuffix(w, s)
			k := key(stem)
			_, isReal := wordIndex[k]
			if !isReal && a.NeedAffix < 0 {
				continue
			}
			c, ok := candidates[k]
			if !ok {
				c = &candidate{word: stem, flags: a.Flags.NewEmptySet(), virtual: !isReal}
				candidates[k] = c
			}
			c.flags = c.flags.Merge(a.Flags.Single(s.Flag))
		}
	}
}

func undoSuffix(w []byte, s *affix.AffixMatch) []byte {
	kept := w[:len(w)-len(s.AppendRight)]
	out := make([]byte, 0, len(kept)+len(s.RemoveRight))
	out = append(out, kept...)
	out = append(out, s.RemoveRight...)
	return out
}

// pruneFlags is Step 2: a flag survives on a stem only if every forward
// suffix rule carrying it, applied to the stem, produces a word that is
// actually in the input. A single bad application removes the flag
// even if other rules sharing it are fine — Hunspell's own
// reconstruction is this strict.
func pruneFlags(a *aff.Affix, wordIndex map[string]int, candidates map[string]*candidate) {
	for _, c := range candidates {
		if c.flags.Empty() {
			continue
		}
		bad := a.Flags.NewEmptySet()
		for _, s := range a.SuffixFromStem.MatchedRules(affix.ReverseWord(c.word)) {
			if !c.flags.Has(s.Flag) {
				continue
			}
			w, ok := s.Apply(c.word, a.FullStrip)
			if ok {
				if _, inW := wordIndex[key(w)]; inW {
					continue
				}
			}
			bad = bad.Merge(a.Flags.Single(s.Flag))
		}
		if !bad.Empty() {
			c.flags = c.flags.Subtract(bad)
		}
	}
}

// computeCoverage is Step 3: for each surviving candidate, the set of
// real-word indices it generates (itself, if real, plus every forward
// suffix application landing in the input).
func computeCoverage(a *aff.Affix, wordIndex map[string]int, candidates map[string]*candidate) {
	for _, c := range candidates {
		seen := make(map[int]bool)
		if !c.virtual {
			if idx, ok := wordIndex[key(c.word)]; ok {
				seen[idx] = true
			}
		}
		for _, s := range a.SuffixFromStem.MatchedRules(affix.ReverseWord(c.word)) {
			if !c.flags.Has(s.Flag) {
				continue
			}
			w, ok := s.Apply(c.word, a.FullStrip)
			if !ok {
				continue
			}
			if idx, ok := wordIndex[key(w)]; ok {
				seen[idx] = true
			}
		}
		covers := make([]int, 0, len(seen))
		for idx := range seen {
			covers = append(covers, idx)
		}
		sort.Ints(covers)
		c.covers = covers
	}
}

// orderedCandidates sorts by descending coverage, then ascending
// encoded length, then lexicographic encoded order — a total order, so
// greedy selection is deterministic given the same input and AFF.
func orderedCandidates(candidates map[string]*candidate) []*candidate {
	out := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if len(a.covers) != len(b.covers) {
			return len(a.covers) > len(b.covers)
		}
		if len(a.word) != len(b.word) {
			return len(a.word) < len(b.word)
		}
		return bytes.Compare(a.word, b.word) < 0
	})
	return out
}

// greedySelect is Step 4: walk candidates in order, emitting any whose
// effective (not-yet-covered) coverage is positive, with the caveat
// that a virtual stem must cover more than one real word — a virtual
// stem covering exactly one word is strictly worse than emitting that
// word directly.
func greedySelect(ordered []*candidate, total int) ([]*candidate, []bool) {
	todo := make([]bool, total)
	for i := range todo {
		todo[i] = true
	}
	var selected []*candidate
	for _, c := range ordered {
		effective := 0
		for _, idx := range c.covers {
			if todo[idx] {
				effective++
			}
		}
		if effective == 0 {
			continue
		}
		if c.virtual && effective <= 1 {
			continue
		}
		for _, idx := range c.covers {
			todo[idx] = false
		}
		selected = append(selected, c)
	}
	return selected, todo
}

func finalize(a *aff.Affix, selected []*candidate) []expand.Entry {
	sort.Slice(selected, func(i, j int) bool {
		return bytes.Compare(selected[i].word, selected[j].word) < 0
	})
	out := make([]expand.Entry, len(selected))
	for i, c := range selected {
		flags := c.flags
		if c.virtual {
			flags = flags.Merge(a.Flags.Single(a.NeedAffix))
		}
		out[i] = expand.Entry{Stem: c.word, Flags: flags}
	}
	return out
}
