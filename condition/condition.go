// Package condition compiles the trailing *condition* field of an AFF
// rule (`.`, `[abc]`, `[^abc]`, or a bare run of literal characters) into
// a sequence of per-position character classes.
//
// A compiled Condition is evaluated one position at a time against an
// encoded word, in the direction the affix trie walks: right-to-left for
// suffix rules (their classes reversed when a trie path is built) and
// left-to-right for prefix rules.
// Classes reference the alphabet's *current* size rather than a frozen
// snapshot, so a "." or "[^x]" class compiled before every character in
// the corpus has been observed still matches such characters once the
// alphabet has grown. The affix tries, by contrast, fan a class out into
// child paths once, at insertion time; the engine's single seed-and-retry
// recovery (see cmd/hunaftool and aff.LoadWithAlphabet) reloads the whole
// AFF against the seeded alphabet, recompiling every condition.
package condition

import (
	"fmt"

	"github.com/hunaft/hunaft/alphabet"
)

// classWords is the width of the fixed bitset backing a PositionClass:
// 4 uint64 words cover the full 256-byte alphabet space.
const classWords = 4

// PositionClass is the set of encoded bytes accepted at one position of
// a condition.
type PositionClass struct {
	any     bool // '.' — matches any currently-known byte
	negated bool
	bits    [classWords]uint64
}

func (c *PositionClass) set(b byte) {
	c.bits[b/64] |= 1 << (b % 64)
}

func (c *PositionClass) has(b byte) bool {
	return c.bits[b/64]&(1<<(b%64)) != 0
}

// Matches reports whether b satisfies this class, given the alphabet's
// current size (bytes >= alphaSize are not yet part of the observed
// alphabet and never match an "any" or negated class).
func (c *PositionClass) Matches(b byte, alphaSize int) bool {
	if int(b) >= alphaSize {
		return false
	}
	if c.any {
		return true
	}
	if c.negated {
		return !c.has(b)
	}
	return c.has(b)
}

// Condition is a compiled sequence of PositionClasses, one per
// character position of the original condition field.
type Condition struct {
	Classes []PositionClass
}

// Len returns the number of positions the condition spans.
func (c *Condition) Len() int {
	return len(c.Classes)
}

// Matches reports whether the byte sequence word matches the condition
// starting at offset off, given the alphabet's current size.
func (c *Condition) Matches(word []byte, off int, alphaSize int) bool {
	if off < 0 || off+len(c.Classes) > len(word) {
		return false
	}
	for i, class := range c.Classes {
		if !class.Matches(word[off+i], alphaSize) {
			return false
		}
	}
	return true
}

// UnbalancedBracketError is returned by Compile when a `[` is never
// closed.
type UnbalancedBracketError struct {
	Condition string
}

func (e *UnbalancedBracketError) Error() string {
	return fmt.Sprintf("condition: unbalanced bracket in condition %q", e.Condition)
}

// Compile parses raw (the AFF condition field) into a Condition,
// registering any literal characters it contains with a (non-strict
// Observe, growing the alphabet as needed.
func Compile(raw string, a *alphabet.Alphabet) (*Condition, error) {
	runes := []rune(raw)
	var classes []PositionClass

	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.':
			classes = append(classes, PositionClass{any: true})
		case '[':
			end := indexRune(runes, i, ']')
			if end < 0 {
				return nil, &UnbalancedBracketError{Condition: raw}
			}
			body := runes[i+1 : end]
			negated := false
			if len(body) > 0 && body[0] == '^' {
				negated = true
				body = body[1:]
			}
			cls := PositionClass{negated: negated}
			for _, r := range body {
				cls.set(a.Observe(r))
			}
			classes = append(classes, cls)
			i = end
		default:
			cls := PositionClass{}
			cls.set(a.Observe(runes[i]))
			classes = append(classes, cls)
		}
	}
	return &Condition{Classes: classes}, nil
}

// DropTail returns a Condition with the last n position classes removed
// — the context shared between a stem and every suffix-rule surface
// form it produces, once the trailing (stripped/appended) positions are
// set aside.
func (c *Condition) DropTail(n int) *Condition {
	if n > len(c.Classes) {
		n = len(c.Classes)
	}
	return &Condition{Classes: append([]PositionClass(nil), c.Classes[:len(c.Classes)-n]...)}
}

// DropHead returns a Condition with the first n position classes
// removed — the prefix-rule analogue of DropTail.
func (c *Condition) DropHead(n int) *Condition {
	if n > len(c.Classes) {
		n = len(c.Classes)
	}
	return &Condition{Classes: append([]PositionClass(nil), c.Classes[n:]...)}
}

// Reverse returns a Condition with its position classes in reverse
// order — the back-to-front order in which a suffix trie is keyed
// (affix.BuildPath performs the same reordering on its own path steps).
func (c *Condition) Reverse() *Condition {
	out := make([]PositionClass, len(c.Classes))
	for i, cl := range c.Classes {
		out[len(c.Classes)-1-i] = cl
	}
	return &Condition{Classes: out}
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
