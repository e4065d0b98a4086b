package affix

import "github.com/hunaft/hunaft/condition"

// node is one trie vertex. children is allocated lazily — most nodes in
// a real AFF have zero or one child, so paying for a full array up
// front would waste memory on every leaf.
type node struct {
	matches  []*AffixMatch
	children []*node // indexed by encoded byte; nil until first insert
}

func (n *node) child(b byte, create bool) *node {
	if n.children == nil {
		if !create {
			return nil
		}
		n.children = make([]*node, 256)
	}
	if n.children[b] == nil {
		if !create {
			return nil
		}
		n.children[b] = &node{}
	}
	return n.children[b]
}

// Ruleset is one of the four {prefix,suffix} x {from-stem,to-stem}
// tries. It is append-only during AFF loading and read-only afterwards.
type Ruleset struct {
	root      *node
	alphaSize func() int
}

// NewRuleset creates an empty Ruleset. alphaSize is called at insertion
// time to resolve negated/any condition classes against the alphabet's
// current size — see package condition for why this stays dynamic
// rather than a frozen snapshot.
func NewRuleset(alphaSize func() int) *Ruleset {
	return &Ruleset{root: &node{}, alphaSize: alphaSize}
}

// pathStep is one element of an insertion path: either a concrete
// encoded byte (from a rule's literal strip/append bytes) or a
// condition class, which fans out to every alphabet byte it accepts.
type pathStep struct {
	literal bool
	b       byte
	class   condition.PositionClass
}

func literalSteps(bs []byte) []pathStep {
	steps := make([]pathStep, len(bs))
	for i, b := range bs {
		steps[i] = pathStep{literal: true, b: b}
	}
	return steps
}

func classSteps(c *condition.Condition) []pathStep {
	if c == nil {
		return nil
	}
	steps := make([]pathStep, len(c.Classes))
	for i, cl := range c.Classes {
		steps[i] = pathStep{class: cl}
	}
	return steps
}

// Insert adds rule along every path its pathSteps describe. A rule whose
// path contains a condition class is inserted along one sibling path per
// alphabet byte the class accepts — see the "trie with negated character
// classes" design note: this is the deliberate fan-out, not a bug.
func (rs *Ruleset) Insert(steps []pathStep, rule *AffixMatch) {
	rs.insert(rs.root, steps, rule)
}

func (rs *Ruleset) insert(n *node, steps []pathStep, rule *AffixMatch) {
	if len(steps) == 0 {
		n.matches = append(n.matches, rule)
		return
	}
	step := steps[0]
	rest := steps[1:]
	if step.literal {
		rs.insert(n.child(step.b, true), rest, rule)
		return
	}
	alphaSize := rs.alphaSize()
	for b := 0; b < alphaSize; b++ {
		if step.class.Matches(byte(b), alphaSize) {
			rs.insert(n.child(byte(b), true), rest, rule)
		}
	}
}

// MatchedRules returns every rule reachable by descending word one byte
// at a time from the root, in insertion order at each visited node. The
// root's own rules (empty condition) are always included. Descent stops
// when no child exists for the next byte or word is exhausted.
//
// word must already be in this trie's walk order: callers looking up a
// suffix trie pass ReverseWord(word) (descent from the word's end),
// callers looking up a prefix trie pass word unchanged.
func (rs *Ruleset) MatchedRules(word []byte) []*AffixMatch {
	var out []*AffixMatch
	n := rs.root
	out = append(out, n.matches...)
	for _, b := range word {
		n = n.child(b, false)
		if n == nil {
			break
		}
		out = append(out, n.matches...)
	}
	return out
}

// BuildPath constructs the pathSteps for a rule given its literal bytes
// (strip or append, depending on trie) and the shared context
// (ConditionContext), in the order the trie for this direction is
// keyed:
//
//   - suffix tries walk the word from its end, so the path is
//     reverse(literal) ++ reverse(context): the literal bytes occupy the
//     true tail of the word and are visited first.
//   - prefix tries walk the word from its start, so the path is
//     literal ++ context, already in left-to-right order.
func BuildPath(kind Kind, literal []byte, context *condition.Condition) []pathStep {
	litSteps := literalSteps(literal)
	ctxSteps := classSteps(context)
	if kind == Suffix {
		return append(reverseSteps(litSteps), reverseSteps(ctxSteps)...)
	}
	return append(litSteps, ctxSteps...)
}

func reverseSteps(steps []pathStep) []pathStep {
	out := make([]pathStep, len(steps))
	for i, s := range steps {
		out[len(steps)-1-i] = s
	}
	return out
}

// ReverseWord returns a new slice with word's bytes in reverse order,
// used to descend a suffix trie (which is keyed back-to-front) with the
// same left-to-right child() walk used for prefix tries.
func ReverseWord(word []byte) []byte {
	out := make([]byte, len(word))
	for i, b := range word {
		out[len(word)-1-i] = b
	}
	return out
}
