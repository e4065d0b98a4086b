package flagset

// Set is a set of registered flag bit positions. It has two
// implementations — bitSet (a packed 64-bit word, used while a Registry
// has fewer than 63 distinct flags) and hashSet (a sparse positional
// set, grounded on the sparse-set technique used elsewhere in this
// codebase for O(1) membership with dense iteration) — chosen
// automatically by Registry.NewEmptySet. Callers never construct a Set
// directly.
type Set interface {
	// Empty reports whether the set has no members.
	Empty() bool
	// Has reports whether bit position p is a member.
	Has(p int) bool
	// Intersects reports whether s and other share any member. This is
	// symmetric by construction: both implementations test in terms of
	// membership, not iteration order.
	Intersects(other Set) bool
	// Merge returns the union of s and other as a new Set, of s's
	// representation when other shares it (mixed operands yield the
	// sparse representation). Merge is idempotent: Merge(x, x) has the same
	// members as x.
	Merge(other Set) Set
	// Subtract returns s with every member of other removed, as a new
	// Set. Subtract(x, x) is always empty.
	Subtract(other Set) Set

	add(p int)
	bits() []int
}

// bitSet is the packed representation: bit p set means flag at bit
// position p is a member. Valid while a Registry has fewer than 63
// distinct flags (bit 63 is never assigned, leaving the sign bit
// unused so the zero value and comparisons stay straightforward).
type bitSet struct {
	word uint64
}

func (b *bitSet) add(p int) {
	b.word |= 1 << uint(p)
}

func (b *bitSet) Empty() bool {
	return b.word == 0
}

func (b *bitSet) Has(p int) bool {
	return b.word&(1<<uint(p)) != 0
}

func (b *bitSet) Intersects(other Set) bool {
	o, ok := other.(*bitSet)
	if !ok {
		return intersectsGeneric(b, other)
	}
	return b.word&o.word != 0
}

func (b *bitSet) Merge(other Set) Set {
	o, ok := other.(*bitSet)
	if !ok {
		return mergeGeneric(b, other)
	}
	return &bitSet{word: b.word | o.word}
}

func (b *bitSet) Subtract(other Set) Set {
	o, ok := other.(*bitSet)
	if !ok {
		return subtractGeneric(b, other)
	}
	return &bitSet{word: b.word &^ o.word}
}

func (b *bitSet) bits() []int {
	var out []int
	for p := 0; p < 64; p++ {
		if b.word&(1<<uint(p)) != 0 {
			out = append(out, p)
		}
	}
	return out
}

// hashSet is the sparse positional representation, used once a Registry
// has 63 or more distinct flags. It follows the sparse-set technique:
// a dense slice of present positions plus a sparse index for O(1)
// membership testing, rather than a generic map, since bit positions
// are small dense integers known up front.
type hashSet struct {
	sparse []int32 // position -> index in dense, or unused
	dense  []int32
}

func newHashSet(capacity int) *hashSet {
	return &hashSet{sparse: make([]int32, capacity)}
}

func (h *hashSet) contains(p int) bool {
	if p < 0 || p >= len(h.sparse) {
		return false
	}
	idx := h.sparse[p]
	return int(idx) < len(h.dense) && int(h.dense[idx]) == p
}

func (h *hashSet) add(p int) {
	if h.contains(p) {
		return
	}
	if p >= len(h.sparse) {
		grown := make([]int32, p+1)
		copy(grown, h.sparse)
		h.sparse = grown
	}
	h.sparse[p] = int32(len(h.dense))
	h.dense = append(h.dense, int32(p))
}

func (h *hashSet) Empty() bool {
	return len(h.dense) == 0
}

func (h *hashSet) Has(p int) bool {
	return h.contains(p)
}

func (h *hashSet) Intersects(other Set) bool {
	return intersectsGeneric(h, other)
}

func (h *hashSet) Merge(other Set) Set {
	return mergeGeneric(h, other)
}

func (h *hashSet) Subtract(other Set) Set {
	return subtractGeneric(h, other)
}

func (h *hashSet) bits() []int {
	out := make([]int, len(h.dense))
	for i, v := range h.dense {
		out[i] = int(v)
	}
	return out
}

// intersectsGeneric, mergeGeneric and subtractGeneric implement Set
// operations across mismatched representations (only possible if a
// caller mixes Sets from two different Registries, which the AFF loader
// never does, but the operations stay correct regardless).
func intersectsGeneric(a, b Set) bool {
	for _, p := range a.bits() {
		if b.Has(p) {
			return true
		}
	}
	return false
}

func mergeGeneric(a, b Set) Set {
	out := newHashSet(0)
	for _, p := range a.bits() {
		out.add(p)
	}
	for _, p := range b.bits() {
		out.add(p)
	}
	return out
}

func subtractGeneric(a, b Set) Set {
	out := newHashSet(0)
	for _, p := range a.bits() {
		if !b.Has(p) {
			out.add(p)
		}
	}
	return out
}
