// Package flagset represents Hunspell affix flag sets and the registry
// that assigns them stable bit positions.
//
// Hunspell supports three on-disk flag encodings (UTF-8, long, num); this
// package hides that behind a single Registry that assigns every flag a
// bit position in order of first appearance, and a Set type with two
// interchangeable representations (packed 64-bit word, or a sparse
// positional set) chosen once the total flag count for an AFF is known.
// Both representations are required to behave identically — the switch
// is a memory/performance heuristic, not an observable contract.
package flagset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hunaft/hunaft/diag"
)

// Mode is the on-disk encoding of flag fields, set by the AFF `FLAG`
// directive (absence of the directive means UTF8).
type Mode int

const (
	// UTF8 treats each code point of a flag field as one flag.
	UTF8 Mode = iota
	// Long consumes two code points per flag.
	Long
	// Num splits a flag field on commas, each token a decimal flag.
	Num
)

// maxNumFlag is Hunspell's ceiling for decimal flags in num mode; at or
// above this value the AFF is malformed (fatal, not a warning).
const maxNumFlag = 65510

// bitsetThreshold is the flag-count switch point between the packed and
// sparse Set representations. A performance heuristic, not a contract.
const bitsetThreshold = 63

// Registry assigns stable bit positions to flags in order of first
// registration and builds Sets consistent with that assignment.
//
// A Registry's Mode is fixed at construction (mirroring the spec's
// "immutable after the first pass" rule: by the time any flag field is
// parsed, FLAG has already been read). Registration is append-only and
// idempotent; the representation used by NewEmptySet/ParseField is decided
// the first time it's needed and then held fixed for the Registry's
// lifetime.
type Registry struct {
	mode      Mode
	names     []string
	index     map[string]int
	decided   bool
	useBitset bool
}

// NewRegistry creates an empty Registry for the given encoding mode.
func NewRegistry(mode Mode) *Registry {
	return &Registry{mode: mode, index: make(map[string]int)}
}

// Mode returns the Registry's flag encoding.
func (r *Registry) Mode() Mode {
	return r.mode
}

// Register assigns name the next bit position if it hasn't been seen
// before, or returns its existing position. Registration is idempotent.
func (r *Registry) Register(name string) int {
	if p, ok := r.index[name]; ok {
		return p
	}
	p := len(r.names)
	r.names = append(r.names, name)
	r.index[name] = p
	return p
}

// BitPosition reports the bit position assigned to name, if registered.
func (r *Registry) BitPosition(name string) (int, bool) {
	p, ok := r.index[name]
	return p, ok
}

// Name returns the flag name registered at bit position p.
func (r *Registry) Name(p int) string {
	if p < 0 || p >= len(r.names) {
		return ""
	}
	return r.names[p]
}

// Count returns the number of distinct registered flags.
func (r *Registry) Count() int {
	return len(r.names)
}

// decide fixes the representation choice on first use.
func (r *Registry) decide() {
	if r.decided {
		return
	}
	r.decided = true
	r.useBitset = len(r.names) < bitsetThreshold
}

// NewEmptySet returns an empty Set using this Registry's chosen
// representation.
func (r *Registry) NewEmptySet() Set {
	r.decide()
	if r.useBitset {
		return &bitSet{}
	}
	return newHashSet(len(r.names))
}

// Single returns a Set containing exactly the flag at bit position p.
func (r *Registry) Single(p int) Set {
	s := r.NewEmptySet()
	s.add(p)
	return s
}

// splitLongField splits a long-mode flag field into two-rune tokens,
// reporting a warning diagnostic (not an error) on an odd-length field —
// Hunspell itself tolerates this and simply drops the trailing rune.
func splitLongField(field string, sink *diag.Sink, source string, line int) []string {
	runes := []rune(field)
	if len(runes)%2 != 0 {
		sink.Report(diag.Warningf(source, line, "long-mode flag field %q has odd length, dropping trailing character", field))
		runes = runes[:len(runes)-1]
	}
	tokens := make([]string, 0, len(runes)/2)
	for i := 0; i+1 < len(runes); i += 2 {
		tokens = append(tokens, string(runes[i:i+2]))
	}
	return tokens
}

// tokenize splits field into flag tokens according to mode.
func tokenize(mode Mode, field string, sink *diag.Sink, source string, line int) ([]string, error) {
	if field == "" {
		return nil, nil
	}
	switch mode {
	case UTF8:
		tokens := make([]string, 0, len(field))
		for _, r := range field {
			tokens = append(tokens, string(r))
		}
		return tokens, nil
	case Long:
		return splitLongField(field, sink, source, line), nil
	case Num:
		parts := strings.Split(field, ",")
		tokens := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, &MalformedFlagError{Field: field, Reason: "non-decimal token " + strconv.Quote(p)}
			}
			if n >= maxNumFlag {
				return nil, &MalformedFlagError{Field: field, Reason: "decimal flag out of range: " + p}
			}
			tokens = append(tokens, p)
		}
		return tokens, nil
	default:
		return nil, &MalformedFlagError{Field: field, Reason: "unknown flag mode"}
	}
}

// MalformedFlagError reports a flag field that cannot be parsed at all
// under the Registry's Mode: a non-decimal or oversize num-mode token.
// (An odd-length long-mode field only warns.) This is a fatal condition per the
// error taxonomy in the AFF spec: it aborts the load, unlike an unknown
// (but well-formed) flag reference, which only warns.
type MalformedFlagError struct {
	Field  string
	Reason string
}

func (e *MalformedFlagError) Error() string {
	return "flagset: malformed flag field " + strconv.Quote(e.Field) + ": " + e.Reason
}

// RegisterField registers every flag token in field (used by the AFF
// loader's first pass, where every flag mentioned becomes known).
func (r *Registry) RegisterField(field string, sink *diag.Sink, source string, line int) error {
	tokens, err := tokenize(r.mode, field, sink, source, line)
	if err != nil {
		return err
	}
	for _, t := range tokens {
		r.Register(t)
	}
	return nil
}

// ParseField parses field into a Set of already-registered flags.
// A token that names a flag never declared in the AFF is dropped with a
// Warning diagnostic rather than treated as an error — Hunspell warns
// and ignores unknown flag references in dictionary entries, and this
// package reproduces that rather than "fixing" it.
func (r *Registry) ParseField(field string, sink *diag.Sink, source string, line int) (Set, error) {
	tokens, err := tokenize(r.mode, field, sink, source, line)
	if err != nil {
		return nil, err
	}
	set := r.NewEmptySet()
	for _, t := range tokens {
		p, ok := r.index[t]
		if !ok {
			sink.Report(diag.Warningf(source, line, "flag %q referenced but never declared in AFF, ignoring", t))
			continue
		}
		set.add(p)
	}
	return set, nil
}

// StringifyOrder returns the bit positions present in s in ascending
// order — the order required for stringification and for a compressed
// DIC's flag-field output.
func (r *Registry) StringifyOrder(s Set) []int {
	bits := s.bits()
	sort.Ints(bits)
	return bits
}

// Stringify renders s as a DIC-file flag field: bare concatenation in
// UTF8/long mode, comma-joined in num mode, always in ascending bit
// position order.
func (r *Registry) Stringify(s Set) string {
	bits := r.StringifyOrder(s)
	if len(bits) == 0 {
		return ""
	}
	names := make([]string, len(bits))
	for i, b := range bits {
		names[i] = r.Name(b)
	}
	if r.mode == Num {
		return strings.Join(names, ",")
	}
	return strings.Join(names, "")
}
