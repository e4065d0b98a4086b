package affix

import (
	"testing"

	"github.com/hunaft/hunaft/alphabet"
	"github.com/hunaft/hunaft/condition"
)

func TestRuleset_InsertAndMatchSuffixLiteral(t *testing.T) {
	a := alphabet.New()
	strip, _ := a.Encode("ааа", false)
	rs := NewRuleset(a.Size)

	rule := &AffixMatch{Kind: Suffix, Flag: 0, RemoveRight: strip, AppendRight: nil}
	rs.Insert(BuildPath(Suffix, strip, nil), rule)

	word, _ := a.Encode("бббааа", false)
	matches := rs.MatchedRules(ReverseWord(word))
	if len(matches) != 1 || matches[0] != rule {
		t.Fatalf("MatchedRules = %v, want [rule]", matches)
	}

	other, _ := a.Encode("ббб", false)
	if got := rs.MatchedRules(ReverseWord(other)); len(got) != 0 {
		t.Fatalf("MatchedRules(%q) = %v, want none", other, got)
	}
}

func TestRuleset_InsertWithConditionContextExpandsClasses(t *testing.T) {
	a := alphabet.New()
	a.ObserveString("xyzab")
	rs := NewRuleset(a.Size)

	strip, _ := a.Encode("ab", false)
	// Condition context "[xy]" means this rule only applies when the
	// character right before the strip is 'x' or 'y'.
	ctx, err := condition.Compile("[xy]", a)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	rule := &AffixMatch{Kind: Suffix, RemoveRight: strip}
	rs.Insert(BuildPath(Suffix, strip, ctx), rule)

	wx, _ := a.Encode("xab", false)
	if got := rs.MatchedRules(ReverseWord(wx)); len(got) != 1 {
		t.Errorf("word ending in 'xab' should match, got %d", len(got))
	}
	wz, _ := a.Encode("zab", false)
	if got := rs.MatchedRules(ReverseWord(wz)); len(got) != 0 {
		t.Errorf("word ending in 'zab' should not match the [xy] context, got %d", len(got))
	}
}

func TestApply_PrefixAndSuffix(t *testing.T) {
	a := alphabet.New()
	stem, _ := a.Encode("ааааа", false)
	strip, _ := a.Encode("ааа", false)
	add, _ := a.Encode("ав", false)

	rule := &AffixMatch{Kind: Suffix, RemoveRight: strip, AppendRight: add}
	out, ok := rule.Apply(stem, false)
	if !ok {
		t.Fatal("Apply should succeed")
	}
	if got := a.Decode(out); got != "ааав" {
		t.Errorf("Apply result = %q, want %q", got, "ааав")
	}
}

func TestApply_RefusesFullStripWithoutFullstrip(t *testing.T) {
	a := alphabet.New()
	stem, _ := a.Encode("ааа", false)
	rule := &AffixMatch{Kind: Suffix, RemoveRight: stem}
	if _, ok := rule.Apply(stem, false); ok {
		t.Fatal("Apply should refuse to strip the entire word without FULLSTRIP")
	}
	if _, ok := rule.Apply(stem, true); !ok {
		t.Fatal("Apply should allow stripping the entire word with FULLSTRIP")
	}
}

// A rule that strips the whole stem but appends a non-empty replacement
// must still be refused without FULLSTRIP: the guard is about the stem
// bytes remaining after strip, not about whether anything is appended.
func TestApply_RefusesFullStripWithNonEmptyAppendWithoutFullstrip(t *testing.T) {
	a := alphabet.New()
	stem, _ := a.Encode("лыжка", false)
	add, _ := a.Encode("сьвіньня", false)
	rule := &AffixMatch{Kind: Prefix, RemoveLeft: stem, AppendLeft: add}
	if _, ok := rule.Apply(stem, false); ok {
		t.Fatal("Apply should refuse a full-stem strip with non-empty append without FULLSTRIP")
	}
	if _, ok := rule.Apply(stem, true); !ok {
		t.Fatal("Apply should allow it with FULLSTRIP")
	}
}
