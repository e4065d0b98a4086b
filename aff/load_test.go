package aff

import (
	"testing"

	"github.com/hunaft/hunaft/affix"
)

const s1AFF = `PFX A Y 1
PFX A 0 ба ааа
SFX B Y 1
SFX B 0 ав ааа
`

func TestLoad_S1BasicCrossProduct(t *testing.T) {
	a, err := Load(s1AFF, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.Flags.Count() != 2 {
		t.Fatalf("Flags.Count() = %d, want 2", a.Flags.Count())
	}

	stem, encErr := a.Alphabet.Encode("ааааа", false)
	if encErr != nil {
		t.Fatalf("Encode: %v", encErr)
	}

	prefixMatches := a.PrefixFromStem.MatchedRules(stem)
	if len(prefixMatches) != 1 {
		t.Fatalf("PrefixFromStem matches = %d, want 1", len(prefixMatches))
	}
	if !prefixMatches[0].Cross {
		t.Error("PFX A should be cross-product enabled")
	}

	suffixMatches := a.SuffixFromStem.MatchedRules(affix.ReverseWord(stem))
	if len(suffixMatches) != 1 {
		t.Fatalf("SuffixFromStem matches = %d, want 1", len(suffixMatches))
	}
}

func TestLoad_NeedAffix(t *testing.T) {
	src := s1AFF + "NEEDAFFIX z\n"
	a, err := Load(src, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.NeedAffix < 0 {
		t.Fatal("NeedAffix should be registered")
	}
	p, ok := a.Flags.BitPosition("z")
	if !ok || p != a.NeedAffix {
		t.Errorf("NeedAffix = %d, want %d", a.NeedAffix, p)
	}
}

func TestLoad_FullStrip(t *testing.T) {
	a, err := Load("FULLSTRIP\n"+s1AFF, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !a.FullStrip {
		t.Error("FullStrip should be true")
	}
}

func TestLoad_IndentedDirectiveIgnored(t *testing.T) {
	a, err := Load(" FULLSTRIP\n"+s1AFF, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a.FullStrip {
		t.Error("indented FULLSTRIP should be ignored")
	}
}

func TestLoad_UnrecognizedCrossDefaultsToN(t *testing.T) {
	src := "PFX A X 1\nPFX A 0 ба ааа\n"
	a, err := Load(src, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	stem, _ := a.Alphabet.Encode("ааааа", false)
	matches := a.PrefixFromStem.MatchedRules(stem)
	if len(matches) != 1 || matches[0].Cross {
		t.Fatal("unrecognized cross-product char should default to non-cross")
	}
}

func TestRepairCondition_DotEqualsStrip(t *testing.T) {
	fixed, inert := repairCondition(".", "ка", kindOf("SFX"))
	if inert || fixed != "ка" {
		t.Errorf("repairCondition(.) = %q, %v, want \"ка\", false", fixed, inert)
	}
}

func TestRepairCondition_ClassSubstitution(t *testing.T) {
	fixed, inert := repairCondition("[абв]", "б", kindOf("SFX"))
	if inert || fixed != "б" {
		t.Errorf("repairCondition = %q, %v, want \"б\", false", fixed, inert)
	}
}

func TestRepairCondition_Unrecoverable(t *testing.T) {
	_, inert := repairCondition("xyz", "q", kindOf("SFX"))
	if !inert {
		t.Error("repairCondition should mark the rule inert when unrecoverable")
	}
}
