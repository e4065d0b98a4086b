package flagset

import (
	"testing"

	"github.com/hunaft/hunaft/diag"
)

func TestRegistry_RegisterIsIdempotent(t *testing.T) {
	r := NewRegistry(UTF8)
	p1 := r.Register("A")
	p2 := r.Register("A")
	if p1 != p2 {
		t.Errorf("Register(\"A\") twice = %d, %d, want equal", p1, p2)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
}

func TestRegistry_ParseField_UTF8(t *testing.T) {
	r := NewRegistry(UTF8)
	r.Register("A")
	r.Register("B")
	set, err := r.ParseField("AB", nil, "dic", 1)
	if err != nil {
		t.Fatalf("ParseField: %v", err)
	}
	if set.Empty() {
		t.Fatal("ParseField(\"AB\") produced empty set")
	}
	if got := r.Stringify(set); got != "AB" {
		t.Errorf("Stringify = %q, want %q", got, "AB")
	}
}

func TestRegistry_ParseField_Long(t *testing.T) {
	r := NewRegistry(Long)
	r.Register("Aa")
	r.Register("Bb")
	set, err := r.ParseField("AaBb", nil, "dic", 1)
	if err != nil {
		t.Fatalf("ParseField: %v", err)
	}
	if got := r.Stringify(set); got != "AaBb" {
		t.Errorf("Stringify = %q, want %q", got, "AaBb")
	}
}

func TestRegistry_ParseField_Num(t *testing.T) {
	r := NewRegistry(Num)
	r.Register("1")
	r.Register("2")
	set, err := r.ParseField("1,2", nil, "dic", 1)
	if err != nil {
		t.Fatalf("ParseField: %v", err)
	}
	if got := r.Stringify(set); got != "1,2" {
		t.Errorf("Stringify = %q, want %q", got, "1,2")
	}
}

func TestRegistry_ParseField_UnknownFlagWarnsAndIgnores(t *testing.T) {
	r := NewRegistry(UTF8)
	r.Register("A")
	var sink diag.Sink
	set, err := r.ParseField("AZ", &sink, "dic", 3)
	if err != nil {
		t.Fatalf("ParseField: %v", err)
	}
	if !set.Has(0) {
		t.Error("known flag A should remain in the set")
	}
	if len(sink.Items()) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(sink.Items()))
	}
}

func TestRegistry_Num_OversizeFlagIsFatal(t *testing.T) {
	r := NewRegistry(Num)
	if err := r.RegisterField("65510", nil, "aff", 1); err == nil {
		t.Fatal("RegisterField(65510) should fail: flag must be < 65510")
	}
}

func TestSet_RepresentationEquivalence(t *testing.T) {
	// Force the bitSet path (< 63 flags) and the hashSet path (>= 63 flags)
	// and verify Intersects/Merge/Subtract agree.
	small := NewRegistry(UTF8)
	for i := 0; i < 10; i++ {
		small.Register(string(rune('a' + i)))
	}
	large := NewRegistry(UTF8)
	for i := 0; i < 70; i++ {
		large.Register(string(rune('A' + i)))
	}

	checkSemantics(t, small)
	checkSemantics(t, large)
}

func checkSemantics(t *testing.T, r *Registry) {
	t.Helper()
	a := r.Single(0)
	b := r.Single(0).Merge(r.Single(1))

	if !a.Intersects(b) {
		t.Error("Intersects should be true for overlapping sets")
	}
	if !b.Intersects(a) {
		t.Error("Intersects should be symmetric")
	}

	merged := a.Merge(b)
	if !merged.Has(0) || !merged.Has(1) {
		t.Error("Merge should contain members of both operands")
	}

	sub := b.Subtract(b)
	if !sub.Empty() {
		t.Error("Subtract(x, x) should be empty")
	}
}

func TestBitSet_Empty(t *testing.T) {
	var s bitSet
	if !s.Empty() {
		t.Error("zero-value bitSet should be empty")
	}
}
