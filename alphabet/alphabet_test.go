package alphabet

import "testing"

func TestAlphabet_ObserveAssignsDenseIndices(t *testing.T) {
	a := New()
	if b := a.Observe('a'); b != 0 {
		t.Errorf("Observe('a') = %d, want 0", b)
	}
	if b := a.Observe('b'); b != 1 {
		t.Errorf("Observe('b') = %d, want 1", b)
	}
	if b := a.Observe('a'); b != 0 {
		t.Errorf("Observe('a') again = %d, want 0 (idempotent)", b)
	}
	if a.Size() != 2 {
		t.Errorf("Size() = %d, want 2", a.Size())
	}
}

func TestAlphabet_EncodeNonStrictGrowsAlphabet(t *testing.T) {
	a := New()
	enc, err := a.Encode("ааа", false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(enc) != 3 || enc[0] != enc[1] || enc[1] != enc[2] {
		t.Errorf("Encode(\"ааа\") = %v, want three equal bytes", enc)
	}
	if a.Size() != 1 {
		t.Errorf("Size() = %d, want 1", a.Size())
	}
}

func TestAlphabet_EncodeStrictUnknownCharacter(t *testing.T) {
	a := New()
	a.ObserveString("abc")
	_, err := a.Encode("abcd", true)
	var unknown *UnknownCharacterError
	if !asUnknown(err, &unknown) {
		t.Fatalf("Encode: got %v, want *UnknownCharacterError", err)
	}
	if unknown.Rune != 'd' {
		t.Errorf("UnknownCharacterError.Rune = %q, want 'd'", unknown.Rune)
	}
}

func TestAlphabet_FinalizedLatchesStrictMode(t *testing.T) {
	a := New()
	a.ObserveString("ab")
	if a.FinalizedSize() != 2 {
		t.Fatalf("FinalizedSize() = %d, want 2", a.Size())
	}
	if !a.Finalized() {
		t.Fatal("Finalized() = false after FinalizedSize")
	}
	// Observe after finalization must not grow the alphabet.
	a.Observe('z')
	if a.Size() != 2 {
		t.Errorf("Size() after post-finalize Observe = %d, want 2", a.Size())
	}
}

func TestAlphabet_DecodeRoundTrips(t *testing.T) {
	a := New()
	word := "слово"
	enc, err := a.Encode(word, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := a.Decode(enc); got != word {
		t.Errorf("Decode(Encode(%q)) = %q, want %q", word, got, word)
	}
}

func asUnknown(err error, target **UnknownCharacterError) bool {
	u, ok := err.(*UnknownCharacterError)
	if !ok {
		return false
	}
	*target = u
	return true
}
