package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/hunaft/hunaft/aff"
	"github.com/hunaft/hunaft/alphabet"
)

// An AFF with no TRY/WORDCHARS declares an empty alphabet, so any TXT
// input word is, on the first attempt, built of characters the
// Alphabet has never observed. convert must surface that as the typed
// *alphabet.UnknownCharacterError (not swallowed by pkg/errors'
// wrapping) so the retry path in main actually fires.
func TestConvert_UnknownCharacterIsRecoverableViaRetry(t *testing.T) {
	affText := "SET UTF-8\n"
	inputText := "lyzhka\n"

	_, err := convert(affText, inputText, "txt", "dic")
	if err == nil {
		t.Fatal("convert should fail on the first attempt against an empty alphabet")
	}
	var unknownChar *alphabet.UnknownCharacterError
	if !errors.As(err, &unknownChar) {
		t.Fatalf("convert error = %v, want a wrapped *alphabet.UnknownCharacterError", err)
	}

	out, err := convertWithSeededAlphabet(affText, inputText, "txt", "dic")
	if err != nil {
		t.Fatalf("convertWithSeededAlphabet should recover: %v", err)
	}
	if !strings.Contains(out, "lyzhka") {
		t.Fatalf("expected recovered output to contain the input word, got %q", out)
	}
}

func TestScanBreaks_NilScannerIsNoop(t *testing.T) {
	a := &aff.Affix{}
	scanBreaks(a, nil, "txt", nil)
}
