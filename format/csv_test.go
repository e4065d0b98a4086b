package format

import (
	"testing"

	"github.com/hunaft/hunaft/alphabet"
)

func TestReadCSV_SplitsOnCommaAndPipe(t *testing.T) {
	a := alphabet.New()
	a.ObserveString("abc ")
	words, err := ReadCSV("a,b|c\n", a)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("len(words) = %d, want 3", len(words))
	}
}

func TestWriteCSV_JoinsSortedWithCommas(t *testing.T) {
	a := alphabet.New()
	wb, _ := a.Encode("b", false)
	wa, _ := a.Encode("a", false)
	out := WriteCSV([][]byte{wb, wa}, a)
	if out != "a,b\n" {
		t.Errorf("WriteCSV = %q, want %q", out, "a,b\n")
	}
}
