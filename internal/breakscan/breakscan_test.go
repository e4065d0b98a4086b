package breakscan

import "testing"

func TestScanner_NoSequencesNeverMatches(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d := s.Diagnose("anything", "dic", 1); d != nil {
		t.Errorf("Diagnose() = %v, want nil", d)
	}
}

func TestScanner_FindsDeclaredSequence(t *testing.T) {
	s, err := New([]string{"-", "сьвіньня"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d := s.Diagnose("шчот-сьвіньня", "dic", 3)
	if d == nil {
		t.Fatal("Diagnose() = nil, want a diagnostic")
	}
	if d.Line != 3 || d.Source != "dic" {
		t.Errorf("Diagnose() = %+v, want line 3 source dic", d)
	}
}

func TestScanner_NoMatchReturnsNil(t *testing.T) {
	s, err := New([]string{"xyz"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d := s.Diagnose("шчотка", "dic", 1); d != nil {
		t.Errorf("Diagnose() = %v, want nil", d)
	}
}
