package entities

import (
	"reflect"
	"testing"
)

func TestSelection_AddRemove(t *testing.T) {
	var s Selection
	if !s.Add("A") || !s.Add("B") {
		t.Fatalf("expected first adds to succeed")
	}
	if s.Add("A") {
		t.Fatalf("expected duplicate add to be ignored")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 ids, got %d", s.Len())
	}
	if !s.Remove("A") || s.Remove("A") {
		t.Fatalf("unexpected remove result")
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"B"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestSelection_TruncateKeepsEarliest(t *testing.T) {
	s := NewSelection("A", "B", "C", "D")
	if !s.Truncate(2) {
		t.Fatalf("expected truncation")
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("unexpected ids %v", got)
	}
	if s.Contains("C") || s.Contains("D") {
		t.Fatalf("dropped ids still indexed")
	}
	if s.Truncate(5) {
		t.Fatalf("expected no-op truncation")
	}
}

func TestSelection_IDsReturnsCopy(t *testing.T) {
	s := NewSelection("A", "B")
	ids := s.IDs()
	ids[0] = "Z"
	if !s.Contains("A") || s.IDs()[0] != "A" {
		t.Fatalf("selection mutated through IDs copy")
	}
}

func TestSelection_Equal(t *testing.T) {
	a := NewSelection("A", "B")
	b := NewSelection("A", "B")
	c := NewSelection("B", "A")
	if !a.Equal(&b) {
		t.Fatalf("expected equal")
	}
	if a.Equal(&c) {
		t.Fatalf("order matters")
	}
	a.Clear()
	if a.Len() != 0 || a.Contains("A") {
		t.Fatalf("expected empty after clear")
	}
}
