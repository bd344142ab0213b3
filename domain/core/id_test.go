package core

import (
	"testing"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("NewID returned empty ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNewID_TimeOrdered(t *testing.T) {
	// UUID v7 is lexicographically sortable by generation time
	a := NewID()
	b := NewID()
	if a.String() >= b.String() {
		t.Errorf("expected IDs to sort by generation order: %s >= %s", a, b)
	}
}

func TestID_IsEmpty(t *testing.T) {
	var id ID
	if !id.IsEmpty() {
		t.Error("zero value ID should be empty")
	}
	if NewID().IsEmpty() {
		t.Error("generated ID should not be empty")
	}
}
