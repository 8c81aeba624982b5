package entity

import "testing"

func TestNewStartsAtMaxHealth(t *testing.T) {
	e, err := New(TypeSaintShield)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Health != e.Definition().MaxHealth {
		t.Fatalf("health: got %d want %d", e.Health, e.Definition().MaxHealth)
	}
}

func TestPlayerIsNotConstructible(t *testing.T) {
	// Player rows appear in old save files but never resolve to a stored
	// entity; the loader counts them as skipped.
	if _, err := FromName("player"); err == nil {
		t.Fatalf("player resolved to a stored entity")
	}
}

func TestTypesSorted(t *testing.T) {
	types := Types()
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Fatalf("types not sorted: %v", types)
		}
	}
}
