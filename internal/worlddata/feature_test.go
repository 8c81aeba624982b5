package worlddata

import "testing"

func TestKindOrderIsStable(t *testing.T) {
	want := []Kind{KindTree, KindCrate, KindTombstone}
	got := Kinds()
	if len(got) != len(want) {
		t.Fatalf("kind count: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kind order changed at %d: got %q want %q; this reshuffles every generated world", i, got[i], want[i])
		}
	}
}

func TestMostCellsGenerateEmpty(t *testing.T) {
	w := newGeneratedWorld(t, 42)
	area := (2*w.Radius() + 1) * (2*w.Radius() + 1)
	if len(w.Surroundings()) >= area/2 {
		t.Fatalf("%d of %d cells hold features; empty weight is not dominating", len(w.Surroundings()), area)
	}
}

func TestEveryGeneratedFeatureIsRegistered(t *testing.T) {
	w := newGeneratedWorld(t, 42)
	for pos, f := range w.Surroundings() {
		if _, ok := LookupKind(f.Kind()); !ok {
			t.Fatalf("cell %v holds unregistered kind %q", pos, f.Kind())
		}
		if f.Pos() != pos {
			t.Fatalf("feature state position %v does not match cell %v", f.Pos(), pos)
		}
	}
}
