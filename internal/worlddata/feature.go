package worlddata

import (
	"stack-and-slash/server/internal/grid"
)

// Kind identifies a terrain feature type.
type Kind string

const (
	KindTree      Kind = "tree"
	KindCrate     Kind = "crate"
	KindTombstone Kind = "tombstone"
)

// KindDefinition captures the static spawn parameters of a feature kind.
type KindDefinition struct {
	ID        Kind
	SpawnRate int
	Glyph     rune
}

// kindOrder fixes the order the cumulative spawn table is walked in. The
// order is part of the generated world: changing it reshuffles which band a
// roll lands in, so it must stay stable across releases.
var kindOrder = []Kind{KindTree, KindCrate, KindTombstone}

var kindCatalog = map[Kind]KindDefinition{
	KindTree:      {ID: KindTree, SpawnRate: 1, Glyph: 'T'},
	KindCrate:     {ID: KindCrate, SpawnRate: 2, Glyph: '#'},
	KindTombstone: {ID: KindTombstone, SpawnRate: 1, Glyph: 'n'},
}

// Kinds returns the feature kinds in spawn-table order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// LookupKind returns the definition registered for the given kind.
func LookupKind(k Kind) (KindDefinition, bool) {
	def, ok := kindCatalog[k]
	return def, ok
}

// Feature is a materialized piece of world content occupying one grid cell.
type Feature struct {
	kind  Kind
	state *FeatureState
	world *WorldData
}

// Kind returns the feature's type.
func (f *Feature) Kind() Kind { return f.kind }

// State returns the feature's mutable key/value record.
func (f *Feature) State() *FeatureState { return f.state }

// Pos returns the coordinate the feature occupies.
func (f *Feature) Pos() grid.Point { return f.state.pos }

// Modify sets an attribute and registers the record in the world's mutation
// overlay so the change survives unload and reload of the coordinate.
func (f *Feature) Modify(key, value string) {
	f.state.Set(key, value)
	if f.world != nil {
		f.world.AddModified(f.state)
	}
}

// Destroy marks the feature removed in the overlay and evicts it from the
// live window immediately.
func (f *Feature) Destroy() {
	f.world.RemoveFeature(f.Pos())
}

// generateFeature runs the per-cell spawn table for the given stable id and
// returns the freshly rolled feature, or nil when the empty band wins or the
// overlay suppresses the spawn.
func (w *WorldData) generateFeature(id uint64, pos grid.Point) *Feature {
	state := w.overlay.Get(id)
	if state != nil && state.Removed() {
		return nil
	}
	if state == nil {
		state = NewFeatureState(id)
	}
	state.SetPos(pos)

	// Cumulative table over the fixed kind order: static rate plus the summed
	// density contribution of every in-range cluster boosting that kind.
	cumulative := make([]int, len(kindOrder))
	total := 0
	for i, kind := range kindOrder {
		total += kindCatalog[kind].SpawnRate
		total += w.clusters.boost(kind, pos)
		cumulative[i] = total
	}

	roll := grid.Roll(id, grid.SaltFeatureRoll, total+w.params.EmptyWeight)
	for i, kind := range kindOrder {
		if roll < cumulative[i] {
			return &Feature{kind: kind, state: state, world: w}
		}
	}
	return nil
}
