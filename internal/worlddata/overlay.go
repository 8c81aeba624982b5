package worlddata

import (
	"sort"

	"stack-and-slash/server/internal/grid"
)

// AttrRemoved marks a feature as destroyed. Generation consults it before
// anything else: a removed id never spawns again regardless of the fresh roll.
const AttrRemoved = "removed"

// FeatureState is the mutable key/value record attached to a feature. It is
// keyed by the stable cell id in the overlay and travels with the live
// instance while the coordinate is materialized, so every in-play mutation
// lands in the same record the save file persists.
type FeatureState struct {
	id    uint64
	pos   grid.Point
	attrs map[string]string
}

// NewFeatureState builds an empty state record for the given id.
func NewFeatureState(id uint64) *FeatureState {
	return &FeatureState{id: id, attrs: make(map[string]string)}
}

// ID returns the stable identifier anchoring this record.
func (s *FeatureState) ID() uint64 { return s.id }

// Pos returns the coordinate the record was last materialized at.
func (s *FeatureState) Pos() grid.Point { return s.pos }

// SetPos records the coordinate the feature currently occupies. The id, not
// the position, is the persistent key; the position is refreshed on every
// materialization.
func (s *FeatureState) SetPos(pos grid.Point) { s.pos = pos }

// Get returns the value stored under key and whether it is present.
func (s *FeatureState) Get(key string) (string, bool) {
	v, ok := s.attrs[key]
	return v, ok
}

// Set stores a key/value pair on the record.
func (s *FeatureState) Set(key, value string) {
	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[key] = value
}

// Has reports whether key is present.
func (s *FeatureState) Has(key string) bool {
	_, ok := s.attrs[key]
	return ok
}

// Removed reports whether the record carries the removed marker.
func (s *FeatureState) Removed() bool { return s.Has(AttrRemoved) }

// Len returns the number of stored attributes.
func (s *FeatureState) Len() int { return len(s.attrs) }

// Keys returns the attribute keys in sorted order so persisted output is
// stable across runs.
func (s *FeatureState) Keys() []string {
	keys := make([]string, 0, len(s.attrs))
	for k := range s.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Overlay records play-caused changes to otherwise regenerable features. It
// is append-only during play: entries are added or updated, never silently
// dropped, and they are authoritative over fresh generation for the same id.
type Overlay struct {
	entries map[uint64]*FeatureState
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[uint64]*FeatureState)}
}

// Get returns the record for id, or nil when the id has never been modified.
func (o *Overlay) Get(id uint64) *FeatureState {
	return o.entries[id]
}

// Put registers a record, replacing any previous entry with the same id.
func (o *Overlay) Put(state *FeatureState) {
	if state == nil {
		return
	}
	if o.entries == nil {
		o.entries = make(map[uint64]*FeatureState)
	}
	o.entries[state.id] = state
}

// Len returns the number of modified feature records.
func (o *Overlay) Len() int { return len(o.entries) }

// IDs returns every recorded id in ascending order.
func (o *Overlay) IDs() []uint64 {
	ids := make([]uint64, 0, len(o.entries))
	for id := range o.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
