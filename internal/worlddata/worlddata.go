// Package worlddata implements the deterministic world engine: seed-derived
// procedural generation, the sliding streaming window around the player, the
// mutation overlay that replays play-caused changes, and the save codec.
//
// All world-mutating calls must be serialized by the caller; the engine runs
// on the simulation tick and holds no locks of its own.
package worlddata

import (
	"fmt"

	"stack-and-slash/server/internal/entity"
	"stack-and-slash/server/internal/grid"
	"stack-and-slash/server/internal/items"
)

// Logger is the minimal logging surface the engine needs. It is satisfied by
// github.com/charmbracelet/log.Logger.
type Logger interface {
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}

// Params are the generation settings of a world.
type Params struct {
	// Radius is the feature generation radius; clusters are scanned at twice
	// this radius.
	Radius int
	// EmptyWeight is the fixed weight appended to the spawn table so most
	// cells stay empty.
	EmptyWeight int
	// SaveDir is where save files live, one per seed.
	SaveDir string
	// DebugChecks makes window invariant violations panic instead of logging
	// a correctness warning and self-healing.
	DebugChecks bool
	// Logger receives correctness warnings and generation debug output.
	Logger Logger
}

// DefaultParams mirrors the prototype's settings.
func DefaultParams() Params {
	return Params{
		Radius:      15,
		EmptyWeight: 2000,
		SaveDir:     "saves",
	}
}

// Normalized returns params with defaults applied and invalid values clamped.
func (p Params) Normalized() Params {
	normalized := p
	if normalized.Radius <= 0 {
		normalized.Radius = DefaultParams().Radius
	}
	// The cluster window extends the feature window by exactly one radius, so
	// a radius below the widest cluster's reach would let centers outside the
	// cluster window influence freshly generated border cells and break
	// regeneration determinism.
	if normalized.Radius < maxClusterRadius() {
		normalized.Radius = maxClusterRadius()
	}
	if normalized.EmptyWeight <= 0 {
		normalized.EmptyWeight = DefaultParams().EmptyWeight
	}
	if normalized.SaveDir == "" {
		normalized.SaveDir = DefaultParams().SaveDir
	}
	if normalized.Logger == nil {
		normalized.Logger = nopLogger{}
	}
	return normalized
}

// WorldData owns all state of one world: the seed, the player's grid cell,
// the materialized feature window, the cluster index, the mutation overlay,
// stored free-standing items and entities, and the player hotbar.
type WorldData struct {
	seed   int64
	params Params

	player       grid.Point
	surroundings map[grid.Point]*Feature
	clusters     clusterIndex
	overlay      *Overlay

	storedItems    map[grid.Point]*items.Item
	storedEntities map[grid.Point]*entity.Entity
	hotbar         []*items.Item
}

// New creates a fresh world for the given seed. The window is empty until
// GenerateWorld is called.
func New(seed int64, params Params) *WorldData {
	return &WorldData{
		seed:           seed,
		params:         params.Normalized(),
		surroundings:   make(map[grid.Point]*Feature),
		clusters:       newClusterIndex(),
		overlay:        NewOverlay(),
		storedItems:    make(map[grid.Point]*items.Item),
		storedEntities: make(map[grid.Point]*entity.Entity),
	}
}

// Seed returns the world seed.
func (w *WorldData) Seed() int64 { return w.seed }

// Radius returns the feature generation radius.
func (w *WorldData) Radius() int { return w.params.Radius }

// PlayerLocation returns the player's current grid cell.
func (w *WorldData) PlayerLocation() grid.Point { return w.player }

// GenerateWorld materializes the full cluster window and then the full
// feature window around the player. It is called once at world construction
// and again after a teleport clears the window.
func (w *WorldData) GenerateWorld() {
	forEachInWindow(w.player, 2*w.params.Radius, w.addClusterAt)
	forEachInWindow(w.player, w.params.Radius, w.addFeatureAt)
}

// UpdatePlayerLocation moves the player to (x, y) and updates the streaming
// window incrementally, touching only the cells entering and leaving it. It
// reports whether anything changed. Jumps larger than the generation radius
// exceed the validity range of the incremental diff and are routed through
// the teleport path.
func (w *WorldData) UpdatePlayerLocation(x, y int) bool {
	next := grid.Point{X: x, Y: y}
	if next == w.player {
		return false
	}
	delta := next.Sub(w.player)
	if abs(delta.X) > w.params.Radius || abs(delta.Y) > w.params.Radius {
		w.TeleportPlayer(x, y)
		return true
	}

	// Clusters first: feature rolls on the leading edge consult the density
	// field, which must already include every center within reach.
	addedClusters, removedClusters := windowDiff(w.player, next, 2*w.params.Radius)
	for _, pos := range addedClusters {
		w.addClusterAt(pos)
	}
	for _, pos := range removedClusters {
		w.clusters.removeAt(pos)
	}

	addedFeatures, removedFeatures := windowDiff(w.player, next, w.params.Radius)
	for _, pos := range addedFeatures {
		w.addFeatureAt(pos)
	}
	for _, pos := range removedFeatures {
		w.evictFeatureAt(pos)
	}

	w.player = next
	return true
}

// TeleportPlayer moves the player to (x, y) and rebuilds the window from
// scratch. This is the required path for arbitrarily large jumps.
func (w *WorldData) TeleportPlayer(x, y int) {
	w.surroundings = make(map[grid.Point]*Feature)
	w.clusters.clear()
	w.player = grid.Point{X: x, Y: y}
	w.GenerateWorld()
}

// Surroundings returns the live coordinate→feature map. Callers must not
// mutate it; features are removed through RemoveFeature so the overlay stays
// authoritative.
func (w *WorldData) Surroundings() map[grid.Point]*Feature {
	return w.surroundings
}

// FeatureAt returns the materialized feature at pos, or nil for empty cells.
func (w *WorldData) FeatureAt(pos grid.Point) *Feature {
	return w.surroundings[pos]
}

// RemoveFeature marks the feature id at pos removed in the overlay and evicts
// the live instance immediately. The cell will regenerate empty forever.
func (w *WorldData) RemoveFeature(pos grid.Point) {
	id := grid.CellID(w.seed, pos)
	state := w.overlay.Get(id)
	if state == nil {
		if live := w.surroundings[pos]; live != nil {
			state = live.state
		} else {
			state = NewFeatureState(id)
		}
	}
	state.SetPos(pos)
	state.Set(AttrRemoved, "1")
	w.overlay.Put(state)
	delete(w.surroundings, pos)
}

// AddModified registers a feature state in the mutation overlay. Every
// attribute change a feature undergoes during play routes through here so it
// survives unload and reload of its coordinate.
func (w *WorldData) AddModified(state *FeatureState) {
	w.overlay.Put(state)
}

// ModifiedFeatures returns the mutation overlay.
func (w *WorldData) ModifiedFeatures() *Overlay { return w.overlay }

// Hotbar returns a copy of the player's ordered hotbar.
func (w *WorldData) Hotbar() []*items.Item {
	out := make([]*items.Item, len(w.hotbar))
	copy(out, w.hotbar)
	return out
}

// SetHotbar replaces the player's hotbar.
func (w *WorldData) SetHotbar(hotbar []*items.Item) {
	w.hotbar = make([]*items.Item, len(hotbar))
	copy(w.hotbar, hotbar)
}

// StoreItem records a free-standing item so it regenerates when the player
// returns.
func (w *WorldData) StoreItem(pos grid.Point, item *items.Item) {
	w.storedItems[pos] = item
}

// RemoveItem drops a stored item, preventing it from regenerating.
func (w *WorldData) RemoveItem(pos grid.Point) {
	delete(w.storedItems, pos)
}

// StoredItems returns the coordinate→item map of stored items.
func (w *WorldData) StoredItems() map[grid.Point]*items.Item {
	return w.storedItems
}

// StoreEntity records a free-standing entity so it regenerates when the
// player returns.
func (w *WorldData) StoreEntity(pos grid.Point, e *entity.Entity) {
	w.storedEntities[pos] = e
}

// RemoveEntity drops a stored entity, preventing it from regenerating.
func (w *WorldData) RemoveEntity(pos grid.Point) {
	delete(w.storedEntities, pos)
}

// StoredEntities returns the coordinate→entity map of stored entities.
func (w *WorldData) StoredEntities() map[grid.Point]*entity.Entity {
	return w.storedEntities
}

// ClusterCenterCount reports how many cluster centers are currently indexed.
func (w *WorldData) ClusterCenterCount() int { return w.clusters.size() }

func (w *WorldData) addFeatureAt(pos grid.Point) {
	if _, exists := w.surroundings[pos]; exists {
		w.invariantViolation("window: double add of feature cell %v", pos)
		return
	}
	id := grid.CellID(w.seed, pos)
	if feature := w.generateFeature(id, pos); feature != nil {
		w.surroundings[pos] = feature
	}
}

func (w *WorldData) evictFeatureAt(pos grid.Point) {
	delete(w.surroundings, pos)
}

func (w *WorldData) addClusterAt(pos grid.Point) {
	id := grid.CellID(w.seed, pos)
	def, ok := rollCluster(id)
	if !ok {
		return
	}
	if !w.clusters.add(def.ID, pos) {
		w.invariantViolation("window: double add of cluster center %v", pos)
	}
}

// invariantViolation flags a window-diff bug. Debug builds fail loudly so the
// bug cannot hide behind self-healing; release builds log and keep playing.
func (w *WorldData) invariantViolation(format string, args ...any) {
	if w.params.DebugChecks {
		panicf(format, args...)
	}
	w.params.Logger.Warnf(format, args...)
}

func panicf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
