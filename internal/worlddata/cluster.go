package worlddata

import (
	"stack-and-slash/server/internal/grid"
)

// ClusterKind identifies a density-center type.
type ClusterKind string

const (
	ClusterForest    ClusterKind = "forest"
	ClusterGraveyard ClusterKind = "graveyard"
	ClusterCampsite  ClusterKind = "campsite"
)

// ClusterDefinition captures the static parameters of a cluster kind: the
// feature it boosts, its band in the per-cell roll, its radius of influence
// and the density added per unit of closeness.
type ClusterDefinition struct {
	ID        ClusterKind
	Boosts    Kind
	SpawnRate int
	MaxRadius int
	Density   int
}

// clusterRollTotal is the fixed ceiling of the per-cell cluster roll. The gap
// between the summed spawn rates and this total is the "no cluster" band, so
// most cells seed nothing.
const clusterRollTotal = 5000

// clusterOrder fixes the band order of the cluster roll; like kindOrder it is
// part of the generated world and must stay stable.
var clusterOrder = []ClusterKind{ClusterForest, ClusterGraveyard, ClusterCampsite}

// Cluster radii must stay at or below the feature radius: the cluster window
// extends the feature window by exactly one radius, so a larger MaxRadius
// would let off-window centers influence freshly generated border cells.
var clusterCatalog = map[ClusterKind]ClusterDefinition{
	ClusterForest:    {ID: ClusterForest, Boosts: KindTree, SpawnRate: 20, MaxRadius: 12, Density: 3},
	ClusterGraveyard: {ID: ClusterGraveyard, Boosts: KindTombstone, SpawnRate: 8, MaxRadius: 8, Density: 4},
	ClusterCampsite:  {ID: ClusterCampsite, Boosts: KindCrate, SpawnRate: 12, MaxRadius: 10, Density: 2},
}

// maxClusterRadius returns the largest radius of influence in the catalog.
// The generation radius may never drop below it (see Params.Normalized).
func maxClusterRadius() int {
	max := 0
	for _, def := range clusterCatalog {
		if def.MaxRadius > max {
			max = def.MaxRadius
		}
	}
	return max
}

// ClusterKinds returns the cluster kinds in roll order.
func ClusterKinds() []ClusterKind {
	out := make([]ClusterKind, len(clusterOrder))
	copy(out, clusterOrder)
	return out
}

// LookupCluster returns the definition registered for the given kind.
func LookupCluster(k ClusterKind) (ClusterDefinition, bool) {
	def, ok := clusterCatalog[k]
	return def, ok
}

// rollCluster decides whether the cell with the given stable id seeds a
// cluster center, and of which kind. The draw is independent of the feature
// roll at the same cell.
func rollCluster(id uint64) (ClusterDefinition, bool) {
	roll := grid.Roll(id, grid.SaltClusterRoll, clusterRollTotal)
	sum := 0
	for _, kind := range clusterOrder {
		def := clusterCatalog[kind]
		sum += def.SpawnRate
		if roll < sum {
			return def, true
		}
	}
	return ClusterDefinition{}, false
}

// clusterIndex tracks the cluster centers currently inside the cluster
// window. Centers are never persisted: they are regenerated deterministically
// whenever their producing coordinate re-enters the window.
type clusterIndex struct {
	byBoost map[Kind][]grid.Point
	at      map[grid.Point]ClusterKind
}

func newClusterIndex() clusterIndex {
	return clusterIndex{
		byBoost: make(map[Kind][]grid.Point),
		at:      make(map[grid.Point]ClusterKind),
	}
}

// add records a center. Re-adding a coordinate already indexed is reported as
// false so the caller can flag the window-diff bug.
func (c *clusterIndex) add(kind ClusterKind, pos grid.Point) bool {
	if _, exists := c.at[pos]; exists {
		return false
	}
	c.at[pos] = kind
	boosts := clusterCatalog[kind].Boosts
	c.byBoost[boosts] = append(c.byBoost[boosts], pos)
	return true
}

// removeAt drops whatever center sits at pos. Removing an empty coordinate is
// a no-op because most cells never rolled a cluster in the first place.
func (c *clusterIndex) removeAt(pos grid.Point) {
	kind, ok := c.at[pos]
	if !ok {
		return
	}
	delete(c.at, pos)
	boosts := clusterCatalog[kind].Boosts
	centers := c.byBoost[boosts]
	for i, center := range centers {
		if center == pos {
			c.byBoost[boosts] = append(centers[:i], centers[i+1:]...)
			break
		}
	}
}

// boost sums the density contribution of every in-range center that boosts
// the given feature kind at the query coordinate.
func (c *clusterIndex) boost(kind Kind, pos grid.Point) int {
	total := 0
	for _, center := range c.byBoost[kind] {
		def := clusterCatalog[c.at[center]]
		closeness := def.MaxRadius - int(center.DistanceTo(pos))
		if closeness > 0 {
			total += closeness * def.Density
		}
	}
	return total
}

// size returns the number of indexed centers.
func (c *clusterIndex) size() int { return len(c.at) }

func (c *clusterIndex) clear() {
	c.byBoost = make(map[Kind][]grid.Point)
	c.at = make(map[grid.Point]ClusterKind)
}
