package worlddata

import (
	"testing"

	"stack-and-slash/server/internal/grid"
)

func TestClusterBoostFallsOffWithDistance(t *testing.T) {
	idx := newClusterIndex()
	center := grid.Point{X: 0, Y: 0}
	if !idx.add(ClusterForest, center) {
		t.Fatalf("add center failed")
	}

	def := clusterCatalog[ClusterForest]
	atCenter := idx.boost(KindTree, center)
	if atCenter != def.MaxRadius*def.Density {
		t.Fatalf("boost at center: got %d want %d", atCenter, def.MaxRadius*def.Density)
	}

	near := idx.boost(KindTree, grid.Point{X: 3, Y: 0})
	if near != (def.MaxRadius-3)*def.Density {
		t.Fatalf("boost at distance 3: got %d want %d", near, (def.MaxRadius-3)*def.Density)
	}
	if near >= atCenter {
		t.Fatalf("boost did not fall off: %d >= %d", near, atCenter)
	}

	if far := idx.boost(KindTree, grid.Point{X: def.MaxRadius + 1, Y: 0}); far != 0 {
		t.Fatalf("boost beyond max radius: got %d want 0", far)
	}
	if other := idx.boost(KindCrate, center); other != 0 {
		t.Fatalf("forest must not boost crates: got %d", other)
	}
}

func TestClusterBoostSumsOverCenters(t *testing.T) {
	idx := newClusterIndex()
	idx.add(ClusterForest, grid.Point{X: -2, Y: 0})
	idx.add(ClusterForest, grid.Point{X: 2, Y: 0})

	def := clusterCatalog[ClusterForest]
	want := 2 * (def.MaxRadius - 2) * def.Density
	if got := idx.boost(KindTree, grid.Point{}); got != want {
		t.Fatalf("summed boost: got %d want %d", got, want)
	}
}

func TestClusterIndexRemoveAt(t *testing.T) {
	idx := newClusterIndex()
	pos := grid.Point{X: 4, Y: 4}
	idx.add(ClusterGraveyard, pos)
	if idx.size() != 1 {
		t.Fatalf("size after add: %d", idx.size())
	}

	idx.removeAt(pos)
	if idx.size() != 0 {
		t.Fatalf("size after remove: %d", idx.size())
	}
	if got := idx.boost(KindTombstone, pos); got != 0 {
		t.Fatalf("boost after remove: got %d want 0", got)
	}

	// Removing a cell that never held a center is the common case and a no-op.
	idx.removeAt(grid.Point{X: 9, Y: 9})
}

func TestClusterRollDeterministicAndBanded(t *testing.T) {
	id := grid.CellID(42, grid.Point{X: 10, Y: 10})
	def1, ok1 := rollCluster(id)
	def2, ok2 := rollCluster(id)
	if ok1 != ok2 || def1.ID != def2.ID {
		t.Fatalf("cluster roll not deterministic: (%v,%v) vs (%v,%v)", def1.ID, ok1, def2.ID, ok2)
	}

	// The no-cluster band dominates: over a modest region most cells must
	// roll nothing, and every hit must name a registered kind.
	hits := 0
	for x := -25; x <= 25; x++ {
		for y := -25; y <= 25; y++ {
			def, ok := rollCluster(grid.CellID(42, grid.Point{X: x, Y: y}))
			if !ok {
				continue
			}
			hits++
			if _, registered := clusterCatalog[def.ID]; !registered {
				t.Fatalf("roll produced unregistered kind %q", def.ID)
			}
		}
	}
	total := 51 * 51
	if hits == total {
		t.Fatalf("every cell rolled a cluster; empty band is broken")
	}
}

func TestClusterDefinitionsRespectWindowContract(t *testing.T) {
	radius := DefaultParams().Radius
	sum := 0
	for _, kind := range ClusterKinds() {
		def, ok := LookupCluster(kind)
		if !ok {
			t.Fatalf("kind %q missing from catalog", kind)
		}
		if def.MaxRadius > radius {
			t.Fatalf("cluster %q radius %d exceeds feature radius %d; off-window centers could influence generation",
				kind, def.MaxRadius, radius)
		}
		if _, ok := LookupKind(def.Boosts); !ok {
			t.Fatalf("cluster %q boosts unregistered feature kind %q", kind, def.Boosts)
		}
		sum += def.SpawnRate
	}
	if sum >= clusterRollTotal {
		t.Fatalf("cluster weights %d leave no empty band out of %d", sum, clusterRollTotal)
	}
}
