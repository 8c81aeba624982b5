package worlddata

import "stack-and-slash/server/internal/grid"

// span is an inclusive integer interval.
type span struct {
	lo, hi int
}

func axisSpan(center, radius int) span {
	return span{lo: center - radius, hi: center + radius}
}

func (s span) contains(v int) bool { return v >= s.lo && v <= s.hi }

// windowDiff returns the coordinates entering and leaving the square window
// of the given radius when its center moves from oldC to newC. The result is
// the exact set difference of the two windows, derived from the invariant
// that after an update exactly the cells within radius of the new center are
// materialized. Columns outside the old x-span are taken whole; columns in
// the overlap contribute only the rows outside the old y-span, so the cost is
// proportional to the perimeter times the step size, not the window area.
//
// The enumeration is valid for any pair of centers, but callers should route
// jumps larger than the radius through the clear-and-refill path instead:
// past that point the "diff" approaches the full area anyway.
func windowDiff(oldC, newC grid.Point, radius int) (added, removed []grid.Point) {
	added = windowMinus(newC, oldC, radius)
	removed = windowMinus(oldC, newC, radius)
	return added, removed
}

// windowMinus enumerates the cells in the window around a that are not in the
// window around b.
func windowMinus(a, b grid.Point, radius int) []grid.Point {
	ax, ay := axisSpan(a.X, radius), axisSpan(a.Y, radius)
	bx, by := axisSpan(b.X, radius), axisSpan(b.Y, radius)

	var out []grid.Point
	for x := ax.lo; x <= ax.hi; x++ {
		if !bx.contains(x) {
			for y := ay.lo; y <= ay.hi; y++ {
				out = append(out, grid.Point{X: x, Y: y})
			}
			continue
		}
		for y := ay.lo; y <= min(ay.hi, by.lo-1); y++ {
			out = append(out, grid.Point{X: x, Y: y})
		}
		for y := max(ay.lo, by.hi+1); y <= ay.hi; y++ {
			out = append(out, grid.Point{X: x, Y: y})
		}
	}
	return out
}

// forEachInWindow visits every cell of the square window around center in row
// order.
func forEachInWindow(center grid.Point, radius int, visit func(grid.Point)) {
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			visit(grid.Point{X: x, Y: y})
		}
	}
}
