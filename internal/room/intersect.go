package room

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/piwi3910/SortRoom/internal/model"
)

func vec(p model.Point) mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// cross returns the z component of the 2D cross product a x b.
func cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// SegmentsIntersect reports whether segment p1-p2 properly crosses segment
// p3-p4. Both line parameters must lie strictly inside (0, 1), so segments
// that only touch at an endpoint do not intersect. Parallel and collinear
// segments are treated as non-intersecting.
func SegmentsIntersect(p1, p2, p3, p4 model.Point) bool {
	r := vec(p2).Sub(vec(p1))
	s := vec(p4).Sub(vec(p3))

	det := cross(r, s)
	if det == 0 {
		return false
	}

	qp := vec(p3).Sub(vec(p1))
	t := cross(qp, s) / det
	u := cross(qp, r) / det

	return t > 0 && t < 1 && u > 0 && u < 1
}

// adjacent reports whether edges i and j of an n-sided polygon share a corner.
func adjacent(i, j, n int) bool {
	if i > j {
		i, j = j, i
	}
	return j-i == 1 || (i == 0 && j == n-1)
}

// SelfIntersects reports whether any two non-adjacent edges of the room cross.
func SelfIntersects(r model.Room) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		a1, a2 := r[i], r[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if adjacent(i, j, n) {
				continue
			}
			if SegmentsIntersect(a1, a2, r[j], r[(j+1)%n]) {
				return true
			}
		}
	}
	return false
}
