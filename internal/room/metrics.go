package room

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/piwi3910/SortRoom/internal/model"
)

// SideMetric describes one room edge for labelling.
type SideMetric struct {
	Length       float64     // Real-world units (pixel length times scale)
	Midpoint     model.Point // Stage pixels
	AngleDegrees float64     // Direction of the edge, atan2 of its delta
}

// SideMetrics returns one entry per edge in corner order. Edge i runs from
// corner i to corner i+1, wrapping to corner 0. scale converts pixels to
// real-world units.
func SideMetrics(r model.Room, scale float64) []SideMetric {
	n := len(r)
	metrics := make([]SideMetric, n)
	for i := 0; i < n; i++ {
		a, b := vec(r[i]), vec(r[(i+1)%n])
		d := b.Sub(a)
		mid := a.Add(b).Mul(0.5)
		metrics[i] = SideMetric{
			Length:       d.Len() * scale,
			Midpoint:     model.Point{X: mid[0], Y: mid[1]},
			AngleDegrees: mgl64.RadToDeg(math.Atan2(d[1], d[0])),
		}
	}
	return metrics
}

// Area returns the room's area in real-world square units using the
// shoelace formula.
func Area(r model.Room, scale float64) float64 {
	n := len(r)
	var sum float64
	for i := 0; i < n; i++ {
		sum += cross(vec(r[i]), vec(r[(i+1)%n]))
	}
	return math.Abs(sum) / 2 * scale * scale
}

// Perimeter returns the sum of all side lengths in real-world units.
func Perimeter(r model.Room, scale float64) float64 {
	var total float64
	for _, m := range SideMetrics(r, scale) {
		total += m.Length
	}
	return total
}
