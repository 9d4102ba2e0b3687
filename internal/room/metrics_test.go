package room

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/piwi3910/SortRoom/internal/model"
)

const testScale = 0.02 // 50 px per meter

func TestSideMetricsRectangle(t *testing.T) {
	m := SideMetrics(testRoom(), testScale)
	require.Len(t, m, 4)

	assert.InDelta(t, 8.0, m[0].Length, 1e-9, "top edge is 400 px")
	assert.InDelta(t, 6.0, m[1].Length, 1e-9, "right edge is 300 px")
	assert.InDelta(t, 8.0, m[2].Length, 1e-9)
	assert.InDelta(t, 6.0, m[3].Length, 1e-9)

	assert.Equal(t, model.Point{X: 300, Y: 100}, m[0].Midpoint)
	assert.Equal(t, model.Point{X: 500, Y: 250}, m[1].Midpoint)

	assert.InDelta(t, 0.0, m[0].AngleDegrees, 1e-9)
	assert.InDelta(t, 90.0, m[1].AngleDegrees, 1e-9)
	assert.InDelta(t, 180.0, m[2].AngleDegrees, 1e-9)
	assert.InDelta(t, -90.0, m[3].AngleDegrees, 1e-9)
}

func TestAreaRectangle(t *testing.T) {
	assert.InDelta(t, 48.0, Area(testRoom(), testScale), 1e-9, "400x300 px at 0.02 m/px is 8x6 m")
	assert.InDelta(t, 120000.0, Area(testRoom(), 1), 1e-9)
}

func TestAreaIgnoresWindingDirection(t *testing.T) {
	r := testRoom()
	reversed := model.Room{r[3], r[2], r[1], r[0]}
	assert.InDelta(t, Area(r, testScale), Area(reversed, testScale), 1e-9)
}

func TestAreaTrapezoid(t *testing.T) {
	// Parallel sides of 400 and 200 px, 100 px apart.
	r := model.Room{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 500, Y: 200}, {X: 100, Y: 200}}
	assert.InDelta(t, 30000.0, Area(r, 1), 1e-9)
}

func TestPerimeter(t *testing.T) {
	assert.InDelta(t, 28.0, Perimeter(testRoom(), testScale), 1e-9)
}

func TestSegmentsIntersect(t *testing.T) {
	p := func(x, y float64) model.Point { return model.Point{X: x, Y: y} }

	assert.True(t, SegmentsIntersect(p(0, 0), p(10, 10), p(0, 10), p(10, 0)), "crossing diagonals")
	assert.False(t, SegmentsIntersect(p(0, 0), p(10, 0), p(0, 5), p(10, 5)), "parallel")
	assert.False(t, SegmentsIntersect(p(0, 0), p(10, 0), p(2, 0), p(8, 0)), "collinear overlap counts as parallel")
	assert.False(t, SegmentsIntersect(p(0, 0), p(10, 0), p(10, 0), p(10, 10)), "shared endpoint")
	assert.False(t, SegmentsIntersect(p(0, 0), p(10, 0), p(5, 0), p(5, 10)), "T-junction touches at t=0")
	assert.False(t, SegmentsIntersect(p(0, 0), p(4, 4), p(0, 10), p(10, 0)), "would cross if extended")
}

func TestSelfIntersects(t *testing.T) {
	assert.False(t, SelfIntersects(testRoom()))

	bowtie := model.Room{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 100, Y: 0}, {X: 0, Y: 100}}
	assert.True(t, SelfIntersects(bowtie))
}

func rotateCorners(r model.Room, shift int) model.Room {
	var out model.Room
	for i := range r {
		out[i] = r[(i+shift)%len(r)]
	}
	return out
}

// drawRoom draws a simple room by jittering the corners of a rectangle.
func drawRoom(rt *rapid.T) model.Room {
	j := func(label string) float64 { return rapid.Float64Range(-40, 40).Draw(rt, label) }
	r := testRoom()
	for i := range r {
		r[i].X += j("dx")
		r[i].Y += j("dy")
	}
	return r
}

func TestPropertyMetricsInvariantUnderRelabel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := drawRoom(rt)
		shift := rapid.IntRange(1, 3).Draw(rt, "shift")
		rotated := rotateCorners(r, shift)

		if math.Abs(Area(r, testScale)-Area(rotated, testScale)) > 1e-9 {
			rt.Fatalf("area changed under relabel")
		}

		orig := SideMetrics(r, testScale)
		rot := SideMetrics(rotated, testScale)
		for i := range rot {
			if math.Abs(rot[i].Length-orig[(i+shift)%4].Length) > 1e-9 {
				rt.Fatalf("side %d length changed under relabel", i)
			}
		}
	})
}

func TestPropertyMetricsScaleWithFactor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := drawRoom(rt)
		k := rapid.Float64Range(0.1, 10).Draw(rt, "k")

		base := Area(r, testScale)
		scaled := Area(r, testScale*k)
		if math.Abs(scaled-base*k*k) > 1e-6*math.Max(1, scaled) {
			rt.Fatalf("area %f should be %f", scaled, base*k*k)
		}

		baseSides := SideMetrics(r, testScale)
		scaledSides := SideMetrics(r, testScale*k)
		for i := range baseSides {
			if math.Abs(scaledSides[i].Length-baseSides[i].Length*k) > 1e-9*math.Max(1, scaledSides[i].Length) {
				rt.Fatalf("side %d should scale linearly", i)
			}
		}
	})
}
