package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/room"
)

// RoomImportResult holds the results of a room outline import.
type RoomImportResult struct {
	Room     model.Room
	Found    bool
	Errors   []string
	Warnings []string
}

// vertexTolerance is the distance in drawing units below which two
// vertices are considered the same point.
const vertexTolerance = 1e-6

// ImportRoomDXF reads a room outline from a DXF file. The first closed
// LWPOLYLINE with four distinct vertices is used. Drawing units are meters;
// they are converted to stage pixels with scale (meters per pixel), flipped
// so Y grows downwards, and placed at the stage margin. The resulting room
// must satisfy lim.
func ImportRoomDXF(path string, lim room.Limits, scale float64) RoomImportResult {
	result := RoomImportResult{}

	if scale <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid scale %g", scale))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outline []model.Point
	skipped := 0
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			continue
		}
		pts := lwPolylinePoints(lw)
		if !lw.Closed || len(pts) != model.CornerCount {
			skipped++
			continue
		}
		outline = pts
		break
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d polyline(s) that are not closed quadrilaterals", skipped))
	}
	if outline == nil {
		result.Errors = append(result.Errors, "No closed four-corner LWPOLYLINE found in DXF file")
		return result
	}

	r := toStage(outline, lim, scale)
	if err := room.Validate(r, lim); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Room outline does not fit the stage: %v", err))
		return result
	}

	result.Room = r
	result.Found = true
	return result
}

// lwPolylinePoints returns the distinct vertices of lw in drawing order,
// dropping a repeated closing vertex.
func lwPolylinePoints(lw *entity.LwPolyline) []model.Point {
	var pts []model.Point
	for _, v := range lw.Vertices {
		if len(v) < 2 {
			continue
		}
		p := model.Point{X: v[0], Y: v[1]}
		if len(pts) > 0 && samePoint(pts[len(pts)-1], p) {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) > 1 && samePoint(pts[0], pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func samePoint(a, b model.Point) bool {
	return math.Abs(a.X-b.X) < vertexTolerance && math.Abs(a.Y-b.Y) < vertexTolerance
}

// toStage converts a four-point outline in meters to a room in stage
// pixels with corners in top-left, top-right, bottom-right, bottom-left
// order.
func toStage(outline []model.Point, lim room.Limits, scale float64) model.Room {
	minX, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range outline {
		minX = math.Min(minX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	var r model.Room
	for i, p := range outline {
		r[i] = model.Point{
			X: lim.Margin + (p.X-minX)/scale,
			Y: lim.Margin + (maxY-p.Y)/scale,
		}
	}
	return canonicalOrder(r)
}

// canonicalOrder returns r wound clockwise on screen and starting at the
// corner closest to the top-left.
func canonicalOrder(r model.Room) model.Room {
	// With Y pointing down a clockwise winding has a positive signed area.
	var signed float64
	for i := range r {
		a, b := r[i], r[(i+1)%len(r)]
		signed += a.X*b.Y - b.X*a.Y
	}
	if signed < 0 {
		r[1], r[3] = r[3], r[1]
	}

	start := 0
	for i := range r {
		if r[i].X+r[i].Y < r[start].X+r[start].Y {
			start = i
		}
	}

	var out model.Room
	for i := range out {
		out[i] = r[(start+i)%len(r)]
	}
	return out
}
