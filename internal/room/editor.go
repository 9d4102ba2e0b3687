// Package room keeps a four-corner room polygon valid while its corners
// are dragged, and derives side lengths and area from it.
package room

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/SortRoom/internal/model"
)

// Limits bounds where room corners may go. All values are stage pixels.
type Limits struct {
	StageWidth  float64
	StageHeight float64
	Margin      float64 // Minimum distance between a corner and the stage edge
	MinWidth    float64 // Minimum horizontal distance between a corner and its horizontal neighbor
	MinHeight   float64 // Minimum vertical distance between a corner and its vertical neighbor
}

// horizontalNeighbor returns the corner sharing the top or bottom edge with i.
func horizontalNeighbor(i int) int {
	switch i {
	case model.CornerTopLeft:
		return model.CornerTopRight
	case model.CornerTopRight:
		return model.CornerTopLeft
	case model.CornerBottomRight:
		return model.CornerBottomLeft
	default:
		return model.CornerBottomRight
	}
}

// verticalNeighbor returns the corner sharing the left or right edge with i.
func verticalNeighbor(i int) int {
	switch i {
	case model.CornerTopLeft:
		return model.CornerBottomLeft
	case model.CornerTopRight:
		return model.CornerBottomRight
	case model.CornerBottomRight:
		return model.CornerTopRight
	default:
		return model.CornerTopLeft
	}
}

func isLeftCorner(i int) bool {
	return i == model.CornerTopLeft || i == model.CornerBottomLeft
}

func isTopCorner(i int) bool {
	return i == model.CornerTopLeft || i == model.CornerTopRight
}

// CornerBounds returns the rectangle corner i may be moved within, given
// the current positions of its neighbors. ok is false when the index is out
// of range or the neighbors leave no legal position.
func CornerBounds(r model.Room, i int, lim Limits) (bounds model.Rect, ok bool) {
	if i < 0 || i >= model.CornerCount {
		return model.Rect{}, false
	}
	minX, maxX := lim.Margin, lim.StageWidth-lim.Margin
	minY, maxY := lim.Margin, lim.StageHeight-lim.Margin

	h := r[horizontalNeighbor(i)]
	if isLeftCorner(i) {
		maxX = math.Min(maxX, h.X-lim.MinWidth)
	} else {
		minX = math.Max(minX, h.X+lim.MinWidth)
	}

	v := r[verticalNeighbor(i)]
	if isTopCorner(i) {
		maxY = math.Min(maxY, v.Y-lim.MinHeight)
	} else {
		minY = math.Max(minY, v.Y+lim.MinHeight)
	}

	if minX > maxX || minY > maxY {
		return model.Rect{}, false
	}
	return model.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Editor owns a room and applies corner drags to it. Every drag either
// leaves the room valid or is rejected without changing it.
type Editor struct {
	room   model.Room
	limits Limits
}

// NewEditor creates an editor for the given room. The room is taken as-is;
// use SetRoom to replace it with validation.
func NewEditor(r model.Room, lim Limits) *Editor {
	return &Editor{room: r, limits: lim}
}

// Room returns the current room.
func (e *Editor) Room() model.Room {
	return e.room
}

// Limits returns the corner limits the editor enforces.
func (e *Editor) Limits() Limits {
	return e.limits
}

// DragCorner moves corner index towards proposed. The position is first
// clamped into the corner's legal rectangle; the move is then committed
// only if the resulting polygon does not self-intersect. A NaN coordinate
// is rejected. It returns the resulting room and true, or the unchanged
// room and false when rejected.
func (e *Editor) DragCorner(index int, proposed model.Point) (model.Room, bool) {
	bounds, ok := CornerBounds(e.room, index, e.limits)
	if !ok || math.IsNaN(proposed.X) || math.IsNaN(proposed.Y) {
		return e.room, false
	}

	next := e.room
	next[index] = model.Point{
		X: clamp(proposed.X, bounds.X, bounds.Right()),
		Y: clamp(proposed.Y, bounds.Y, bounds.Bottom()),
	}
	if SelfIntersects(next) {
		return e.room, false
	}

	e.room = next
	return e.room, true
}

// SetRoom replaces the room if it passes Validate. Imported outlines go
// through here.
func (e *Editor) SetRoom(r model.Room) bool {
	if Validate(r, e.limits) != nil {
		return false
	}
	e.room = r
	return true
}

// Validate checks that r could have been produced by corner drags under lim.
// It returns an error describing every violation found.
func Validate(r model.Room, lim Limits) error {
	const eps = 1e-9
	var errs []error
	for i, p := range r {
		if p.X < lim.Margin-eps || p.X > lim.StageWidth-lim.Margin+eps ||
			p.Y < lim.Margin-eps || p.Y > lim.StageHeight-lim.Margin+eps {
			errs = append(errs, fmt.Errorf("corner %d (%.1f, %.1f) is outside the stage margin", i, p.X, p.Y))
		}
		h := r[horizontalNeighbor(i)]
		if isLeftCorner(i) && p.X > h.X-lim.MinWidth+eps {
			errs = append(errs, fmt.Errorf("corner %d is closer than %.0f px to corner %d horizontally", i, lim.MinWidth, horizontalNeighbor(i)))
		}
		v := r[verticalNeighbor(i)]
		if isTopCorner(i) && p.Y > v.Y-lim.MinHeight+eps {
			errs = append(errs, fmt.Errorf("corner %d is closer than %.0f px to corner %d vertically", i, lim.MinHeight, verticalNeighbor(i)))
		}
	}
	if SelfIntersects(r) {
		errs = append(errs, errors.New("room edges intersect"))
	}
	return errors.Join(errs...)
}
