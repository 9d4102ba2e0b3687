// Package orient suggests which way a placed object should face based on
// the wall it stands closest to.
package orient

import (
	"github.com/piwi3910/SortRoom/internal/model"
)

// DefaultTolerance is the distance in pixels within which an object counts
// as standing against a wall.
const DefaultTolerance = 60.0

// Wall identifies one side of the room's bounding rectangle.
type Wall int

const (
	WallLeft Wall = iota
	WallRight
	WallTop
	WallBottom
)

func (w Wall) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Facing returns the rotation that turns an object's front away from w.
// At rotation 0 the front is the bottom edge of the object.
func (w Wall) Facing() model.Rotation {
	switch w {
	case WallLeft:
		return model.Rotation270
	case WallRight:
		return model.Rotation90
	case WallBottom:
		return model.Rotation180
	default:
		return model.Rotation0
	}
}

// Gaps returns the distance from box to each wall of bounds, indexed by Wall.
// A negative gap means the box sticks out past that wall.
func Gaps(box, bounds model.Rect) [4]float64 {
	return [4]float64{
		WallLeft:   box.X - bounds.X,
		WallRight:  bounds.Right() - box.Right(),
		WallTop:    box.Y - bounds.Y,
		WallBottom: bounds.Bottom() - box.Bottom(),
	}
}

// NearestWall returns the wall with the smallest gap to box and that gap.
// Ties go to the first wall in left, right, top, bottom order.
func NearestWall(box, bounds model.Rect) (Wall, float64) {
	gaps := Gaps(box, bounds)
	nearest := WallLeft
	for w := WallRight; w <= WallBottom; w++ {
		if gaps[w] < gaps[nearest] {
			nearest = w
		}
	}
	return nearest, gaps[nearest]
}

// SuggestRotation returns the rotation that makes an object with the given
// box face away from the nearest wall of the room's bounding rectangle.
// It returns false when every wall is further away than tolerance, in which
// case the caller keeps the object's current rotation.
func SuggestRotation(box model.Rect, room model.Room, tolerance float64) (model.Rotation, bool) {
	wall, gap := NearestWall(box, room.BoundingRect())
	if gap > tolerance {
		return model.Rotation0, false
	}
	return wall.Facing(), true
}
