package widgets

import (
	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/session"
)

// HandleRadius is the distance in stage pixels within which a press grabs a room corner.
const HandleRadius = 8.0

type targetKind int

const (
	targetNone targetKind = iota
	targetCorner
	targetObject
)

// dragTarget is what a pointer press landed on.
type dragTarget struct {
	kind   targetKind
	corner int
	object model.PlacedObject
}

// hitTest finds the target under p. Corner handles win over objects, and
// objects drawn later (on top) win over earlier ones.
func hitTest(st session.State, p model.Point, radius float64) dragTarget {
	for i, c := range st.Room {
		dx, dy := c.X-p.X, c.Y-p.Y
		if dx*dx+dy*dy <= radius*radius {
			return dragTarget{kind: targetCorner, corner: i}
		}
	}
	for k := len(st.Objects) - 1; k >= 0; k-- {
		objs := st.Objects[k]
		for i := len(objs) - 1; i >= 0; i-- {
			if containsPoint(objs[i].Box(), p) {
				return dragTarget{kind: targetObject, object: objs[i]}
			}
		}
	}
	return dragTarget{kind: targetNone}
}

func containsPoint(r model.Rect, p model.Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}
