package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Point is a 2D coordinate in stage pixels. Y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in stage pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether inner lies entirely within r. Touching edges count as inside.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X &&
		inner.Y >= r.Y &&
		inner.Right() <= r.Right() &&
		inner.Bottom() <= r.Bottom()
}

// Corner indices of a Room, clockwise on screen starting top-left.
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomRight
	CornerBottomLeft
	CornerCount
)

// Room is the closed quadrilateral bounding the planning area. Edges run
// between consecutive corners and wrap from the last corner to the first.
// Being an array, a Room is copied by value and never shares storage with
// another Room.
type Room [CornerCount]Point

// RoomFromRect builds the rectangular room covering r.
func RoomFromRect(r Rect) Room {
	return Room{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}
}

// BoundingRect returns the axis-aligned bounding rectangle of the room.
func (r Room) BoundingRect() Rect {
	minP, maxP := r[0], r[0]
	for _, p := range r[1:] {
		if p.X < minP.X {
			minP.X = p.X
		}
		if p.Y < minP.Y {
			minP.Y = p.Y
		}
		if p.X > maxP.X {
			maxP.X = p.X
		}
		if p.Y > maxP.Y {
			maxP.Y = p.Y
		}
	}
	return Rect{X: minP.X, Y: minP.Y, Width: maxP.X - minP.X, Height: maxP.Y - minP.Y}
}

// Rotation is an object orientation in degrees. Only multiples of 90 are used.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

// RotationStep is the amount a single rotate action turns an object.
const RotationStep Rotation = 90

// Next returns the rotation one step further, wrapping at 360 back to 0.
func (r Rotation) Next() Rotation {
	return (r + RotationStep) % 360
}

// Snap returns the supported orientation nearest to r.
func (r Rotation) Snap() Rotation {
	q := int(math.Round(float64(r)/float64(RotationStep))) % 4
	if q < 0 {
		q += 4
	}
	return Rotation(q) * RotationStep
}

// Valid reports whether r is one of the four supported orientations.
func (r Rotation) Valid() bool {
	return r == Rotation0 || r == Rotation90 || r == Rotation180 || r == Rotation270
}

// Kind identifies which collection a placed object belongs to.
type Kind int

const (
	KindBin   Kind = iota // Waste bin
	KindDoor              // Door on a wall
	KindOther             // Furniture and other fixtures
	KindCount
)

// Kinds lists every object kind in collection order.
var Kinds = []Kind{KindBin, KindDoor, KindOther}

func (k Kind) String() string {
	switch k {
	case KindBin:
		return "Bin"
	case KindDoor:
		return "Door"
	case KindOther:
		return "Object"
	default:
		return "Unknown"
	}
}

// TypeDescriptor describes a catalog entry an object can be created from.
type TypeDescriptor struct {
	Kind   Kind    `json:"kind" yaml:"kind"`
	Name   string  `json:"name" yaml:"name"`
	Width  float64 `json:"width" yaml:"width"`   // px
	Height float64 `json:"height" yaml:"height"` // px
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"` // Hex fill, e.g. "#4caf50"
}

// PlacedObject is a bin, door or other fixture positioned on the stage.
type PlacedObject struct {
	ID       int      `json:"id"`
	Kind     Kind     `json:"kind"`
	Name     string   `json:"name"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Rotation Rotation `json:"rotation"`
	Color    string   `json:"color,omitempty"`
}

// Box returns the object's axis-aligned bounding box.
func (o PlacedObject) Box() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// Position returns the object's top-left corner.
func (o PlacedObject) Position() Point {
	return Point{X: o.X, Y: o.Y}
}

// FrontEdge returns the end points of the side the object faces. At
// rotation 0 that is the bottom edge; each 90 degree step turns it
// clockwise on screen (left, top, right).
func (o PlacedObject) FrontEdge() (Point, Point) {
	b := o.Box()
	switch o.Rotation {
	case Rotation90:
		return Point{X: b.X, Y: b.Bottom()}, Point{X: b.X, Y: b.Y}
	case Rotation180:
		return Point{X: b.X, Y: b.Y}, Point{X: b.Right(), Y: b.Y}
	case Rotation270:
		return Point{X: b.Right(), Y: b.Y}, Point{X: b.Right(), Y: b.Bottom()}
	default:
		return Point{X: b.Right(), Y: b.Bottom()}, Point{X: b.X, Y: b.Bottom()}
	}
}

// Plan ties a room and its placed objects together for save/load and export.
type Plan struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Room      Room           `json:"room"`
	Bins      []PlacedObject `json:"bins"`
	Doors     []PlacedObject `json:"doors"`
	Others    []PlacedObject `json:"others"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewPlan(name string, room Room) Plan {
	now := time.Now().UTC()
	return Plan{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Room:      room,
		Bins:      []PlacedObject{},
		Doors:     []PlacedObject{},
		Others:    []PlacedObject{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Objects returns the collection of the given kind.
func (p Plan) Objects(kind Kind) []PlacedObject {
	switch kind {
	case KindBin:
		return p.Bins
	case KindDoor:
		return p.Doors
	case KindOther:
		return p.Others
	default:
		return nil
	}
}

// AllObjects returns every placed object in collection order.
func (p Plan) AllObjects() []PlacedObject {
	all := make([]PlacedObject, 0, len(p.Bins)+len(p.Doors)+len(p.Others))
	all = append(all, p.Bins...)
	all = append(all, p.Doors...)
	all = append(all, p.Others...)
	return all
}
