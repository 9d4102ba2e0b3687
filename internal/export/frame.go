// Package export writes finished room plans to PDF, DXF and Excel files.
// Stage pixels are converted to meters, measured from the top-left corner
// of the room's bounding rectangle.
package export

import (
	"errors"
	"strconv"
	"strings"

	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/objects"
	"github.com/piwi3910/SortRoom/internal/room"
)

var errInvalidScale = errors.New("scale must be positive")

// frame converts stage pixels to meters relative to the room origin.
type frame struct {
	origin model.Point
	scale  float64
}

func newFrame(plan model.Plan, scale float64) frame {
	b := plan.Room.BoundingRect()
	return frame{origin: model.Point{X: b.X, Y: b.Y}, scale: scale}
}

func (f frame) point(p model.Point) model.Point {
	return model.Point{X: (p.X - f.origin.X) * f.scale, Y: (p.Y - f.origin.Y) * f.scale}
}

func (f frame) length(px float64) float64 {
	return px * f.scale
}

// ObjectRow is one placed object in real-world units.
type ObjectRow struct {
	Kind     model.Kind
	ID       int
	Name     string
	X, Y     float64 // m from the room origin
	Width    float64 // m
	Depth    float64 // m
	Rotation model.Rotation
	Inside   bool
}

// ObjectRows lists every object of plan in collection order.
func ObjectRows(plan model.Plan, scale float64) []ObjectRow {
	f := newFrame(plan, scale)
	var rows []ObjectRow
	for _, o := range plan.AllObjects() {
		p := f.point(o.Position())
		rows = append(rows, ObjectRow{
			Kind:     o.Kind,
			ID:       o.ID,
			Name:     o.Name,
			X:        p.X,
			Y:        p.Y,
			Width:    f.length(o.Width),
			Depth:    f.length(o.Height),
			Rotation: o.Rotation,
			Inside:   objects.InPlace(o, plan.Room),
		})
	}
	return rows
}

// PlanSummary is the compact description encoded into QR codes.
type PlanSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	AreaM2  float64 `json:"area_m2"`
	Bins    int     `json:"bins"`
	Doors   int     `json:"doors"`
	Others  int     `json:"others"`
	Outside int     `json:"outside"`
}

// Summarize builds the plan summary.
func Summarize(plan model.Plan, scale float64) PlanSummary {
	outside := 0
	for _, o := range plan.AllObjects() {
		if !objects.InPlace(o, plan.Room) {
			outside++
		}
	}
	return PlanSummary{
		ID:      plan.ID,
		Name:    plan.Name,
		AreaM2:  room.Area(plan.Room, scale),
		Bins:    len(plan.Bins),
		Doors:   len(plan.Doors),
		Others:  len(plan.Others),
		Outside: outside,
	}
}

// rgb is a fill color.
type rgb struct {
	R, G, B int
}

// kindColors is used for objects without their own color.
var kindColors = [model.KindCount]rgb{
	model.KindBin:   {R: 76, G: 175, B: 80},
	model.KindDoor:  {R: 121, G: 85, B: 72},
	model.KindOther: {R: 255, G: 152, B: 0},
}

// parseHexColor parses "#rgb" or "#rrggbb".
func parseHexColor(s string) (rgb, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}

func objectColor(o model.PlacedObject) rgb {
	if c, ok := parseHexColor(o.Color); ok {
		return c
	}
	if o.Kind >= 0 && o.Kind < model.KindCount {
		return kindColors[o.Kind]
	}
	return rgb{R: 158, G: 158, B: 158}
}
