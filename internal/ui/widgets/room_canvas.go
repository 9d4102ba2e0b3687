package widgets

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/session"
)

// Fill colors per object kind, used when an object has no color of its own.
var kindColors = [model.KindCount]color.NRGBA{
	model.KindBin:   {R: 76, G: 175, B: 80, A: 200}, // green
	model.KindDoor:  {R: 121, G: 85, B: 72, A: 200}, // brown
	model.KindOther: {R: 255, G: 152, B: 0, A: 200}, // orange
}

var (
	colorStage    = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colorFloor    = color.NRGBA{R: 225, G: 225, B: 215, A: 255}
	colorWall     = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	colorHandle   = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	colorOutside  = color.NRGBA{R: 244, G: 67, B: 54, A: 255}
	colorSelected = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	colorFront    = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
)

// RoomCanvas draws the room and its objects at stage scale and turns
// pointer input into planner actions. Corners and objects are dragged;
// a tap selects, a secondary tap rotates.
type RoomCanvas struct {
	widget.BaseWidget
	planner *session.Planner

	// OnChanged is called after any interaction that may have changed the plan.
	OnChanged func()

	target dragTarget
	grab   model.Point // Pointer offset from the dragged object's top-left
}

func NewRoomCanvas(planner *session.Planner) *RoomCanvas {
	rc := &RoomCanvas{planner: planner}
	rc.ExtendBaseWidget(rc)
	return rc
}

// SetPlanner swaps the session shown, e.g. after a plan is opened.
func (rc *RoomCanvas) SetPlanner(planner *session.Planner) {
	rc.planner = planner
	rc.target = dragTarget{}
	rc.Refresh()
}

func (rc *RoomCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newRoomCanvasRenderer(rc)
}

func toPoint(p fyne.Position) model.Point {
	return model.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (rc *RoomCanvas) changed() {
	rc.Refresh()
	if rc.OnChanged != nil {
		rc.OnChanged()
	}
}

// Dragged starts a gesture on the first event and applies every later sample.
func (rc *RoomCanvas) Dragged(ev *fyne.DragEvent) {
	pos := toPoint(ev.Position)

	if rc.target.kind == targetNone && !rc.planner.InGesture() {
		start := model.Point{X: pos.X - float64(ev.Dragged.DX), Y: pos.Y - float64(ev.Dragged.DY)}
		rc.target = hitTest(rc.planner.State(), start, HandleRadius)
		switch rc.target.kind {
		case targetCorner:
			rc.planner.BeginGesture()
		case targetObject:
			o := rc.target.object
			if !rc.planner.BeginObjectDrag(o.Kind, o.ID) {
				rc.target = dragTarget{}
				return
			}
			rc.grab = model.Point{X: start.X - o.X, Y: start.Y - o.Y}
		default:
			return
		}
	}

	switch rc.target.kind {
	case targetCorner:
		rc.planner.DragCorner(rc.target.corner, pos)
	case targetObject:
		o := rc.target.object
		rc.planner.MoveObject(o.Kind, o.ID, model.Point{X: pos.X - rc.grab.X, Y: pos.Y - rc.grab.Y})
	}
	rc.Refresh()
}

// DragEnd closes the gesture as one undo step.
func (rc *RoomCanvas) DragEnd() {
	if rc.target.kind == targetNone {
		return
	}
	rc.target = dragTarget{}
	rc.planner.EndGesture()
	rc.changed()
}

// Tapped selects the object under the pointer, or clears the selection.
func (rc *RoomCanvas) Tapped(ev *fyne.PointEvent) {
	hit := hitTest(rc.planner.State(), toPoint(ev.Position), 0)
	if hit.kind == targetObject {
		rc.planner.Select(hit.object.Kind, hit.object.ID)
	} else {
		rc.planner.Deselect()
	}
	rc.changed()
}

// TappedSecondary rotates the object under the pointer by one step.
func (rc *RoomCanvas) TappedSecondary(ev *fyne.PointEvent) {
	hit := hitTest(rc.planner.State(), toPoint(ev.Position), 0)
	if hit.kind != targetObject {
		return
	}
	rc.planner.Select(hit.object.Kind, hit.object.ID)
	rc.planner.RotateObject(hit.object.Kind, hit.object.ID)
	rc.changed()
}

// fillColor parses an object's "#rrggbb" color, falling back to its kind color.
func fillColor(o model.PlacedObject) color.NRGBA {
	s := strings.TrimPrefix(o.Color, "#")
	if len(s) == 6 {
		if v, err := strconv.ParseUint(s, 16, 32); err == nil {
			return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 200}
		}
	}
	if o.Kind >= 0 && o.Kind < model.KindCount {
		return kindColors[o.Kind]
	}
	return color.NRGBA{R: 158, G: 158, B: 158, A: 200}
}

type roomCanvasRenderer struct {
	rc      *RoomCanvas
	objects []fyne.CanvasObject
}

func newRoomCanvasRenderer(rc *RoomCanvas) *roomCanvasRenderer {
	r := &roomCanvasRenderer{rc: rc}
	r.rebuild()
	return r
}

func stagePos(p model.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func (r *roomCanvasRenderer) rebuild() {
	r.objects = nil
	p := r.rc.planner
	lim := p.Limits()
	st := p.State()

	bg := canvas.NewRectangle(colorStage)
	bg.Resize(fyne.NewSize(float32(lim.StageWidth), float32(lim.StageHeight)))
	r.objects = append(r.objects, bg)

	// Floor: the bounding rectangle, then the walls on top
	bounds := st.Room.BoundingRect()
	floor := canvas.NewRectangle(colorFloor)
	floor.Resize(fyne.NewSize(float32(bounds.Width), float32(bounds.Height)))
	floor.Move(stagePos(model.Point{X: bounds.X, Y: bounds.Y}))
	r.objects = append(r.objects, floor)

	for i, m := range p.SideMetrics() {
		a, b := st.Room[i], st.Room[(i+1)%model.CornerCount]
		wall := canvas.NewLine(colorWall)
		wall.StrokeWidth = 3
		wall.Position1 = stagePos(a)
		wall.Position2 = stagePos(b)
		r.objects = append(r.objects, wall)

		label := canvas.NewText(fmt.Sprintf("%.2f m", m.Length), colorWall)
		label.TextSize = 11
		label.Move(stagePos(m.Midpoint).AddXY(4, 2))
		r.objects = append(r.objects, label)
	}

	selected, hasSelection := p.Selected()
	for _, objs := range st.Objects {
		for _, o := range objs {
			r.drawObject(o, hasSelection && selected.Kind == o.Kind && selected.ID == o.ID, p.InPlace(o))
		}
	}

	for _, c := range st.Room {
		handle := canvas.NewCircle(colorHandle)
		handle.Resize(fyne.NewSize(2*HandleRadius, 2*HandleRadius))
		handle.Move(stagePos(c).SubtractXY(HandleRadius, HandleRadius))
		r.objects = append(r.objects, handle)
	}
}

func (r *roomCanvasRenderer) drawObject(o model.PlacedObject, selected, inside bool) {
	box := o.Box()
	size := fyne.NewSize(float32(box.Width), float32(box.Height))

	fill := canvas.NewRectangle(fillColor(o))
	fill.Resize(size)
	fill.Move(stagePos(o.Position()))
	r.objects = append(r.objects, fill)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	border.StrokeWidth = 1
	switch {
	case !inside:
		border.StrokeColor = colorOutside
		border.StrokeWidth = 2
	case selected:
		border.StrokeColor = colorSelected
		border.StrokeWidth = 2
	}
	border.Resize(size)
	border.Move(stagePos(o.Position()))
	r.objects = append(r.objects, border)

	a, b := o.FrontEdge()
	front := canvas.NewLine(colorFront)
	front.StrokeWidth = 3
	front.Position1 = stagePos(a)
	front.Position2 = stagePos(b)
	r.objects = append(r.objects, front)

	// Label (only if big enough)
	if box.Width > 30 && box.Height > 16 {
		label := canvas.NewText(o.Name, color.Black)
		label.TextSize = 9
		label.Move(stagePos(o.Position()).AddXY(2, 2))
		r.objects = append(r.objects, label)
	}
}

func (r *roomCanvasRenderer) Layout(size fyne.Size)        {}
func (r *roomCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *roomCanvasRenderer) Destroy()                     {}
func (r *roomCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *roomCanvasRenderer) MinSize() fyne.Size {
	lim := r.rc.planner.Limits()
	return fyne.NewSize(float32(lim.StageWidth), float32(lim.StageHeight))
}
