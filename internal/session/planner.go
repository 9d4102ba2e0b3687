// Package session ties the room editor, the object store and a shared undo
// history into one planning session driven by the UI.
//
// Save policy: every discrete action (add, remove, rotate, corner or object
// drop) is one undo step. Pointer samples between BeginGesture and
// EndGesture are applied live but recorded as a single step when the
// gesture ends, and only if something changed.
package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/SortRoom/internal/history"
	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/objects"
	"github.com/piwi3910/SortRoom/internal/orient"
	"github.com/piwi3910/SortRoom/internal/room"
)

// Options configures a Planner.
type Options struct {
	Limits        room.Limits
	Scale         float64 // Real-world units per stage pixel
	WallTolerance float64 // Pixels within which an object is oriented to a wall
	HistoryDepth  int
	DefaultSizes  map[model.Kind]objects.Size
}

// gesture tracks one continuous pointer interaction.
type gesture struct {
	before  State
	changed bool

	// Set for object drags; the object is oriented when the gesture ends.
	object bool
	kind   model.Kind
	id     int
}

// Planner is one editing session. It is driven from the UI goroutine and
// is not safe for concurrent use.
type Planner struct {
	logger  *zap.Logger
	editor  *room.Editor
	store   *objects.Store
	history *history.History[State]
	opts    Options

	planID    string
	planName  string
	createdAt time.Time

	gesture *gesture
}

// New creates a session for the initial room. A nil logger disables logging.
func New(initial model.Room, opts Options, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.WallTolerance <= 0 {
		opts.WallTolerance = orient.DefaultTolerance
	}
	store := objects.NewStore()
	for kind, size := range opts.DefaultSizes {
		store.SetDefaultSize(kind, size)
	}
	plan := model.NewPlan("", initial)
	return &Planner{
		logger:    logger,
		editor:    room.NewEditor(initial, opts.Limits),
		store:     store,
		history:   history.New(State.Clone, opts.HistoryDepth),
		opts:      opts,
		planID:    plan.ID,
		createdAt: plan.CreatedAt,
	}
}

// State returns a copy of the current room and objects.
func (p *Planner) State() State {
	return State{Room: p.editor.Room(), Objects: p.store.Collections()}
}

func (p *Planner) restore(s State) {
	p.editor = room.NewEditor(s.Room, p.opts.Limits)
	p.store.RestoreAll(s.Objects)
}

// apply runs fn as one editing action. Outside a gesture a successful
// action that changed the state records the prior state; inside one it
// only marks the gesture as changed.
func (p *Planner) apply(action string, fn func() bool) bool {
	if p.gesture != nil {
		if fn() {
			p.gesture.changed = true
			return true
		}
		return false
	}
	before := p.State()
	if !fn() {
		return false
	}
	if p.State().Equal(before) {
		return true
	}
	p.history.Save(before)
	p.logger.Debug("history saved", zap.String("action", action))
	return true
}

// Room returns the current room outline.
func (p *Planner) Room() model.Room {
	return p.editor.Room()
}

// Limits returns the corner limits of the room editor.
func (p *Planner) Limits() room.Limits {
	return p.opts.Limits
}

// Scale returns the real-world units per stage pixel.
func (p *Planner) Scale() float64 {
	return p.opts.Scale
}

// SideMetrics returns length, midpoint and angle of every room edge.
func (p *Planner) SideMetrics() []room.SideMetric {
	return room.SideMetrics(p.editor.Room(), p.opts.Scale)
}

// Area returns the room area in real-world square units.
func (p *Planner) Area() float64 {
	return room.Area(p.editor.Room(), p.opts.Scale)
}

// BeginGesture starts a continuous interaction. Changes made until
// EndGesture form a single undo step. Starting a gesture while one is
// active ends the previous one first.
func (p *Planner) BeginGesture() {
	if p.gesture != nil {
		p.EndGesture()
	}
	p.gesture = &gesture{before: p.State()}
}

// BeginObjectDrag starts a gesture dragging one object and selects it.
func (p *Planner) BeginObjectDrag(kind model.Kind, id int) bool {
	if _, ok := p.store.Get(kind, id); !ok {
		return false
	}
	p.BeginGesture()
	p.gesture.object = true
	p.gesture.kind = kind
	p.gesture.id = id
	p.store.Select(kind, id)
	return true
}

// InGesture reports whether a gesture is in progress.
func (p *Planner) InGesture() bool {
	return p.gesture != nil
}

// EndGesture finishes the current gesture. A dragged object near a wall is
// turned to face away from it as part of the same step. It returns true
// when an undo step was recorded.
func (p *Planner) EndGesture() bool {
	g := p.gesture
	if g == nil {
		return false
	}
	p.gesture = nil

	if !g.changed {
		return false
	}
	if g.object {
		p.orient(g.kind, g.id)
	}
	if p.State().Equal(g.before) {
		return false
	}
	p.history.Save(g.before)
	p.logger.Debug("history saved", zap.String("action", "gesture"))
	return true
}

// DragCorner moves a room corner. It returns false when the drag was
// rejected, leaving the room unchanged.
func (p *Planner) DragCorner(index int, pos model.Point) bool {
	return p.apply("drag corner", func() bool {
		_, ok := p.editor.DragCorner(index, pos)
		if !ok {
			p.logger.Debug("corner drag rejected",
				zap.Int("corner", index),
				zap.Float64("x", pos.X),
				zap.Float64("y", pos.Y),
			)
		}
		return ok
	})
}

// SetRoom replaces the room outline, typically from an import. Invalid
// rooms are rejected with the reason.
func (p *Planner) SetRoom(r model.Room) error {
	if err := room.Validate(r, p.opts.Limits); err != nil {
		return fmt.Errorf("invalid room: %w", err)
	}
	p.apply("set room", func() bool {
		return p.editor.SetRoom(r)
	})
	return nil
}

// AddObject places a new object from desc at its default position.
func (p *Planner) AddObject(desc model.TypeDescriptor) (model.PlacedObject, bool) {
	var obj model.PlacedObject
	ok := p.apply("add", func() bool {
		var added bool
		obj, added = p.store.Add(desc, p.editor.Room())
		return added
	})
	if ok {
		p.logger.Info("object added",
			zap.Stringer("kind", obj.Kind),
			zap.String("name", obj.Name),
			zap.Int("id", obj.ID),
		)
	}
	return obj, ok
}

// AddObjectAt places a new object with its top-left corner at pos. It is
// rejected when the object would not fit inside the room.
func (p *Planner) AddObjectAt(desc model.TypeDescriptor, pos model.Point) (model.PlacedObject, bool) {
	var obj model.PlacedObject
	ok := p.apply("add", func() bool {
		var added bool
		obj, added = p.store.AddAt(desc, pos, p.editor.Room())
		return added
	})
	if ok {
		p.logger.Info("object added",
			zap.Stringer("kind", obj.Kind),
			zap.String("name", obj.Name),
			zap.Int("id", obj.ID),
		)
	}
	return obj, ok
}

// RemoveObject deletes an object. Unknown ids are a no-op and record no
// undo step.
func (p *Planner) RemoveObject(kind model.Kind, id int) bool {
	ok := p.apply("remove", func() bool {
		if _, found := p.store.Get(kind, id); !found {
			return false
		}
		p.store.Remove(kind, id)
		return true
	})
	if ok {
		p.logger.Info("object removed", zap.Stringer("kind", kind), zap.Int("id", id))
	}
	return ok
}

// MoveObject sets an object's top-left corner without checking containment.
func (p *Planner) MoveObject(kind model.Kind, id int, pos model.Point) bool {
	return p.apply("move", func() bool {
		cur, found := p.store.Get(kind, id)
		if !found || cur.Position() == pos {
			return false
		}
		return p.store.Move(kind, id, pos)
	})
}

// RotateObject turns an object one step clockwise.
func (p *Planner) RotateObject(kind model.Kind, id int) (model.Rotation, bool) {
	var rot model.Rotation
	ok := p.apply("rotate", func() bool {
		var done bool
		rot, done = p.store.Rotate(kind, id)
		return done
	})
	return rot, ok
}

// OrientObject turns an object to face away from the nearest wall. It
// returns false when no wall is within tolerance or the object is unknown.
func (p *Planner) OrientObject(kind model.Kind, id int) (model.Rotation, bool) {
	var rot model.Rotation
	ok := p.apply("orient", func() bool {
		var done bool
		rot, done = p.orient(kind, id)
		return done
	})
	return rot, ok
}

func (p *Planner) orient(kind model.Kind, id int) (model.Rotation, bool) {
	obj, found := p.store.Get(kind, id)
	if !found {
		return model.Rotation0, false
	}
	rot, ok := orient.SuggestRotation(obj.Box(), p.editor.Room(), p.opts.WallTolerance)
	if !ok || rot == obj.Rotation {
		return obj.Rotation, false
	}
	p.store.SetRotation(kind, id, rot)
	p.logger.Debug("object oriented to wall",
		zap.Stringer("kind", kind),
		zap.Int("id", id),
		zap.Int("rotation", int(rot)),
	)
	return rot, true
}

// Select makes an object active and deselects every other kind.
// Selection is not part of the undo history.
func (p *Planner) Select(kind model.Kind, id int) bool {
	return p.store.Select(kind, id)
}

// Deselect clears the selection.
func (p *Planner) Deselect() {
	p.store.Deselect()
}

// Selected returns the active object of any kind.
func (p *Planner) Selected() (model.PlacedObject, bool) {
	for _, k := range model.Kinds {
		if obj, ok := p.store.Selected(k); ok {
			return obj, true
		}
	}
	return model.PlacedObject{}, false
}

// Object returns one placed object.
func (p *Planner) Object(kind model.Kind, id int) (model.PlacedObject, bool) {
	return p.store.Get(kind, id)
}

// Objects returns a copy of one collection.
func (p *Planner) Objects(kind model.Kind) []model.PlacedObject {
	return p.store.Objects(kind)
}

// IsInsideRoom reports whether an object lies within the room's bounding
// rectangle.
func (p *Planner) IsInsideRoom(obj model.PlacedObject) bool {
	return objects.IsInsideRoom(obj, p.editor.Room())
}

// InPlace reports whether an object sits where its kind belongs; doors
// may reach into the wall they are set in.
func (p *Planner) InPlace(obj model.PlacedObject) bool {
	return objects.InPlace(obj, p.editor.Room())
}

// ObjectsOutside lists objects that are not in place.
func (p *Planner) ObjectsOutside() []model.PlacedObject {
	return p.store.ObjectsOutside(p.editor.Room())
}

// Undo restores the state before the last undo step. An unfinished
// gesture is ended first. It returns false when there is nothing to undo.
func (p *Planner) Undo() bool {
	p.EndGesture()
	prev, ok := p.history.Undo(p.State())
	if !ok {
		return false
	}
	p.restore(prev)
	undo, redo := p.history.Len()
	p.logger.Debug("undo", zap.Int("undo_depth", undo), zap.Int("redo_depth", redo))
	return true
}

// Redo reapplies the last undone step. It returns false when there is
// nothing to redo.
func (p *Planner) Redo() bool {
	p.EndGesture()
	next, ok := p.history.Redo(p.State())
	if !ok {
		return false
	}
	p.restore(next)
	undo, redo := p.history.Len()
	p.logger.Debug("redo", zap.Int("undo_depth", undo), zap.Int("redo_depth", redo))
	return true
}

// CanUndo reports whether Undo would change anything.
func (p *Planner) CanUndo() bool {
	return p.history.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (p *Planner) CanRedo() bool {
	return p.history.CanRedo()
}

// SetName sets the plan name used by Plan.
func (p *Planner) SetName(name string) {
	p.planName = name
}

// Plan returns the session as a plan for saving or export.
func (p *Planner) Plan() model.Plan {
	c := p.store.Collections()
	return model.Plan{
		ID:        p.planID,
		Name:      p.planName,
		Room:      p.editor.Room(),
		Bins:      nonNil(c[model.KindBin]),
		Doors:     nonNil(c[model.KindDoor]),
		Others:    nonNil(c[model.KindOther]),
		CreatedAt: p.createdAt,
		UpdatedAt: time.Now().UTC(),
	}
}

func nonNil(objs []model.PlacedObject) []model.PlacedObject {
	if objs == nil {
		return []model.PlacedObject{}
	}
	return objs
}

// LoadPlan replaces the session with plan. The room must satisfy the
// session's limits; object rotations and IDs are normalized. History and
// selection are cleared.
func (p *Planner) LoadPlan(plan model.Plan) error {
	if err := room.Validate(plan.Room, p.opts.Limits); err != nil {
		return fmt.Errorf("plan %q: invalid room: %w", plan.Name, err)
	}
	p.gesture = nil
	p.store.Deselect()
	var c objects.Collections
	for _, k := range model.Kinds {
		c[k] = plan.Objects(k)
	}
	c, fixed := objects.Normalize(c)
	if fixed > 0 {
		p.logger.Warn("plan objects normalized",
			zap.String("name", plan.Name),
			zap.Int("objects", fixed),
		)
	}
	p.restore(State{Room: plan.Room, Objects: c})
	p.history.Clear()
	p.planID = plan.ID
	p.planName = plan.Name
	p.createdAt = plan.CreatedAt
	p.logger.Info("plan loaded",
		zap.String("id", plan.ID),
		zap.String("name", plan.Name),
		zap.Int("objects", p.store.Len()),
	)
	return nil
}
