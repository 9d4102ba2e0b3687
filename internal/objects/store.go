// Package objects manages the bins, doors and other fixtures placed in a
// room. All three kinds share one store; each kind keeps its own
// insertion-ordered collection and placement rule.
package objects

import (
	"math"

	"github.com/piwi3910/SortRoom/internal/model"
)

// noSelection marks an empty selection slot. Object IDs start at 1.
const noSelection = 0

// Collections holds one slice of objects per kind, indexed by model.Kind.
type Collections [model.KindCount][]model.PlacedObject

// Clone returns a deep copy sharing no slice storage with c.
func (c Collections) Clone() Collections {
	var out Collections
	for k, objs := range c {
		if objs == nil {
			continue
		}
		out[k] = make([]model.PlacedObject, len(objs))
		copy(out[k], objs)
	}
	return out
}

// Store owns the placed-object collections and the current selection.
// It does not check room containment on move; use IsInsideRoom for that.
type Store struct {
	collections Collections
	selected    [model.KindCount]int
	nextID      int
	rules       [model.KindCount]PlacementRule
	sizes       [model.KindCount]Size
}

// NewStore creates an empty store with the default placement rules and sizes.
func NewStore() *Store {
	return &Store{
		nextID: 1,
		rules:  defaultRules(),
		sizes:  defaultSizes(),
	}
}

func validKind(k model.Kind) bool {
	return k >= 0 && k < model.KindCount
}

// SetRule replaces the placement rule for kind.
func (s *Store) SetRule(kind model.Kind, rule PlacementRule) {
	if validKind(kind) && rule != nil {
		s.rules[kind] = rule
	}
}

// SetDefaultSize sets the size used for descriptors of kind without a size.
func (s *Store) SetDefaultSize(kind model.Kind, size Size) {
	if validKind(kind) && size.Width > 0 && size.Height > 0 {
		s.sizes[kind] = size
	}
}

func (s *Store) sizeFor(desc model.TypeDescriptor) Size {
	size := Size{Width: desc.Width, Height: desc.Height}
	def := s.sizes[desc.Kind]
	if size.Width <= 0 {
		size.Width = def.Width
	}
	if size.Height <= 0 {
		size.Height = def.Height
	}
	return size
}

func (s *Store) newObject(desc model.TypeDescriptor, size Size, pos model.Point, rot model.Rotation) model.PlacedObject {
	obj := model.PlacedObject{
		ID:       s.nextID,
		Kind:     desc.Kind,
		Name:     desc.Name,
		X:        pos.X,
		Y:        pos.Y,
		Width:    size.Width,
		Height:   size.Height,
		Rotation: rot,
		Color:    desc.Color,
	}
	s.nextID++
	s.collections[desc.Kind] = append(s.collections[desc.Kind], obj)
	return obj
}

// Add creates an object from desc at its kind's default position relative
// to room and appends it to the kind's collection. It returns false only
// when desc has an unknown kind.
func (s *Store) Add(desc model.TypeDescriptor, room model.Room) (model.PlacedObject, bool) {
	if !validKind(desc.Kind) {
		return model.PlacedObject{}, false
	}
	size := s.sizeFor(desc)
	pos, rot := s.rules[desc.Kind](size, room.BoundingRect())
	return s.newObject(desc, size, pos, rot), true
}

// AddAt creates an object from desc with its top-left corner at pos. It is
// rejected when the object would not lie inside the room's bounding
// rectangle.
func (s *Store) AddAt(desc model.TypeDescriptor, pos model.Point, room model.Room) (model.PlacedObject, bool) {
	if !validKind(desc.Kind) {
		return model.PlacedObject{}, false
	}
	size := s.sizeFor(desc)
	box := model.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
	if !room.BoundingRect().Contains(box) {
		return model.PlacedObject{}, false
	}
	return s.newObject(desc, size, pos, model.Rotation0), true
}

func (s *Store) index(kind model.Kind, id int) int {
	if !validKind(kind) {
		return -1
	}
	for i, o := range s.collections[kind] {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the object with id in the kind's collection.
func (s *Store) Get(kind model.Kind, id int) (model.PlacedObject, bool) {
	i := s.index(kind, id)
	if i < 0 {
		return model.PlacedObject{}, false
	}
	return s.collections[kind][i], true
}

// Objects returns a copy of the kind's collection in insertion order.
func (s *Store) Objects(kind model.Kind) []model.PlacedObject {
	if !validKind(kind) {
		return nil
	}
	out := make([]model.PlacedObject, len(s.collections[kind]))
	copy(out, s.collections[kind])
	return out
}

// Len returns the total number of placed objects.
func (s *Store) Len() int {
	n := 0
	for _, objs := range s.collections {
		n += len(objs)
	}
	return n
}

// Remove deletes the object with id and returns the resulting collection.
// Removing an unknown id leaves the collection unchanged.
func (s *Store) Remove(kind model.Kind, id int) []model.PlacedObject {
	i := s.index(kind, id)
	if i < 0 {
		return s.Objects(kind)
	}
	objs := s.collections[kind]
	s.collections[kind] = append(objs[:i:i], objs[i+1:]...)
	if s.selected[kind] == id {
		s.selected[kind] = noSelection
	}
	return s.Objects(kind)
}

// Move sets the top-left corner of the object with id. Containment is not
// checked, so objects may sit outside the room while being dragged.
func (s *Store) Move(kind model.Kind, id int, pos model.Point) bool {
	i := s.index(kind, id)
	if i < 0 {
		return false
	}
	s.collections[kind][i].X = pos.X
	s.collections[kind][i].Y = pos.Y
	return true
}

// Rotate turns the object one step clockwise and returns its new rotation.
func (s *Store) Rotate(kind model.Kind, id int) (model.Rotation, bool) {
	i := s.index(kind, id)
	if i < 0 {
		return model.Rotation0, false
	}
	obj := &s.collections[kind][i]
	obj.Rotation = obj.Rotation.Next()
	return obj.Rotation, true
}

// SetRotation sets the object's rotation. Only multiples of 90 are accepted.
func (s *Store) SetRotation(kind model.Kind, id int, rot model.Rotation) bool {
	i := s.index(kind, id)
	if i < 0 || !rot.Valid() {
		return false
	}
	s.collections[kind][i].Rotation = rot
	return true
}

// Select makes the object with id the active one and clears the selection
// of every other kind. Selecting an unknown id is rejected and leaves the
// current selection alone.
func (s *Store) Select(kind model.Kind, id int) bool {
	if s.index(kind, id) < 0 {
		return false
	}
	for k := range s.selected {
		s.selected[k] = noSelection
	}
	s.selected[kind] = id
	return true
}

// Selected returns the active object of kind, if any.
func (s *Store) Selected(kind model.Kind) (model.PlacedObject, bool) {
	if !validKind(kind) || s.selected[kind] == noSelection {
		return model.PlacedObject{}, false
	}
	return s.Get(kind, s.selected[kind])
}

// Deselect clears every selection slot.
func (s *Store) Deselect() {
	s.selected = [model.KindCount]int{}
}

// Collections returns a deep copy of every collection.
func (s *Store) Collections() Collections {
	return s.collections.Clone()
}

// Restore replaces the kind's collection with a copy of objs. Selections
// that no longer resolve are cleared, and new IDs continue above the
// highest restored ID.
func (s *Store) Restore(kind model.Kind, objs []model.PlacedObject) {
	if !validKind(kind) {
		return
	}
	s.collections[kind] = make([]model.PlacedObject, len(objs))
	copy(s.collections[kind], objs)
	for i := range s.collections[kind] {
		s.collections[kind][i].Kind = kind
		if id := s.collections[kind][i].ID; id >= s.nextID {
			s.nextID = id + 1
		}
	}
	if s.selected[kind] != noSelection && s.index(kind, s.selected[kind]) < 0 {
		s.selected[kind] = noSelection
	}
}

// RestoreAll replaces every collection.
func (s *Store) RestoreAll(c Collections) {
	for k := range c {
		s.Restore(model.Kind(k), c[k])
	}
}

// IsInsideRoom reports whether the object's box lies entirely within the
// room's bounding rectangle. Rotation is not applied to the box.
func IsInsideRoom(obj model.PlacedObject, room model.Room) bool {
	return room.BoundingRect().Contains(obj.Box())
}

// InPlace reports whether the object sits where its kind belongs. Doors
// are set into a wall, so a door may reach past the room's bounding
// rectangle by up to its depth. Every other kind must be inside the room.
func InPlace(obj model.PlacedObject, room model.Room) bool {
	if obj.Kind != model.KindDoor {
		return IsInsideRoom(obj, room)
	}
	b := room.BoundingRect()
	depth := math.Min(obj.Width, obj.Height)
	walls := model.Rect{X: b.X - depth, Y: b.Y - depth, Width: b.Width + 2*depth, Height: b.Height + 2*depth}
	return walls.Contains(obj.Box())
}

// ObjectsOutside returns every object not in place, in kind order.
func (s *Store) ObjectsOutside(room model.Room) []model.PlacedObject {
	var out []model.PlacedObject
	for _, objs := range s.collections {
		for _, o := range objs {
			if !InPlace(o, room) {
				out = append(out, o)
			}
		}
	}
	return out
}

// Normalize makes collections read from a file safe to edit. Rotations
// snap to the nearest quarter turn, and IDs that are not positive or are
// already taken get fresh ones above the highest valid ID. It returns the
// cleaned copy and the number of objects changed.
func Normalize(c Collections) (Collections, int) {
	out := c.Clone()
	maxID := 0
	for _, objs := range out {
		for _, o := range objs {
			maxID = max(maxID, o.ID)
		}
	}

	fixed := 0
	seen := map[int]bool{}
	for k := range out {
		for i := range out[k] {
			o := &out[k][i]
			changed := false
			if !o.Rotation.Valid() {
				o.Rotation = o.Rotation.Snap()
				changed = true
			}
			if o.ID <= noSelection || seen[o.ID] {
				maxID++
				o.ID = maxID
				changed = true
			}
			seen[o.ID] = true
			if changed {
				fixed++
			}
		}
	}
	return out, fixed
}
