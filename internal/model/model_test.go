package model

import (
	"testing"
)

func TestRoomFromRectCornerOrder(t *testing.T) {
	room := RoomFromRect(Rect{X: 10, Y: 20, Width: 100, Height: 80})

	want := Room{{10, 20}, {110, 20}, {110, 100}, {10, 100}}
	if room != want {
		t.Errorf("expected %v, got %v", want, room)
	}
}

func TestRoomBoundingRect(t *testing.T) {
	room := Room{{20, 10}, {120, 0}, {140, 90}, {0, 70}}
	bb := room.BoundingRect()

	if bb.X != 0 || bb.Y != 0 {
		t.Errorf("expected origin (0,0), got (%f,%f)", bb.X, bb.Y)
	}
	if bb.Width != 140 || bb.Height != 90 {
		t.Errorf("expected 140x90, got %fx%f", bb.Width, bb.Height)
	}
}

func TestRoomIsCopiedByValue(t *testing.T) {
	a := RoomFromRect(Rect{Width: 100, Height: 80})
	b := a
	b[0].X = 50

	if a[0].X != 0 {
		t.Error("modifying a copy must not change the original room")
	}
}

func TestRectContains(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 80}

	tests := []struct {
		name  string
		inner Rect
		want  bool
	}{
		{"fully inside", Rect{X: 10, Y: 10, Width: 20, Height: 20}, true},
		{"touching edges", Rect{X: 0, Y: 0, Width: 100, Height: 80}, true},
		{"past right edge", Rect{X: 90, Y: 10, Width: 20, Height: 20}, false},
		{"past bottom edge", Rect{X: 10, Y: 70, Width: 20, Height: 20}, false},
		{"left of room", Rect{X: -1, Y: 10, Width: 20, Height: 20}, false},
		{"above room", Rect{X: 10, Y: -5, Width: 20, Height: 20}, false},
	}
	for _, tt := range tests {
		if got := outer.Contains(tt.inner); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestRotationNextWraps(t *testing.T) {
	r := Rotation0
	expected := []Rotation{Rotation90, Rotation180, Rotation270, Rotation0}
	for _, want := range expected {
		r = r.Next()
		if r != want {
			t.Fatalf("expected %d, got %d", want, r)
		}
	}
}

func TestRotationValid(t *testing.T) {
	for _, r := range []Rotation{0, 90, 180, 270} {
		if !r.Valid() {
			t.Errorf("%d should be valid", r)
		}
	}
	for _, r := range []Rotation{45, 360, -90} {
		if r.Valid() {
			t.Errorf("%d should be invalid", r)
		}
	}
}

func TestRotationSnap(t *testing.T) {
	tests := []struct {
		in   Rotation
		want Rotation
	}{
		{0, Rotation0},
		{90, Rotation90},
		{44, Rotation0},
		{45, Rotation90},
		{200, Rotation180},
		{315, Rotation0},
		{360, Rotation0},
		{-90, Rotation270},
		{450, Rotation90},
	}
	for _, tt := range tests {
		if got := tt.in.Snap(); got != tt.want {
			t.Errorf("Rotation(%d).Snap() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindBin.String() != "Bin" || KindDoor.String() != "Door" || KindOther.String() != "Object" {
		t.Error("unexpected kind names")
	}
	if Kind(42).String() != "Unknown" {
		t.Error("out-of-range kind should be Unknown")
	}
}

func TestNewPlanHasIDAndEmptyCollections(t *testing.T) {
	p := NewPlan("Miljøstasjon", RoomFromRect(Rect{Width: 100, Height: 80}))

	if len(p.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", p.ID)
	}
	if p.Bins == nil || p.Doors == nil || p.Others == nil {
		t.Error("collections should be non-nil")
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestPlanAllObjectsOrder(t *testing.T) {
	p := Plan{
		Bins:   []PlacedObject{{ID: 1, Kind: KindBin}},
		Doors:  []PlacedObject{{ID: 1, Kind: KindDoor}},
		Others: []PlacedObject{{ID: 2, Kind: KindOther}},
	}
	all := p.AllObjects()
	if len(all) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(all))
	}
	if all[0].Kind != KindBin || all[1].Kind != KindDoor || all[2].Kind != KindOther {
		t.Error("objects should be ordered bins, doors, others")
	}
}

func TestFrontEdgeFollowsRotation(t *testing.T) {
	o := PlacedObject{X: 10, Y: 20, Width: 30, Height: 40}

	tests := []struct {
		rot  Rotation
		a, b Point
	}{
		{Rotation0, Point{X: 40, Y: 60}, Point{X: 10, Y: 60}},
		{Rotation90, Point{X: 10, Y: 60}, Point{X: 10, Y: 20}},
		{Rotation180, Point{X: 10, Y: 20}, Point{X: 40, Y: 20}},
		{Rotation270, Point{X: 40, Y: 20}, Point{X: 40, Y: 60}},
	}
	for _, tt := range tests {
		o.Rotation = tt.rot
		a, b := o.FrontEdge()
		if a != tt.a || b != tt.b {
			t.Errorf("rotation %d: expected %v-%v, got %v-%v", tt.rot, tt.a, tt.b, a, b)
		}
	}
}
