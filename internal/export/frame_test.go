package export

import (
	"testing"

	"github.com/piwi3910/SortRoom/internal/model"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want rgb
		ok   bool
	}{
		{"#4caf50", rgb{76, 175, 80}, true},
		{"4CAF50", rgb{76, 175, 80}, true},
		{"#fff", rgb{255, 255, 255}, true},
		{" #000000 ", rgb{0, 0, 0}, true},
		{"", rgb{}, false},
		{"#12345", rgb{}, false},
		{"#gggggg", rgb{}, false},
	}
	for _, tt := range tests {
		got, ok := parseHexColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestObjectColorFallsBackToKind(t *testing.T) {
	plan := buildTestPlan()
	if got := objectColor(plan.Bins[0]); got != (rgb{96, 125, 139}) {
		t.Errorf("expected own color, got %v", got)
	}
	if got := objectColor(plan.Others[0]); got != kindColors[model.KindOther] {
		t.Errorf("invalid color should fall back to the kind color, got %v", got)
	}
}

func TestObjectRows(t *testing.T) {
	rows := ObjectRows(buildTestPlan(), testScale)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	wantKinds := []model.Kind{model.KindBin, model.KindBin, model.KindBin, model.KindDoor, model.KindOther}
	for i, k := range wantKinds {
		if rows[i].Kind != k {
			t.Errorf("row %d: expected kind %v, got %v", i, k, rows[i].Kind)
		}
	}

	door := rows[3]
	if !near(door.X, 3.6) || !near(door.Y, 5.8) {
		t.Errorf("door position: got (%v, %v), want (3.6, 5.8)", door.X, door.Y)
	}
	if !door.Inside {
		t.Error("door touching the bottom wall should count as inside")
	}
	// The third bin sticks out past the bottom-right corner
	if rows[2].Inside {
		t.Error("bin crossing the walls should be reported outside")
	}
}

func TestSummarize(t *testing.T) {
	plan := buildTestPlan()
	s := Summarize(plan, testScale)

	if s.ID != plan.ID || s.Name != plan.Name {
		t.Errorf("unexpected identity: %+v", s)
	}
	if !near(s.AreaM2, 48) {
		t.Errorf("expected area 48 m², got %v", s.AreaM2)
	}
	if s.Bins != 3 || s.Doors != 1 || s.Others != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
	if s.Outside != 1 {
		t.Errorf("expected 1 object outside, got %d", s.Outside)
	}
}

func TestSummarizeDoorInWallIsNotOutside(t *testing.T) {
	plan := model.NewPlan("dør", model.RoomFromRect(model.Rect{X: 100, Y: 100, Width: 400, Height: 300}))
	plan.Doors = []model.PlacedObject{
		{ID: 1, Kind: model.KindDoor, Name: "Enkel dør", X: 280, Y: 400, Width: 40, Height: 10},
	}

	if s := Summarize(plan, testScale); s.Outside != 0 {
		t.Errorf("door set into the bottom wall counted outside: %+v", s)
	}
	rows := ObjectRows(plan, testScale)
	if len(rows) != 1 || !rows[0].Inside {
		t.Errorf("door set into the bottom wall should be listed as in the room: %+v", rows)
	}
}
