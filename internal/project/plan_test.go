package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/piwi3910/SortRoom/internal/model"
)

func buildTestPlan() model.Plan {
	plan := model.NewPlan("Avfallsrom", model.RoomFromRect(model.Rect{X: 100, Y: 100, Width: 400, Height: 300}))
	plan.Bins = append(plan.Bins, model.PlacedObject{
		ID: 1, Kind: model.KindBin, Name: "Restavfall", X: 105, Y: 150, Width: 30, Height: 30,
		Rotation: model.Rotation270, Color: "#607d8b",
	})
	plan.Doors = append(plan.Doors, model.PlacedObject{
		ID: 2, Kind: model.KindDoor, Name: "Enkel dør", X: 280, Y: 390, Width: 40, Height: 10,
	})
	return plan
}

func TestSaveAndLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "room"+PlanExtension)

	plan := buildTestPlan()
	if err := SavePlan(path, plan); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	loaded, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}

	if loaded.ID != plan.ID || loaded.Name != plan.Name {
		t.Errorf("identity mismatch: got %s/%s, want %s/%s", loaded.ID, loaded.Name, plan.ID, plan.Name)
	}
	if loaded.Room != plan.Room {
		t.Errorf("room mismatch: got %v, want %v", loaded.Room, plan.Room)
	}
	if len(loaded.Bins) != 1 || loaded.Bins[0] != plan.Bins[0] {
		t.Errorf("bins mismatch: got %+v", loaded.Bins)
	}
	if len(loaded.Doors) != 1 || loaded.Doors[0].Name != "Enkel dør" {
		t.Errorf("doors mismatch: got %+v", loaded.Doors)
	}
	if loaded.Others == nil {
		t.Error("Others should be an empty slice, not nil")
	}
	if loaded.UpdatedAt.Before(plan.UpdatedAt) {
		t.Error("UpdatedAt should be refreshed on save")
	}
}

func TestSavePlanSetsCreatedAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.sortroom")

	plan := buildTestPlan()
	plan.CreatedAt = time.Time{}
	if err := SavePlan(path, plan); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	loaded, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if loaded.CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled in when missing")
	}
}

func TestSavePlanWritesVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.sortroom")
	if err := SavePlan(path, buildTestPlan()); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !strings.Contains(string(data), `"version": "1.0.0"`) {
		t.Errorf("expected version field in output:\n%s", data)
	}
}

func TestLoadPlanFillsNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.sortroom")
	content := `{"version":"1.0.0","plan":{"id":"abc","name":"Old","room":[{"x":20,"y":20},{"x":220,"y":20},{"x":220,"y":220},{"x":20,"y":220}]}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if plan.Bins == nil || plan.Doors == nil || plan.Others == nil {
		t.Error("collections should never be nil after load")
	}
	if plan.Room[model.CornerBottomRight] != (model.Point{X: 220, Y: 220}) {
		t.Errorf("unexpected room: %v", plan.Room)
	}
}

func TestLoadPlanErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPlan(filepath.Join(dir, "missing.sortroom")); err == nil {
		t.Error("expected error for missing file")
	}

	invalid := filepath.Join(dir, "invalid.sortroom")
	if err := os.WriteFile(invalid, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlan(invalid); err == nil {
		t.Error("expected error for invalid JSON")
	}

	noVersion := filepath.Join(dir, "noversion.sortroom")
	if err := os.WriteFile(noVersion, []byte(`{"plan":{"name":"x"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPlan(noVersion); err == nil {
		t.Error("expected error for missing version")
	}
}

func TestPlanPath(t *testing.T) {
	p := PlanPath("Avfallsrom")
	if filepath.Base(p) != "Avfallsrom.sortroom" {
		t.Errorf("unexpected file name: %s", p)
	}
	if filepath.Dir(p) != DefaultPlanDir() {
		t.Errorf("expected plan in %s, got %s", DefaultPlanDir(), p)
	}
	if filepath.Base(PlanPath("")) != "untitled.sortroom" {
		t.Errorf("empty name should map to untitled, got %s", PlanPath(""))
	}
}
