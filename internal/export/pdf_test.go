package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SortRoom/internal/model"
)

const testScale = 0.02 // 50 px per meter

func buildTestPlan() model.Plan {
	plan := model.NewPlan("Avfallsrom", model.RoomFromRect(model.Rect{X: 100, Y: 100, Width: 400, Height: 300}))
	plan.Bins = []model.PlacedObject{
		{ID: 1, Kind: model.KindBin, Name: "Restavfall", X: 105, Y: 150, Width: 30, Height: 30, Rotation: model.Rotation270, Color: "#607d8b"},
		{ID: 2, Kind: model.KindBin, Name: "Papir", X: 200, Y: 105, Width: 30, Height: 30, Rotation: model.Rotation0, Color: "#2196f3"},
		{ID: 3, Kind: model.KindBin, Name: "Glass og metall", X: 480, Y: 370, Width: 40, Height: 40, Rotation: model.Rotation90},
	}
	plan.Doors = []model.PlacedObject{
		{ID: 4, Kind: model.KindDoor, Name: "Door", X: 280, Y: 390, Width: 40, Height: 10},
	}
	plan.Others = []model.PlacedObject{
		{ID: 5, Kind: model.KindOther, Name: "Bench", X: 300, Y: 200, Width: 60, Height: 30, Rotation: model.Rotation180, Color: "not-a-color"},
	}
	return plan
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.pdf")

	if err := ExportPDF(path, buildTestPlan(), testScale); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output does not start with a PDF header")
	}
	// Two pages with an embedded QR image should be a reasonable size
	if len(data) < 1000 {
		t.Errorf("PDF file seems too small: %d bytes", len(data))
	}
}

func TestExportPDF_EmptyRoom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	plan := model.NewPlan("Empty", model.RoomFromRect(model.Rect{X: 20, Y: 20, Width: 200, Height: 150}))
	if err := ExportPDF(path, plan, testScale); err != nil {
		t.Fatalf("ExportPDF returned error for plan without objects: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportPDF_InvalidScale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.pdf")

	for _, scale := range []float64{0, -1} {
		if err := ExportPDF(path, buildTestPlan(), scale); err == nil {
			t.Errorf("expected error for scale %v, got nil", scale)
		}
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written for an invalid scale")
	}
}

func TestExportPDF_SkewedRoom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skewed.pdf")

	plan := buildTestPlan()
	plan.Room = model.Room{{X: 46, Y: 109}, {X: 273, Y: 337}, {X: 777, Y: 509}, {X: 20, Y: 259}}
	if err := ExportPDF(path, plan, testScale); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestUprightAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{90, 90},
		{135, -45},
		{180, 0},
		{-90, -90},
		{-135, 45},
	}
	for _, tt := range tests {
		if got := uprightAngle(tt.in); got != tt.want {
			t.Errorf("uprightAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
