package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/yofu/dxf"

	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/room"
)

func testLimits() room.Limits {
	return room.Limits{StageWidth: 800, StageHeight: 600, Margin: 20, MinWidth: 100, MinHeight: 100}
}

// createTestDXF writes one LWPOLYLINE per outline. Coordinates are meters.
func createTestDXF(t *testing.T, closed []bool, outlines ...[][]float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rom.dxf")

	d := dxf.NewDrawing()
	for i, o := range outlines {
		if _, err := d.LwPolyline(closed[i], o...); err != nil {
			t.Fatalf("failed to add polyline: %v", err)
		}
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF file: %v", err)
	}
	return path
}

func TestImportRoomDXF_Rectangle(t *testing.T) {
	path := createTestDXF(t, []bool{true}, [][]float64{{0, 0}, {8, 0}, {8, 6}, {0, 6}})

	result := ImportRoomDXF(path, testLimits(), 0.02)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !result.Found {
		t.Fatal("expected a room")
	}
	want := model.RoomFromRect(model.Rect{X: 20, Y: 20, Width: 400, Height: 300})
	for i := range want {
		if !samePoint(result.Room[i], want[i]) {
			t.Errorf("corner %d: expected %v, got %v", i, want[i], result.Room[i])
		}
	}
}

func TestImportRoomDXF_SkipsOpenAndNonQuadPolylines(t *testing.T) {
	path := createTestDXF(t, []bool{false, true, true},
		[][]float64{{0, 0}, {8, 0}, {8, 6}, {0, 6}},
		[][]float64{{0, 0}, {4, 0}, {2, 3}},
		[][]float64{{1, 1}, {5, 1}, {5, 4}, {1, 4}, {1, 1}},
	)

	result := ImportRoomDXF(path, testLimits(), 0.02)

	if !result.Found {
		t.Fatalf("expected a room, got errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Skipped 2") {
		t.Errorf("expected a skip warning, got %v", result.Warnings)
	}
	b := result.Room.BoundingRect()
	if b.Width < 199.99 || b.Width > 200.01 || b.Height < 149.99 || b.Height > 150.01 {
		t.Errorf("expected a 200x150 px room, got %+v", b)
	}
}

func TestImportRoomDXF_TooLargeForStage(t *testing.T) {
	path := createTestDXF(t, []bool{true}, [][]float64{{0, 0}, {20, 0}, {20, 6}, {0, 6}})

	result := ImportRoomDXF(path, testLimits(), 0.02)

	if result.Found || len(result.Errors) == 0 {
		t.Error("expected a room wider than the stage to be rejected")
	}
}

func TestImportRoomDXF_NoOutline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.dxf")
	d := dxf.NewDrawing()
	if _, err := d.Line(0, 0, 0, 5, 5, 0); err != nil {
		t.Fatalf("failed to add line: %v", err)
	}
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF file: %v", err)
	}

	result := ImportRoomDXF(path, testLimits(), 0.02)
	if result.Found || len(result.Errors) == 0 {
		t.Error("expected an error when no closed quadrilateral exists")
	}
}

func TestImportRoomDXF_FileNotFound(t *testing.T) {
	result := ImportRoomDXF("/nonexistent/rom.dxf", testLimits(), 0.02)
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestCanonicalOrder(t *testing.T) {
	// Counter-clockwise on screen, starting bottom-right.
	r := model.Room{{X: 300, Y: 300}, {X: 300, Y: 100}, {X: 100, Y: 100}, {X: 100, Y: 300}}
	got := canonicalOrder(r)
	want := model.RoomFromRect(model.Rect{X: 100, Y: 100, Width: 200, Height: 200})
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}
