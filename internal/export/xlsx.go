package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/room"
)

// Sheet names of the object list workbook.
const (
	SheetObjects = "Objects"
	SheetRoom    = "Room"
)

// ExportObjectList writes an Excel workbook with one row per placed object
// and a second sheet describing the room's sides and area. Lengths are in
// meters.
func ExportObjectList(path string, plan model.Plan, scale float64) error {
	if scale <= 0 {
		return errInvalidScale
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetObjects); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	headers := []interface{}{"Kind", "ID", "Name", "X (m)", "Y (m)", "Width (m)", "Depth (m)", "Rotation", "Inside room"}
	if err := f.SetSheetRow(SheetObjects, "A1", &headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range ObjectRows(plan, scale) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Kind.String(), r.ID, r.Name, round2(r.X), round2(r.Y), round2(r.Width), round2(r.Depth), int(r.Rotation), r.Inside}
		if err := f.SetSheetRow(SheetObjects, cell, &row); err != nil {
			return fmt.Errorf("writing object %d: %w", r.ID, err)
		}
	}

	if _, err := f.NewSheet(SheetRoom); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	roomHeader := []interface{}{"Side", "Length (m)", "Angle (deg)"}
	if err := f.SetSheetRow(SheetRoom, "A1", &roomHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	sides := room.SideMetrics(plan.Room, scale)
	for i, m := range sides {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, round2(m.Length), round2(m.AngleDegrees)}
		if err := f.SetSheetRow(SheetRoom, cell, &row); err != nil {
			return fmt.Errorf("writing side %d: %w", i+1, err)
		}
	}
	totals := [][]interface{}{
		{"Area (m²)", round2(room.Area(plan.Room, scale))},
		{"Perimeter (m)", round2(room.Perimeter(plan.Room, scale))},
	}
	for i, row := range totals {
		cell, err := excelize.CoordinatesToCellName(1, len(sides)+3+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetRoom, cell, &row); err != nil {
			return fmt.Errorf("writing totals: %w", err)
		}
	}

	return f.SaveAs(path)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
