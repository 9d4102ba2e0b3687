package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/SortRoom/internal/model"
)

// DXF layer names.
const (
	LayerRoom   = "ROOM"
	LayerBins   = "BINS"
	LayerDoors  = "DOORS"
	LayerOthers = "OBJECTS"
	LayerFront  = "FRONT"
)

var kindLayers = [model.KindCount]string{
	model.KindBin:   LayerBins,
	model.KindDoor:  LayerDoors,
	model.KindOther: LayerOthers,
}

// ExportDXF writes the plan as a DXF drawing in meters with Y pointing up.
// The room outline is the first entity, a closed LWPOLYLINE on the ROOM
// layer, so the file can be read back as a room outline. Objects are
// closed rectangles on one layer per kind, with their front edge on the
// FRONT layer.
func ExportDXF(path string, plan model.Plan, scale float64) error {
	if scale <= 0 {
		return errInvalidScale
	}

	bounds := plan.Room.BoundingRect()
	toDXF := func(p model.Point) []float64 {
		return []float64{(p.X - bounds.X) * scale, (bounds.Bottom() - p.Y) * scale}
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerRoom, color.White},
		{LayerBins, color.Green},
		{LayerDoors, color.Red},
		{LayerOthers, color.Yellow},
		{LayerFront, color.Cyan},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("adding layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerRoom); err != nil {
		return fmt.Errorf("selecting layer %s: %w", LayerRoom, err)
	}
	var outline [][]float64
	for _, p := range plan.Room {
		outline = append(outline, toDXF(p))
	}
	if _, err := d.LwPolyline(true, outline...); err != nil {
		return fmt.Errorf("writing room outline: %w", err)
	}

	for _, o := range plan.AllObjects() {
		if o.Kind < 0 || o.Kind >= model.KindCount {
			continue
		}
		if err := d.ChangeLayer(kindLayers[o.Kind]); err != nil {
			return fmt.Errorf("selecting layer %s: %w", kindLayers[o.Kind], err)
		}
		corners := model.RoomFromRect(o.Box())
		var rect [][]float64
		for _, p := range corners {
			rect = append(rect, toDXF(p))
		}
		if _, err := d.LwPolyline(true, rect...); err != nil {
			return fmt.Errorf("writing %s %d: %w", o.Kind, o.ID, err)
		}

		if err := d.ChangeLayer(LayerFront); err != nil {
			return fmt.Errorf("selecting layer %s: %w", LayerFront, err)
		}
		a, b := o.FrontEdge()
		pa, pb := toDXF(a), toDXF(b)
		if _, err := d.Line(pa[0], pa[1], 0, pb[0], pb[1], 0); err != nil {
			return fmt.Errorf("writing front of %s %d: %w", o.Kind, o.ID, err)
		}
	}

	return d.SaveAs(path)
}
