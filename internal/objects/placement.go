package objects

import (
	"github.com/piwi3910/SortRoom/internal/model"
)

// Size is a default width and height in stage pixels.
type Size struct {
	Width  float64
	Height float64
}

// PlacementRule returns where a new object of the given size goes inside
// bounds, as its top-left corner, and its initial rotation.
type PlacementRule func(size Size, bounds model.Rect) (model.Point, model.Rotation)

// CenterInRoom centers the object within bounds.
func CenterInRoom(size Size, bounds model.Rect) (model.Point, model.Rotation) {
	return model.Point{
		X: bounds.X + bounds.Width/2 - size.Width/2,
		Y: bounds.Y + bounds.Height/2 - size.Height/2,
	}, model.Rotation0
}

// CenterOnBottomWall centers the object horizontally with its top edge on
// the bottom wall, facing into the room.
func CenterOnBottomWall(size Size, bounds model.Rect) (model.Point, model.Rotation) {
	return model.Point{
		X: bounds.X + bounds.Width/2 - size.Width/2,
		Y: bounds.Bottom(),
	}, model.Rotation0
}

// defaultRules maps each kind to its placement rule.
func defaultRules() [model.KindCount]PlacementRule {
	return [model.KindCount]PlacementRule{
		model.KindBin:   CenterInRoom,
		model.KindDoor:  CenterOnBottomWall,
		model.KindOther: CenterInRoom,
	}
}

func defaultSizes() [model.KindCount]Size {
	return [model.KindCount]Size{
		model.KindBin:   {Width: model.DefaultBinSize, Height: model.DefaultBinSize},
		model.KindDoor:  {Width: model.DefaultDoorWidth, Height: model.DefaultDoorDepth},
		model.KindOther: {Width: model.DefaultObjectWidth, Height: model.DefaultBinSize},
	}
}
