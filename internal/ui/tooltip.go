package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/SortRoom/internal/model"
)

// toolButton creates a toolbar button whose hover tooltip names the action
// and its keyboard shortcut. An empty label gives an icon-only button.
func toolButton(label string, icon fyne.Resource, action, key string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon(label, icon, tapped)
	btn.SetToolTip(toolTipText(action, key))
	return btn
}

func toolTipText(action, key string) string {
	if key == "" {
		return action
	}
	return fmt.Sprintf("%s (%s)", action, key)
}

// catalogButton creates a button that places a new object of type desc.
func catalogButton(desc model.TypeDescriptor, scale float64, add func(model.TypeDescriptor)) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon(desc.Name, theme.ContentAddIcon(), func() { add(desc) })
	btn.SetToolTip(catalogTipText(desc, scale))
	return btn
}

// catalogTipText describes a catalog entry's footprint in meters. Entries
// without a size use the kind's default and say so.
func catalogTipText(desc model.TypeDescriptor, scale float64) string {
	if desc.Width <= 0 || desc.Height <= 0 {
		return fmt.Sprintf("Add %s (default size)", desc.Name)
	}
	return fmt.Sprintf("Add %s, %.2f x %.2f m", desc.Name, desc.Width*scale, desc.Height*scale)
}
