package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SortRoomTheme wraps the default Fyne theme with compact sizing and a
// green primary color matching the bin markers on the plan.
type SortRoomTheme struct {
	base         fyne.Theme
	variant      fyne.ThemeVariant
	followSystem bool
}

// NewSortRoomTheme creates a new SortRoomTheme that follows the system variant.
func NewSortRoomTheme() *SortRoomTheme {
	return &SortRoomTheme{
		base:         theme.DefaultTheme(),
		followSystem: true,
	}
}

// NewSortRoomThemeNamed maps a configured theme name ("light", "dark",
// anything else meaning system) to a theme.
func NewSortRoomThemeNamed(name string) *SortRoomTheme {
	switch name {
	case "light":
		return NewSortRoomThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewSortRoomThemeWithVariant(theme.VariantDark)
	default:
		return NewSortRoomTheme()
	}
}

// NewSortRoomThemeWithVariant creates a SortRoomTheme with a specific light/dark variant.
func NewSortRoomThemeWithVariant(variant fyne.ThemeVariant) *SortRoomTheme {
	return &SortRoomTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// SetVariant pins the theme to a light or dark variant.
func (t *SortRoomTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
	t.followSystem = false
}

// Color overrides the primary and selection colors and delegates the rest
// to the base theme with the stored variant.
func (t *SortRoomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.followSystem {
		variant = t.variant
	}
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 56, G: 142, B: 60, A: 255}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 56, G: 142, B: 60, A: 80}
	default:
		return t.base.Color(name, variant)
	}
}

// Font delegates to the base theme.
func (t *SortRoomTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *SortRoomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *SortRoomTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
