package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"palmlines/pkg/colorutil"
)

// PalmlinesTheme tints the stock fyne theme with the heart-line red.
type PalmlinesTheme struct{}

var _ fyne.Theme = (*PalmlinesTheme)(nil)

func (t *PalmlinesTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorutil.Red
	case theme.ColorNameFocus:
		return colorutil.WithAlpha(colorutil.Red, 0x60)
	case theme.ColorNameSelection:
		return colorutil.WithAlpha(colorutil.Gold, 0x80)
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *PalmlinesTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PalmlinesTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PalmlinesTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	default:
		return theme.DefaultTheme().Size(name)
	}
}
