package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/ytdl-desktop/internal/config"
)

// AppTheme is a red-accented theme. A non-system appearance pins the variant
// regardless of what the OS reports.
type AppTheme struct {
	appearance config.Appearance
}

// NewAppTheme creates the application theme for the given appearance
func NewAppTheme(appearance config.Appearance) fyne.Theme {
	return &AppTheme{appearance: appearance}
}

func (t *AppTheme) variant(v fyne.ThemeVariant) fyne.ThemeVariant {
	switch t.appearance {
	case config.AppearanceDark:
		return theme.VariantDark
	case config.AppearanceLight:
		return theme.VariantLight
	default:
		return v
	}
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	variant = t.variant(variant)

	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		if variant == theme.VariantDark {
			return color.RGBA{R: 198, G: 40, B: 40, A: 255}
		}
		return color.RGBA{R: 211, G: 47, B: 47, A: 255}
	case theme.ColorNameSelection:
		return color.RGBA{R: 211, G: 47, B: 47, A: 64}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 36, G: 36, B: 36, A: 255}
		}
		return color.RGBA{R: 235, G: 235, B: 235, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 220, G: 228, B: 238, A: 255}
		}
		return color.RGBA{R: 26, G: 26, B: 26, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes. Buttons and inputs are rounder than the default.
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameInputRadius:
		return 6
	case theme.SizeNameSelectionRadius:
		return 4
	case theme.SizeNameHeadingText:
		return 20
	}

	return theme.DefaultTheme().Size(name)
}
