package ui

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytdl-desktop/internal/platform"
)

// AppIcon is the window and logo image, relative to the executable or the
// working directory
const AppIcon = "assets/icon.png"

// LoadLogoResource loads the logo from the packaged or development location
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(platform.ResourcePath(AppIcon))
}
