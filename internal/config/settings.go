package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytdl-desktop/internal/platform"
)

// Appearance selects the light or dark variant of the theme
type Appearance string

const (
	AppearanceSystem Appearance = "system"
	AppearanceLight  Appearance = "light"
	AppearanceDark   Appearance = "dark"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyAppearance         = "appearance"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = true
	DefaultAppearance         = AppearanceSystem
)

// Settings manages user preferences. Nothing about a download session is
// stored here; only choices that outlive one.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the directory the folder dialog opens in.
// It defaults to the user's Downloads directory, then the home directory.
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir != "" {
		return dir
	}

	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return ""
	}
	return dir
}

// SetDownloadDirectory remembers the last directory chosen in the dialog
func (s *Settings) SetDownloadDirectory(dir string) {
	if dir == "" {
		return
	}
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to auto-reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetAppearance returns the configured theme variant
func (s *Settings) GetAppearance() Appearance {
	switch a := Appearance(s.app.Preferences().String(KeyAppearance)); a {
	case AppearanceLight, AppearanceDark, AppearanceSystem:
		return a
	default:
		return DefaultAppearance
	}
}

// SetAppearance sets the theme variant
func (s *Settings) SetAppearance(a Appearance) {
	s.app.Preferences().SetString(KeyAppearance, string(a))
}

// GetAppearanceOptions returns available theme variants in display order
func (s *Settings) GetAppearanceOptions() []Appearance {
	return []Appearance{AppearanceSystem, AppearanceLight, AppearanceDark}
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
