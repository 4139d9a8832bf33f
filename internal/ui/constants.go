package ui

import "github.com/ytget/ytdl-desktop/internal/thumbnail"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Window geometry
const (
	WindowWidth  float32 = 660
	WindowHeight float32 = 500
)

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconBack     = "<"
	IconPaste    = "📋"
)

// Layout sizing
const (
	ThumbnailWidth  float32 = thumbnail.DefaultWidth
	ThumbnailHeight float32 = thumbnail.DefaultHeight
	LogoSize        float32 = 96
	EntryMinWidth   float32 = 420
)
