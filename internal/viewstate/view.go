package viewstate

import (
	"image"

	"github.com/ytget/ytdl-desktop/internal/download"
	"github.com/ytget/ytdl-desktop/internal/model"
)

// NotificationKind tells the UI how to present a Notification
type NotificationKind int

const (
	// NotificationWarning is an expected but unhappy outcome
	NotificationWarning NotificationKind = iota
	// NotificationError carries a failure and its cause
	NotificationError
)

// String returns the string representation of NotificationKind
func (k NotificationKind) String() string {
	switch k {
	case NotificationWarning:
		return "warning"
	case NotificationError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a message to surface to the user. Err wraps one of
// model.ErrNoStreamsFound, model.ErrFetchFailure or model.ErrDownloadFailure.
type Notification struct {
	Kind NotificationKind
	Err  error
}

// View is everything the UI needs to draw the current screen
type View struct {
	State     model.ViewState
	URL       string
	Metadata  *model.VideoMetadata
	Selected  string
	Thumbnail image.Image

	// Download screen
	TargetDirectory string
	Progress        download.Snapshot
}

// SelectedOption returns the stream behind the selected label
func (v View) SelectedOption() (model.StreamOption, bool) {
	return v.Metadata.Lookup(v.Selected)
}

// Renderer receives machine output. Calls are made from the machine
// goroutine; implementations marshal to their own UI thread.
type Renderer interface {
	Render(View)
	Notify(Notification)
}
