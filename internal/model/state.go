package model

// ViewState represents which screen of the application is visible
type ViewState int

const (
	// StateIdle shows the URL entry. It is also the reset state.
	StateIdle ViewState = iota

	// StateSearching means metadata is being fetched for a recognized URL
	StateSearching

	// StateOptionsShown shows the title, thumbnail and quality options
	StateOptionsShown

	// StateDownloading shows the live progress of the active session
	StateDownloading
)

// String returns the string representation of ViewState
func (s ViewState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSearching:
		return "Searching"
	case StateOptionsShown:
		return "OptionsShown"
	case StateDownloading:
		return "Downloading"
	default:
		return "Unknown"
	}
}

// AcceptsURL returns true if a URL change can start a search from this state
func (s ViewState) AcceptsURL() bool {
	return s == StateIdle
}

// CanDownload returns true if a new download session may be started.
// Only one session can be live at a time.
func (s ViewState) CanDownload() bool {
	return s == StateOptionsShown
}
