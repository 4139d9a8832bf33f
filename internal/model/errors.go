package model

import "errors"

// Fetch and view errors
var (
	// ErrInvalidURL means the text does not match a recognized video host.
	// It never reaches the user as a dialog.
	ErrInvalidURL = errors.New("unrecognized video URL")

	// ErrNoStreamsFound means the fetch succeeded but produced no streams
	ErrNoStreamsFound = errors.New("no streams found for this video")

	// ErrFetchFailure covers network and extraction errors during metadata fetch
	ErrFetchFailure = errors.New("failed to get video info")

	// ErrDownloadFailure covers any failure of the transfer itself
	ErrDownloadFailure = errors.New("download failed")

	// ErrCancelledByUser marks a session the user cancelled. It is not shown as an error.
	ErrCancelledByUser = errors.New("download cancelled by user")
)

// Download worker causes, each wrapped by ErrDownloadFailure at the session boundary
var (
	ErrInvalidStream = errors.New("invalid stream")
	ErrIO            = errors.New("filesystem error")
	ErrTransport     = errors.New("transport error")
)
