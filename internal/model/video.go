package model

import (
	"fmt"
	"strings"
	"time"
)

// StreamKind distinguishes video-only renditions from audio-only ones
type StreamKind string

const (
	StreamKindVideo StreamKind = "video"
	StreamKindAudio StreamKind = "audio"
)

// StreamOption is one selectable rendition of a video.
// It is immutable once built by the metadata fetcher.
type StreamOption struct {
	Label    string     // resolution ("720p") or audio bitrate ("128kbps")
	Kind     StreamKind // video or audio
	SizeMB   float64    // size in MiB, rounded to 3 decimals
	Filename string     // provider's default filename
	Handle   any        // opaque provider reference, only read by the stream opener
}

// SizeLabel returns the size formatted the way the options screen shows it
func (o StreamOption) SizeLabel() string {
	return fmt.Sprintf("%gMB", o.SizeMB)
}

// VideoMetadata is the result of one successful metadata fetch
type VideoMetadata struct {
	URL          string
	Title        string
	ThumbnailURL string
	Streams      []StreamOption // ordered: videos ascending, then audios ascending
}

// Labels returns the stream labels in display order
func (m *VideoMetadata) Labels() []string {
	if m == nil {
		return nil
	}
	labels := make([]string, 0, len(m.Streams))
	for _, s := range m.Streams {
		labels = append(labels, s.Label)
	}
	return labels
}

// Lookup returns the stream option with the given label
func (m *VideoMetadata) Lookup(label string) (StreamOption, bool) {
	if m == nil {
		return StreamOption{}, false
	}
	for _, s := range m.Streams {
		if s.Label == label {
			return s, true
		}
	}
	return StreamOption{}, false
}

// HasStreams returns true if at least one stream was found
func (m *VideoMetadata) HasStreams() bool {
	return m != nil && len(m.Streams) > 0
}

// DisplayTitle returns the title with control characters flattened to spaces
func (m *VideoMetadata) DisplayTitle() string {
	if m == nil {
		return ""
	}
	title := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(m.Title)
	return strings.TrimSpace(title)
}

// ProgressSample is one progress report produced by the download worker
type ProgressSample struct {
	BytesDownloaded uint64
	BytesTotal      uint64
	Timestamp       time.Time
}

// Canceller is the part of a worker handle the session needs
type Canceller interface {
	Cancel()
}

// DownloadSession is the single live download owned by the view-state machine
type DownloadSession struct {
	ID              string
	TargetDirectory string
	Stream          StreamOption
	Worker          Canceller
	StartedAt       time.Time
	LastSampleAt    time.Time
}
