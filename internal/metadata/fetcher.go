package metadata

import (
	"context"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ytget/ytdl-desktop/internal/model"
)

// BytesPerMB converts provider sizes to the MB shown next to each option
const BytesPerMB = 1024 * 1024

// RawStream is one stream as reported by a provider, before de-duplication
type RawStream struct {
	Label     string
	Kind      model.StreamKind
	SizeBytes int64
	Filename  string
	Handle    any
}

// RawVideo is the provider's answer for one URL
type RawVideo struct {
	Title        string
	ThumbnailURL string
	Streams      []RawStream
}

// Source is the external video-info provider
type Source interface {
	Lookup(ctx context.Context, url string) (*RawVideo, error)
}

// Fetcher validates URLs and builds VideoMetadata from a Source
type Fetcher struct {
	source Source
}

// NewFetcher creates a new metadata fetcher
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch validates the URL and retrieves its metadata. A video without streams
// is not an error: the result simply has no Streams. Failures wrap
// model.ErrInvalidURL or model.ErrFetchFailure.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*model.VideoMetadata, error) {
	url = strings.TrimSpace(url)
	if !IsVideoURL(url) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidURL, url)
	}

	raw, err := f.source.Lookup(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrFetchFailure, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: provider returned no data", model.ErrFetchFailure)
	}

	meta := BuildMetadata(url, raw)
	log.WithField("url", url).Infof("Fetched %q with %d streams", meta.Title, len(meta.Streams))
	return meta, nil
}

// BuildMetadata de-duplicates and orders raw streams. For each label only the
// first stream seen is kept. Video options come first, then audio options, each
// sorted ascending by Magnitude.
func BuildMetadata(url string, raw *RawVideo) *model.VideoMetadata {
	byLabel := make(map[string]model.StreamOption)
	var videoLabels, audioLabels []string

	for _, rs := range raw.Streams {
		if rs.Label == "" {
			continue
		}
		if _, seen := byLabel[rs.Label]; seen {
			continue
		}

		byLabel[rs.Label] = model.StreamOption{
			Label:    rs.Label,
			Kind:     rs.Kind,
			SizeMB:   SizeMB(rs.SizeBytes),
			Filename: rs.Filename,
			Handle:   rs.Handle,
		}

		if rs.Kind == model.StreamKindAudio {
			audioLabels = append(audioLabels, rs.Label)
		} else {
			videoLabels = append(videoLabels, rs.Label)
		}
	}

	SortByMagnitude(videoLabels)
	SortByMagnitude(audioLabels)

	streams := make([]model.StreamOption, 0, len(byLabel))
	for _, label := range append(videoLabels, audioLabels...) {
		streams = append(streams, byLabel[label])
	}

	return &model.VideoMetadata{
		URL:          url,
		Title:        raw.Title,
		ThumbnailURL: raw.ThumbnailURL,
		Streams:      streams,
	}
}

// SizeMB converts bytes to MiB rounded to 3 decimals
func SizeMB(bytes int64) float64 {
	if bytes <= 0 {
		return 0
	}
	return math.Round(float64(bytes)/BytesPerMB*1000) / 1000
}
