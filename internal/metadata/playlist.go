package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// DefaultPlaylistTimeout bounds a playlist lookup
const DefaultPlaylistTimeout = 60 * time.Second

// VideoURLTemplate builds a watch URL from a video ID
const VideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// YTDLPPlaylists resolves playlist links through the ytdlp library
type YTDLPPlaylists struct {
	timeout time.Duration
}

// NewYTDLPPlaylists creates a new playlist resolver
func NewYTDLPPlaylists() *YTDLPPlaylists {
	return &YTDLPPlaylists{timeout: DefaultPlaylistTimeout}
}

// SetTimeout sets the timeout for playlist lookups
func (p *YTDLPPlaylists) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// FirstVideoURL returns the watch URL of the first entry of the playlist
func (p *YTDLPPlaylists) FirstVideoURL(ctx context.Context, playlistURL string) (string, error) {
	playlistID := PlaylistID(playlistURL)
	if playlistID == "" {
		return "", fmt.Errorf("could not extract playlist ID from URL: %s", playlistURL)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return "", fmt.Errorf("failed to get playlist items: %w", err)
	}
	for _, it := range items {
		if it.VideoID != "" {
			return fmt.Sprintf(VideoURLTemplate, it.VideoID), nil
		}
	}

	return "", fmt.Errorf("playlist %s has no videos", playlistID)
}
