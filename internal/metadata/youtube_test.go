package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdl-desktop/internal/model"
)

func TestVideoLabel(t *testing.T) {
	tests := []struct {
		quality  string
		expected string
	}{
		{"720p", "720p"},
		{"720p60", "720p"},
		{"2160p60 HDR", "2160p"},
		{"", ""},
		{"hd", "hd"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, videoLabel(youtube.Format{QualityLabel: tt.quality}), "quality %q", tt.quality)
	}
}

func TestAudioLabel(t *testing.T) {
	tests := []struct {
		name     string
		format   youtube.Format
		expected string
	}{
		{"average bitrate", youtube.Format{AverageBitrate: 129502, Bitrate: 140000}, "130kbps"},
		{"falls back to bitrate", youtube.Format{Bitrate: 49600}, "50kbps"},
		{"unknown", youtube.Format{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, audioLabel(tt.format))
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		mimeType string
		expected string
	}{
		{`video/mp4; codecs="avc1.64001F"`, "mp4"},
		{`audio/webm; codecs="opus"`, "webm"},
		{"video/webm", "webm"},
		{"", "mp4"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, extension(tt.mimeType), "mime %q", tt.mimeType)
	}
}

func TestBestThumbnail(t *testing.T) {
	thumbs := youtube.Thumbnails{
		{URL: "small", Width: 120, Height: 90},
		{URL: "large", Width: 1280, Height: 720},
		{URL: "medium", Width: 480, Height: 360},
	}

	assert.Equal(t, "large", bestThumbnail(thumbs))
	assert.Equal(t, "", bestThumbnail(nil))
}

func TestRawStreams(t *testing.T) {
	video := &youtube.Video{
		ID:    "abc",
		Title: "My: Video?",
		Formats: youtube.FormatList{
			{ItagNo: 18, MimeType: `video/mp4; codecs="avc1, mp4a"`, QualityLabel: "360p", AudioChannels: 2},
			{ItagNo: 137, MimeType: `video/mp4; codecs="avc1"`, QualityLabel: "1080p", ContentLength: 5000},
			{ItagNo: 298, MimeType: `video/mp4; codecs="avc1"`, QualityLabel: "720p60", ContentLength: 3000},
			{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, AverageBitrate: 130000, AudioChannels: 2, ContentLength: 700},
			{ItagNo: 999, MimeType: `audio/mp4`, AudioChannels: 2},
			{ItagNo: 1, MimeType: "text/plain"},
		},
	}

	streams := rawStreams(video)

	require.Len(t, streams, 3)

	assert.Equal(t, "1080p", streams[0].Label)
	assert.Equal(t, model.StreamKindVideo, streams[0].Kind)
	assert.Equal(t, int64(5000), streams[0].SizeBytes)
	assert.Equal(t, "My Video.mp4", streams[0].Filename)

	assert.Equal(t, "720p", streams[1].Label)

	assert.Equal(t, "130kbps", streams[2].Label)
	assert.Equal(t, model.StreamKindAudio, streams[2].Kind)
	assert.Equal(t, "My Video.webm", streams[2].Filename)

	h, ok := streams[2].Handle.(*youtubeStream)
	require.True(t, ok)
	assert.Equal(t, 251, h.format.ItagNo)
	assert.Same(t, video, h.video)
}

func TestOpenStream_ForeignHandle(t *testing.T) {
	provider := NewYouTube(nil, nil)

	_, _, err := provider.OpenStream(context.Background(), model.StreamOption{Label: "720p", Handle: "not ours"})

	assert.ErrorIs(t, err, model.ErrInvalidStream)
}

type fakePlaylists struct {
	err error
}

func (f fakePlaylists) FirstVideoURL(ctx context.Context, playlistURL string) (string, error) {
	return "", f.err
}

func TestLookup_PlaylistResolutionError(t *testing.T) {
	resolveErr := errors.New("playlist is empty")
	provider := NewYouTube(nil, fakePlaylists{err: resolveErr})

	_, err := provider.Lookup(context.Background(), "https://www.youtube.com/playlist?list=PL123")

	assert.ErrorIs(t, err, resolveErr)
}
