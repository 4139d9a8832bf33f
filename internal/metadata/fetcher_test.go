package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdl-desktop/internal/model"
)

type fakeSource struct {
	video *RawVideo
	err   error
	calls []string
}

func (f *fakeSource) Lookup(ctx context.Context, url string) (*RawVideo, error) {
	f.calls = append(f.calls, url)
	return f.video, f.err
}

func TestFetch_InvalidURL(t *testing.T) {
	source := &fakeSource{}
	fetcher := NewFetcher(source)

	_, err := fetcher.Fetch(context.Background(), "hello")

	assert.ErrorIs(t, err, model.ErrInvalidURL)
	assert.Empty(t, source.calls, "provider must not be called for unrecognized text")
}

func TestFetch_ProviderError(t *testing.T) {
	fetcher := NewFetcher(&fakeSource{err: errors.New("video is private")})

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc")

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrFetchFailure)
	assert.Contains(t, err.Error(), "video is private")
}

func TestFetch_NilVideo(t *testing.T) {
	fetcher := NewFetcher(&fakeSource{})

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc")

	assert.ErrorIs(t, err, model.ErrFetchFailure)
}

func TestFetch_ZeroStreamsIsNotAnError(t *testing.T) {
	fetcher := NewFetcher(&fakeSource{video: &RawVideo{Title: "Empty"}})

	meta, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc")

	require.NoError(t, err)
	assert.False(t, meta.HasStreams())
	assert.Equal(t, "Empty", meta.Title)
}

func TestFetch_TrimsURL(t *testing.T) {
	source := &fakeSource{video: &RawVideo{}}
	fetcher := NewFetcher(source)

	meta, err := fetcher.Fetch(context.Background(), "  https://youtu.be/abc\n")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://youtu.be/abc"}, source.calls)
	assert.Equal(t, "https://youtu.be/abc", meta.URL)
}

func TestBuildMetadata_OrderAndDedup(t *testing.T) {
	raw := &RawVideo{
		Title:        "Clip",
		ThumbnailURL: "https://i.ytimg.com/vi/abc/hqdefault.jpg",
		Streams: []RawStream{
			{Label: "1080p", Kind: model.StreamKindVideo, SizeBytes: 30 * BytesPerMB, Handle: "a"},
			{Label: "128kbps", Kind: model.StreamKindAudio, SizeBytes: 3 * BytesPerMB, Handle: "b"},
			{Label: "144p", Kind: model.StreamKindVideo, SizeBytes: 1 * BytesPerMB, Handle: "c"},
			{Label: "720p", Kind: model.StreamKindVideo, SizeBytes: 10 * BytesPerMB, Handle: "d"},
			{Label: "144p", Kind: model.StreamKindVideo, SizeBytes: 2 * BytesPerMB, Handle: "duplicate"},
			{Label: "50kbps", Kind: model.StreamKindAudio, SizeBytes: BytesPerMB / 2, Handle: "e"},
			{Label: "", Kind: model.StreamKindVideo, Handle: "unlabeled"},
		},
	}

	meta := BuildMetadata("https://youtu.be/abc", raw)

	assert.Equal(t, []string{"144p", "720p", "1080p", "50kbps", "128kbps"}, meta.Labels())
	assert.Equal(t, "Clip", meta.Title)
	assert.Equal(t, raw.ThumbnailURL, meta.ThumbnailURL)

	first, ok := meta.Lookup("144p")
	require.True(t, ok)
	assert.Equal(t, "c", first.Handle, "first-seen stream must win")
	assert.Equal(t, 1.0, first.SizeMB)

	audio, ok := meta.Lookup("50kbps")
	require.True(t, ok)
	assert.Equal(t, model.StreamKindAudio, audio.Kind)
	assert.Equal(t, 0.5, audio.SizeMB)
}

func TestBuildMetadata_DuplicatesKeepFirstForEveryLabel(t *testing.T) {
	var streams []RawStream
	labels := []string{"360p", "240p", "360p", "240p", "360p"}
	for i, label := range labels {
		streams = append(streams, RawStream{Label: label, Kind: model.StreamKindVideo, Handle: i})
	}

	meta := BuildMetadata("u", &RawVideo{Streams: streams})

	require.Len(t, meta.Streams, 2)
	assert.Equal(t, 1, meta.Streams[0].Handle)
	assert.Equal(t, 0, meta.Streams[1].Handle)
}

func TestSizeMB(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected float64
	}{
		{0, 0},
		{-5, 0},
		{BytesPerMB, 1},
		{1536 * 1024, 1.5},
		{1234567, 1.177},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SizeMB(tt.bytes), "bytes %d", tt.bytes)
	}
}
