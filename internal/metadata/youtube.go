package metadata

import (
	"context"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
	log "github.com/sirupsen/logrus"

	"github.com/ytget/ytdl-desktop/internal/model"
	"github.com/ytget/ytdl-desktop/internal/platform"
)

// MIME type prefixes of adaptive renditions
const (
	VideoMimePrefix = "video/"
	AudioMimePrefix = "audio/"
)

// resolutionPattern keeps "720p" out of labels such as "720p60" or "2160p HDR"
var resolutionPattern = regexp.MustCompile(`^\d+p`)

// youtubeStream is the opaque handle stored in model.StreamOption
type youtubeStream struct {
	video  *youtube.Video
	format youtube.Format
}

// PlaylistResolver maps a playlist link to the URL of one of its videos
type PlaylistResolver interface {
	FirstVideoURL(ctx context.Context, playlistURL string) (string, error)
}

// YouTube is the video-info provider and stream opener for YouTube links
type YouTube struct {
	client    *youtube.Client
	playlists PlaylistResolver
}

// NewYouTube creates a YouTube provider. A nil httpClient uses the library default.
func NewYouTube(httpClient *http.Client, playlists PlaylistResolver) *YouTube {
	client := &youtube.Client{}
	if httpClient != nil {
		client.HTTPClient = httpClient
	}
	return &YouTube{client: client, playlists: playlists}
}

// Lookup retrieves the title, thumbnail and adaptive streams of a video
func (y *YouTube) Lookup(ctx context.Context, url string) (*RawVideo, error) {
	if y.playlists != nil && IsPlaylistURL(url) {
		videoURL, err := y.playlists.FirstVideoURL(ctx, url)
		if err != nil {
			return nil, err
		}
		log.Debugf("Playlist %s resolved to %s", url, videoURL)
		url = videoURL
	}

	video, err := y.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("getting video info: %w", err)
	}

	return &RawVideo{
		Title:        video.Title,
		ThumbnailURL: bestThumbnail(video.Thumbnails),
		Streams:      rawStreams(video),
	}, nil
}

// OpenStream opens the media bytes of a stream built by Lookup
func (y *YouTube) OpenStream(ctx context.Context, stream model.StreamOption) (io.ReadCloser, int64, error) {
	h, ok := stream.Handle.(*youtubeStream)
	if !ok || h == nil || h.video == nil {
		return nil, 0, fmt.Errorf("%w: %q was not produced by this provider", model.ErrInvalidStream, stream.Label)
	}
	return y.client.GetStreamContext(ctx, h.video, &h.format)
}

// rawStreams converts video-only and audio-only formats. Muxed formats are
// skipped, as are formats without a usable label.
func rawStreams(video *youtube.Video) []RawStream {
	base := platform.SafeFilename(video.Title)
	streams := make([]RawStream, 0, len(video.Formats))

	for _, f := range video.Formats {
		var kind model.StreamKind
		var label string

		switch {
		case strings.HasPrefix(f.MimeType, VideoMimePrefix) && f.AudioChannels == 0:
			kind = model.StreamKindVideo
			label = videoLabel(f)
		case strings.HasPrefix(f.MimeType, AudioMimePrefix):
			kind = model.StreamKindAudio
			label = audioLabel(f)
		default:
			continue
		}
		if label == "" {
			continue
		}

		streams = append(streams, RawStream{
			Label:     label,
			Kind:      kind,
			SizeBytes: f.ContentLength,
			Filename:  base + "." + extension(f.MimeType),
			Handle:    &youtubeStream{video: video, format: f},
		})
	}

	return streams
}

func videoLabel(f youtube.Format) string {
	if m := resolutionPattern.FindString(f.QualityLabel); m != "" {
		return m
	}
	return f.QualityLabel
}

func audioLabel(f youtube.Format) string {
	bitrate := f.AverageBitrate
	if bitrate <= 0 {
		bitrate = f.Bitrate
	}
	if bitrate <= 0 {
		return ""
	}
	return fmt.Sprintf("%dkbps", int(math.Round(float64(bitrate)/1000)))
}

// extension returns the MIME subtype, e.g. "mp4" for `video/mp4; codecs="avc1"`
func extension(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = mimeType
	}
	if i := strings.Index(mediaType, "/"); i >= 0 && i+1 < len(mediaType) {
		return mediaType[i+1:]
	}
	return "mp4"
}

func bestThumbnail(thumbs youtube.Thumbnails) string {
	var best youtube.Thumbnail
	for _, t := range thumbs {
		if t.Width >= best.Width {
			best = t
		}
	}
	return best.URL
}
