package metadata

import (
	"net/url"
	"regexp"
	"strings"
)

// videoURLPattern matches the known hosts at the start of the text. Scheme and
// "www." are optional; youtu.be and youtube-nocookie are accepted as well.
var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/`)

// URL query parameters
const (
	VideoQueryParam    = "v"
	PlaylistQueryParam = "list"
	ShortLinkHost      = "youtu.be"
)

// IsVideoURL reports whether text starts with a recognized video-host URL
func IsVideoURL(text string) bool {
	return videoURLPattern.MatchString(text)
}

// IsPlaylistURL reports whether the URL names a playlist but no single video
func IsPlaylistURL(rawURL string) bool {
	u, err := parseLoose(rawURL)
	if err != nil {
		return false
	}
	if strings.TrimPrefix(u.Hostname(), "www.") == ShortLinkHost {
		return false
	}
	q := u.Query()
	return q.Get(PlaylistQueryParam) != "" && q.Get(VideoQueryParam) == ""
}

// PlaylistID extracts the list= parameter from a playlist URL
func PlaylistID(rawURL string) string {
	u, err := parseLoose(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(PlaylistQueryParam)
}

// parseLoose parses URLs whose scheme was omitted
func parseLoose(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	return url.Parse(rawURL)
}
