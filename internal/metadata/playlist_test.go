package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewYTDLPPlaylists(t *testing.T) {
	p := NewYTDLPPlaylists()
	assert.Equal(t, DefaultPlaylistTimeout, p.timeout)

	p.SetTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, p.timeout)
}

func TestFirstVideoURL_MissingPlaylistID(t *testing.T) {
	_, err := NewYTDLPPlaylists().FirstVideoURL(context.Background(), "https://www.youtube.com/playlist")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not extract playlist ID")
}
