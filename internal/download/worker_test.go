package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdl-desktop/internal/model"
	"github.com/ytget/ytdl-desktop/internal/platform"
)

// fakeOpener serves a fixed payload, optionally gated chunk by chunk
type fakeOpener struct {
	data    []byte
	size    int64
	openErr error
	gate    chan struct{}
}

func (f *fakeOpener) OpenStream(ctx context.Context, stream model.StreamOption) (io.ReadCloser, int64, error) {
	if f.openErr != nil {
		return nil, 0, f.openErr
	}
	var r io.Reader = bytes.NewReader(f.data)
	if f.gate != nil {
		r = &gatedReader{r: r, gate: f.gate}
	}
	return io.NopCloser(r), f.size, nil
}

// gatedReader waits for a token on gate before every read
type gatedReader struct {
	r    io.Reader
	gate chan struct{}
}

func (g *gatedReader) Read(p []byte) (int, error) {
	<-g.gate
	return g.r.Read(p)
}

// recordingReporter collects worker output
type recordingReporter struct {
	mu       sync.Mutex
	progress []Progress
	results  []Result
	events   chan Progress
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{events: make(chan Progress, 64)}
}

func (r *recordingReporter) ReportProgress(p Progress) {
	r.mu.Lock()
	r.progress = append(r.progress, p)
	r.mu.Unlock()
	r.events <- p
}

func (r *recordingReporter) ReportResult(res Result) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

func (r *recordingReporter) snapshot() ([]Progress, []Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Progress(nil), r.progress...), append([]Result(nil), r.results...)
}

func testStream() model.StreamOption {
	return model.StreamOption{
		Label:    "144p",
		Kind:     model.StreamKindVideo,
		Filename: "clip.mp4",
		Handle:   "handle",
	}
}

func TestNewWorker_DefaultChunkSize(t *testing.T) {
	w := NewWorker(&fakeOpener{}, 0)
	assert.Equal(t, DefaultChunkSize, w.chunkSize)

	w = NewWorker(&fakeOpener{}, 10)
	assert.Equal(t, 10, w.chunkSize)

	w = NewWorker(&fakeOpener{}, MaxChunkSize+1)
	assert.Equal(t, MaxChunkSize, w.chunkSize)
}

func TestWorker_DownloadsInChunks(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 10)
	worker := NewWorker(&fakeOpener{data: data, size: int64(len(data))}, 4)
	reporter := newRecordingReporter()
	dir := t.TempDir()

	h := worker.Start(context.Background(), "s1", testStream(), dir, reporter)
	res := h.Wait()

	require.NoError(t, res.Err)
	assert.Equal(t, "s1", res.SessionID)
	assert.Equal(t, filepath.Join(dir, "clip.mp4"), res.Path)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, data, content)

	progress, results := reporter.snapshot()
	require.Len(t, progress, 3)
	assert.Equal(t, []uint64{4, 8, 10}, []uint64{
		progress[0].Sample.BytesDownloaded,
		progress[1].Sample.BytesDownloaded,
		progress[2].Sample.BytesDownloaded,
	})
	for _, p := range progress {
		assert.Equal(t, "s1", p.SessionID)
		assert.Equal(t, uint64(10), p.Sample.BytesTotal)
	}
	require.Len(t, results, 1)
	assert.Equal(t, res, results[0])
}

func TestWorker_CreatesTargetDirectory(t *testing.T) {
	worker := NewWorker(&fakeOpener{data: []byte("abc"), size: 3}, 4)
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	res := worker.Start(context.Background(), "s1", testStream(), dir, newRecordingReporter()).Wait()

	require.NoError(t, res.Err)
	assert.FileExists(t, filepath.Join(dir, "clip.mp4"))
}

func TestWorker_CancelAfterOneSample(t *testing.T) {
	data := bytes.Repeat([]byte("y"), 16)
	gate := make(chan struct{})
	worker := NewWorker(&fakeOpener{data: data, size: int64(len(data)), gate: gate}, 4)
	reporter := newRecordingReporter()
	dir := t.TempDir()

	h := worker.Start(context.Background(), "s1", testStream(), dir, reporter)

	gate <- struct{}{}
	first := <-reporter.events
	assert.Equal(t, uint64(4), first.Sample.BytesDownloaded)

	h.Cancel()
	close(gate)

	res := h.Wait()
	assert.ErrorIs(t, res.Err, model.ErrCancelledByUser)

	assert.NoFileExists(t, filepath.Join(dir, "clip.mp4"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "part file should be cleaned up")
}

func TestWorker_LongTitle(t *testing.T) {
	stream := testStream()
	stream.Filename = platform.SafeFilename(strings.Repeat("漢", 100)) + ".webm"
	worker := NewWorker(&fakeOpener{data: []byte("abcd"), size: 4}, 4)
	dir := t.TempDir()

	res := worker.Start(context.Background(), "s1", stream, dir, newRecordingReporter()).Wait()

	require.NoError(t, res.Err)
	assert.Equal(t, filepath.Join(dir, stream.Filename), res.Path)
	assert.LessOrEqual(t, len(filepath.Base(res.Path)), 255)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWorker_ReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("old contents here"), 0644))

	worker := NewWorker(&fakeOpener{data: []byte("new"), size: 3}, 4)
	res := worker.Start(context.Background(), "s1", testStream(), dir, newRecordingReporter()).Wait()
	require.NoError(t, res.Err)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWorker_CancelAfterCompletionIsNoop(t *testing.T) {
	worker := NewWorker(&fakeOpener{data: []byte("done"), size: 4}, 4)
	reporter := newRecordingReporter()

	h := worker.Start(context.Background(), "s1", testStream(), t.TempDir(), reporter)
	res := h.Wait()
	require.NoError(t, res.Err)

	assert.NotPanics(t, func() {
		h.Cancel()
		h.Cancel()
	})
	assert.Equal(t, res, h.Wait())

	_, results := reporter.snapshot()
	assert.Len(t, results, 1)
}

func TestWorker_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worker := NewWorker(&fakeOpener{data: []byte("abc"), size: 3}, 4)
	res := worker.Start(ctx, "s1", testStream(), t.TempDir(), newRecordingReporter()).Wait()

	assert.ErrorIs(t, res.Err, model.ErrCancelledByUser)
}

func TestWorker_Errors(t *testing.T) {
	tests := []struct {
		name     string
		opener   *fakeOpener
		stream   model.StreamOption
		expected error
	}{
		{
			name:     "missing handle",
			opener:   &fakeOpener{},
			stream:   model.StreamOption{Label: "720p", Filename: "a.mp4"},
			expected: model.ErrInvalidStream,
		},
		{
			name:     "missing filename",
			opener:   &fakeOpener{},
			stream:   model.StreamOption{Label: "720p", Handle: "h"},
			expected: model.ErrInvalidStream,
		},
		{
			name:     "open fails",
			opener:   &fakeOpener{openErr: errors.New("connection reset")},
			stream:   testStream(),
			expected: model.ErrTransport,
		},
		{
			name:     "provider rejects stream",
			opener:   &fakeOpener{openErr: model.ErrInvalidStream},
			stream:   testStream(),
			expected: model.ErrInvalidStream,
		},
		{
			name:     "stream ends early",
			opener:   &fakeOpener{data: []byte("abc"), size: 10},
			stream:   testStream(),
			expected: model.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := NewWorker(tt.opener, 4)
			res := worker.Start(context.Background(), "s1", tt.stream, t.TempDir(), newRecordingReporter()).Wait()
			assert.ErrorIs(t, res.Err, tt.expected)
		})
	}
}

func TestWorker_TargetNotWritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	worker := NewWorker(&fakeOpener{data: []byte("abc"), size: 3}, 4)
	res := worker.Start(context.Background(), "s1", testStream(), filepath.Join(blocker, "sub"), newRecordingReporter()).Wait()

	assert.ErrorIs(t, res.Err, model.ErrIO)
}

func TestWorker_Timestamps(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	worker := NewWorker(&fakeOpener{data: []byte("abcd"), size: 4}, 4)
	worker.now = func() time.Time { return fixed }
	reporter := newRecordingReporter()

	require.NoError(t, worker.Start(context.Background(), "s1", testStream(), t.TempDir(), reporter).Wait().Err)

	progress, _ := reporter.snapshot()
	require.Len(t, progress, 1)
	assert.Equal(t, fixed, progress[0].Sample.Timestamp)
}

func TestWorker_StartSession(t *testing.T) {
	var starter Starter = NewWorker(&fakeOpener{data: []byte("abcd"), size: 4}, 4)
	reporter := newRecordingReporter()

	canceller := starter.StartSession(context.Background(), "s2", testStream(), t.TempDir(), reporter)

	h, ok := canceller.(*Handle)
	require.True(t, ok)
	assert.Equal(t, "s2", h.ID())
	require.NoError(t, h.Wait().Err)
}
