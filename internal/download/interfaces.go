package download

import (
	"context"
	"io"

	"github.com/ytget/ytdl-desktop/internal/model"
)

// StreamOpener opens the raw media bytes of a stream option.
// The returned size is the total length in bytes, or <= 0 if unknown.
type StreamOpener interface {
	OpenStream(ctx context.Context, stream model.StreamOption) (io.ReadCloser, int64, error)
}

// Progress is a progress sample tagged with the session that produced it
type Progress struct {
	SessionID string
	Sample    model.ProgressSample
}

// Result is the final outcome of a session: a path on success, otherwise an
// error wrapping one of model.ErrInvalidStream, model.ErrIO, model.ErrTransport,
// or model.ErrCancelledByUser.
type Result struct {
	SessionID string
	Path      string
	Err       error
}

// Reporter receives worker output. Calls come from the worker goroutine in
// production order; the result is always reported last.
type Reporter interface {
	ReportProgress(Progress)
	ReportResult(Result)
}

// Starter starts download sessions on behalf of an owner that only needs to
// be able to cancel them
type Starter interface {
	StartSession(ctx context.Context, sessionID string, stream model.StreamOption, targetDir string, reporter Reporter) model.Canceller
}
