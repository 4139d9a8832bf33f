package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ytget/ytdl-desktop/internal/model"
	"github.com/ytget/ytdl-desktop/internal/platform"
)

// Chunk sizes. The chunk is the transfer unit and therefore the cancellation granularity.
const (
	DefaultChunkSize = 256 * 1024
	MaxChunkSize     = 16 * 1024 * 1024
)

// Part files
const (
	// PartFilePattern names in-flight downloads. It does not embed the title,
	// so long titles cannot push it past the filename limit.
	PartFilePattern        = ".ytdl-*.part"
	DefaultFilePermissions = 0644
)

// Handle is a reference to one running session
type Handle struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	result Result
}

// ID returns the session ID the handle was started with
func (h *Handle) ID() string {
	return h.id
}

// Cancel requests cooperative cancellation. The worker observes it at the next
// chunk boundary. Cancelling a finished or already cancelled handle is a no-op.
func (h *Handle) Cancel() {
	h.cancel()
}

// Done is closed once the worker has returned
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the worker returns and gives its result
func (h *Handle) Wait() Result {
	<-h.done
	return h.result
}

// Worker streams selected renditions to disk
type Worker struct {
	opener    StreamOpener
	chunkSize int
	now       func() time.Time
}

// NewWorker creates a new download worker
func NewWorker(opener StreamOpener, chunkSize int) *Worker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunkSize = min(chunkSize, MaxChunkSize)
	return &Worker{
		opener:    opener,
		chunkSize: chunkSize,
		now:       time.Now,
	}
}

// Start runs a session in its own goroutine and returns immediately
func (w *Worker) Start(ctx context.Context, sessionID string, stream model.StreamOption, targetDir string, reporter Reporter) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:     sessionID,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		defer cancel()

		logger := log.WithFields(log.Fields{"session": sessionID, "stream": stream.Label})
		logger.Infof("Starting download to %s", targetDir)

		path, err := w.transfer(ctx, sessionID, stream, targetDir, reporter)
		switch {
		case err == nil:
			logger.Infof("Download completed: %s", path)
		case errors.Is(err, model.ErrCancelledByUser):
			logger.Info("Download cancelled")
		default:
			logger.WithError(err).Error("Download failed")
		}

		h.result = Result{SessionID: sessionID, Path: path, Err: err}
		reporter.ReportResult(h.result)
	}()

	return h
}

// StartSession implements Starter
func (w *Worker) StartSession(ctx context.Context, sessionID string, stream model.StreamOption, targetDir string, reporter Reporter) model.Canceller {
	return w.Start(ctx, sessionID, stream, targetDir, reporter)
}

// transfer copies the stream chunk by chunk. The cancellation checkpoint sits
// before every read: once a read has returned EOF the session is complete, even
// if a cancel request arrives afterwards.
func (w *Worker) transfer(ctx context.Context, sessionID string, stream model.StreamOption, targetDir string, reporter Reporter) (string, error) {
	if stream.Handle == nil || stream.Filename == "" {
		return "", fmt.Errorf("%w: no downloadable stream for %q", model.ErrInvalidStream, stream.Label)
	}
	if ctx.Err() != nil {
		return "", model.ErrCancelledByUser
	}

	if err := platform.CreateDirectoryIfNotExists(targetDir); err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", model.ErrIO, targetDir, err)
	}

	body, size, err := w.opener.OpenStream(ctx, stream)
	if err != nil {
		if ctx.Err() != nil {
			return "", model.ErrCancelledByUser
		}
		if errors.Is(err, model.ErrInvalidStream) {
			return "", err
		}
		return "", fmt.Errorf("%w: opening stream: %w", model.ErrTransport, err)
	}
	defer body.Close()

	// Write to a unique part file so an abandoned session that is still
	// draining cannot clobber a newer download of the same stream.
	path := filepath.Join(targetDir, stream.Filename)
	file, err := os.CreateTemp(targetDir, PartFilePattern)
	if err != nil {
		return "", fmt.Errorf("%w: creating %s: %w", model.ErrIO, path, err)
	}
	partPath := file.Name()

	var total uint64
	if size > 0 {
		total = uint64(size)
	}

	written, err := w.copyChunks(ctx, sessionID, file, body, total, reporter)
	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("%w: closing %s: %w", model.ErrIO, partPath, closeErr)
	}
	if err == nil {
		if chmodErr := os.Chmod(partPath, DefaultFilePermissions); chmodErr != nil {
			log.WithError(chmodErr).Debugf("Keeping default permissions on %s", partPath)
		}
		if renameErr := os.Rename(partPath, path); renameErr != nil {
			err = fmt.Errorf("%w: moving into place: %w", model.ErrIO, renameErr)
		}
	}
	if err != nil {
		if removeErr := os.Remove(partPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			log.WithError(removeErr).Warnf("Could not remove %s", partPath)
		}
		return "", err
	}

	log.WithField("session", sessionID).Debugf("Wrote %d bytes to %s", written, path)
	return path, nil
}

func (w *Worker) copyChunks(ctx context.Context, sessionID string, dst io.Writer, src io.Reader, total uint64, reporter Reporter) (uint64, error) {
	buf := make([]byte, w.chunkSize)
	var downloaded uint64

	for {
		if ctx.Err() != nil {
			return downloaded, model.ErrCancelledByUser
		}

		n, readErr := io.ReadFull(src, buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return downloaded, fmt.Errorf("%w: writing: %w", model.ErrIO, err)
			}
			downloaded += uint64(n)

			reporter.ReportProgress(Progress{
				SessionID: sessionID,
				Sample: model.ProgressSample{
					BytesDownloaded: downloaded,
					BytesTotal:      total,
					Timestamp:       w.now(),
				},
			})
		}

		switch {
		case readErr == nil:
			continue
		case errors.Is(readErr, io.EOF), errors.Is(readErr, io.ErrUnexpectedEOF):
			if total > 0 && downloaded < total {
				return downloaded, fmt.Errorf("%w: stream ended at %d of %d bytes", model.ErrTransport, downloaded, total)
			}
			return downloaded, nil
		case ctx.Err() != nil:
			return downloaded, model.ErrCancelledByUser
		default:
			return downloaded, fmt.Errorf("%w: reading stream: %w", model.ErrTransport, readErr)
		}
	}
}
