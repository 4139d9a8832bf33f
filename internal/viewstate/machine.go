package viewstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ytget/ytdl-desktop/internal/download"
	"github.com/ytget/ytdl-desktop/internal/metadata"
	"github.com/ytget/ytdl-desktop/internal/model"
	"github.com/ytget/ytdl-desktop/internal/thumbnail"
)

// EventBufferSize is the capacity of the machine's event channel
const EventBufferSize = 64

// MetadataFetcher is the contract of metadata.Fetcher
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (*model.VideoMetadata, error)
}

// ThumbnailRenderer is the contract of thumbnail.Renderer
type ThumbnailRenderer interface {
	Render(ctx context.Context, url string, maxW, maxH int, radius int) (image.Image, error)
}

// Options tune a Machine. Zero values fall back to defaults.
type Options struct {
	ThumbnailWidth  int
	ThumbnailHeight int
	ThumbnailRadius int

	// Reveal shows a finished file in the system file browser. Nil disables it.
	Reveal func(path string) error

	NewSessionID func() string
	Now          func() time.Time
}

// Machine is the view-state machine. Create it with New, start Run on its own
// goroutine, then feed it user actions through the exported methods.
type Machine struct {
	fetcher  MetadataFetcher
	thumbs   ThumbnailRenderer
	starter  download.Starter
	renderer Renderer
	opts     Options

	events  chan event
	stopped chan struct{}

	// Owned by the Run goroutine
	runCtx      context.Context
	state       model.ViewState
	url         string
	meta        *model.VideoMetadata
	selected    string
	thumbnail   image.Image
	session     *model.DownloadSession
	tracker     *download.Tracker
	snapshot    download.Snapshot
	generation  uint64
	cancelFetch context.CancelFunc
}

// New creates a machine in the Idle state
func New(fetcher MetadataFetcher, thumbs ThumbnailRenderer, starter download.Starter, renderer Renderer, opts Options) *Machine {
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = thumbnail.DefaultWidth
	}
	if opts.ThumbnailHeight <= 0 {
		opts.ThumbnailHeight = thumbnail.DefaultHeight
	}
	if opts.ThumbnailRadius <= 0 {
		opts.ThumbnailRadius = thumbnail.DefaultRadius
	}
	if opts.NewSessionID == nil {
		opts.NewSessionID = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Machine{
		fetcher:  fetcher,
		thumbs:   thumbs,
		starter:  starter,
		renderer: renderer,
		opts:     opts,
		events:   make(chan event, EventBufferSize),
		stopped:  make(chan struct{}),
		state:    model.StateIdle,
	}
}

// Run processes events until ctx is done. A live download is cancelled on exit.
func (m *Machine) Run(ctx context.Context) error {
	defer close(m.stopped)

	m.runCtx = ctx
	m.render()

	for {
		select {
		case <-ctx.Done():
			m.stopFetch()
			if m.session != nil {
				m.session.Worker.Cancel()
				m.session = nil
			}
			return ctx.Err()
		case ev := <-m.events:
			m.handle(ev)
		}
	}
}

// URLChanged reports new text in the URL field
func (m *Machine) URLChanged(text string) { m.post(urlChanged{text: text}) }

// OptionSelected reports a pick in the quality list
func (m *Machine) OptionSelected(label string) { m.post(optionSelected{label: label}) }

// DirectoryChosen reports the directory dialog result. An empty dir means the
// dialog was cancelled.
func (m *Machine) DirectoryChosen(dir string) { m.post(directoryChosen{dir: dir}) }

// Back leaves the options screen
func (m *Machine) Back() { m.post(back{}) }

// Cancel stops the live download and returns to the options screen
func (m *Machine) Cancel() { m.post(cancelDownload{}) }

// post delivers an event unless the machine has stopped
func (m *Machine) post(ev event) {
	select {
	case m.events <- ev:
	case <-m.stopped:
	}
}

func (m *Machine) handle(ev event) {
	switch ev := ev.(type) {
	case urlChanged:
		m.onURLChanged(ev.text)
	case fetchDone:
		m.onFetchDone(ev)
	case thumbnailDone:
		m.onThumbnailDone(ev)
	case optionSelected:
		m.onOptionSelected(ev.label)
	case directoryChosen:
		m.onDirectoryChosen(ev.dir)
	case back:
		m.onBack()
	case cancelDownload:
		m.onCancel()
	case progressReported:
		m.onProgress(ev.Progress)
	case resultReported:
		m.onResult(ev.Result)
	default:
		log.Warnf("Unhandled event %T in state %s", ev, m.state)
	}
}

func (m *Machine) onURLChanged(text string) {
	if !m.state.AcceptsURL() || !metadata.IsVideoURL(text) {
		return
	}

	m.generation++
	m.url = text
	m.setState(model.StateSearching)

	ctx, cancel := context.WithCancel(m.runCtx)
	m.cancelFetch = cancel
	gen := m.generation

	go func() {
		meta, err := m.fetcher.Fetch(ctx, text)
		m.post(fetchDone{generation: gen, meta: meta, err: err})
	}()

	m.render()
}

func (m *Machine) onFetchDone(ev fetchDone) {
	if m.state != model.StateSearching || ev.generation != m.generation {
		log.Debugf("Dropping stale fetch result (generation %d)", ev.generation)
		return
	}

	switch {
	case errors.Is(ev.err, model.ErrInvalidURL):
		m.reset()
	case ev.err != nil:
		m.reset()
		m.notify(NotificationError, ev.err, model.ErrFetchFailure)
	case !ev.meta.HasStreams():
		m.reset()
		m.notify(NotificationWarning, fmt.Errorf("%w: %s", model.ErrNoStreamsFound, ev.meta.DisplayTitle()), model.ErrNoStreamsFound)
	default:
		m.meta = ev.meta
		m.selected = ev.meta.Streams[0].Label
		m.setState(model.StateOptionsShown)
		m.renderThumbnail(ev.meta.ThumbnailURL)
	}

	m.render()
}

// renderThumbnail runs in the background. Back or a new URL bumps the
// generation, which makes a late image stale.
func (m *Machine) renderThumbnail(url string) {
	m.stopFetch()
	if url == "" || m.thumbs == nil {
		return
	}

	ctx, cancel := context.WithCancel(m.runCtx)
	m.cancelFetch = cancel
	gen := m.generation

	go func() {
		img, err := m.thumbs.Render(ctx, url, m.opts.ThumbnailWidth, m.opts.ThumbnailHeight, m.opts.ThumbnailRadius)
		m.post(thumbnailDone{generation: gen, img: img, err: err})
	}()
}

func (m *Machine) onThumbnailDone(ev thumbnailDone) {
	if ev.generation != m.generation || m.meta == nil {
		return
	}
	if ev.err != nil {
		log.WithError(ev.err).Warn("Thumbnail unavailable")
		return
	}

	m.thumbnail = ev.img
	m.render()
}

func (m *Machine) onOptionSelected(label string) {
	if m.state != model.StateOptionsShown {
		return
	}
	if _, ok := m.meta.Lookup(label); !ok {
		log.Debugf("Ignoring unknown option %q", label)
		return
	}

	m.selected = label
	m.render()
}

func (m *Machine) onDirectoryChosen(dir string) {
	if !m.state.CanDownload() || dir == "" {
		return
	}

	stream, ok := m.meta.Lookup(m.selected)
	if !ok {
		m.notify(NotificationError, fmt.Errorf("%w: %q", model.ErrInvalidStream, m.selected), model.ErrDownloadFailure)
		return
	}

	now := m.opts.Now()
	id := m.opts.NewSessionID()
	m.session = &model.DownloadSession{
		ID:              id,
		TargetDirectory: dir,
		Stream:          stream,
		StartedAt:       now,
		LastSampleAt:    now,
	}
	m.tracker = download.NewTracker(time.Time{})
	m.snapshot = download.Snapshot{}
	m.setState(model.StateDownloading)

	m.session.Worker = m.starter.StartSession(m.runCtx, id, stream, dir, reporter{m: m})
	m.render()
}

func (m *Machine) onBack() {
	if m.state != model.StateOptionsShown {
		return
	}
	m.reset()
	m.render()
}

// onCancel switches views immediately. Anything the worker reports for the
// abandoned session afterwards is dropped.
func (m *Machine) onCancel() {
	if m.state != model.StateDownloading || m.session == nil {
		return
	}

	log.WithField("session", m.session.ID).Info("Cancelling download")
	m.session.Worker.Cancel()
	m.session = nil
	m.tracker = nil
	m.snapshot = download.Snapshot{}
	m.setState(model.StateOptionsShown)
	m.render()
}

func (m *Machine) onProgress(p download.Progress) {
	if !m.isCurrent(p.SessionID) {
		return
	}

	m.snapshot = m.tracker.Observe(p.Sample)
	m.session.LastSampleAt = p.Sample.Timestamp
	m.render()
}

func (m *Machine) onResult(res download.Result) {
	if !m.isCurrent(res.SessionID) {
		log.WithField("session", res.SessionID).Debug("Dropping result of abandoned session")
		return
	}

	logger := log.WithField("session", res.SessionID)
	m.session = nil
	m.tracker = nil

	switch {
	case res.Err == nil:
		logger.Infof("Saved %s", res.Path)
		m.reveal(res.Path)
		m.reset()
	case errors.Is(res.Err, model.ErrCancelledByUser):
		m.snapshot = download.Snapshot{}
		m.setState(model.StateOptionsShown)
	default:
		m.reset()
		m.notify(NotificationError, res.Err, model.ErrDownloadFailure)
	}

	m.render()
}

func (m *Machine) isCurrent(sessionID string) bool {
	return m.state == model.StateDownloading && m.session != nil && m.session.ID == sessionID
}

func (m *Machine) reveal(path string) {
	if m.opts.Reveal == nil {
		return
	}
	go func() {
		if err := m.opts.Reveal(path); err != nil {
			log.WithError(err).Warnf("Could not reveal %s", path)
		}
	}()
}

// reset returns to Idle and discards the metadata of the previous URL
func (m *Machine) reset() {
	m.stopFetch()
	m.generation++
	m.url = ""
	m.meta = nil
	m.selected = ""
	m.thumbnail = nil
	m.snapshot = download.Snapshot{}
	m.setState(model.StateIdle)
}

func (m *Machine) stopFetch() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

func (m *Machine) setState(s model.ViewState) {
	if s != m.state {
		log.WithField("from", m.state).Debugf("View state -> %s", s)
	}
	m.state = s
}

// notify wraps err in kind unless it already carries it
func (m *Machine) notify(kind NotificationKind, err, sentinel error) {
	if !errors.Is(err, sentinel) {
		err = fmt.Errorf("%w: %w", sentinel, err)
	}
	log.WithError(err).Warnf("Notifying %s", kind)
	m.renderer.Notify(Notification{Kind: kind, Err: err})
}

func (m *Machine) render() {
	v := View{
		State:     m.state,
		URL:       m.url,
		Metadata:  m.meta,
		Selected:  m.selected,
		Thumbnail: m.thumbnail,
		Progress:  m.snapshot,
	}
	if m.session != nil {
		v.TargetDirectory = m.session.TargetDirectory
	}
	m.renderer.Render(v)
}
