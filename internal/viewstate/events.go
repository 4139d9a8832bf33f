package viewstate

import (
	"image"

	"github.com/ytget/ytdl-desktop/internal/download"
	"github.com/ytget/ytdl-desktop/internal/model"
)

// event is anything the Run loop consumes
type event interface{}

type (
	urlChanged      struct{ text string }
	optionSelected  struct{ label string }
	directoryChosen struct{ dir string }
	back            struct{}
	cancelDownload  struct{}
)

// fetchDone and thumbnailDone carry the generation they were started in;
// results from an older generation are stale.
type fetchDone struct {
	generation uint64
	meta       *model.VideoMetadata
	err        error
}

type thumbnailDone struct {
	generation uint64
	img        image.Image
	err        error
}

type progressReported struct{ download.Progress }

type resultReported struct{ download.Result }

// reporter forwards worker output into the event channel, keeping the
// worker's production order
type reporter struct {
	m *Machine
}

func (r reporter) ReportProgress(p download.Progress) { r.m.post(progressReported{p}) }

func (r reporter) ReportResult(res download.Result) { r.m.post(resultReported{res}) }
