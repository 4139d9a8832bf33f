package download

import (
	"fmt"
	"time"

	"github.com/ytget/ytdl-desktop/internal/model"
)

// Progress math constants
const (
	BytesPerKB = 1024
	BytesPerMB = 1024 * 1024

	// MinElapsed floors both elapsed intervals so sub-resolution timers never
	// divide by zero.
	MinElapsed = 100 * time.Millisecond

	SecondsPerMinute = 60
)

// Snapshot is presentation data derived from one progress sample
type Snapshot struct {
	Fraction     float64 // 0.0 to 1.0
	DownloadedMB float64
	TotalMB      float64
	SpeedKBps    float64 // instantaneous
	AverageKBps  float64
	ETASeconds   float64 // >= 0
}

// Percent returns the completion formatted with one decimal, e.g. "25.0%"
func (s Snapshot) Percent() string {
	return fmt.Sprintf("%.1f%%", s.Fraction*100)
}

// Transferred returns "downloaded/total" in MB with two decimals
func (s Snapshot) Transferred() string {
	return fmt.Sprintf("%.2f/%.2fMB", s.DownloadedMB, s.TotalMB)
}

// ETA returns the remaining time as "{minutes}m {seconds}s", truncating both parts
func (s Snapshot) ETA() string {
	minutes := int(s.ETASeconds / SecondsPerMinute)
	seconds := int(s.ETASeconds - float64(minutes*SecondsPerMinute))
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// Tracker turns a stream of progress samples into snapshots.
// It holds no ownership over the transfer itself.
type Tracker struct {
	startedAt    time.Time
	lastSampleAt time.Time
	lastBytes    uint64
}

// NewTracker creates a tracker whose clock starts at startedAt.
// A zero startedAt makes the first sample the start.
func NewTracker(startedAt time.Time) *Tracker {
	return &Tracker{startedAt: startedAt, lastSampleAt: startedAt}
}

// StartedAt returns the time of the first sample or the configured start
func (t *Tracker) StartedAt() time.Time {
	return t.startedAt
}

// LastSampleAt returns the timestamp of the latest observed sample
func (t *Tracker) LastSampleAt() time.Time {
	return t.lastSampleAt
}

// Observe records a sample and returns the derived snapshot
func (t *Tracker) Observe(sample model.ProgressSample) Snapshot {
	if t.startedAt.IsZero() {
		t.startedAt = sample.Timestamp
		t.lastSampleAt = sample.Timestamp
	}

	sinceLast := floorElapsed(sample.Timestamp.Sub(t.lastSampleAt))
	sinceStart := floorElapsed(sample.Timestamp.Sub(t.startedAt))

	var chunk uint64
	if sample.BytesDownloaded > t.lastBytes {
		chunk = sample.BytesDownloaded - t.lastBytes
	}

	snap := Snapshot{
		DownloadedMB: float64(sample.BytesDownloaded) / BytesPerMB,
		TotalMB:      float64(sample.BytesTotal) / BytesPerMB,
		SpeedKBps:    float64(chunk) / BytesPerKB / sinceLast.Seconds(),
		AverageKBps:  float64(sample.BytesDownloaded) / BytesPerKB / sinceStart.Seconds(),
	}

	if sample.BytesTotal > 0 {
		snap.Fraction = float64(sample.BytesDownloaded) / float64(sample.BytesTotal)
	}

	if snap.AverageKBps > 0 && sample.BytesTotal > sample.BytesDownloaded {
		remaining := float64(sample.BytesTotal - sample.BytesDownloaded)
		snap.ETASeconds = remaining / (snap.AverageKBps * BytesPerKB)
	}

	t.lastSampleAt = sample.Timestamp
	t.lastBytes = sample.BytesDownloaded

	return snap
}

func floorElapsed(d time.Duration) time.Duration {
	if d < MinElapsed {
		return MinElapsed
	}
	return d
}
