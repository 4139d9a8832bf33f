package download

// Package download implements the single-flight download worker and the
// progress tracker. The worker streams one selected rendition to disk off the
// UI goroutine, reports progress samples to a Reporter, and stops at the next
// chunk boundary once its handle is cancelled.
