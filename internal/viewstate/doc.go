// Package viewstate drives the four screens of the application.
//
// A Machine owns the current VideoMetadata and the single live
// DownloadSession. Every input (user actions, fetch results, worker progress
// and completion) is an event on one channel consumed by Run, so state is
// only ever touched from that goroutine. Output goes to a Renderer as whole
// View snapshots plus occasional Notifications.
package viewstate
