// Package ui contains the Fyne-based desktop user interface for the application.
// RootUI renders viewstate.View snapshots as four screens (URL entry, searching,
// quality options, download progress) and forwards user actions to a Controller.
// All UI strings are localized via Localization.
package ui
