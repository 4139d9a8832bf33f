package model

// Package model defines the domain values shared across the app: fetched video
// metadata, selectable stream options, progress samples, the download session
// record, view states, and the error taxonomy. Values are built once and passed
// by copy; the view-state machine is their only owner.
