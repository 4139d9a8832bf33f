package platform

// Package platform contains OS integration glue: filesystem helpers, safe
// filenames, bundle-relative resource lookup, and revealing files in the
// system file manager.
