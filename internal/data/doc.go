// Package data holds the Agartha domain objects and the rules evaluated on them.
//
// Owns:
//   - practitioners, sessions, circles and the spirit bank log
//   - settings, images and monitor items as stored documents
//   - time-window filters used by the companion reports
//
// Does not own:
//   - persistence (see internal/server Store implementations)
//   - HTTP or WebSocket transport
//
// Invariants:
//   - every timestamp is UTC and serialized with millisecond precision
//   - rules take "now" as an argument; nothing in this package reads the clock
package data
