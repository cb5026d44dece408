// Package server implements the Agartha site: HTTP API, companion WebSocket
// and the document stores behind them.
//
// Owns:
//   - HTTP routing, handlers, and request/response contracts
//   - admin pass phrase and development-only wrappers
//   - the companion hub on /websocket
//   - Store implementations (SQLite, in memory) and migrations
//
// Does not own:
//   - domain rules on sessions, circles and points (internal/data)
//   - configuration loading (internal/shared)
//
// Invariants:
//   - JSON responses go through writeJSON, except image downloads
//   - client-facing failures are apiError values, anything else is a logged 500
//   - /v1 and /v2 responses allow any origin; /monitoring does not
//   - admin endpoints must be wrapped by requirePassPhrase
//   - practitioner changes go through Store.UpdatePractitioners so they are atomic
package server
