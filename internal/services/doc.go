// Package services defines the [Library] interface for video library backends and implements it for the reel REST API and the local cache.
//
// # Library Interface
//
// Both backends implement a common abstraction, enabling the TUI and CLI to browse and edit the library without knowing where it lives.
//
// # Remote Implementation
//
// [Client] talks to the reel server (internal/server) over JSON REST.
//
// When an access token is configured the HTTP client comes from [oauth2.NewClient] with a static token source, so every request carries a bearer token.
// Superseded list calls are not cancelled; the last response wins and callers guard against stale pages with sequence numbers.
//
// # Cache Implementation
//
// [Cache] serves the same interface from the SQLite repositories for offline use.
// Writes go straight to the local database; there is no write-back to the server.
//
// # Error Handling
//
// Both implementations use typed errors from the shared package:
//   - [shared.ErrUnauthorized] : bad or missing access token
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrServiceUnavailable] : server errors (5xx)
//   - [shared.ErrVideoNotFound], [shared.ErrPlaylistNotFound] : lookup misses
//   - [shared.ErrDuplicateEntry] : video already in the playlist
//
// Callers branch with [errors.Is]; the concrete status code or SQL failure rides along in the wrapped message.
package services
