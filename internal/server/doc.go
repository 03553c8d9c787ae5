// Package server provides HTTP routing, middleware, and the REST API of the library server.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers method-qualified patterns ("GET /api/videos/{id}")
// on an [http.ServeMux], which does the method filtering and path-parameter binding.
//
// # Library API
//
// [LibraryHandler] serves the REST API the services package's remote client
// consumes. It fronts any services.Library implementation; reel serve wires
// it to the local SQLite cache:
//
//	GET    /health
//	GET    /api/videos
//	GET    /api/videos/{id}
//	DELETE /api/videos/{id}
//	GET    /api/artists
//	GET    /api/playlists
//	POST   /api/playlists
//	GET    /api/playlists/{id}
//	PUT    /api/playlists/{id}
//	DELETE /api/playlists/{id}
//	POST   /api/playlists/{id}/videos
//	DELETE /api/playlists/{id}/videos/{videoID}
//	POST   /api/playlists/{id}/videos/{videoID}/move
//
// List endpoints answer with pagination envelopes {items, total, limit, offset, next}.
// Service errors map onto status codes: 404 for missing entities, 409 for
// duplicate playlist entries, 400 for invalid input, 500 otherwise.
//
// # Middleware
//
// [RequestLogger] logs one line per request. [BearerAuth] gates every route
// except /health behind a static bearer token; an empty token disables the
// check.
//
// # HTML Index
//
// The web package (internal/web) serves the human-readable landing page at /
// through the same [Handler] registration.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
