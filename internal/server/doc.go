// Package server exposes the registered operations and the run history over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] added first is outermost: Recover sees panics from every later layer.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("POST /operations/{name}").
//
// # Routes
//
//	GET  /health               liveness probe
//	GET  /operations           registered operations with descriptions
//	POST /operations/{name}    run an operation; the JSON request body is its inputs
//	GET  /runs                 recorded runs, filtered by ?operation=, ?status= and ?limit=
//	GET  /runs/{ref}           one run by sequence number or ID
//
// Operation responses carry the operation output as the body and the recorded run ID in the
// X-Run-ID header when history is enabled.
//
// # Middleware
//
// [Logging] logs each request with its status and duration. [RateLimit] keeps one token bucket
// per client address. [Recover] turns handler panics into 500 responses.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
