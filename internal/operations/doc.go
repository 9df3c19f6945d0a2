// Package operations implements the three stacksync operations and the registry that dispatches them.
//
// # Operations
//
//  1. [FrontendTaskExtractor] (design_to_frontend): design → component and client service tasks
//  2. [BackendTaskExtractor] (design_to_backend): design → controller, model and service tasks
//  3. [ImplementationReconciler] (frontend_backend_sync): frontend and backend implementation
//     summaries → sync findings plus bucketed adjustments
//
// All three are stateless and total. They never fail on missing keys; the only error they
// return is [shared.ErrInvalidInput] when a key is present but cannot be decoded into the
// expected shape.
//
// # Registration
//
// There is no import-time registration. A [Registry] holds operations built from [Factory]
// functions; it is built once at startup, usually through [NewDefaultRegistry], then
// handed to whatever dispatches operations (the CLI, the HTTP server, tasks.Dispatcher).
//
// # Matching
//
// The reconciler pairs elements with a fixed rule, documented on [MatchEndpoint] and
// [MatchModel]: every frontend element is classified exactly once, and the first backend
// candidate in declaration order wins.
package operations
