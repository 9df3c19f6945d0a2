// Package tasks runs registered operations on behalf of the CLI and HTTP layers, with real-time progress reporting.
//
// # Core Operations
//
// [Dispatcher] exposes three entry points:
//
//  1. [Dispatcher.Dispatch] : Run one operation by name
//     - Resolves the operation in the [operations.Registry]
//     - Executes it against the caller's inputs
//     - Records a [models.Run] with inputs, output and summary counts
//
//  2. [Dispatcher.Batch] : Run many jobs concurrently
//     - Fixed-size worker pool fed at a configurable rate
//     - Partial failures are collected per job; results keep job order
//
//  3. [Pipeline.Run] : Plan and reconcile one design
//     - design_to_frontend and design_to_backend on the same design
//     - frontend_backend_sync when implementation summaries are supplied
//
// # Progress Reporting
//
// All entry points accept an optional channel of [ProgressUpdate] values. Sends use
// select with default so a slow or absent reader never blocks execution.
//
// # Run History
//
// The optional [RunRecorder] interface persists runs as they start and finish.
// Recorder errors are logged and otherwise ignored so history never fails an operation.
package tasks
