// Package tasks orchestrates long-running library operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines four operations:
//
//  1. [Engine.BulkDelete] : Delete many videos
//     - Deletes each video through the library service
//     - Continues past individual failures, collecting them in the result
//
//  2. [Engine.BulkPlaylistAdd] : Add many videos to a playlist
//     - Verifies the playlist exists before starting
//     - Skips videos the playlist already contains (ErrDuplicateEntry)
//
//  3. [Engine.BulkExport] : Export many playlists to files
//     - Fetches playlists through a rate-limited producer
//     - Exports concurrently with a worker pool (default 5 workers, capped at 10)
//     - Writes a JSON manifest summarizing successes and failures
//     - Formats: json, csv, markdown, txt, yaml
//
//  4. [Engine.Sync] : Pull the remote library into the local cache
//     - Fetches artists then videos, page by page
//     - Upserts records through the [LibraryCacher] so local IDs survive
//
// # Progress Reporting
//
// All operations send [ProgressUpdate] values through a caller-provided channel.
// Sends use select with default so a slow or absent consumer never blocks an operation.
//
// # Implementation
//
// [LibraryEngine] implements [Engine] with dependencies on:
//   - [services.Library] : the remote REST client or the local cache
//   - [LibraryCacher] : persistence sink for Sync (services.Cache)
package tasks
