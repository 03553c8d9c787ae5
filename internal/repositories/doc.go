// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [VideoRepository] : Video caching with source ID lookups and paginated search
//   - [ArtistRepository] : Artist persistence with name-based search
//   - [PlaylistRepository] : Playlist persistence plus junction table management with dense entry positions
//   - [JobRepository] : Bulk operation history with status tracking
//   - [VideoCacheAdapter] : video upsert helper deduplicating on source IDs
//
// Sequence numbers provide stable, human-readable ordering (e.g., video #42, playlist #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
