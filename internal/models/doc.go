// Package models defines domain entities and persistence interfaces for the reel media library.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs shared by the REST API and the local cache
//   - [Video] : Video metadata with duration and artist attribution
//   - [Artist] : Channel or artist metadata with video counts
//   - [Playlist] : Playlist metadata
//   - [PlaylistDetail] : Playlist with its ordered video listing
//   - [VideoPage], [ArtistPage], [PlaylistPage] : Pagination envelopes
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedVideo] : Cached videos with source IDs for sync matching
//   - [PersistedArtist] : Cached artists
//   - [PersistedPlaylist] : Locally managed playlists
//   - [PlaylistEntry] : Junction rows linking playlists to videos with dense ordering
//   - [Job] : Bulk and sync operations tracking progress and results
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
