package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
)

// PlaylistRepository implements models.Repository[*models.PersistedPlaylist] for local playlists.
//
// Handles playlist CRUD with soft delete support plus junction table management
// for the videos belonging to each playlist. Entry positions are zero-based and
// kept dense across removals and moves.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist into the database with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.PersistedPlaylist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	playlist.SetID(id)
	playlist.SetSequence(sequence)

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, source_id, name, description, video_count, public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		playlist.SourceID(),
		playlist.Name(),
		playlist.Description(),
		playlist.VideoCount(),
		playlist.Public(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a playlist by ID, excluding soft-deleted playlists
func (r *PlaylistRepository) Get(id string) (*models.PersistedPlaylist, error) {
	query := `
		SELECT id, sequence, source_id, name, description, video_count, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetBySourceID retrieves a playlist by its remote source ID
func (r *PlaylistRepository) GetBySourceID(sourceID string) (*models.PersistedPlaylist, error) {
	query := `
		SELECT id, sequence, source_id, name, description, video_count, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE source_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, sourceID))
}

// Update modifies an existing playlist in the database
func (r *PlaylistRepository) Update(playlist *models.PersistedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, description = ?, video_count = ?, public = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Description(),
		playlist.VideoCount(),
		playlist.Public(),
		now,
		playlist.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlist.ID())
	}

	return nil
}

// Delete soft-deletes a playlist by ID and removes its entries
func (r *PlaylistRepository) Delete(id string) error {
	now := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE playlists SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	if _, err := tx.Exec(`DELETE FROM playlist_entries WHERE playlist_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete playlist entries: %w", err)
	}

	return tx.Commit()
}

// List retrieves all playlists matching the given criteria, excluding soft-deleted playlists.
//
// Supported criteria: "q" (name substring), "limit", "offset".
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.PersistedPlaylist, error) {
	query := `
		SELECT id, sequence, source_id, name, description, video_count, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if q, ok := criteria["q"].(string); ok && q != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+q+"%")
	}

	query += " ORDER BY sequence ASC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)

		if offset, ok := criteria["offset"].(int); ok && offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.PersistedPlaylist
	for rows.Next() {
		playlist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Count returns the number of playlists matching the given criteria, ignoring limit and offset.
func (r *PlaylistRepository) Count(criteria map[string]any) (int, error) {
	query := `SELECT COUNT(*) FROM playlists WHERE deleted_at IS NULL`

	args := []any{}

	if q, ok := criteria["q"].(string); ok && q != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+q+"%")
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count playlists: %w", err)
	}

	return count, nil
}

// AddEntry appends a video to the end of a playlist.
//
// Returns shared.ErrDuplicateEntry if the video is already in the playlist.
func (r *PlaylistRepository) AddEntry(playlistID, videoID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(`SELECT COALESCE(MAX(position) + 1, 0) FROM playlist_entries WHERE playlist_id = ?`, playlistID).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to get next position: %w", err)
	}

	query := `
		INSERT INTO playlist_entries (id, playlist_id, video_id, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query, shared.GenerateID(), playlistID, videoID, position, time.Now())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: video %s in playlist %s", shared.ErrDuplicateEntry, videoID, playlistID)
		}
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	if err := r.syncVideoCount(tx, playlistID); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveEntry removes a video from a playlist and compacts the remaining positions.
func (r *PlaylistRepository) RemoveEntry(playlistID, videoID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(`SELECT position FROM playlist_entries WHERE playlist_id = ? AND video_id = ?`, playlistID, videoID).Scan(&position)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: video %s in playlist %s", shared.ErrVideoNotFound, videoID, playlistID)
	}
	if err != nil {
		return fmt.Errorf("failed to query entry: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM playlist_entries WHERE playlist_id = ? AND video_id = ?`, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if _, err := tx.Exec(`UPDATE playlist_entries SET position = position - 1 WHERE playlist_id = ? AND position > ?`, playlistID, position); err != nil {
		return fmt.Errorf("failed to compact positions: %w", err)
	}

	if err := r.syncVideoCount(tx, playlistID); err != nil {
		return err
	}

	return tx.Commit()
}

// MoveEntry repositions a video within a playlist. The target position is
// clamped to the playlist bounds.
func (r *PlaylistRepository) MoveEntry(playlistID, videoID string, to int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT video_id FROM playlist_entries WHERE playlist_id = ? ORDER BY position ASC`, playlistID)
	if err != nil {
		return fmt.Errorf("failed to query entries: %w", err)
	}

	var order []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan entry: %w", err)
		}
		order = append(order, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	from := -1
	for i, id := range order {
		if id == videoID {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("%w: video %s in playlist %s", shared.ErrVideoNotFound, videoID, playlistID)
	}

	if to < 0 {
		to = 0
	}
	if to > len(order)-1 {
		to = len(order) - 1
	}
	if to == from {
		return tx.Commit()
	}

	moved := order[from]
	order = append(order[:from], order[from+1:]...)
	order = append(order[:to], append([]string{moved}, order[to:]...)...)

	for i, id := range order {
		if _, err := tx.Exec(`UPDATE playlist_entries SET position = ? WHERE playlist_id = ? AND video_id = ?`, i, playlistID, id); err != nil {
			return fmt.Errorf("failed to update position: %w", err)
		}
	}

	return tx.Commit()
}

// ListVideos returns the videos in a playlist ordered by entry position.
func (r *PlaylistRepository) ListVideos(playlistID string) ([]models.Video, error) {
	query := `
		SELECT v.id, v.title, v.artist_id, v.artist_name, v.duration, v.description, v.thumbnail_url, v.published_at
		FROM playlist_entries e
		JOIN videos v ON v.id = e.video_id
		WHERE e.playlist_id = ? AND v.deleted_at IS NULL
		ORDER BY e.position ASC
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var (
			video       models.Video
			publishedAt sql.NullTime
		)

		err := rows.Scan(&video.ID, &video.Title, &video.ArtistID, &video.ArtistName, &video.Duration, &video.Description, &video.ThumbnailURL, &publishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist video: %w", err)
		}
		if publishedAt.Valid {
			video.PublishedAt = publishedAt.Time
		}

		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// syncVideoCount refreshes the denormalized video_count column inside a transaction.
func (r *PlaylistRepository) syncVideoCount(tx *sql.Tx, playlistID string) error {
	query := `
		UPDATE playlists
		SET video_count = (SELECT COUNT(*) FROM playlist_entries WHERE playlist_id = ?), updated_at = ?
		WHERE id = ?
	`
	if _, err := tx.Exec(query, playlistID, time.Now(), playlistID); err != nil {
		return fmt.Errorf("failed to sync video count: %w", err)
	}
	return nil
}

// scanOne scans a single row into a [models.PersistedPlaylist]
func (r *PlaylistRepository) scanOne(row *sql.Row) (*models.PersistedPlaylist, error) {
	var (
		id          string
		sequence    int
		sourceID    string
		name        string
		description string
		videoCount  int
		public      bool
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &sourceID, &name, &description, &videoCount, &public, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	dto := models.Playlist{
		Name:        name,
		Description: description,
		VideoCount:  videoCount,
		Public:      public,
	}

	playlist := models.NewPersistedPlaylist(sequence, sourceID, dto)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		playlist.SetDeletedAt(&deletedAt.Time)
	}

	return playlist, nil
}

// scanRow scans a row from [sql.Rows] into a [models.PersistedPlaylist]
func (r *PlaylistRepository) scanRow(rows *sql.Rows) (*models.PersistedPlaylist, error) {
	var (
		id          string
		sequence    int
		sourceID    string
		name        string
		description string
		videoCount  int
		public      bool
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &sourceID, &name, &description, &videoCount, &public, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	dto := models.Playlist{
		Name:        name,
		Description: description,
		VideoCount:  videoCount,
		Public:      public,
	}

	playlist := models.NewPersistedPlaylist(sequence, sourceID, dto)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		playlist.SetDeletedAt(&deletedAt.Time)
	}

	return playlist, nil
}
