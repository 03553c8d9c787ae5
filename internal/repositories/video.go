package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
)

// VideoRepository implements models.Repository[*models.PersistedVideo] for the library cache.
//
// Handles video CRUD operations with soft delete support and source-specific lookups.
// Videos are cached on every sync to enable offline browsing.
type VideoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new VideoRepository with the given database connection
func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new [models.PersistedVideo] into the database with generated ID and sequence
func (r *VideoRepository) Create(video *models.PersistedVideo) error {
	sequence, err := NextSequence(r.db, "videos")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	video.SetID(id)
	video.SetSequence(sequence)

	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO videos (id, sequence, source_id, title, artist_id, artist_name, duration, description, thumbnail_url, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		video.SourceID(),
		video.Title(),
		video.ArtistID(),
		video.ArtistName(),
		video.Duration(),
		video.Description(),
		video.ThumbnailURL(),
		video.PublishedAt(),
		video.CreatedAt(),
		video.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	return nil
}

// Get retrieves a video by ID, excluding soft-deleted videos
func (r *VideoRepository) Get(id string) (*models.PersistedVideo, error) {
	query := `
		SELECT id, sequence, source_id, title, artist_id, artist_name, duration, description, thumbnail_url, published_at, created_at, updated_at, deleted_at
		FROM videos
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetBySourceID retrieves a video by its remote source ID
func (r *VideoRepository) GetBySourceID(sourceID string) (*models.PersistedVideo, error) {
	query := `
		SELECT id, sequence, source_id, title, artist_id, artist_name, duration, description, thumbnail_url, published_at, created_at, updated_at, deleted_at
		FROM videos
		WHERE source_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, sourceID))
}

// Update modifies an existing video in the database
func (r *VideoRepository) Update(video *models.PersistedVideo) error {
	if err := video.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	video.SetUpdatedAt(now)

	query := `
		UPDATE videos
		SET title = ?, artist_id = ?, artist_name = ?, duration = ?, description = ?, thumbnail_url = ?, published_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		video.Title(),
		video.ArtistID(),
		video.ArtistName(),
		video.Duration(),
		video.Description(),
		video.ThumbnailURL(),
		video.PublishedAt(),
		now,
		video.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, video.ID())
	}

	return nil
}

// Delete soft-deletes a video by ID
func (r *VideoRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE videos
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
	}

	return nil
}

// List retrieves all videos matching the given criteria, excluding soft-deleted videos.
//
// Supported criteria: "q" (title/artist substring), "artist_id", "limit", "offset".
func (r *VideoRepository) List(criteria map[string]any) ([]*models.PersistedVideo, error) {
	query := `
		SELECT id, sequence, source_id, title, artist_id, artist_name, duration, description, thumbnail_url, published_at, created_at, updated_at, deleted_at
		FROM videos
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if q, ok := criteria["q"].(string); ok && q != "" {
		query += " AND (title LIKE ? OR artist_name LIKE ?)"
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	if artistID, ok := criteria["artist_id"].(string); ok && artistID != "" {
		query += " AND artist_id = ?"
		args = append(args, artistID)
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
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.PersistedVideo
	for rows.Next() {
		video, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return videos, nil
}

// Count returns the number of videos matching the given criteria, ignoring limit and offset.
func (r *VideoRepository) Count(criteria map[string]any) (int, error) {
	query := `SELECT COUNT(*) FROM videos WHERE deleted_at IS NULL`

	args := []any{}

	if q, ok := criteria["q"].(string); ok && q != "" {
		query += " AND (title LIKE ? OR artist_name LIKE ?)"
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern)
	}

	if artistID, ok := criteria["artist_id"].(string); ok && artistID != "" {
		query += " AND artist_id = ?"
		args = append(args, artistID)
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}

	return count, nil
}

// scanOne scans a single [sql.Row] into a [models.PersistedVideo]
func (r *VideoRepository) scanOne(row *sql.Row) (*models.PersistedVideo, error) {
	var (
		id           string
		sequence     int
		sourceID     string
		title        string
		artistID     string
		artistName   string
		duration     int
		description  string
		thumbnailURL string
		publishedAt  sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &sourceID, &title, &artistID, &artistName, &duration, &description, &thumbnailURL, &publishedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	dto := models.Video{
		Title:        title,
		ArtistID:     artistID,
		ArtistName:   artistName,
		Duration:     duration,
		Description:  description,
		ThumbnailURL: thumbnailURL,
	}
	if publishedAt.Valid {
		dto.PublishedAt = publishedAt.Time
	}

	video := models.NewPersistedVideo(sequence, sourceID, dto)
	video.SetID(id)
	video.SetCreatedAt(createdAt)
	video.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		video.SetDeletedAt(&deletedAt.Time)
	}

	return video, nil
}

// scanRow scans a row from [sql.Rows] into a [models.PersistedVideo]
func (r *VideoRepository) scanRow(rows *sql.Rows) (*models.PersistedVideo, error) {
	var (
		id           string
		sequence     int
		sourceID     string
		title        string
		artistID     string
		artistName   string
		duration     int
		description  string
		thumbnailURL string
		publishedAt  sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &sourceID, &title, &artistID, &artistName, &duration, &description, &thumbnailURL, &publishedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}

	dto := models.Video{
		Title:        title,
		ArtistID:     artistID,
		ArtistName:   artistName,
		Duration:     duration,
		Description:  description,
		ThumbnailURL: thumbnailURL,
	}
	if publishedAt.Valid {
		dto.PublishedAt = publishedAt.Time
	}

	video := models.NewPersistedVideo(sequence, sourceID, dto)
	video.SetID(id)
	video.SetCreatedAt(createdAt)
	video.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		video.SetDeletedAt(&deletedAt.Time)
	}

	return video, nil
}
