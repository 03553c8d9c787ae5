package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
)

// ArtistRepository implements [models.Repository] for [models.PersistedArtist] persistence.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new [ArtistRepository] with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new artist into the database with generated ID and sequence
func (r *ArtistRepository) Create(artist *models.PersistedArtist) error {
	sequence, err := NextSequence(r.db, "artists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	artist.SetID(id)
	artist.SetSequence(sequence)

	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO artists (id, sequence, source_id, name, thumbnail_url, video_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, artist.SourceID(), artist.Name(), artist.ThumbnailURL(), artist.VideoCount(), artist.CreatedAt(), artist.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	return nil
}

// Get retrieves an artist by ID, excluding soft-deleted artists
func (r *ArtistRepository) Get(id string) (*models.PersistedArtist, error) {
	query := `
		SELECT id, sequence, source_id, name, thumbnail_url, video_count, created_at, updated_at, deleted_at
		FROM artists
		WHERE id = ? AND deleted_at IS NULL
	`

	var (
		artistID     string
		sequence     int
		sourceID     string
		name         string
		thumbnailURL string
		videoCount   int
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := r.db.QueryRow(query, id).Scan(&artistID, &sequence, &sourceID, &name, &thumbnailURL, &videoCount, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}

	dto := models.Artist{Name: name, ThumbnailURL: thumbnailURL, VideoCount: videoCount}
	artist := models.NewPersistedArtist(sequence, sourceID, dto)
	artist.SetID(artistID)
	artist.SetCreatedAt(createdAt)
	artist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		artist.SetDeletedAt(&deletedAt.Time)
	}

	return artist, nil
}

// GetBySourceID retrieves an artist by its remote source ID
func (r *ArtistRepository) GetBySourceID(sourceID string) (*models.PersistedArtist, error) {
	query := `SELECT id FROM artists WHERE source_id = ? AND deleted_at IS NULL`

	var id string
	err := r.db.QueryRow(query, sourceID).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: source %s", shared.ErrArtistNotFound, sourceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}

	return r.Get(id)
}

// Update modifies an existing artist in the database
func (r *ArtistRepository) Update(artist *models.PersistedArtist) error {
	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	artist.SetUpdatedAt(now)

	query := `
		UPDATE artists
		SET name = ?, thumbnail_url = ?, video_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, artist.Name(), artist.ThumbnailURL(), artist.VideoCount(), now, artist.ID())
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrArtistNotFound, artist.ID())
	}

	return nil
}

// Delete soft-deletes an artist by ID
func (r *ArtistRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE artists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrArtistNotFound, id)
	}

	return nil
}

// List retrieves all artists matching the given criteria, excluding soft-deleted artists.
//
// Supported criteria: "q" (name substring), "limit", "offset".
func (r *ArtistRepository) List(criteria map[string]any) ([]*models.PersistedArtist, error) {
	query := `
		SELECT id, sequence, source_id, name, thumbnail_url, video_count, created_at, updated_at, deleted_at
		FROM artists
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
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.PersistedArtist
	for rows.Next() {
		var (
			artistID     string
			sequence     int
			sourceID     string
			name         string
			thumbnailURL string
			videoCount   int
			createdAt    time.Time
			updatedAt    time.Time
			deletedAt    sql.NullTime
		)

		err := rows.Scan(&artistID, &sequence, &sourceID, &name, &thumbnailURL, &videoCount, &createdAt, &updatedAt, &deletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}

		dto := models.Artist{Name: name, ThumbnailURL: thumbnailURL, VideoCount: videoCount}
		artist := models.NewPersistedArtist(sequence, sourceID, dto)
		artist.SetID(artistID)
		artist.SetCreatedAt(createdAt)
		artist.SetUpdatedAt(updatedAt)
		if deletedAt.Valid {
			artist.SetDeletedAt(&deletedAt.Time)
		}

		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// Count returns the number of artists matching the given criteria, ignoring limit and offset.
func (r *ArtistRepository) Count(criteria map[string]any) (int, error) {
	query := `SELECT COUNT(*) FROM artists WHERE deleted_at IS NULL`

	args := []any{}

	if q, ok := criteria["q"].(string); ok && q != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+q+"%")
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}

	return count, nil
}
