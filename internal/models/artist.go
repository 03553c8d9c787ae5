package models

import (
	"fmt"
	"time"
)

// Artist is the wire representation of a channel or artist.
type Artist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	VideoCount   int    `json:"video_count"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// PersistedArtist is a database-backed artist with full lifecycle management.
type PersistedArtist struct {
	id        string
	sequence  int
	sourceID  string
	artist    Artist
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedArtist creates a PersistedArtist from a wire DTO. The ID is
// assigned by the repository on Create.
func NewPersistedArtist(sequence int, sourceID string, artist Artist) *PersistedArtist {
	now := time.Now()
	return &PersistedArtist{
		sequence:  sequence,
		sourceID:  sourceID,
		artist:    artist,
		createdAt: now,
		updatedAt: now,
	}
}

func (a *PersistedArtist) ID() string            { return a.id }
func (a *PersistedArtist) Sequence() int         { return a.sequence }
func (a *PersistedArtist) SourceID() string      { return a.sourceID }
func (a *PersistedArtist) Name() string          { return a.artist.Name }
func (a *PersistedArtist) VideoCount() int       { return a.artist.VideoCount }
func (a *PersistedArtist) ThumbnailURL() string  { return a.artist.ThumbnailURL }
func (a *PersistedArtist) CreatedAt() time.Time  { return a.createdAt }
func (a *PersistedArtist) UpdatedAt() time.Time  { return a.updatedAt }
func (a *PersistedArtist) DeletedAt() *time.Time { return a.deletedAt }

func (a *PersistedArtist) SetID(id string)           { a.id = id }
func (a *PersistedArtist) SetSequence(seq int)       { a.sequence = seq }
func (a *PersistedArtist) SetCreatedAt(t time.Time)  { a.createdAt = t }
func (a *PersistedArtist) SetUpdatedAt(t time.Time)  { a.updatedAt = t }
func (a *PersistedArtist) SetDeletedAt(t *time.Time) { a.deletedAt = t }
func (a *PersistedArtist) SetVideoCount(n int)       { a.artist.VideoCount = n }
func (a *PersistedArtist) SetArtist(artist Artist)   { a.artist = artist }

// DTO returns the wire representation with the local ID as identity.
func (a *PersistedArtist) DTO() Artist {
	dto := a.artist
	dto.ID = a.id
	return dto
}

// Validate checks required artist fields.
func (a *PersistedArtist) Validate() error {
	if a.artist.Name == "" {
		return fmt.Errorf("artist name is required")
	}
	return nil
}
