package models

import (
	"fmt"
	"time"
)

// Video is the wire representation of a single video shared by the REST API,
// the local cache and the export formats.
type Video struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	ArtistID     string    `json:"artist_id,omitempty" yaml:"artist_id,omitempty"`
	ArtistName   string    `json:"artist" yaml:"artist"`
	Duration     int       `json:"duration" yaml:"duration"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	PublishedAt  time.Time `json:"published_at" yaml:"published_at"`
}

// PersistedVideo is a database-backed video with full lifecycle management.
type PersistedVideo struct {
	id        string
	sequence  int
	sourceID  string
	video     Video
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedVideo creates a PersistedVideo from a wire DTO. The ID is
// assigned by the repository on Create.
func NewPersistedVideo(sequence int, sourceID string, video Video) *PersistedVideo {
	now := time.Now()
	return &PersistedVideo{
		sequence:  sequence,
		sourceID:  sourceID,
		video:     video,
		createdAt: now,
		updatedAt: now,
	}
}

func (v *PersistedVideo) ID() string             { return v.id }
func (v *PersistedVideo) Sequence() int          { return v.sequence }
func (v *PersistedVideo) SourceID() string       { return v.sourceID }
func (v *PersistedVideo) Title() string          { return v.video.Title }
func (v *PersistedVideo) ArtistID() string       { return v.video.ArtistID }
func (v *PersistedVideo) ArtistName() string     { return v.video.ArtistName }
func (v *PersistedVideo) Duration() int          { return v.video.Duration }
func (v *PersistedVideo) Description() string    { return v.video.Description }
func (v *PersistedVideo) ThumbnailURL() string   { return v.video.ThumbnailURL }
func (v *PersistedVideo) PublishedAt() time.Time { return v.video.PublishedAt }
func (v *PersistedVideo) CreatedAt() time.Time   { return v.createdAt }
func (v *PersistedVideo) UpdatedAt() time.Time   { return v.updatedAt }
func (v *PersistedVideo) DeletedAt() *time.Time  { return v.deletedAt }

func (v *PersistedVideo) SetID(id string)            { v.id = id }
func (v *PersistedVideo) SetSequence(seq int)        { v.sequence = seq }
func (v *PersistedVideo) SetUpdatedAt(t time.Time)   { v.updatedAt = t }
func (v *PersistedVideo) SetDeletedAt(t *time.Time)  { v.deletedAt = t }
func (v *PersistedVideo) SetCreatedAt(t time.Time)   { v.createdAt = t }
func (v *PersistedVideo) SetVideo(video Video)       { v.video = video }

// DTO returns the wire representation with the local ID as identity.
func (v *PersistedVideo) DTO() Video {
	dto := v.video
	dto.ID = v.id
	return dto
}

// Validate checks required video fields.
func (v *PersistedVideo) Validate() error {
	if v.video.Title == "" {
		return fmt.Errorf("video title is required")
	}
	if v.video.Duration < 0 {
		return fmt.Errorf("video duration cannot be negative")
	}
	return nil
}
