package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// MaxPlaylistNameLength bounds playlist names in forms and API payloads.
const MaxPlaylistNameLength = 120

// Playlist is the wire representation of playlist metadata.
type Playlist struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	VideoCount  int    `json:"video_count" yaml:"video_count"`
	Public      bool   `json:"public" yaml:"public"`
}

// PlaylistDetail pairs playlist metadata with its ordered videos.
type PlaylistDetail struct {
	Playlist Playlist `json:"playlist" yaml:"playlist"`
	Videos   []Video  `json:"videos" yaml:"videos"`
}

// ValidatePlaylistName checks a playlist name for form and API submission.
func ValidatePlaylistName(name string) error {
	if name == "" {
		return fmt.Errorf("playlist name is required")
	}
	if utf8.RuneCountInString(name) > MaxPlaylistNameLength {
		return fmt.Errorf("playlist name exceeds %d characters", MaxPlaylistNameLength)
	}
	return nil
}

// PersistedPlaylist is a database-backed playlist with full lifecycle management.
type PersistedPlaylist struct {
	id        string
	sequence  int
	sourceID  string
	playlist  Playlist
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedPlaylist creates a PersistedPlaylist from a wire DTO. The ID
// is assigned by the repository on Create.
func NewPersistedPlaylist(sequence int, sourceID string, playlist Playlist) *PersistedPlaylist {
	now := time.Now()
	return &PersistedPlaylist{
		sequence:  sequence,
		sourceID:  sourceID,
		playlist:  playlist,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *PersistedPlaylist) ID() string            { return p.id }
func (p *PersistedPlaylist) Sequence() int         { return p.sequence }
func (p *PersistedPlaylist) SourceID() string      { return p.sourceID }
func (p *PersistedPlaylist) Name() string          { return p.playlist.Name }
func (p *PersistedPlaylist) Description() string   { return p.playlist.Description }
func (p *PersistedPlaylist) VideoCount() int       { return p.playlist.VideoCount }
func (p *PersistedPlaylist) Public() bool          { return p.playlist.Public }
func (p *PersistedPlaylist) CreatedAt() time.Time  { return p.createdAt }
func (p *PersistedPlaylist) UpdatedAt() time.Time  { return p.updatedAt }
func (p *PersistedPlaylist) DeletedAt() *time.Time { return p.deletedAt }

func (p *PersistedPlaylist) SetID(id string)           { p.id = id }
func (p *PersistedPlaylist) SetSequence(seq int)       { p.sequence = seq }
func (p *PersistedPlaylist) SetCreatedAt(t time.Time)  { p.createdAt = t }
func (p *PersistedPlaylist) SetUpdatedAt(t time.Time)  { p.updatedAt = t }
func (p *PersistedPlaylist) SetDeletedAt(t *time.Time) { p.deletedAt = t }
func (p *PersistedPlaylist) SetPlaylist(pl Playlist)   { p.playlist = pl }
func (p *PersistedPlaylist) SetVideoCount(n int)       { p.playlist.VideoCount = n }

// DTO returns the wire representation with the local ID as identity.
func (p *PersistedPlaylist) DTO() Playlist {
	dto := p.playlist
	dto.ID = p.id
	return dto
}

// Validate checks required playlist fields.
func (p *PersistedPlaylist) Validate() error {
	return ValidatePlaylistName(p.playlist.Name)
}

// PlaylistEntry is a row in the playlist to video junction table. Position
// is zero-based and kept dense by the repository.
type PlaylistEntry struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlist_id"`
	VideoID    string    `json:"video_id"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
