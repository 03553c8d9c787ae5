package models

// VideoPage is a paginated slice of videos as served by the REST API.
type VideoPage struct {
	Items  []Video `json:"items"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
	Next   string  `json:"next,omitempty"`
}

// ArtistPage is a paginated slice of artists.
type ArtistPage struct {
	Items  []Artist `json:"items"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
	Next   string   `json:"next,omitempty"`
}

// PlaylistPage is a paginated slice of playlists.
type PlaylistPage struct {
	Items  []Playlist `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Next   string     `json:"next,omitempty"`
}
