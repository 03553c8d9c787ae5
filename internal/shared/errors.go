package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingToken  = fmt.Errorf("missing access token")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Library errors
	ErrVideoNotFound    = fmt.Errorf("video not found")
	ErrArtistNotFound   = fmt.Errorf("artist not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrDuplicateEntry   = fmt.Errorf("entry already exists")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
