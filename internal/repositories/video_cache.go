package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/reel/internal/models"
)

// VideoCacheAdapter upserts remote videos into a VideoRepository, keyed
// by source ID. Rows that already exist are refreshed in place and
// UNIQUE constraint violations are silently ignored, so replaying a sync
// never errors.
type VideoCacheAdapter struct {
	repo *VideoRepository
}

// NewVideoCacheAdapter creates a new VideoCacheAdapter with the given repository
func NewVideoCacheAdapter(repo *VideoRepository) *VideoCacheAdapter {
	return &VideoCacheAdapter{repo: repo}
}

// CacheVideo caches a video fetched from the remote library.
// Returns nil if the video already exists (deduplication).
// Only returns errors for actual failures (not constraint violations).
func (a *VideoCacheAdapter) CacheVideo(sourceID string, video models.Video) error {
	existing, err := a.repo.GetBySourceID(sourceID)
	if err == nil && existing != nil {
		existing.SetVideo(video)
		if err := a.repo.Update(existing); err != nil {
			return fmt.Errorf("failed to refresh cached video: %w", err)
		}
		return nil
	}

	persisted := models.NewPersistedVideo(0, sourceID, video)

	err = a.repo.Create(persisted)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache video: %w", err)
	}

	return nil
}
