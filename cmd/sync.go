package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync pulls the remote library into the local cache with progress output.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	if r.config.Library.BaseURL == "" {
		return fmt.Errorf("%w: library.base_url is not configured, run 'reel setup --curl'", shared.ErrMissingConfig)
	}
	if r.cache == nil {
		return fmt.Errorf("%w: cache database not initialized, run 'reel setup' first", shared.ErrServiceUnavailable)
	}

	r.logger.Info("starting sync", "base_url", r.config.Library.BaseURL)
	r.writePlain("Syncing library from %s...\n\n", r.config.Library.BaseURL)

	job := r.beginJob(models.JobKindSync, 0)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	result, err := r.engine.Sync(ctx, progressCh)
	close(progressCh)
	if err != nil {
		if result != nil {
			r.finishJob(job, result.ArtistsSynced+result.VideosSynced, result.Failed, err)
		} else {
			r.finishJob(job, 0, 0, err)
		}
		return fmt.Errorf("sync failed: %w", err)
	}
	r.finishJob(job, result.ArtistsSynced+result.VideosSynced, result.Failed, nil)

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete")
	r.writePlain("Artists: %d\n", result.ArtistsSynced)
	r.writePlain("Videos: %d\n", result.VideosSynced)
	r.writePlain("Failed: %d\n", result.Failed)

	if len(result.Errors) > 0 {
		r.writePlainln("\nFailures:")
		for _, e := range result.Errors {
			r.writePlain("  - %s %s: %v\n", e.Kind, e.SourceID, e.Err)
		}
	}

	return nil
}
