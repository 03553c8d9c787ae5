package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/tasks"
	"github.com/urfave/cli/v3"
)

// splitIDs splits a comma-separated flag value into trimmed, non-empty IDs.
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// allPlaylistIDs pages through the library and collects every playlist ID.
func allPlaylistIDs(ctx context.Context, library services.Library) ([]string, error) {
	var ids []string
	offset := 0
	for {
		page, err := library.Playlists(ctx, services.Query{Limit: 200, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, playlist := range page.Items {
			ids = append(ids, playlist.ID)
		}
		offset += len(page.Items)
		if len(page.Items) == 0 || offset >= page.Total {
			return ids, nil
		}
	}
}

// BulkExport exports multiple playlists concurrently with progress output.
func (r *Runner) BulkExport(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	ids := splitIDs(cmd.String("ids"))
	if cmd.Bool("all") {
		if ids, err = allPlaylistIDs(ctx, library); err != nil {
			return fmt.Errorf("failed to list playlists: %w", err)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: provide --ids or --all", shared.ErrMissingArgument)
	}

	opts := tasks.BulkExportOpts{
		Format:     r.exportFormat(cmd),
		OutputDir:  r.exportDir(cmd),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  float64(cmd.Int("rate")),
	}

	r.logger.Info("starting bulk export", "playlists", len(ids), "format", opts.Format)

	job := r.beginJob(models.JobKindBulkExport, len(ids))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchPlaylists:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportPlaylist:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.BulkExport(ctx, progressCh, ids, opts)
	close(progressCh)
	if err != nil {
		r.finishJob(job, 0, len(ids), err)
		return fmt.Errorf("bulk export failed: %w", err)
	}
	r.finishJob(job, result.SuccessfulExports, result.FailedExports, nil)

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Playlists: %d\n", result.TotalPlaylists)
	r.writePlain("Succeeded: %d\n", result.SuccessfulExports)
	r.writePlain("Failed: %d\n", result.FailedExports)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlainln("\nFailed playlists:")
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.PlaylistName, res.Error)
			}
		}
	}

	return nil
}

// BulkDelete deletes multiple videos with progress output.
func (r *Runner) BulkDelete(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireLibrary(); err != nil {
		return err
	}

	ids := splitIDs(cmd.String("ids"))
	if len(ids) == 0 {
		return fmt.Errorf("%w: provide --ids", shared.ErrMissingArgument)
	}

	r.logger.Info("starting bulk delete", "videos", len(ids))

	job := r.beginJob(models.JobKindBulkDelete, len(ids))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("   %s\n", update.Message)
		}
	}()

	result, err := r.engine.BulkDelete(ctx, progressCh, ids)
	close(progressCh)
	if err != nil {
		r.finishJob(job, 0, len(ids), err)
		return fmt.Errorf("bulk delete failed: %w", err)
	}
	r.finishJob(job, result.DeletedCount, result.FailedCount, nil)

	r.writePlain("\n")
	r.writePlainHeader("Delete Complete")
	r.writePlain("Requested: %d\n", result.TotalVideos)
	r.writePlain("Deleted: %d\n", result.DeletedCount)
	r.writePlain("Failed: %d\n", result.FailedCount)

	if len(result.Errors) > 0 {
		r.writePlainln("\nErrors:")
		for _, e := range result.Errors {
			r.writePlain("  - %s: %v\n", e.VideoID, e.Err)
		}
	}

	return nil
}

// BulkAdd adds multiple videos to a playlist with progress output.
func (r *Runner) BulkAdd(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireLibrary(); err != nil {
		return err
	}

	playlistID := cmd.String("playlist")
	ids := splitIDs(cmd.String("ids"))
	if len(ids) == 0 {
		return fmt.Errorf("%w: provide --ids", shared.ErrMissingArgument)
	}

	r.logger.Info("starting bulk add", "playlist", playlistID, "videos", len(ids))

	job := r.beginJob(models.JobKindBulkAdd, len(ids))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("   %s\n", update.Message)
		}
	}()

	result, err := r.engine.BulkPlaylistAdd(ctx, progressCh, playlistID, ids)
	close(progressCh)
	if err != nil {
		r.finishJob(job, 0, len(ids), err)
		return fmt.Errorf("bulk add failed: %w", err)
	}
	r.finishJob(job, result.AddedCount, result.FailedCount, nil)

	r.writePlain("\n")
	r.writePlainHeader("Add Complete")
	r.writePlain("Playlist: %s\n", result.PlaylistID)
	r.writePlain("Requested: %d\n", result.TotalVideos)
	r.writePlain("Added: %d\n", result.AddedCount)
	r.writePlain("Skipped: %d\n", result.SkippedCount)
	r.writePlain("Failed: %d\n", result.FailedCount)

	if len(result.Errors) > 0 {
		r.writePlainln("\nErrors:")
		for _, e := range result.Errors {
			r.writePlain("  - %s: %v\n", e.VideoID, e.Err)
		}
	}

	return nil
}
