package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/tasks"
	"github.com/urfave/cli/v3"
)

// PlaylistsList lists playlists from the configured library backend.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	q := services.Query{Limit: int(cmd.Int("limit"))}

	page, err := library.Playlists(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	if len(page.Items) == 0 {
		r.writePlain("No playlists found\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Playlists (%d of %d)", len(page.Items), page.Total))
	for i, playlist := range page.Items {
		r.writePlain("%4d. [%s] %s (%d videos, %s)\n",
			i+1, playlist.ID, playlist.Name, playlist.VideoCount, shared.VisibilityString(playlist.Public))
	}

	return nil
}

// PlaylistsShow prints a playlist and its ordered videos.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	detail, err := library.Playlist(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist %s: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlainHeader(detail.Playlist.Name)
	if detail.Playlist.Description != "" {
		r.writePlain("%s\n", detail.Playlist.Description)
	}
	r.writePlain("%d videos, %s\n\n", len(detail.Videos), shared.VisibilityString(detail.Playlist.Public))
	for i, video := range detail.Videos {
		r.writePlain("%4d. %s - %s (%s)\n",
			i+1, video.Title, video.ArtistName, shared.FormatDuration(video.Duration))
	}

	return nil
}

// PlaylistsCreate creates a playlist on the library backend.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	name := cmd.StringArg("name")
	if err := models.ValidatePlaylistName(name); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	created, err := library.CreatePlaylist(ctx, models.Playlist{
		Name:        name,
		Description: cmd.String("description"),
		Public:      cmd.Bool("public"),
	})
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Created playlist %q (%s)\n", created.Name, created.ID)
	return nil
}

// PlaylistsDelete removes a playlist and its entries.
func (r *Runner) PlaylistsDelete(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	if err := library.DeletePlaylist(ctx, id); err != nil {
		return fmt.Errorf("failed to delete playlist %s: %w", id, err)
	}

	r.writePlain("✓ Deleted playlist %s\n", id)
	return nil
}

// PlaylistsAdd appends a video to a playlist.
func (r *Runner) PlaylistsAdd(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	playlistID := cmd.String("playlist")
	videoID := cmd.String("video")

	if err := library.AddPlaylistVideo(ctx, playlistID, videoID); err != nil {
		if errors.Is(err, shared.ErrDuplicateEntry) {
			r.writePlain("− Video %s is already in the playlist\n", videoID)
			return nil
		}
		return fmt.Errorf("failed to add video to playlist: %w", err)
	}

	r.writePlain("✓ Added %s to %s\n", videoID, playlistID)
	return nil
}

// PlaylistsRemove removes a video from a playlist.
func (r *Runner) PlaylistsRemove(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	playlistID := cmd.String("playlist")
	videoID := cmd.String("video")

	if err := library.RemovePlaylistVideo(ctx, playlistID, videoID); err != nil {
		return fmt.Errorf("failed to remove video from playlist: %w", err)
	}

	r.writePlain("✓ Removed %s from %s\n", videoID, playlistID)
	return nil
}

// PlaylistsMove moves a video to a new position within a playlist.
func (r *Runner) PlaylistsMove(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	playlistID := cmd.String("playlist")
	videoID := cmd.String("video")
	to := int(cmd.Int("to"))

	if err := library.MovePlaylistVideo(ctx, playlistID, videoID, to); err != nil {
		return fmt.Errorf("failed to move video: %w", err)
	}

	r.writePlain("✓ Moved %s to position %d\n", videoID, to)
	return nil
}

// PlaylistsExport exports a single playlist through the bulk export engine.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireLibrary(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	result, err := r.engine.BulkExport(ctx, nil, []string{id}, tasks.BulkExportOpts{
		Format:    r.exportFormat(cmd),
		OutputDir: r.exportDir(cmd),
	})
	if err != nil {
		return fmt.Errorf("failed to export playlist %s: %w", id, err)
	}
	if len(result.Results) == 0 {
		return fmt.Errorf("playlist %s was not exported", id)
	}

	res := result.Results[0]
	if !res.Success {
		return fmt.Errorf("failed to export playlist %s: %w", id, res.Error)
	}

	r.writePlain("✓ Exported %q (%d files)\n", res.PlaylistName, len(res.Files))
	for _, file := range res.Files {
		r.writePlain("  %s\n", file)
	}
	r.writePlain("Manifest: %s\n", result.ManifestPath)
	return nil
}

// exportFormat resolves the export format from the flag, the config file,
// then the JSON default.
func (r *Runner) exportFormat(cmd *cli.Command) string {
	if format := cmd.String("format"); format != "" {
		return format
	}
	if r.config.Export.Format != "" {
		return r.config.Export.Format
	}
	return "json"
}

// exportDir resolves the output directory from the flag then the config
// file. Empty means the engine picks a timestamped default.
func (r *Runner) exportDir(cmd *cli.Command) string {
	if dir := cmd.String("output"); dir != "" {
		return dir
	}
	return r.config.Export.Directory
}
