package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/urfave/cli/v3"
)

// VideosList lists videos from the configured library backend.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	q := services.Query{
		Q:      cmd.String("query"),
		Limit:  int(cmd.Int("limit")),
		Offset: int(cmd.Int("offset")),
	}

	r.logger.Infof("listing videos from %v", library.Name())

	page, err := library.Videos(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list videos: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	if len(page.Items) == 0 {
		r.writePlain("No videos found\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Videos (%d of %d)", len(page.Items), page.Total))
	for i, video := range page.Items {
		r.writePlain("%4d. [%s] %s - %s (%s)\n",
			q.Offset+i+1, video.ID, video.Title, video.ArtistName, shared.FormatDuration(video.Duration))
	}
	if page.Next != "" {
		r.writePlain("\nMore results: rerun with --offset %d\n", q.Offset+len(page.Items))
	}

	return nil
}

// VideosShow prints a single video's details.
func (r *Runner) VideosShow(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}

	video, err := library.Video(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch video %s: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(video, cmd.Bool("pretty"))
	}

	r.writePlainHeader(video.Title)
	r.writePlain("ID: %s\n", video.ID)
	r.writePlain("Artist: %s\n", video.ArtistName)
	r.writePlain("Duration: %s\n", shared.FormatDuration(video.Duration))
	if !video.PublishedAt.IsZero() {
		r.writePlain("Published: %s\n", video.PublishedAt.Format("2006-01-02"))
	}
	if video.Description != "" {
		r.writePlain("\n%s\n", video.Description)
	}

	return nil
}

// VideosDelete removes a video from the library.
func (r *Runner) VideosDelete(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: video id is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("deleting video %v from %v", id, library.Name())

	if err := library.DeleteVideo(ctx, id); err != nil {
		return fmt.Errorf("failed to delete video %s: %w", id, err)
	}

	r.writePlain("✓ Deleted video %s\n", id)
	return nil
}
