package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/reel/internal/repositories"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat("config.toml"); err == nil {
		if loaded, err := shared.LoadConfig("config.toml"); err == nil {
			config = loaded
			configPath = "config.toml"
		}
	}

	var cache *services.Cache
	var jobs *repositories.JobRepository
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			defer db.Close()
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			cache = services.NewCache(
				repositories.NewVideoRepository(db),
				repositories.NewArtistRepository(db),
				repositories.NewPlaylistRepository(db),
			)
			jobs = repositories.NewJobRepository(db)
		} else {
			logger.Warn("failed to open cache database", "path", config.Database.Path, "error", err)
		}
	}

	var library services.Library
	if config.Library.BaseURL != "" {
		library = services.NewClient(config.Library.BaseURL, config.Library.AccessToken, nil)
	} else if cache != nil {
		library = cache
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Library:    library,
		Cache:      cache,
		Jobs:       jobs,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "reel",
		Usage:    "Browse and manage a video library from the terminal",
		Version:  "0.4.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
