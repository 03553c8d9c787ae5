package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/reel/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file if missing, optionally wires a remote
// library from a browser-captured cURL command, and initializes the
// cache database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	if err := r.configureRemote(config, configPath, cmd.String("curl"), cmd.String("curl-file")); err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)

	r.config = config
	r.configPath = configPath

	r.writePlain("✓ Setup complete\n")
	r.writePlain("Config file: %s\n", configPath)
	r.writePlain("Cache database: %s\n", config.Database.Path)
	if config.Library.BaseURL != "" {
		r.writePlain("Remote library: %s\n", config.Library.BaseURL)
		r.writePlain("Run 'reel sync' to pull it into the cache\n")
	} else {
		r.writePlain("Run 'reel browse' to explore the cache\n")
	}

	return nil
}

// configureRemote fills library credentials from a cURL command captured in
// browser DevTools and persists them to the config file. A no-op when
// neither flag is set.
func (r *Runner) configureRemote(config *shared.Config, configPath, curlCmd, curlFile string) error {
	if curlCmd == "" && curlFile == "" {
		return nil
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var req *shared.CurlRequest
	var err error

	if curlFile != "" {
		req, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		req, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	baseURL := req.BaseURL()
	if baseURL == "" {
		return fmt.Errorf("%w: cURL command carries no request URL", shared.ErrInvalidArgument)
	}

	config.Library.BaseURL = baseURL
	config.Library.AccessToken = req.BearerToken()
	if config.Library.AccessToken == "" {
		r.logger.Warn("cURL command carries no bearer token, requests will be unauthenticated")
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.logger.Info("remote library configured", "base_url", baseURL)
	return nil
}
