// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the config file and cache database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the cache database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "curl",
				Usage: "cURL command from browser DevTools (Copy as cURL) for a remote library",
			},
			&cli.StringFlag{
				Name:  "curl-file",
				Usage: "Path to .sh file containing a cURL command",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand runs the library REST server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the library REST API and landing page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host interface to bind",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the landing page in a browser",
			},
		},
		Action: r.Serve,
	}
}

// videosCommand handles library video queries.
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "Browse videos in the library",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List videos with optional search",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Filter by title or artist",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of videos to return",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Number of videos to skip",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.VideosList,
			},
			{
				Name:  "show",
				Usage: "Show a single video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.VideosShow,
			},
			{
				Name:  "delete",
				Usage: "Delete a video from the library",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.VideosDelete,
			},
		},
	}
}

// playlistsCommand handles playlist CRUD and exports.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List playlists",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist and its videos",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistsShow,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Playlist description",
					},
					&cli.BoolFlag{
						Name:  "public",
						Usage: "Make the playlist public",
					},
				},
				Action: r.PlaylistsCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistsDelete,
			},
			{
				Name:  "add",
				Usage: "Add a video to a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "video",
						Usage:    "Video ID",
						Required: true,
					},
				},
				Action: r.PlaylistsAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a video from a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "video",
						Usage:    "Video ID",
						Required: true,
					},
				},
				Action: r.PlaylistsRemove,
			},
			{
				Name:  "move",
				Usage: "Move a video to a new position in a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "video",
						Usage:    "Video ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "to",
						Usage:    "New zero-based position",
						Required: true,
					},
				},
				Action: r.PlaylistsMove,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to files",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt, yaml)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
				},
				Action: r.PlaylistsExport,
			},
		},
	}
}

// bulkCommand handles long-running operations over many records.
func bulkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bulk",
		Usage: "Bulk operations with progress reporting",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export multiple playlists concurrently",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "ids",
						Usage: "Comma-separated playlist IDs",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every playlist in the library",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, txt, yaml)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "rate",
						Usage: "Requests per second against the library",
						Value: 5,
					},
				},
				Action: r.BulkExport,
			},
			{
				Name:  "delete",
				Usage: "Delete multiple videos",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ids",
						Usage:    "Comma-separated video IDs",
						Required: true,
					},
				},
				Action: r.BulkDelete,
			},
			{
				Name:  "add",
				Usage: "Add multiple videos to a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "ids",
						Usage:    "Comma-separated video IDs",
						Required: true,
					},
				},
				Action: r.BulkAdd,
			},
		},
	}
}

// syncCommand pulls the remote library into the local cache.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Pull the remote library into the local cache",
		Action: r.Sync,
	}
}

// browseCommand launches the interactive library browser.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "b"},
		Usage:   "Browse the library in an interactive TUI",
		Action:  r.Browse,
	}
}
