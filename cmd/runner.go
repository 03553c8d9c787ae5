package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/repositories"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	library    services.Library
	cache      *services.Cache
	jobs       *repositories.JobRepository
	engine     *tasks.LibraryEngine
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Library    services.Library
	Cache      *services.Cache
	Jobs       *repositories.JobRepository
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var cacher tasks.LibraryCacher
	if opts.Cache != nil {
		cacher = opts.Cache
	}
	engine := tasks.NewLibraryEngine(opts.Library, cacher)

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		library:    opts.Library,
		cache:      opts.Cache,
		jobs:       opts.Jobs,
		engine:     engine,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, videosCommand, playlistsCommand, bulkCommand, syncCommand, browseCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireLibrary returns the configured library backend, or an error when
// neither a remote server nor the cache database is available.
func (r *Runner) requireLibrary() (services.Library, error) {
	if r.library == nil {
		return nil, fmt.Errorf("%w: no library backend configured, set library.base_url or run 'reel setup'", shared.ErrServiceUnavailable)
	}
	return r.library, nil
}

// beginJob records a running job row. Returns nil when the cache database
// is unavailable; job history is best-effort.
func (r *Runner) beginJob(kind models.JobKind, total int) *models.Job {
	if r.jobs == nil {
		return nil
	}

	job := models.NewJob(0, kind, total)
	job.Start()
	if err := r.jobs.Create(job); err != nil {
		r.logger.Warn("failed to record job", "kind", kind, "error", err)
		return nil
	}

	return job
}

// finishJob closes a job row with final counters and outcome.
func (r *Runner) finishJob(job *models.Job, done, failed int, err error) {
	if job == nil {
		return
	}

	job.SetProgress(done, failed)
	if err != nil {
		job.Fail(err.Error())
	} else {
		job.Complete()
	}

	if uerr := r.jobs.Update(job); uerr != nil {
		r.logger.Warn("failed to update job", "id", job.ID(), "error", uerr)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
