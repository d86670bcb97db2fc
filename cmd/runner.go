package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"readmark/internal/authgate"
	"readmark/internal/covers"
	"readmark/internal/library"
	"readmark/internal/remote"
	"readmark/internal/shared"
	"readmark/internal/syncjob"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	caller     *remote.Caller
	library    *library.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	db *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Caller     *remote.Caller
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) (*Runner, error) {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	caller := opts.Caller
	if caller == nil {
		var err error
		caller, err = remote.NewCaller(opts.Config.Server.BaseURL, opts.HTTPClient, opts.Logger)
		if err != nil {
			return nil, err
		}
	}

	return &Runner{
		config:     opts.Config,
		caller:     caller,
		library:    library.NewClient(caller),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, syncCommand, coverCommand, booksCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Close releases the local database handle, if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		_ = r.db.Close()
		r.db = nil
	}
}

// SetLogger replaces the runner's logger (used when the TUI owns the terminal).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// loadSessionToken reads the saved session and attaches its token to the caller.
func (r *Runner) loadSessionToken() (*shared.Session, error) {
	session, err := shared.LoadSession(r.config.Auth.SessionFile)
	if err != nil {
		return nil, err
	}
	if session.Token != "" {
		r.caller.SetToken(session.Token)
	}
	return session, nil
}

// openCoverStore opens the local database (running migrations if needed) and
// returns a cover cache store over it.
func (r *Runner) openCoverStore() (*covers.Store, error) {
	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, err
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		r.db = db
	}
	return covers.NewStore(r.db, r.logger), nil
}

func (r *Runner) newResolver(store *covers.Store) *covers.Resolver {
	cfg := r.config.Covers
	return covers.NewResolver(r.caller, store, covers.Options{
		SearchURL: cfg.SearchURL,
		ISBNURL:   cfg.ISBNURL,
		Timeout:   cfg.SearchTimeout(),
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}, r.logger)
}

func (r *Runner) newGate() *authgate.Gate {
	cfg := r.config.Auth
	return authgate.New(r.caller, authgate.Options{
		TTL:        cfg.CacheTTL(),
		MaxEntries: cfg.CacheMaxEntries,
		Timeout:    cfg.VerifyTimeout(),
		FailOpen:   cfg.FailOpen,
	}, r.logger)
}

func (r *Runner) newOrchestrator() *syncjob.Orchestrator {
	cfg := r.config.Sync
	return syncjob.New(syncjob.NewClient(r.caller), syncjob.Options{
		InitiateTimeout: cfg.InitiateTimeout(),
		PollTimeout:     cfg.PollTimeout(),
		PollInterval:    cfg.PollInterval(),
		MaxAttempts:     cfg.MaxAttempts,
		ReloadGrace:     cfg.ReloadGrace(),
	}, r.logger)
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
