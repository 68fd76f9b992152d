package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	catalogapp "github.com/alexisbeaulieu97/libris/internal/application/catalog"
	"github.com/alexisbeaulieu97/libris/internal/config"
	"github.com/alexisbeaulieu97/libris/internal/infrastructure/api"
	"github.com/alexisbeaulieu97/libris/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/libris/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/libris/internal/logger"
	"github.com/alexisbeaulieu97/libris/internal/ports"
	"github.com/alexisbeaulieu97/libris/internal/session"
	"github.com/alexisbeaulieu97/libris/internal/theme"
)

// AppContext bundles long-lived services created once per process. The
// exported fields above Config may be set before Open to replace the
// environment.
type AppContext struct {
	HomeDir   string
	EnvFile   string
	LookupEnv func(string) (string, bool)
	LogWriter io.Writer
	Scheme    theme.Scheme

	Config  *config.Config
	Logger  ports.Logger
	Storage ports.KeyValueStore
	Session *session.Store
	Client  *api.Client
	Events  *events.LoggingPublisher
	Catalog *catalogapp.Service

	themeStore *theme.Store
	closers    []io.Closer
	opened     bool
}

// Open resolves configuration and builds the service graph. Calling it again
// is a no-op.
func (a *AppContext) Open(flags *rootFlags) error {
	if a.opened {
		return nil
	}

	home := a.HomeDir
	if home == "" {
		dir, err := defaultHomeDir()
		if err != nil {
			return newCommandError("start", "resolving home directory", err, "Ensure your HOME directory is set correctly.")
		}
		home = dir
	}
	envFile := a.EnvFile
	if envFile == "" {
		envFile = defaultEnvFile()
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:      flags.configPath,
		EnvFile:   envFile,
		HomeDir:   home,
		LookupEnv: a.LookupEnv,
		Override:  flags.apply,
	})
	if err != nil {
		return newCommandError("start", "loading configuration", err, "Check the config file, LIBRIS_* variables and flags.")
	}
	a.Config = cfg

	log, err := a.openLogger(cfg, flags.verbose)
	if err != nil {
		return newCommandError("start", "opening log", err, "Check that the log file location is writable.")
	}
	a.Logger = log

	if flags.ephemeral {
		a.Storage = storage.NewMemoryStore(nil)
	} else {
		store, err := storage.NewFileStore(cfg.StatePath)
		if err != nil {
			return newCommandError("start", "opening state file", err, "Check state file permissions or run with --ephemeral.")
		}
		a.Storage = store
	}

	a.Session = session.Load(a.Storage)
	a.Client = api.NewClient(cfg.APIURL,
		api.WithTokenSource(a.Session),
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log),
	)
	a.Events = events.NewLoggingPublisher(log)
	a.Catalog = catalogapp.NewService(a.Client, a.Session, a.Events, log)
	a.opened = true

	log.Debug(context.Background(), "application ready",
		"component", "cli",
		"api_url", cfg.APIURL,
		"state_path", cfg.StatePath,
		"ephemeral", flags.ephemeral,
	)
	return nil
}

func (a *AppContext) openLogger(cfg *config.Config, verbose bool) (ports.Logger, error) {
	if verbose {
		return logger.New(logger.Options{Level: "debug", HumanReadable: true, Writer: os.Stderr})
	}

	writer := a.LogWriter
	if writer == nil {
		if cfg.LogFile == "" {
			return logger.NewNoOp(), nil
		}
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		writer = f
	}
	return logger.New(logger.Options{Level: cfg.LogLevel, Writer: writer})
}

// Theme returns the theme store, creating it on first use. Detection of the
// environment's scheme is deferred until a command actually needs it.
func (a *AppContext) Theme() *theme.Store {
	if a.themeStore != nil {
		return a.themeStore
	}
	scheme := a.Scheme
	if scheme == nil {
		scheme = theme.NewPollingScheme(theme.DetectSystem(theme.TerminalIsDark()), a.Config.SchemePollInterval)
	}
	a.themeStore = theme.NewStore(a.Storage, theme.NewRoot(), scheme)
	return a.themeStore
}

// CommandContext derives the context and logger for a single command run.
// Every run gets a fresh correlation ID.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())

	log := a.Logger
	if log == nil {
		log = logger.NewNoOp()
	}
	return ctx, log.With("component", component)
}

// RequireSession fails unless a session is stored.
func (a *AppContext) RequireSession(operation string) error {
	if a.Session.Authenticated() {
		return nil
	}
	return newCommandError(operation, "not logged in", errNotLoggedIn, "Run 'libris login' first.")
}

// Close releases files opened by Open.
func (a *AppContext) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
	a.closers = nil
}
